// Command inspect prints a pose file in local and global form.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"skelpose/internal/mathutil"
	"skelpose/internal/posefile"
	"skelpose/internal/skeleton"
)

var logger = zap.Must(zap.NewDevelopment()).Sugar().Named("inspect")

func main() {
	dump := flag.Bool("dump", false, "Dump the decoded structures with go-spew")
	flag.Parse()
	defer logger.Sync() //nolint:errcheck

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-dump] <pose file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	local, parents, err := posefile.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := parents.Validate(); err != nil {
		logger.Warnw("parent ordering", "file", path, "error", err)
	}

	fmt.Printf("Joints: %d\n", local.Len())
	if depths, err := parents.Depths(); err == nil {
		maxDepth := 0
		for _, d := range depths {
			maxDepth = max(maxDepth, d)
		}
		fmt.Printf("Hierarchy depth: %d\n", maxDepth)

		leaves := 0
		for k := range parents {
			if len(parents.Children(k)) == 0 {
				leaves++
			}
		}
		fmt.Printf("Leaf joints: %d\n", leaves)
	}

	fmt.Println("\nLocal pose:")
	fmt.Print(local.String())

	global, err := skeleton.LocalToGlobal(local, parents)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nGlobal pose:")
	fmt.Print(global.String())

	// pose * pose^-1 must be the identity for every joint.
	ident, err := skeleton.Multiply(global, skeleton.Inverse(global))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	var posErr float64
	rotOK := true
	for _, j := range ident.All() {
		posErr = math.Max(posErr, j.Position.Len())
		rotOK = rotOK && j.Orientation.EqualRotation(mathutil.QuatIdentity(), 1e-9)
	}
	fmt.Printf("\nInverse check: max position error %.3g, orientations identity: %v\n", posErr, rotOK)

	bones, err := skeleton.ExtractBones(global, parents)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nBones: %d\n", len(bones)/2)
	for i := 0; i+1 < len(bones); i += 2 {
		k := i/2 + 1
		fmt.Printf("  [%d -> %d] %v -> %v  len=%.4g\n", parents[k], k, bones[i], bones[i+1], bones[i+1].Sub(bones[i]).Len())
	}

	if *dump {
		fmt.Println()
		spew.Dump(parents, local.Joints(), global.Joints())
	}
}
