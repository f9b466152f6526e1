// Command trajectory plots the path of one joint while pose -a is blended
// into pose -b.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"skelpose/internal/posefile"
	"skelpose/internal/trajectory"
)

var logger = zap.Must(zap.NewDevelopment()).Sugar().Named("trajectory")

func main() {
	a := flag.String("a", "", "Pose file at alpha 0")
	b := flag.String("b", "", "Pose file at alpha 1")
	joint := flag.Int("joint", -1, "Joint index to follow (default: last joint)")
	steps := flag.Int("steps", 32, "Number of samples from alpha 0 to 1")
	out := flag.String("out", "trajectory.png", "Output plot (.png, .svg, .pdf)")
	flag.Parse()
	defer logger.Sync() //nolint:errcheck

	if *a == "" || *b == "" {
		fmt.Fprintln(os.Stderr, "Usage: trajectory -a <pose> -b <pose> [-joint k] [-steps n] [-out file]")
		os.Exit(2)
	}

	poseA, parents, err := posefile.Load(*a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	poseB, _, err := posefile.Load(*b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	k := *joint
	if k < 0 {
		k = poseA.Len() - 1
	}

	samples, err := trajectory.Run(poseA, poseB, parents, k, *steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debugw("sampled", "joint", k, "steps", len(samples))

	first, last := samples[0], samples[len(samples)-1]
	fmt.Printf("Joint %d: %v -> %v\n", k, first.Position, last.Position)
	fmt.Printf("Path length: %.4g (straight line %.4g)\n",
		trajectory.PathLength(samples), last.Position.Sub(first.Position).Len())

	title := fmt.Sprintf("joint %d: %s -> %s", k, *a, *b)
	if err := trajectory.Save(samples, title, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Plot: %s\n", *out)
}
