// Command render draws bone previews of pose files.
//
// A single file renders to one image; a directory renders every pose file
// below it with a worker pool and writes a manifest. With -pose2 the two
// poses are blended at -alpha before rendering.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"skelpose/internal/batch"
	"skelpose/internal/config"
	"skelpose/internal/output"
	"skelpose/internal/posefile"
	"skelpose/internal/raster"
	"skelpose/internal/skeleton"
)

var logger = zap.Must(zap.NewDevelopment()).Sugar().Named("render")

func main() {
	// CLI flags
	in := flag.String("in", "", "Pose file or directory of pose files")
	pose2 := flag.String("pose2", "", "Second pose file to blend with -in")
	alpha := flag.Float64("alpha", 0.5, "Blend factor for -pose2 (0 = -in, 1 = -pose2)")
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Image format: webp, tga or png (default: webp)")
	size := flag.Int("size", 0, "Output image size in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	labels := flag.Bool("labels", false, "Draw joint indices")

	flag.Parse()
	defer logger.Sync() //nolint:errcheck

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: render -in <pose file|dir> [-pose2 file -alpha a] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Format:    *format,
		Size:      *size,
		Workers:   *workers,
		Labels:    *labels,
	})

	f, err := output.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	style, err := cfg.Style()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    f,
		Style:     style,
		View:      cfg.View(),
		Workers:   cfg.Workers,
		Logger:    logger,
	}

	if *pose2 != "" {
		if err := renderBlend(batchCfg, *in, *pose2, *alpha); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	info, err := os.Stat(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var jobs []batch.Job
	if info.IsDir() {
		jobs, err = batch.FindJobs(*in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		jobs = []batch.Job{batch.FileJob(*in)}
	}

	if len(jobs) == 0 {
		fmt.Println("No pose files to render.")
		os.Exit(0)
	}

	fmt.Printf("Skeleton pose preview -> %s\n", f)
	fmt.Printf("Poses: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batchCfg, jobs)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(20, len(failed))
		for _, r := range failed[:limit] {
			fmt.Printf("  %s: %v\n", r.Name, r.Err)
		}
	}

	if info.IsDir() {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			logger.Warnw("cannot create output dir", "dir", cfg.OutputDir, "error", err)
		}
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if err := batch.Errors(results); err != nil {
		logger.Debugw("batch errors", "error", err)
		os.Exit(1)
	}
}

// renderBlend interpolates two local poses that share a hierarchy and
// renders the blended pose.
func renderBlend(cfg batch.Config, pathA, pathB string, alpha float64) error {
	a, parents, err := posefile.Load(pathA)
	if err != nil {
		return err
	}
	b, parentsB, err := posefile.Load(pathB)
	if err != nil {
		return err
	}
	if len(parents) != len(parentsB) {
		return fmt.Errorf("%s has %d joints, %s has %d", pathA, len(parents), pathB, len(parentsB))
	}
	for k := range parents {
		if parents[k] != parentsB[k] {
			logger.Warnw("hierarchies differ, using the first", "joint", k, "a", parents[k], "b", parentsB[k])
			break
		}
	}

	blended, err := skeleton.Interpolate(a, b, alpha)
	if err != nil {
		return err
	}
	global, err := skeleton.LocalToGlobal(blended, parents)
	if err != nil {
		return err
	}
	img, err := raster.RenderPose(global, parents, cfg.View, cfg.Style)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s_%g", batch.FileJob(pathA).Name, batch.FileJob(pathB).Name, alpha)
	out := filepath.Join(cfg.OutputDir, name+cfg.Format.Ext())
	if err := output.WriteFile(out, img, cfg.Format); err != nil {
		return err
	}
	logger.Infow("rendered blend", "a", pathA, "b", pathB, "alpha", alpha, "output", out)
	fmt.Printf("Output: %s\n", out)
	return nil
}
