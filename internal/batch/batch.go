// Package batch renders pose files to preview images with a worker pool.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"skelpose/internal/mathutil"
	"skelpose/internal/output"
	"skelpose/internal/posefile"
	"skelpose/internal/raster"
	"skelpose/internal/skeleton"
)

// PoseExts lists the file extensions treated as pose files by FindJobs.
var PoseExts = []string{".pose", ".txt"}

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Format    output.Format
	Style     raster.Style
	View      mathutil.Mat3
	Workers   int
	Logger    *zap.SugaredLogger

	// Progress is the interval between progress log lines. Zero means 2s.
	Progress time.Duration
}

// Job is one pose file to render. Name is the output path relative to
// OutputDir, without extension.
type Job struct {
	Input string
	Name  string
}

// Result holds the outcome of rendering one job.
type Result struct {
	Name    string
	Input   string
	Output  string
	Joints  int
	Success bool
	Err     error
}

// FindJobs walks dir and returns a job for every pose file below it,
// sorted by name. Output names mirror the directory layout.
func FindJobs(dir string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isPoseFile(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, Job{Input: path, Name: strings.TrimSuffix(rel, filepath.Ext(rel))})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs, nil
}

// FileJob returns the job for a single pose file.
func FileJob(path string) Job {
	base := filepath.Base(path)
	return Job{Input: path, Name: strings.TrimSuffix(base, filepath.Ext(base))}
}

func isPoseFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range PoseExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Run renders all jobs using a worker pool. Results are in job order.
// Jobs not started before ctx is cancelled get ctx.Err() as their error.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Infow("progress", "done", p, "total", total, "poses_per_sec", rate)
				}
			}
		}
	}()

	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = render(cfg, jobs[idx])
				if err := results[idx].Err; err != nil {
					log.Warnw("render failed", "pose", jobs[idx].Input, "error", err)
				} else {
					log.Debugw("rendered", "pose", jobs[idx].Input, "output", results[idx].Output)
				}
				processed.Add(1)
			}
		}()
	}

	sent := 0
send:
	for ; sent < total; sent++ {
		select {
		case <-ctx.Done():
			break send
		case jobChan <- sent:
		}
	}
	close(jobChan)
	for i := sent; i < total; i++ {
		results[i] = Result{Name: jobs[i].Name, Input: jobs[i].Input, Err: ctx.Err()}
	}

	wg.Wait()
	close(done)
	<-reporterDone

	log.Infow("batch finished", "total", total, "failed", len(Failed(results)), "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

func render(cfg Config, job Job) Result {
	res := Result{Name: job.Name, Input: job.Input}

	local, parents, err := posefile.Load(job.Input)
	if err != nil {
		res.Err = err
		return res
	}
	res.Joints = local.Len()

	global, err := skeleton.LocalToGlobal(local, parents)
	if err != nil {
		res.Err = fmt.Errorf("batch: %s: %w", job.Input, err)
		return res
	}

	img, err := raster.RenderPose(global, parents, cfg.View, cfg.Style)
	if err != nil {
		res.Err = fmt.Errorf("batch: %s: %w", job.Input, err)
		return res
	}

	out := filepath.Join(cfg.OutputDir, job.Name+cfg.Format.Ext())
	if err := output.WriteFile(out, img, cfg.Format); err != nil {
		res.Err = err
		return res
	}

	res.Output = out
	res.Success = true
	return res
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

// Errors combines the errors of all failed results, or returns nil.
func Errors(results []Result) error {
	var err error
	for _, r := range results {
		if r.Err != nil {
			err = multierr.Append(err, r.Err)
		}
	}
	return err
}
