package main

import (
	"context"
	"log/slog"
	"os"
	"runtime/pprof"
)

// profiler runs a profile in the background until it is stopped.
type profiler struct {
	cancel   context.CancelFunc
	doneChan chan struct{}
}

func newProfiler(ctx context.Context, run func(ctx context.Context)) *profiler {
	prof := &profiler{doneChan: make(chan struct{})}

	ctx, prof.cancel = context.WithCancel(ctx)

	go func() {
		defer close(prof.doneChan)
		run(ctx)
	}()

	return prof
}

// Stop ends the profile and waits for it to be written.
func (prof *profiler) Stop() {
	prof.cancel()
	<-prof.doneChan
}

// newCPUProfiler samples the CPU into the file at path until stopped.
func newCPUProfiler(ctx context.Context, path string) *profiler {
	return newProfiler(ctx, func(ctx context.Context) {
		f, err := os.Create(path)
		if err != nil {
			slog.Error("Could not create cpu profile", "err", err, "path", path)

			return
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			slog.Error("Could not start cpu profile", "err", err, "path", path)

			return
		}
		defer pprof.StopCPUProfile()

		<-ctx.Done()
	})
}

// newAllocProfiler writes the allocations to the file at path once stopped.
func newAllocProfiler(ctx context.Context, path string) *profiler {
	return newProfiler(ctx, func(ctx context.Context) {
		<-ctx.Done()

		f, err := os.Create(path)
		if err != nil {
			slog.Error("Could not create allocs profile", "err", err, "path", path)

			return
		}
		defer f.Close()

		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			slog.Error("Could not write allocs profile", "err", err, "path", path)
		}
	})
}
