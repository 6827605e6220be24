// Package runner orchestrates a batch: candidate files are analyzed
// with bounded per-archive parallelism and the resulting artifacts
// are collected in input order. Archives share no mutable state, so
// one worker per archive is safe; no partial artifact is ever exposed.
package runner

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/recovermail/recovermail/analyzer"
	"github.com/recovermail/recovermail/mbox"
	"github.com/recovermail/recovermail/model"
	"github.com/recovermail/recovermail/stats"
)

type Runner struct {
	opts    analyzer.Options
	workers int
	logger  *slog.Logger
	sinks   []stats.Sink
}

// New builds a batch runner. workers <= 0 defaults to the CPU count.
// Sinks receive one event per file, delivered sequentially.
func New(opts analyzer.Options, workers int, logger *slog.Logger, sinks ...stats.Sink) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{opts: opts, workers: workers, logger: logger, sinks: sinks}
}

// Run analyzes every path and returns the artifacts in input order.
// Each file ends in exactly one of four outcomes — analyzed, skipped
// (not an MBOX), failed (unopenable container) or empty — and no
// outcome blocks the rest of the batch.
func (r *Runner) Run(paths []string) []model.Artifact {
	results := make([]*model.Artifact, len(paths))
	events := make(chan stats.Event, len(paths))

	var dispatchWG sync.WaitGroup
	dispatchWG.Add(1)
	go func() {
		defer dispatchWG.Done()
		for evt := range events {
			r.log(evt)
			for _, sink := range r.sinks {
				sink.Handle(evt)
			}
		}
	}()

	sem := make(chan struct{}, r.workers)
	var workWG sync.WaitGroup

	for i, path := range paths {
		if !mbox.Detect(path) {
			events <- stats.Event{Type: stats.EventTypeSkipped, Path: path}
			continue
		}

		workWG.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer workWG.Done()
			defer func() { <-sem }()

			artifact, err := analyzer.Analyze(path, r.opts)
			switch {
			case err != nil:
				events <- stats.Event{Type: stats.EventTypeFailed, Path: path, Err: err}
			case artifact == nil:
				events <- stats.Event{Type: stats.EventTypeEmpty, Path: path}
			default:
				results[i] = artifact
				events <- stats.Event{Type: stats.EventTypeAnalyzed, Path: path, Messages: artifact.MessageCount}
			}
		}(i, path)
	}

	workWG.Wait()
	close(events)
	dispatchWG.Wait()

	artifacts := make([]model.Artifact, 0, len(paths))
	for _, artifact := range results {
		if artifact != nil {
			artifacts = append(artifacts, *artifact)
		}
	}
	return artifacts
}

func (r *Runner) log(evt stats.Event) {
	if r.logger == nil {
		return
	}
	switch evt.Type {
	case stats.EventTypeAnalyzed:
		r.logger.Info("archive analyzed", "path", evt.Path, "messages", evt.Messages)
	case stats.EventTypeSkipped:
		r.logger.Warn("file skipped, not an mbox", "path", evt.Path)
	case stats.EventTypeFailed:
		r.logger.Error("archive failed to parse", "path", evt.Path, "err", evt.Err)
	case stats.EventTypeEmpty:
		r.logger.Warn("archive contained no messages", "path", evt.Path)
	}
}
