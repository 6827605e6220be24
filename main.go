package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/recovermail/recovermail/analyzer"
	"github.com/recovermail/recovermail/config"
	"github.com/recovermail/recovermail/mbox"
	"github.com/recovermail/recovermail/progress"
	"github.com/recovermail/recovermail/report"
	"github.com/recovermail/recovermail/runner"
	"github.com/recovermail/recovermail/stats"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recovermail [files/dirs...]",
		Short: "Forensic batch analyzer for MBOX mail archives",
		Long: "recovermail reconstructs the messages of one or more MBOX archives " +
			"without touching the source evidence and exports JSON, HTML and PDF reports.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd, args)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg.LogLevel)
			slog.SetDefault(logger)

			return run(cfg, logger)
		},
	}

	config.RegisterFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if cfg.LogLevel == "info" {
		pterm.DefaultHeader.WithFullWidth().Println("RecoverMail - Forensic MBOX Analyzer")
	}

	files, err := mbox.Discover(cfg.Paths, cfg.Recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no candidate files found")
	}

	opts := analyzer.Options{
		MaxBodyChars:    cfg.MaxBodyChars,
		TopN:            cfg.TopN,
		IncludeBody:     cfg.IncludeBody,
		PreferPlainText: cfg.PreferPlainText,
	}

	collector := stats.NewCollector()
	bar := progress.New(len(files), cfg.LogLevel)

	started := time.Now()
	artifacts := runner.New(opts, cfg.Workers, logger, collector, bar).Run(files)
	bar.Stop()

	summary := collector.Snapshot()
	logger.Info("batch complete", summary.LogAttrs()...)

	if len(artifacts) == 0 {
		progress.PrintSummary(summary, time.Since(started))
		return fmt.Errorf("no analyzable MBOX archives among %d file(s)", len(files))
	}

	if cfg.LogLevel == "info" {
		report.PrintConsole(artifacts)
	}

	if cfg.ExportJSON {
		path := cfg.OutputPrefix + ".json"
		if err := report.WriteJSON(artifacts, path); err != nil {
			return err
		}
		logger.Info("report written", "format", "json", "path", path)
	}
	if cfg.ExportHTML {
		path := cfg.OutputPrefix + ".html"
		if err := report.WriteHTML(artifacts, path); err != nil {
			return err
		}
		logger.Info("report written", "format", "html", "path", path)
	}
	if cfg.ExportPDF {
		path := cfg.OutputPrefix + ".pdf"
		if err := report.WritePDF(artifacts, path); err != nil {
			return err
		}
		logger.Info("report written", "format", "pdf", "path", path)
	}
	if cfg.CSVDir != "" {
		if err := report.WriteCSV(artifacts, cfg.CSVDir); err != nil {
			return err
		}
		logger.Info("report written", "format", "csv", "path", cfg.CSVDir)
	}

	progress.PrintSummary(summary, time.Since(started))
	return nil
}

func setupLogger(logLevel string) *slog.Logger {
	level := new(slog.LevelVar)
	switch logLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
