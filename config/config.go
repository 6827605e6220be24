package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Config captures all command-line options for one analysis batch.
type Config struct {
	Paths           []string
	OutputPrefix    string
	TopN            int
	MaxBodyChars    int
	IncludeBody     bool
	PreferPlainText bool
	ExportJSON      bool
	ExportHTML      bool
	ExportPDF       bool
	CSVDir          string
	Recursive       bool
	Workers         int
	LogLevel        string
}

// RegisterFlags attaches all CLI flags to the provided command.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("output", "o", "mbox_report", "Prefix for the exported report files (without extension)")
	flags.IntP("top", "t", 5, "Number of entries in each top list")
	flags.Int("max-body-chars", 2000, "Maximum stored body length per message (0 = unlimited)")
	flags.Bool("include-body", true, "Extract message bodies and hash them for duplicate detection")
	flags.Bool("prefer-plain-text", true, "Prefer text/plain parts over HTML when both are present")
	flags.Bool("json", true, "Write the JSON report")
	flags.Bool("html", true, "Write the HTML report")
	flags.Bool("pdf", true, "Write the PDF report")
	flags.String("csv-dir", "", "Directory for per-category CSV reports (empty = disabled)")
	flags.Bool("recursive", false, "Recurse into directories given as arguments")
	flags.Int("workers", 0, "Archives analyzed in parallel (0 = CPU count)")
	flags.String("log-level", "info", "Logging level: debug, info, warn, error")
}

// LoadConfig converts the parsed Cobra flags into a validated Config.
func LoadConfig(cmd *cobra.Command, args []string) (Config, error) {
	flags := cmd.Flags()

	outputPrefix, err := flags.GetString("output")
	if err != nil {
		return Config{}, err
	}
	topN, err := flags.GetInt("top")
	if err != nil {
		return Config{}, err
	}
	maxBodyChars, err := flags.GetInt("max-body-chars")
	if err != nil {
		return Config{}, err
	}
	includeBody, err := flags.GetBool("include-body")
	if err != nil {
		return Config{}, err
	}
	preferPlainText, err := flags.GetBool("prefer-plain-text")
	if err != nil {
		return Config{}, err
	}
	exportJSON, err := flags.GetBool("json")
	if err != nil {
		return Config{}, err
	}
	exportHTML, err := flags.GetBool("html")
	if err != nil {
		return Config{}, err
	}
	exportPDF, err := flags.GetBool("pdf")
	if err != nil {
		return Config{}, err
	}
	csvDir, err := flags.GetString("csv-dir")
	if err != nil {
		return Config{}, err
	}
	recursive, err := flags.GetBool("recursive")
	if err != nil {
		return Config{}, err
	}
	workers, err := flags.GetInt("workers")
	if err != nil {
		return Config{}, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return Config{}, err
	}

	if topN < 1 {
		topN = 1
	}

	logLevel = strings.ToLower(logLevel)
	if logLevel == "warning" {
		logLevel = "warn"
	}

	cfg := Config{
		Paths:           args,
		OutputPrefix:    strings.TrimSpace(outputPrefix),
		TopN:            topN,
		MaxBodyChars:    maxBodyChars,
		IncludeBody:     includeBody,
		PreferPlainText: preferPlainText,
		ExportJSON:      exportJSON,
		ExportHTML:      exportHTML,
		ExportPDF:       exportPDF,
		CSVDir:          csvDir,
		Recursive:       recursive,
		Workers:         workers,
		LogLevel:        logLevel,
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	if len(cfg.Paths) == 0 {
		return fmt.Errorf("at least one file or directory is required")
	}
	if cfg.MaxBodyChars < 0 {
		return fmt.Errorf("--max-body-chars must not be negative")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	if cfg.OutputPrefix == "" && (cfg.ExportJSON || cfg.ExportHTML || cfg.ExportPDF) {
		return fmt.Errorf("--output must not be empty while exports are enabled")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.LogLevel)
	}

	return nil
}
