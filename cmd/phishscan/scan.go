package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscan/internal/analyzer"
	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/log"
	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/pipeline"
	"github.com/nao1215/phishscan/internal/report"
)

// errScanFailures is returned when at least one target could not be analyzed.
// The report is still written for every target.
var errScanFailures = errors.New("some targets could not be analyzed")

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Score URLs for phishing signals",
		Long: `Scan runs the heuristic analyzer over one or more URLs and prints a report.

Each URL is scored on:
- Trust keywords (secure, login, bank ...) on links without HTTPS
- Random-looking hostnames (high character entropy)
- Look-alikes of well-known brands outside their official domain
- Host masking with '@'
- Low-reputation TLDs (.xyz, .top, .zip, .click, .monster)

Nothing is fetched; only the text of each URL is inspected.

Examples:
  # Scan a single URL
  phishscan scan http://paypal-secure-login.xyz

  # Scan several URLs
  phishscan scan https://www.google.com http://user@evil.top

  # Scan URLs listed in a file (one per line, '#' starts a comment)
  phishscan scan --list urls.txt

  # Output JSON report
  phishscan scan --json http://paypa1.com

  # Write a Markdown report to a file
  phishscan scan -m -o reports/today.md --list urls.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,

		// Usage text must not be mixed into report output.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Target flags
	cmd.Flags().StringP("list", "l", "",
		"Read URLs from a file, one per line")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .phishscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.ValidateScan(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSONLogs)
	return runScan(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
}

// buildScanConfig creates a Config from defaults, the config file and the
// command flags, in increasing order of precedence.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if _, err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}

	// Format flags replace the file's format rather than combining with it.
	if flags.Changed("json") || flags.Changed("markdown") {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}

	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	cfg.Targets = append(cfg.Targets, args...)

	listFile, err := flags.GetString("list")
	if err != nil {
		return nil, err
	}
	if listFile != "" {
		targets, err := pipeline.ReadTargetsFile(listFile)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, targets...)
	}

	return cfg, nil
}

// runScan analyzes every target and writes the report to stdout or
// cfg.ReportFile.
func runScan(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("starting scan",
		"targets", len(cfg.Targets),
		"batchSize", cfg.BatchSize,
	)

	bp := pipeline.NewBatchProcessor(
		analyzer.New(analyzer.WithLogger(logger)),
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	results, err := bp.ProcessBatch(ctx, cfg.Targets)
	if err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}

	if err := outputReport(cfg, stdout, results); err != nil {
		return err
	}

	failed := report.Summarize(results).Errors
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errScanFailures, failed, len(results))
	}
	return nil
}

// outputReport writes results in the requested format to stdout or
// cfg.ReportFile.
func outputReport(cfg *config.Config, stdout io.Writer, results []*model.ScanResult) error {
	if cfg.ReportFile == "" {
		return writeReport(cfg, stdout, results)
	}

	if err := ensureDir(cfg.ReportFile); err != nil {
		return err
	}

	// Scanned URLs may embed credentials, so the report is owner-only.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return writeAndClose(f, func(w io.Writer) error {
		return writeReport(cfg, w, results)
	})
}

// writeAndClose runs write on wc and closes it, reporting a failed Close.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// writeReport writes results with the configured writer.
// A single target is written as a single report; several as a batch.
func writeReport(cfg *config.Config, output io.Writer, results []*model.ScanResult) error {
	writer := newReportWriter(cfg, output)

	var err error
	if len(results) == 1 {
		_, err = writer.Write(results[0])
	} else {
		_, err = writer.WriteAll(results)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// newReportWriter picks the report writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
