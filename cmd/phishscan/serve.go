package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/log"
	"github.com/nao1215/phishscan/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Long: `Serve starts an HTTP server exposing the analyzer.

Routes:
  GET  /                 scanner page
  GET  /education.html   explanation of every detection layer
  POST /scan             {"url": "..."} -> JSON report
  GET  /healthz          liveness probe
  GET  /metrics          Prometheus metrics

The listen address is taken, in increasing order of precedence, from the
default (0.0.0.0:5000), the config file, the PORT and PHISHSCAN_LISTEN
environment variables (a .env file in the current directory is loaded first)
and the --listen flag.

Examples:
  # Serve on the default address
  phishscan serve

  # Serve on localhost only
  phishscan serve -a 127.0.0.1:8080

  # Serve with JSON logs
  phishscan serve --json-logs`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,

		// Usage text must not be mixed into report output.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("listen", "a", "",
		"Address to listen on (default: "+config.DefaultListenAddress+")")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .phishscan in current or home directory)")
	cmd.Flags().Bool("json-logs", false,
		"Write logs as JSON lines")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServe(ctx, cfg, cmd)
}

// buildServeConfig creates a Config from defaults, the config file, the
// environment and the command flags, in increasing order of precedence.
func buildServeConfig(cmd *cobra.Command, getenv func(string) string) (*config.Config, error) {
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

	if err := config.LoadDotEnv(config.DefaultEnvFile); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)

	cfg.Verbose = getVerboseFlag(cmd)

	if flags.Changed("listen") {
		if cfg.ListenAddress, err = flags.GetString("listen"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("json-logs") {
		if cfg.JSONLogs, err = flags.GetBool("json-logs"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runServe runs the server until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	logger := log.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSONLogs)

	srv, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "PhishScan listening on http://%s\n", cfg.ListenAddress)
	return srv.Run(ctx)
}
