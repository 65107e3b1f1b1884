package config

import (
	"net"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultListenAddress binds all interfaces on port 5000, the port the
	// scanner page has always been served on.
	DefaultListenAddress = "0.0.0.0:5000"

	// DefaultReadTimeout bounds how long a client may take to send a request.
	// Scan requests are tiny, so a short timeout is enough.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds how long writing a response may take.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultShutdownTimeout is how long in-flight requests get to finish
	// after SIGINT or SIGTERM.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxBodySize limits the size of a POST /scan body.
	// 64KB is far above any real URL.
	DefaultMaxBodySize = 64 * 1024

	// DefaultBatchSize of 8 concurrent analyses. Analysis is CPU-bound and
	// cheap, so this mainly bounds goroutines for very long lists.
	DefaultBatchSize = 8

	// AppName is the application name used for XDG directory paths.
	AppName = "phishscan"
)

// DefaultAllowOrigins allows any origin, matching the open CORS policy the
// scanner API has always had.
var DefaultAllowOrigins = []string{"*"}

// Config holds all configuration options for PhishScan.
// This struct is populated from defaults, the config file, the environment
// and CLI flags, then passed through the application rather than kept in
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ServerConfig, ScanConfig) for simplicity. The number of options
// is manageable and the YAML file carries the grouping instead.
type Config struct {
	// ListenAddress is the "host:port" the HTTP server binds to.
	ListenAddress string

	// ReadTimeout is the HTTP server's read timeout.
	ReadTimeout time.Duration

	// WriteTimeout is the HTTP server's write timeout.
	WriteTimeout time.Duration

	// ShutdownTimeout is the grace period for in-flight requests on shutdown.
	ShutdownTimeout time.Duration

	// MaxBodySize is the maximum accepted POST /scan body in bytes.
	MaxBodySize int64

	// AllowOrigins is the CORS allow list for the API.
	// "*" allows any origin.
	AllowOrigins []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONLogs switches log output from text to JSON lines.
	JSONLogs bool

	// BatchSize is the number of concurrent analyses when scanning many URLs.
	BatchSize int

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// When true, outputs GitHub Flavored Markdown with tables, alerts, and pie charts.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Targets is the list of URLs to scan.
	Targets []string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeouts, the
// listen address). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ListenAddress:   DefaultListenAddress,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxBodySize:     DefaultMaxBodySize,
		AllowOrigins:    append([]string(nil), DefaultAllowOrigins...),
		BatchSize:       DefaultBatchSize,
	}
}

// XDGConfigDir returns the XDG config directory for PhishScan.
// On Linux: ~/.config/phishscan
// On macOS: ~/Library/Application Support/phishscan
// On Windows: %APPDATA%\phishscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the settings shared by every command.
// It returns the first error found.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.ListenAddress); err != nil {
		return ErrInvalidListenAddress
	}

	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	// BatchSize must be positive; zero would mean no scanning
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ValidateScan is Validate plus the checks only the scan command needs.
func (c *Config) ValidateScan() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	return c.Validate()
}
