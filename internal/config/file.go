package config

import "time"

// ServerSection holds the server: section of the .phishscan file.
type ServerSection struct {
	// Listen is the "host:port" to bind.
	Listen string `yaml:"listen,omitempty"`

	// ReadTimeout and WriteTimeout are Go duration strings such as "10s".
	ReadTimeout  time.Duration `yaml:"readTimeout,omitempty"`
	WriteTimeout time.Duration `yaml:"writeTimeout,omitempty"`

	// ShutdownTimeout is the grace period on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`

	// MaxBodySize is the POST /scan body limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// AllowOrigins replaces the CORS allow list when non-empty.
	AllowOrigins []string `yaml:"allowOrigins,omitempty"`

	// JSONLogs switches the server's logs to JSON lines.
	JSONLogs bool `yaml:"jsonLogs,omitempty"`
}

// ScanSection holds the scan: section of the .phishscan file.
type ScanSection struct {
	// BatchSize is the number of concurrent analyses.
	BatchSize int `yaml:"batchSize,omitempty"`

	// Format is the default report format: "text", "json" or "markdown".
	Format string `yaml:"format,omitempty"`
}

// File represents the structure of the .phishscan configuration file.
type File struct {
	Server ServerSection `yaml:"server,omitempty"`
	Scan   ScanSection   `yaml:"scan,omitempty"`
}

// Report formats accepted by ScanSection.Format.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Apply overlays the non-zero values of the file onto cfg.
// Flags are applied after this, so they still win.
func (f *File) Apply(cfg *Config) {
	s := f.Server
	if s.Listen != "" {
		cfg.ListenAddress = s.Listen
	}
	if s.ReadTimeout != 0 {
		cfg.ReadTimeout = s.ReadTimeout
	}
	if s.WriteTimeout != 0 {
		cfg.WriteTimeout = s.WriteTimeout
	}
	if s.ShutdownTimeout != 0 {
		cfg.ShutdownTimeout = s.ShutdownTimeout
	}
	if s.MaxBodySize != 0 {
		cfg.MaxBodySize = s.MaxBodySize
	}
	if len(s.AllowOrigins) > 0 {
		cfg.AllowOrigins = append([]string(nil), s.AllowOrigins...)
	}
	if s.JSONLogs {
		cfg.JSONLogs = true
	}

	if f.Scan.BatchSize != 0 {
		cfg.BatchSize = f.Scan.BatchSize
	}
	switch f.Scan.Format {
	case FormatJSON:
		cfg.JSONReport = true
	case FormatMarkdown:
		cfg.MarkdownReport = true
	}
}
