package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the serve command.
const (
	// EnvListen overrides the full listen address.
	EnvListen = "PHISHSCAN_LISTEN"

	// EnvPort overrides only the port, as hosting platforms set it.
	EnvPort = "PORT"
)

// DefaultEnvFile is the dotenv file loaded by the serve command.
const DefaultEnvFile = ".env"

// LoadDotEnv loads variables from the given dotenv files into the process
// environment. Variables that are already set are not overwritten.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides the listen address from the environment.
// PHISHSCAN_LISTEN wins over PORT. A nil getenv uses os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if listen := getenv(EnvListen); listen != "" {
		c.ListenAddress = listen
		return
	}
	if port := getenv(EnvPort); port != "" {
		host, _, err := net.SplitHostPort(c.ListenAddress)
		if err != nil {
			host = ""
		}
		c.ListenAddress = net.JoinHostPort(host, port)
	}
}
