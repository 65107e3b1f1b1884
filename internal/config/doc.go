// Package config provides configuration structures and utilities for
// PhishScan. It defines the HTTP server settings, batch scanning settings
// and report preferences, and loads them from the .phishscan YAML file,
// a .env file and the environment.
//
// Precedence, lowest first: built-in defaults (NewConfig), the YAML file,
// environment variables, then command-line flags.
package config
