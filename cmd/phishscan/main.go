// Package main provides the entry point for the PhishScan CLI.
//
// PhishScan scores URLs for phishing signals without visiting them.
// It runs as a one-shot scanner or as an HTTP service.
//
// Usage:
//
//	phishscan scan <url>
//	phishscan scan --list <file>
//	phishscan serve
//
// See --help for all available options.
package main

// main is the entry point for PhishScan.
func main() {
	Execute()
}
