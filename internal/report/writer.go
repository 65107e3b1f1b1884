package report

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/nao1215/phishscan/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same API.
type Writer interface {
	// Write outputs the result of a single scan.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.ScanResult) (int, error)

	// WriteAll outputs the results of a batch, followed by a summary
	// where the format has one.
	WriteAll(results []*model.ScanResult) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.ScanResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll outputs the results to all configured Writers.
func (m *MultiWriter) WriteAll(results []*model.ScanResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAll(results)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total     int `json:"total"`
	Standard  int `json:"standard"`
	Irregular int `json:"irregular"`
	Anomalous int `json:"anomalous"`
	Errors    int `json:"errors"`
}

// Summarize counts verdicts and failures. Nil results are skipped.
func Summarize(results []*model.ScanResult) Summary {
	var s Summary
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Total++
		if !r.OK() {
			s.Errors++
			continue
		}
		switch r.Report().Verdict {
		case model.VerdictStandard:
			s.Standard++
		case model.VerdictIrregular:
			s.Irregular++
		case model.VerdictAnomalous:
			s.Anomalous++
		}
	}
	return s
}

// DisplayHost returns the host of rawURL in Unicode form when it is an
// internationalized (punycode) domain name, and "" otherwise.
// Phishing links often use IDNs whose Unicode form imitates a brand.
func DisplayHost(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, "xn--") {
		return ""
	}
	unicodeHost, err := idna.Display.ToUnicode(host)
	if err != nil || unicodeHost == host {
		return ""
	}
	return unicodeHost
}

// nonNil drops nil entries, which a cancelled batch leaves behind.
func nonNil(results []*model.ScanResult) []*model.ScanResult {
	out := make([]*model.ScanResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
