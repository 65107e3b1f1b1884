package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/phishscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors so output can be piped to files or other tools unchanged.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with nothing to report are shown.
	showEmpty bool

	// verbose adds threat guidance and the penalty breakdown.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs a single result in human-readable format.
func (w *SimpleWriter) Write(result *model.ScanResult) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb)
	w.writeResult(&sb, result)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// WriteAll outputs every result followed by a batch summary.
func (w *SimpleWriter) WriteAll(results []*model.ScanResult) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb)
	for _, r := range nonNil(results) {
		w.writeResult(&sb, r)
	}
	w.writeSummary(&sb, Summarize(results))
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writeBanner writes the report title.
func (w *SimpleWriter) writeBanner(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         PHISHSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeSection writes a section heading.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeResult writes the header, opinion, forensic entries and specs of one result.
func (w *SimpleWriter) writeResult(sb *strings.Builder, result *model.ScanResult) {
	fmt.Fprintf(sb, "URL:        %s\n", result.URL)
	if host := DisplayHost(result.URL); host != "" {
		fmt.Fprintf(sb, "Unicode:    %s\n", host)
	}
	fmt.Fprintf(sb, "Scan Date:  %s\n", result.ScannedAt.Format("2006-01-02 15:04:05 MST"))

	if !result.OK() {
		fmt.Fprintf(sb, "Status:     ERROR - %s\n\n", errorText(result))
		return
	}

	report := result.Report()
	fmt.Fprintf(sb, "Risk Score: %d/100", report.RiskScore)
	if raw := result.Assessment.RawScore; raw != report.RiskScore {
		fmt.Fprintf(sb, " (raw %d)", raw)
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Verdict:    %s\n\n", report.Verdict)

	w.writeSection(sb, "OPINION")
	fmt.Fprintf(sb, "  %s\n\n", report.NeutralOpinion)

	w.writeForensics(sb, result)
	w.writeSpecs(sb, report.Specs)
	if w.verbose {
		w.writePenalties(sb, result.Assessment.Penalties)
	}
}

// writeForensics writes the forensic entries in detection order.
func (w *SimpleWriter) writeForensics(sb *strings.Builder, result *model.ScanResult) {
	report := result.Report()
	if !report.HasEntries() && !w.showEmpty {
		return
	}

	w.writeSection(sb, "FORENSIC REPORT")
	if !report.HasEntries() {
		sb.WriteString("  No suspicious patterns detected\n\n")
		return
	}

	threats := result.Assessment.Threats
	for i, e := range report.ForensicReport {
		fmt.Fprintf(sb, "  [%s] %s\n", e.Type, e.Observation)
		fmt.Fprintf(sb, "    %s\n", e.Rationale)
		if w.verbose && i < len(threats) {
			info := model.GetThreatInfo(threats[i])
			fmt.Fprintf(sb, "    Impact: %s\n", info.Impact)
			fmt.Fprintf(sb, "    Recommendation: %s\n", info.Recommendation)
		}
	}
	sb.WriteString("\n")
}

// writeSpecs writes the structural specs.
func (w *SimpleWriter) writeSpecs(sb *strings.Builder, specs model.Specs) {
	w.writeSection(sb, "SPECS")
	fmt.Fprintf(sb, "  Length: %d\n", specs.Length)
	fmt.Fprintf(sb, "  HTTPS:  %s\n", specs.HasHTTPS)
	fmt.Fprintf(sb, "  WWW:    %s\n", specs.HasWWW)
	fmt.Fprintf(sb, "  TLD:    %s\n\n", specs.HasTLD)
}

// writePenalties writes the weight each fired rule added.
func (w *SimpleWriter) writePenalties(sb *strings.Builder, penalties []model.Penalty) {
	if len(penalties) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "PENALTIES")
	if len(penalties) == 0 {
		sb.WriteString("  None\n\n")
		return
	}
	for _, p := range penalties {
		fmt.Fprintf(sb, "  +%-3d %s/%s\n", p.Weight, p.Layer, p.Rule)
	}
	sb.WriteString("\n")
}

// writeSummary writes the verdict counts of a batch.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, s Summary) {
	w.writeSection(sb, "BATCH SUMMARY")
	fmt.Fprintf(sb, "  ANOMALOUS: %d\n", s.Anomalous)
	fmt.Fprintf(sb, "  IRREGULAR: %d\n", s.Irregular)
	fmt.Fprintf(sb, "  STANDARD:  %d\n", s.Standard)
	fmt.Fprintf(sb, "  ERRORS:    %d\n", s.Errors)
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL:     %d URLs\n\n", s.Total)
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by PhishScan\n")
	sb.WriteString("Heuristic analysis only: no page was fetched and no lookups were made.\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// errorText returns the message of a failed result.
func errorText(result *model.ScanResult) string {
	if result.Err != nil {
		return result.Err.Error()
	}
	return "no report"
}
