package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/phishscan/internal/analyzer"
	"github.com/nao1215/phishscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing, for example as
// a comment on a ticket about a reported link.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables, GitHub-flavored alerts and
// mermaid charts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a single result in Markdown format.
func (w *MarkdownWriter) Write(result *model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("PhishScan Report")
	md.PlainText("")
	w.writeResult(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteAll outputs a batch overview followed by a section per result.
func (w *MarkdownWriter) WriteAll(results []*model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)
	results = nonNil(results)

	md.H1("PhishScan Batch Report")
	md.PlainText("")
	w.writeOverview(md, results)

	for _, r := range results {
		md.H2(r.URL)
		md.PlainText("")
		w.writeResult(md, r)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeOverview writes the summary table and verdict chart of a batch.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, results []*model.ScanResult) {
	rows := make([][]string, len(results))
	for i, r := range results {
		score, verdict := "-", "❌ Error"
		if r.OK() {
			score = strconv.Itoa(r.Report().RiskScore)
			verdict = verdictText(r.Report().Verdict)
		}
		rows[i] = []string{codeCell(r.URL), score, verdict}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Risk Score", "Verdict"},
		Rows:   rows,
	})
	md.PlainText("")

	s := Summarize(results)
	if s.Total == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdict Distribution"),
		piechart.WithShowData(true),
	)
	for _, slice := range []struct {
		label string
		count int
	}{
		{"Anomalous", s.Anomalous},
		{"Irregular", s.Irregular},
		{"Standard", s.Standard},
		{"Error", s.Errors},
	} {
		if slice.count > 0 {
			chart.LabelAndIntValue(slice.label, uint64(slice.count)) //nolint:gosec // counts are non-negative
		}
	}
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeResult writes the body for one result.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, result *model.ScanResult) {
	w.writeHeader(md, result)
	if !result.OK() {
		md.Importantf("The URL could not be analyzed: %s", errorText(result))
		md.PlainText("")
		return
	}

	w.writeAlert(md, result.Report())
	w.writeForensics(md, result)
	w.writeSpecs(md, result.Report().Specs)
	w.writePenaltyChart(md, result.Assessment.Penalties)
}

// writeHeader writes the property table for one result.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ScanResult) {
	rows := [][]string{
		{"URL", codeCell(result.URL)},
	}
	if host := DisplayHost(result.URL); host != "" {
		rows = append(rows, []string{"Unicode Host", codeCell(host)})
	}
	rows = append(rows, []string{"Scan Date", result.ScannedAt.Format("2006-01-02 15:04:05 MST")})

	if result.OK() {
		report := result.Report()
		rows = append(rows,
			[]string{"Risk Score", strconv.Itoa(report.RiskScore) + "/100"},
			[]string{"Verdict", verdictText(report.Verdict)},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// codeCell renders s as inline code that is safe inside a table cell.
// Pipes are escaped, and a fence longer than any backtick run in s is used.
func codeCell(s string) string {
	s = strings.NewReplacer("|", `\|`, "\r", " ", "\n", " ").Replace(s)

	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	if longest == 0 {
		return markdown.Code(s)
	}

	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}

// verdictText returns the verdict with a visual indicator.
func verdictText(v model.Verdict) string {
	switch v {
	case model.VerdictAnomalous:
		return "🔴 Anomalous"
	case model.VerdictIrregular:
		return "🟡 Irregular"
	default:
		return "🟢 " + v.String()
	}
}

// writeAlert writes the opinion as an alert whose kind follows the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch report.Verdict {
	case model.VerdictAnomalous:
		md.Cautionf("%s", report.NeutralOpinion)
	case model.VerdictIrregular:
		md.Warningf("%s", report.NeutralOpinion)
	default:
		md.Tip(report.NeutralOpinion)
	}
	md.PlainText("")
}

// writeForensics writes the forensic entries and the guidance for each threat.
func (w *MarkdownWriter) writeForensics(md *markdown.Markdown, result *model.ScanResult) {
	report := result.Report()

	md.H3("Forensic Report")
	md.PlainText("")
	if !report.HasEntries() {
		md.PlainText("No suspicious patterns detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.ForensicReport))
	for i, e := range report.ForensicReport {
		rows[i] = []string{string(e.Type), e.Observation, e.Rationale}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Type", "Observation", "Rationale"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, tag := range model.UniqueThreats(result.Assessment.Threats) {
		info := model.GetThreatInfo(tag)
		md.Details(string(tag), info.Impact+"\n\n"+info.Recommendation)
	}
	md.PlainText("")
}

// writeSpecs writes the structural specs table.
func (w *MarkdownWriter) writeSpecs(md *markdown.Markdown, specs model.Specs) {
	md.H3("Specs")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Length", strconv.Itoa(specs.Length)},
			{"HTTPS", specs.HasHTTPS.String()},
			{"WWW", specs.HasWWW.String()},
			{"TLD", specs.HasTLD.String()},
		},
	})
	md.PlainText("")
}

// writePenaltyChart writes a mermaid pie chart of the weight each layer added.
func (w *MarkdownWriter) writePenaltyChart(md *markdown.Markdown, penalties []model.Penalty) {
	if len(penalties) == 0 {
		return
	}

	byLayer := make(map[string]int, len(penalties))
	for _, p := range penalties {
		byLayer[p.Layer] += p.Weight
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Risk Contribution by Layer"),
		piechart.WithShowData(true),
	)
	// Layer order keeps the chart stable between runs.
	for _, layer := range analyzer.LayerNames() {
		if weight := byLayer[layer]; weight > 0 {
			chart.LabelAndIntValue(layerLabel(layer), uint64(weight)) //nolint:gosec // weights are positive
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// layerLabel turns a layer name such as "tld-reputation" into "Tld Reputation".
func layerLabel(name string) string {
	words := strings.Split(name, "-")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by PhishScan. Heuristic analysis only: no page was fetched.*")
}
