package analyzer

import (
	"log/slog"

	"github.com/nao1215/phishscan/internal/model"
)

// Analyzer runs the scoring layers over URLs.
// The zero value is not usable; create one with New.
type Analyzer struct {
	// layers is the ordered list of scoring layers.
	layers []Layer

	// logger receives a debug line per analysis.
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for per-analysis debug output.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer with the built-in scoring layers.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		layers: defaultLayers,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// defaultAnalyzer backs the package-level Analyze and Assess functions.
var defaultAnalyzer = New()

// Analyze scores raw with the built-in layers. See Analyzer.Analyze.
func Analyze(raw string) (*model.Report, error) {
	return defaultAnalyzer.Analyze(raw)
}

// Assess scores raw with the built-in layers. See Analyzer.Assess.
func Assess(raw string) (*model.Assessment, error) {
	return defaultAnalyzer.Assess(raw)
}

// Analyze returns the Report for raw, or a *model.AnalysisError when raw
// cannot be parsed. It is deterministic: equal inputs give equal reports.
func (a *Analyzer) Analyze(raw string) (*model.Report, error) {
	assessment, err := a.Assess(raw)
	if err != nil {
		return nil, err
	}
	return assessment.Report, nil
}

// Assess is Analyze plus the raw score, threat tags and penalty breakdown.
// Parse failure aborts before any layer runs.
func (a *Analyzer) Assess(raw string) (*model.Assessment, error) {
	target, err := Normalize(raw)
	if err != nil {
		a.logger.Debug("analysis aborted", "url", raw, "error", err)
		return nil, err
	}

	features := ExtractFeatures(target.Normalized)
	t := &tally{report: model.NewReport()}

	for _, layer := range a.layers {
		t.layer = layer.Name()
		layer.Apply(target, features, t)
	}

	risk := min(t.score, maxRiskScore)

	report := t.report
	report.RiskScore = risk
	report.Verdict = model.VerdictFromScore(risk)
	report.NeutralOpinion = Opinion(risk, t.threats)
	report.Specs = features.Specs()

	a.logger.Debug("analysis complete",
		"url", raw,
		"authority", target.Authority,
		"rawScore", t.score,
		"risk", risk,
		"verdict", report.Verdict.String(),
	)

	return &model.Assessment{
		Report:    report,
		RawScore:  t.score,
		Threats:   t.threats,
		Penalties: t.penalties,
	}, nil
}
