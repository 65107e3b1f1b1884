package analyzer

import (
	"fmt"
	"strings"

	"github.com/nao1215/phishscan/internal/model"
)

// Rule weights. The raw score is the sum of the weights of fired rules.
const (
	weightNoHTTPS       = 20
	weightTrustKeywords = 30
	weightHighEntropy   = 25
	weightBrandMimicry  = 50
	weightHostMasking   = 60
	weightRiskyTLD      = 30
	maxRiskScore        = 100
)

// hostMaskingCharacter hides the real host behind the text before it.
const hostMaskingCharacter = "@"

// trustKeywords are words phishing pages use to look official.
// Order is kept when they are listed in a rationale.
var trustKeywords = []string{"secure", "verify", "login", "auth", "ssl", "safe", "bank", "account"}

// riskyTLDs are extensions with a high correlation to phishing.
var riskyTLDs = []string{".xyz", ".top", ".zip", ".click", ".monster"}

// Layer is one scoring pass. Layers run in a fixed order and each one may
// add weight, a threat tag and a forensic entry.
//
// Design decision: We use an interface with a Name() rather than bare
// functions so the penalty breakdown can say which layer added each weight.
type Layer interface {
	// Name returns the layer's name for the penalty breakdown and logs.
	Name() string

	// Apply scores the target and records what fired in the tally.
	Apply(target Target, features Features, t *tally)
}

// tally accumulates the output of the layers for one analysis.
type tally struct {
	layer     string
	score     int
	threats   []model.ThreatTag
	penalties []model.Penalty
	report    *model.Report
}

// add records a fired rule's weight.
func (t *tally) add(rule string, weight int) {
	t.score += weight
	t.penalties = append(t.penalties, model.Penalty{
		Layer:  t.layer,
		Rule:   rule,
		Weight: weight,
	})
}

// flag records a threat tag and its forensic entry.
func (t *tally) flag(tag model.ThreatTag, entry model.ForensicEntry) {
	t.threats = append(t.threats, tag)
	t.report.AddEntry(entry)
}

// defaultLayers is the evaluation order of the scoring layers.
var defaultLayers = []Layer{
	securityLayer{},
	entropyLayer{},
	brandLayer{},
	maskingLayer{},
	tldReputationLayer{},
}

// securityLayer penalizes missing HTTPS, and trust keywords on an
// unencrypted URL.
type securityLayer struct{}

func (securityLayer) Name() string { return "security" }

func (securityLayer) Apply(target Target, features Features, t *tally) {
	if features.HasHTTPS {
		return
	}
	t.add("no-https", weightNoHTTPS)

	found := foundKeywords(target.Normalized)
	if len(found) == 0 {
		return
	}
	t.add("trust-keywords", weightTrustKeywords)
	t.flag(model.ThreatSocialEngineering, model.ForensicEntry{
		Type:        model.EntryDeception,
		Observation: "False Security Context",
		Rationale: fmt.Sprintf("URL uses trust keywords (%s) while lacking encryption.",
			strings.Join(found, ", ")),
	})
}

// foundKeywords returns the trust keywords contained in s, in table order.
func foundKeywords(s string) []string {
	var found []string
	for _, k := range trustKeywords {
		if strings.Contains(s, k) {
			found = append(found, k)
		}
	}
	return found
}

// entropyLayer penalizes random-looking authorities.
type entropyLayer struct{}

func (entropyLayer) Name() string { return "entropy" }

func (entropyLayer) Apply(target Target, _ Features, t *tally) {
	if Entropy(target.Authority) <= highEntropyThreshold {
		return
	}
	t.add("high-entropy", weightHighEntropy)
	t.flag(model.ThreatAlgorithmicGeneration, model.ForensicEntry{
		Type:        model.EntryStructure,
		Observation: "High Entropy",
		Rationale:   "Domain character distribution suggests bot-generated randomness.",
	})
}

// brandLayer penalizes a brand pattern found outside the brand's own domain.
// Only the first brand whose pattern matches is considered.
type brandLayer struct{}

func (brandLayer) Name() string { return "brand" }

func (brandLayer) Apply(target Target, _ Features, t *tally) {
	brand, ok := detectBrand(target.Authority)
	if !ok || brand.isOfficial(target.Authority) {
		return
	}
	t.add("brand-mimicry:"+brand.name, weightBrandMimicry)
	t.flag(model.ThreatBrandImpersonation, model.ForensicEntry{
		Type:        model.EntryIdentity,
		Observation: "Brand Mimicry",
		Rationale:   fmt.Sprintf("Structural patterns for '%s' detected in unauthorized segment.", brand.name),
	})
}

// maskingLayer penalizes '@' anywhere in the URL.
type maskingLayer struct{}

func (maskingLayer) Name() string { return "masking" }

func (maskingLayer) Apply(target Target, _ Features, t *tally) {
	if strings.Count(target.Normalized, hostMaskingCharacter) == 0 {
		return
	}
	t.add("at-symbol", weightHostMasking)
	t.flag(model.ThreatHostMasking, model.ForensicEntry{
		Type:        model.EntryStructure,
		Observation: "Host Masking (@)",
		Rationale:   "The '@' symbol is used to hide the actual destination host.",
	})
}

// tldReputationLayer penalizes authorities ending in a risky extension.
type tldReputationLayer struct{}

func (tldReputationLayer) Name() string { return "tld-reputation" }

func (tldReputationLayer) Apply(target Target, _ Features, t *tally) {
	if !hasRiskyTLD(target.Authority) {
		return
	}
	t.add("risky-tld", weightRiskyTLD)
	t.flag(model.ThreatLowReputationTLD, model.ForensicEntry{
		Type:        model.EntryReputation,
		Observation: "Risky TLD",
		Rationale:   "Domain uses an extension with high correlation to phishing.",
	})
}

// hasRiskyTLD reports whether authority ends with a risky extension.
func hasRiskyTLD(authority string) bool {
	for _, tld := range riskyTLDs {
		if strings.HasSuffix(authority, tld) {
			return true
		}
	}
	return false
}

// LayerNames returns the names of the scoring layers in evaluation order.
func LayerNames() []string {
	names := make([]string, len(defaultLayers))
	for i, l := range defaultLayers {
		names[i] = l.Name()
	}
	return names
}
