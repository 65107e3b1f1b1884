package analyzer

import (
	"testing"

	"github.com/nao1215/phishscan/internal/model"
)

// TestOpinion tests the opinion tiers and their boundaries.
func TestOpinion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		risk     int
		threats  []model.ThreatTag
		expected string
	}{
		{
			name:     "zero risk is clean",
			risk:     0,
			expected: cleanOpinion,
		},
		{
			name:     "thirty is still clean",
			risk:     30,
			threats:  []model.ThreatTag{model.ThreatLowReputationTLD},
			expected: cleanOpinion,
		},
		{
			name:     "above thirty names the first threat",
			risk:     31,
			threats:  []model.ThreatTag{model.ThreatBrandImpersonation, model.ThreatHostMasking},
			expected: "WARNING: Audit identified unusual patterns including Brand Impersonation. Proceed with caution.",
		},
		{
			name:     "warning without threats uses the fallback",
			risk:     50,
			expected: "WARNING: Audit identified unusual patterns including unverified protocols. Proceed with caution.",
		},
		{
			name:     "seventy is still a warning",
			risk:     70,
			threats:  []model.ThreatTag{model.ThreatBrandImpersonation},
			expected: "WARNING: Audit identified unusual patterns including Brand Impersonation. Proceed with caution.",
		},
		{
			name: "above seventy lists each threat once in detection order",
			risk: 100,
			threats: []model.ThreatTag{
				model.ThreatHostMasking,
				model.ThreatLowReputationTLD,
				model.ThreatHostMasking,
			},
			expected: "CRITICAL: This URL displays heavy signs of Host Masking, Low-Reputation TLD. The structure is intentionally deceptive.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Opinion(tc.risk, tc.threats); got != tc.expected {
				t.Errorf("Opinion(%d) = %q, expected %q", tc.risk, got, tc.expected)
			}
		})
	}
}
