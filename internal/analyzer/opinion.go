package analyzer

import (
	"fmt"
	"strings"

	"github.com/nao1215/phishscan/internal/model"
)

// Opinion thresholds. They differ from the verdict thresholds in
// model.VerdictFromScore and must stay that way.
const (
	criticalAbove = 70
	warningAbove  = 30
)

const (
	cleanOpinion    = "CLEAN: URL conforms to standard architecture. No impersonation or masking signatures were identified."
	fallbackPattern = "unverified protocols"
)

// Opinion maps a clamped risk score and the threat tags (in detection order)
// to the narrative shown to the user.
func Opinion(risk int, threats []model.ThreatTag) string {
	switch {
	case risk > criticalAbove:
		unique := model.UniqueThreats(threats)
		names := make([]string, len(unique))
		for i, t := range unique {
			names[i] = string(t)
		}
		return fmt.Sprintf("CRITICAL: This URL displays heavy signs of %s. The structure is intentionally deceptive.",
			strings.Join(names, ", "))
	case risk > warningAbove:
		first := fallbackPattern
		if len(threats) > 0 {
			first = string(threats[0])
		}
		return fmt.Sprintf("WARNING: Audit identified unusual patterns including %s. Proceed with caution.", first)
	default:
		return cleanOpinion
	}
}
