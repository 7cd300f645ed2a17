// Package verdict defines the canonical analysis report and the total
// normalization that coerces arbitrary model output into it.
package verdict

import "encoding/json"

// Kind selects the verdict vocabulary for an analysis.
type Kind string

const (
	KindClaim Kind = "claim"
	KindMedia Kind = "media"
)

// VerdictUnclear is the shared fallback token. Any upstream verdict outside
// the active vocabulary collapses to it before the report reaches a caller.
const VerdictUnclear = "unclear"

var allowedVerdicts = map[Kind]map[string]bool{
	KindClaim: {
		"true":         true,
		"likely_true":  true,
		"false":        true,
		"likely_false": true,
		"mixed":        true,
		VerdictUnclear: true,
	},
	KindMedia: {
		"real":         true,
		"likely_real":  true,
		"ai_generated": true,
		"deepfake":     true,
		VerdictUnclear: true,
	},
}

// Allowed reports whether token is a valid verdict for kind.
func Allowed(kind Kind, token string) bool {
	return allowedVerdicts[kind][token]
}

// Report is the canonical outcome of one analysis. Every field carries a
// safe default so the report is always fully populated and serializable no
// matter how badly the upstream model misbehaved.
type Report struct {
	Verdict    string          `json:"verdict"`
	Confidence float64         `json:"confidence"`
	Summary    string          `json:"summary"`
	Signals    []string        `json:"signals"`
	Caveats    []string        `json:"caveats"`
	Sources    []string        `json:"sources"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}
