package verdict

import (
	"encoding/json"
	"strconv"
	"strings"

	"veritas/pkg/formatting"
)

const unparseableCaveat = "analysis engine returned output that was not machine-parseable; showing raw text"

// The upstream prompts have drifted over time, so reports arrive with
// several spellings of the same field. First alias present wins.
var (
	signalAliases = []string{"signals", "key_signals", "key_points", "reasoning"}
	caveatAliases = []string{"caveats", "cautions"}
	sourceAliases = []string{"sources", "suggested_sources", "supporting_sources"}
)

// Normalize coerces raw model output into a fully-populated Report. It is
// total: any input, including empty or non-JSON text, produces a valid
// report rather than an error. The parsed (or wrapped) upstream payload is
// retained verbatim under Raw for diagnostics.
func Normalize(raw string, kind Kind) *Report {
	parsed, err := formatting.Parse[map[string]any](raw)
	if err != nil || parsed == nil {
		return unparsed(raw)
	}

	report := &Report{
		Verdict:    verdictToken(parsed, kind),
		Confidence: confidence(parsed["confidence"]),
		Summary:    stringField(parsed["summary"]),
		Signals:    stringList(parsed, signalAliases),
		Caveats:    stringList(parsed, caveatAliases),
		Sources:    stringList(parsed, sourceAliases),
	}

	if data, err := json.Marshal(parsed); err == nil {
		report.Raw = data
	}

	return report
}

// ProposedQuery extracts the model's suggested follow-up search query from a
// retained raw payload. Returns "" when absent or unusable.
func ProposedQuery(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var proposal struct {
		SearchQuery string `json:"search_query"`
	}

	if err := json.Unmarshal(raw, &proposal); err != nil {
		return ""
	}

	return strings.TrimSpace(proposal.SearchQuery)
}

func unparsed(raw string) *Report {
	report := &Report{
		Verdict:    VerdictUnclear,
		Confidence: 0,
		Summary:    raw,
		Signals:    []string{},
		Caveats:    []string{unparseableCaveat},
		Sources:    []string{},
	}

	if data, err := json.Marshal(map[string]string{"raw_text": raw}); err == nil {
		report.Raw = data
	}

	return report
}

func verdictToken(parsed map[string]any, kind Kind) string {
	token, ok := parsed["verdict"].(string)
	if !ok {
		return VerdictUnclear
	}

	token = strings.ToLower(strings.TrimSpace(token))
	if !Allowed(kind, token) {
		return VerdictUnclear
	}

	return token
}

func confidence(value any) float64 {
	var c float64

	switch v := value.(type) {
	case float64:
		c = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		c = parsed
	default:
		return 0
	}

	return min(max(c, 0), 1)
}

func stringField(value any) string {
	s, _ := value.(string)
	return s
}

func stringList(parsed map[string]any, aliases []string) []string {
	for _, key := range aliases {
		items, ok := parsed[key].([]any)
		if !ok {
			continue
		}

		list := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}

		return list
	}

	return []string{}
}
