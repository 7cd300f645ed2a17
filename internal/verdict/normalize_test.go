package verdict_test

import (
	"encoding/json"
	"strings"
	"testing"

	"veritas/internal/verdict"
)

func TestNormalizeWellFormed(t *testing.T) {
	raw := `{
		"verdict": "likely_false",
		"confidence": 0.82,
		"summary": "Multiple reputable sources contradict the claim.",
		"signals": ["contradicted by NASA", "no primary evidence"],
		"caveats": ["claim is old and widely memed"],
		"sources": ["https://example.com/debunk"]
	}`

	report := verdict.Normalize(raw, verdict.KindClaim)

	if report.Verdict != "likely_false" {
		t.Errorf("verdict: got %q", report.Verdict)
	}
	if report.Confidence != 0.82 {
		t.Errorf("confidence: got %v", report.Confidence)
	}
	if report.Summary != "Multiple reputable sources contradict the claim." {
		t.Errorf("summary: got %q", report.Summary)
	}
	if len(report.Signals) != 2 || report.Signals[0] != "contradicted by NASA" {
		t.Errorf("signals: got %v", report.Signals)
	}
	if len(report.Caveats) != 1 {
		t.Errorf("caveats: got %v", report.Caveats)
	}
	if len(report.Sources) != 1 || report.Sources[0] != "https://example.com/debunk" {
		t.Errorf("sources: got %v", report.Sources)
	}
	if len(report.Raw) == 0 {
		t.Error("raw payload not retained")
	}
}

func TestNormalizeFencedJSON(t *testing.T) {
	raw := "Here is my analysis:\n```json\n{\"verdict\": \"true\", \"confidence\": 0.9}\n```"

	report := verdict.Normalize(raw, verdict.KindClaim)

	if report.Verdict != "true" {
		t.Errorf("verdict: got %q, want true", report.Verdict)
	}
	if report.Confidence != 0.9 {
		t.Errorf("confidence: got %v", report.Confidence)
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	raw := "I cannot produce JSON for this request."

	report := verdict.Normalize(raw, verdict.KindClaim)

	if report.Verdict != verdict.VerdictUnclear {
		t.Errorf("verdict: got %q, want unclear", report.Verdict)
	}
	if report.Confidence != 0 {
		t.Errorf("confidence: got %v, want 0", report.Confidence)
	}
	if report.Summary != raw {
		t.Errorf("summary: got %q, want raw text verbatim", report.Summary)
	}
	if len(report.Caveats) == 0 {
		t.Error("caveats: want a non-empty explanation")
	}

	var wrapped map[string]string
	if err := json.Unmarshal(report.Raw, &wrapped); err != nil {
		t.Fatalf("raw payload not valid JSON: %v", err)
	}
	if wrapped["raw_text"] != raw {
		t.Errorf("raw_text: got %q", wrapped["raw_text"])
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"null",
		"[1, 2, 3]",
		`"just a quoted string"`,
		"{{{{",
		"```json\nnot even close\n```",
		strings.Repeat("x", 65536),
	}

	for _, raw := range inputs {
		for _, kind := range []verdict.Kind{verdict.KindClaim, verdict.KindMedia} {
			report := verdict.Normalize(raw, kind)

			if report == nil {
				t.Fatalf("Normalize(%.20q, %s) returned nil", raw, kind)
			}
			if !verdict.Allowed(kind, report.Verdict) {
				t.Errorf("Normalize(%.20q, %s): verdict %q outside vocabulary", raw, kind, report.Verdict)
			}
			if report.Confidence < 0 || report.Confidence > 1 {
				t.Errorf("Normalize(%.20q, %s): confidence %v out of range", raw, kind, report.Confidence)
			}
			if report.Signals == nil || report.Caveats == nil || report.Sources == nil {
				t.Errorf("Normalize(%.20q, %s): nil sequence field", raw, kind)
			}
		}
	}
}

func TestNormalizeFieldAliases(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSignals []string
		wantCaveats []string
		wantSources []string
	}{
		{
			name:        "media style",
			raw:         `{"verdict":"real","key_signals":["consistent lighting"],"cautions":["compression hides detail"]}`,
			wantSignals: []string{"consistent lighting"},
			wantCaveats: []string{"compression hides detail"},
			wantSources: []string{},
		},
		{
			name:        "text style",
			raw:         `{"verdict":"true","key_points":["confirmed by agency"],"suggested_sources":["https://a.example"]}`,
			wantSignals: []string{"confirmed by agency"},
			wantCaveats: []string{},
			wantSources: []string{"https://a.example"},
		},
		{
			name:        "canonical beats alias",
			raw:         `{"signals":["canonical"],"key_signals":["alias"]}`,
			wantSignals: []string{"canonical"},
			wantCaveats: []string{},
			wantSources: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := verdict.Normalize(tt.raw, verdict.KindMedia)

			assertList(t, "signals", report.Signals, tt.wantSignals)
			assertList(t, "caveats", report.Caveats, tt.wantCaveats)
			assertList(t, "sources", report.Sources, tt.wantSources)
		})
	}
}

func assertList(t *testing.T, field string, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("%s: got %v, want %v", field, got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: got %q, want %q", field, i, got[i], want[i])
		}
	}
}

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"in range", `{"confidence": 0.4}`, 0.4},
		{"clamped high", `{"confidence": 1.7}`, 1},
		{"clamped low", `{"confidence": -0.2}`, 0},
		{"numeric string", `{"confidence": "0.65"}`, 0.65},
		{"garbage string", `{"confidence": "very sure"}`, 0},
		{"absent", `{"verdict": "unclear"}`, 0},
		{"wrong type", `{"confidence": [1]}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := verdict.Normalize(tt.raw, verdict.KindClaim)
			if report.Confidence != tt.want {
				t.Errorf("confidence: got %v, want %v", report.Confidence, tt.want)
			}
		})
	}
}

func TestNormalizeVerdictVocabulary(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind verdict.Kind
		want string
	}{
		{"claim token", `{"verdict":"likely_true"}`, verdict.KindClaim, "likely_true"},
		{"media token", `{"verdict":"deepfake"}`, verdict.KindMedia, "deepfake"},
		{"case folded", `{"verdict":"Likely_True"}`, verdict.KindClaim, "likely_true"},
		{"media token on claim kind", `{"verdict":"real"}`, verdict.KindClaim, "unclear"},
		{"claim token on media kind", `{"verdict":"true"}`, verdict.KindMedia, "unclear"},
		{"invented token", `{"verdict":"probably"}`, verdict.KindClaim, "unclear"},
		{"missing", `{}`, verdict.KindClaim, "unclear"},
		{"wrong type", `{"verdict": 3}`, verdict.KindClaim, "unclear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := verdict.Normalize(tt.raw, tt.kind)
			if report.Verdict != tt.want {
				t.Errorf("verdict: got %q, want %q", report.Verdict, tt.want)
			}
		})
	}
}

func TestProposedQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"present", `{"verdict":"real","search_query":"eiffel tower photo 2024"}`, "eiffel tower photo 2024"},
		{"whitespace trimmed", `{"search_query":"  moon landing  "}`, "moon landing"},
		{"absent", `{"verdict":"real"}`, ""},
		{"empty raw", ``, ""},
		{"invalid raw", `not json`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verdict.ProposedQuery(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Errorf("ProposedQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
