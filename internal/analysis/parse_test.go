package analysis_test

import (
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/myrjola/veritruth/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParse(t *testing.T) {
	answer := testhelpers.Answer{
		Verdict:     "Fake",
		Confidence:  "92",
		Language:    "English",
		Explanation: "No outlet reported the event.",
		Claims:      []string{"liquid water cities", "NASA announcement"},
		Action:      "Do not share.",
		CrossCheck:  "NASA press releases contain no such finding.",
	}

	got := analysis.Parse(answer.String())

	require.Equal(t, models.AnalysisResult{
		Verdict:           models.VerdictFake,
		Confidence:        92,
		DetectedLanguage:  "English",
		Explanation:       "No outlet reported the event.",
		HighlightedClaims: []string{"liquid water cities", "NASA announcement"},
		SuggestedAction:   "Do not share.",
		LogicalCrossCheck: "NASA press releases contain no such finding.",
		Sources:           []models.Source{},
	}, got)
}

func TestParse_noTags(t *testing.T) {
	inputs := []string{
		"",
		"I could not verify this content.",
		"VERDICT: Real\nCONFIDENCE: 99",
		"[[[]]]",
	}
	for _, raw := range inputs {
		got := analysis.Parse(raw)
		require.Equal(t, models.AnalysisResult{
			Verdict:           models.VerdictSuspicious,
			Confidence:        analysis.DefaultConfidence,
			HighlightedClaims: []string{},
			Sources:           []models.Source{},
		}, got, "input %q", raw)
	}
}

func TestParse_tagExtraction(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantExplanation string
		wantAction      string
	}{
		{
			name:            "stops at newline",
			raw:             "[EXPLANATION] first line\nsecond line",
			wantExplanation: "first line",
		},
		{
			name:            "stops at next tag on the same line",
			raw:             "[EXPLANATION] inline [ACTION] share carefully",
			wantExplanation: "inline",
			wantAction:      "share carefully",
		},
		{
			name:            "case insensitive",
			raw:             "[explanation]   lower case tag  ",
			wantExplanation: "lower case tag",
		},
		{
			name:            "value on the next line",
			raw:             "[EXPLANATION]\nshown below",
			wantExplanation: "shown below",
		},
		{
			name:            "first occurrence wins",
			raw:             "[ACTION] first\n[ACTION] second",
			wantExplanation: "",
			wantAction:      "first",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analysis.Parse(tt.raw)
			require.Equal(t, tt.wantExplanation, got.Explanation)
			require.Equal(t, tt.wantAction, got.SuggestedAction)
		})
	}
}

func TestNormalizeVerdict(t *testing.T) {
	tests := []struct {
		label string
		want  models.Verdict
	}{
		{label: "Real", want: models.VerdictReal},
		{label: "REAL - confirmed by two outlets", want: models.VerdictReal},
		{label: "fake", want: models.VerdictFake},
		{label: "Likely FAKE", want: models.VerdictFake},
		{label: "Mixed Context", want: models.VerdictMixed},
		{label: "mixed", want: models.VerdictMixed},
		{label: "Suspicious", want: models.VerdictSuspicious},
		{label: "", want: models.VerdictSuspicious},
		{label: "unverifiable", want: models.VerdictSuspicious},
		// Order matters: "real" is checked before "fake" and "mixed".
		{label: "fake but partly real", want: models.VerdictReal},
		{label: "mixed, mostly fake", want: models.VerdictFake},
		// Substring semantics: "unrealistic" contains "real".
		{label: "unrealistic", want: models.VerdictReal},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			require.Equal(t, tt.want, analysis.NormalizeVerdict(tt.label))
		})
	}
}

func TestParse_confidence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "integer", raw: "[CONFIDENCE] 87", want: 87},
		{name: "percent", raw: "[CONFIDENCE] 87%", want: 87},
		{name: "fraction", raw: "[CONFIDENCE] 85/100", want: 85},
		{name: "zero", raw: "[CONFIDENCE] 0", want: 0},
		{name: "not clamped", raw: "[CONFIDENCE] 150", want: 150},
		{name: "not a number", raw: "[CONFIDENCE] N/A", want: analysis.DefaultConfidence},
		{name: "empty", raw: "[CONFIDENCE]", want: analysis.DefaultConfidence},
		{name: "missing", raw: "[VERDICT] Real", want: analysis.DefaultConfidence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, analysis.Parse(tt.raw).Confidence)
		})
	}
}

func TestParse_claims(t *testing.T) {
	got := analysis.Parse("[CLAIMS] claim A, claim B,, claim C")
	require.Equal(t, []string{"claim A", "claim B", "claim C"}, got.HighlightedClaims)

	got = analysis.Parse("[CLAIMS] , ,")
	require.Empty(t, got.HighlightedClaims)
	require.NotNil(t, got.HighlightedClaims)
}

func TestParse_isPure(t *testing.T) {
	raw := "[VERDICT] Mixed Context\n[CONFIDENCE] 64\n[CLAIMS] a, b"
	require.Equal(t, analysis.Parse(raw), analysis.Parse(raw))
}
