package models

import "time"

// Verdict is the assessed authenticity of submitted content.
type Verdict string

const (
	VerdictReal       Verdict = "Real"
	VerdictFake       Verdict = "Fake"
	VerdictSuspicious Verdict = "Suspicious"
	VerdictMixed      Verdict = "Mixed Context"
)

// Tone is a short lowercase identifier for the verdict used for styling.
func (v Verdict) Tone() string {
	switch v {
	case VerdictReal:
		return "real"
	case VerdictFake:
		return "fake"
	case VerdictMixed:
		return "mixed"
	case VerdictSuspicious:
		return "suspicious"
	default:
		return "suspicious"
	}
}

// Source is a cited web page returned alongside an analysis result. Two sources are the same if their URLs are.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AnalysisResult is the structured verdict parsed from the analysis engine's answer.
type AnalysisResult struct {
	Verdict Verdict `json:"verdict"`
	// Confidence is intended to be in the range 0-100 but the engine's answer is not clamped.
	Confidence        int      `json:"confidence"`
	DetectedLanguage  string   `json:"detectedLanguage"`
	Explanation       string   `json:"explanation"`
	HighlightedClaims []string `json:"highlightedClaims"`
	SuggestedAction   string   `json:"suggestedAction"`
	LogicalCrossCheck string   `json:"logicalCrossCheck"`
	Sources           []Source `json:"sources"`
}

// HistoryItem is an AnalysisResult recorded in the session history.
type HistoryItem struct {
	AnalysisResult

	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	// InputText describes the input that produced the result, see history.Describe.
	InputText string `json:"inputText"`
}
