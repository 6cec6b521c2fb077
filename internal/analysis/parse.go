package analysis

import (
	"github.com/myrjola/veritruth/internal/models"
	"regexp"
	"strconv"
	"strings"
)

// Tags the engine is instructed to answer with, see SystemInstruction.
const (
	TagVerdict     = "VERDICT"
	TagConfidence  = "CONFIDENCE"
	TagLanguage    = "LANGUAGE"
	TagExplanation = "EXPLANATION"
	TagClaims      = "CLAIMS"
	TagAction      = "ACTION"
	TagCrossCheck  = "CROSSCHECK"
)

// DefaultConfidence is used when the answer has no parseable CONFIDENCE tag.
const DefaultConfidence = 50

// tagPatterns match "[TAG] value" where the value extends to the next newline, the next '[' or the end.
var tagPatterns = func() map[string]*regexp.Regexp {
	tags := []string{TagVerdict, TagConfidence, TagLanguage, TagExplanation, TagClaims, TagAction, TagCrossCheck}
	patterns := make(map[string]*regexp.Regexp, len(tags))
	for _, tag := range tags {
		patterns[tag] = regexp.MustCompile(`(?i)\[` + tag + `\]\s*(.*?)(?:\n|\[|$)`)
	}
	return patterns
}()

var leadingInteger = regexp.MustCompile(`^[+-]?\d+`)

// Parse turns the engine's tagged answer into an AnalysisResult. Parse never fails: missing or malformed tags
// fall back to a Suspicious verdict, DefaultConfidence, empty strings and no claims. Sources are not part of
// the answer text and are left empty.
func Parse(raw string) models.AnalysisResult {
	return models.AnalysisResult{
		Verdict:           NormalizeVerdict(tagValue(raw, TagVerdict)),
		Confidence:        parseConfidence(tagValue(raw, TagConfidence)),
		DetectedLanguage:  tagValue(raw, TagLanguage),
		Explanation:       tagValue(raw, TagExplanation),
		HighlightedClaims: splitClaims(tagValue(raw, TagClaims)),
		SuggestedAction:   tagValue(raw, TagAction),
		LogicalCrossCheck: tagValue(raw, TagCrossCheck),
		Sources:           []models.Source{},
	}
}

func tagValue(raw string, tag string) string {
	match := tagPatterns[tag].FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// NormalizeVerdict maps a free-text verdict label to a Verdict. The checks are case-insensitive substring
// matches in the order real, fake, mixed. Anything else, including an empty label, is Suspicious.
func NormalizeVerdict(label string) models.Verdict {
	label = strings.ToLower(label)
	switch {
	case strings.Contains(label, "real"):
		return models.VerdictReal
	case strings.Contains(label, "fake"):
		return models.VerdictFake
	case strings.Contains(label, "mixed"):
		return models.VerdictMixed
	default:
		return models.VerdictSuspicious
	}
}

// parseConfidence reads the leading integer of the value so that answers like "87%" or "85/100" work.
func parseConfidence(value string) int {
	digits := leadingInteger.FindString(value)
	if digits == "" {
		return DefaultConfidence
	}
	confidence, err := strconv.Atoi(digits)
	if err != nil {
		return DefaultConfidence
	}
	return confidence
}

func splitClaims(value string) []string {
	claims := []string{}
	for _, claim := range strings.Split(value, ",") {
		if claim = strings.TrimSpace(claim); claim != "" {
			claims = append(claims, claim)
		}
	}
	return claims
}
