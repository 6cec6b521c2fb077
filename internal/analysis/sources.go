package analysis

import "github.com/myrjola/veritruth/internal/models"

// Citation is a grounding reference returned by the engine. Either field may be missing.
type Citation struct {
	URL   string
	Title string
}

// DedupeSources keeps the citations that have both a URL and a title, dropping later citations of an already
// seen URL. The order of first occurrence is preserved.
func DedupeSources(citations []Citation) []models.Source {
	sources := make([]models.Source, 0, len(citations))
	seen := make(map[string]struct{}, len(citations))
	for _, c := range citations {
		if c.URL == "" || c.Title == "" {
			continue
		}
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		sources = append(sources, models.Source{Title: c.Title, URL: c.URL})
	}
	return sources
}
