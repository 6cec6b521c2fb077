package analysis_test

import (
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDedupeSources(t *testing.T) {
	tests := []struct {
		name      string
		citations []analysis.Citation
		want      []models.Source
	}{
		{
			name:      "no citations",
			citations: nil,
			want:      []models.Source{},
		},
		{
			name: "first occurrence kept, order preserved",
			citations: []analysis.Citation{
				{URL: "a", Title: "A"},
				{URL: "a", Title: "A2"},
				{URL: "b", Title: "B"},
			},
			want: []models.Source{{URL: "a", Title: "A"}, {URL: "b", Title: "B"}},
		},
		{
			name: "incomplete citations dropped",
			citations: []analysis.Citation{
				{URL: "", Title: "No URL"},
				{URL: "https://example.com", Title: ""},
				{URL: "https://example.org", Title: "Example"},
			},
			want: []models.Source{{URL: "https://example.org", Title: "Example"}},
		},
		{
			name: "incomplete citation does not shadow a later complete one",
			citations: []analysis.Citation{
				{URL: "https://example.com", Title: ""},
				{URL: "https://example.com", Title: "Example"},
			},
			want: []models.Source{{URL: "https://example.com", Title: "Example"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, analysis.DedupeSources(tt.citations))
		})
	}
}
