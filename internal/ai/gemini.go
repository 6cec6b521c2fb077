package ai

import (
	"context"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/errors"
	"google.golang.org/genai"
	"log/slog"
)

// GeminiEngine calls the Gemini API with Google Search grounding.
type GeminiEngine struct {
	client *genai.Client
	model  string
}

// NewGeminiEngine creates a Gemini API client for model.
func NewGeminiEngine(ctx context.Context, apiKey, model string) (*GeminiEngine, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	return &GeminiEngine{client: client, model: model}, nil
}

// Generate implements [analysis.Engine].
func (e *GeminiEngine) Generate(ctx context.Context, req analysis.Request) (analysis.Response, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.model, geminiContents(req), geminiConfig(req))
	if err != nil {
		return analysis.Response{}, errors.Wrap(err, "generate content", slog.String("model", e.model))
	}
	// An empty answer is still an answer. The parser fills in defaults.
	return analysis.Response{Text: resp.Text(), Citations: groundingCitations(resp)}, nil
}

func geminiContents(req analysis.Request) []*genai.Content {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.IsImage() {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MediaType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func geminiConfig(req analysis.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{ //nolint:exhaustruct // this is better for readability
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.SearchGrounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

// groundingCitations collects the web grounding chunks of the first candidate.
func groundingCitations(resp *genai.GenerateContentResponse) []analysis.Citation {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var citations []analysis.Citation
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		citations = append(citations, analysis.Citation{URL: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return citations
}
