package ai

import (
	"context"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/myrjola/veritruth/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiContents(t *testing.T) {
	req := analysis.BuildRequest("", &analysis.Image{Data: []byte{0xff, 0xd8}, MediaType: "image/png"})

	contents := geminiContents(req)

	require.Len(t, contents, 1)
	require.Equal(t, "user", contents[0].Role)
	parts := contents[0].Parts
	require.Len(t, parts, 2)
	require.Equal(t, analysis.DefaultPrompt, parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	require.Equal(t, []byte{0xff, 0xd8}, parts[1].InlineData.Data)
	require.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(analysis.BuildRequest("claim", nil))

	require.NotNil(t, cfg.Temperature)
	require.InDelta(t, 0.2, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	require.Equal(t, analysis.SystemInstruction, cfg.SystemInstruction.Parts[0].Text)
	require.Len(t, cfg.Tools, 1)
	require.NotNil(t, cfg.Tools[0].GoogleSearch)

	cfg = geminiConfig(analysis.Request{Parts: []analysis.Part{{Text: "x"}}})
	require.Empty(t, cfg.Tools)
	require.Nil(t, cfg.SystemInstruction)
}

func TestGroundingCitations(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A"}},
					{},
					{Web: &genai.GroundingChunkWeb{URI: "https://b.example"}},
				},
			},
		}},
	}

	require.Equal(t, []analysis.Citation{
		{URL: "https://a.example", Title: "A"},
		{URL: "https://b.example", Title: ""},
	}, groundingCitations(resp))

	require.Empty(t, groundingCitations(&genai.GenerateContentResponse{}))
	require.Empty(t, groundingCitations(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
	require.Empty(t, groundingCitations(nil))
}

// newTestGeminiEngine points a Gemini engine at a test server running handler.
func newTestGeminiEngine(t *testing.T, handler http.HandlerFunc) *GeminiEngine {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{ //nolint:exhaustruct // test client
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL + "/"}, //nolint:exhaustruct // test client
	})
	require.NoError(t, err)
	return &GeminiEngine{client: client, model: "gemini-test"}
}

func answerWith(t *testing.T, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestGeminiEngine_Generate(t *testing.T) {
	engine := newTestGeminiEngine(t, answerWith(t, `{"candidates":[{"content":{"role":"model",`+
		`"parts":[{"text":"[VERDICT] Fake"}]},`+
		`"groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://a.example","title":"A"}}]}}]}`))

	resp, err := engine.Generate(context.Background(), analysis.BuildRequest("claim", nil))
	require.NoError(t, err)
	require.Equal(t, "[VERDICT] Fake", resp.Text)
	require.Equal(t, []analysis.Citation{{URL: "https://a.example", Title: "A"}}, resp.Citations)
}

func TestGeminiEngine_Generate_emptyAnswer(t *testing.T) {
	engine := newTestGeminiEngine(t, answerWith(t, `{"candidates":[{"content":{"parts":[]},`+
		`"groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://a.example","title":"A"}}]}}]}`))
	analyzer := analysis.NewAnalyzer(engine, testhelpers.NewTestLogger(t), nil)

	result, err := analyzer.Analyze(context.Background(), "claim", nil)
	require.NoError(t, err)
	require.Equal(t, models.VerdictSuspicious, result.Verdict)
	require.Equal(t, 50, result.Confidence)
	require.Empty(t, result.Explanation)
	require.Equal(t, []models.Source{{Title: "A", URL: "https://a.example"}}, result.Sources)
}

func TestGeminiEngine_Generate_apiError(t *testing.T) {
	engine := newTestGeminiEngine(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := engine.Generate(context.Background(), analysis.BuildRequest("claim", nil))
	require.Error(t, err)
}
