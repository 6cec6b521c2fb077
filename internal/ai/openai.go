package ai

import (
	"context"
	"encoding/base64"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/sashabaranov/go-openai"
	"log/slog"
)

// MaxTokens bounds the length of the answer.
const MaxTokens = 4096

// OpenAIEngine calls the OpenAI chat completion API. The API has no search grounding so answers carry no
// citations.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine creates an OpenAI client for model. An empty baseURL uses the public API.
func NewOpenAIEngine(apiKey, model, baseURL string) *OpenAIEngine {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEngine{client: openai.NewClientWithConfig(cfg), model: model}
}

// Generate implements [analysis.Engine].
func (e *OpenAIEngine) Generate(ctx context.Context, req analysis.Request) (analysis.Response, error) {
	completion, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:       e.model,
			MaxTokens:   MaxTokens,
			Temperature: req.Temperature,
			Messages:    openAIMessages(req),
		},
	)
	if err != nil {
		return analysis.Response{}, errors.Wrap(err, "create chat completion", slog.String("model", e.model))
	}
	var text string
	if len(completion.Choices) > 0 {
		text = completion.Choices[0].Message.Content
	}
	return analysis.Response{Text: text, Citations: nil}, nil
}

func openAIMessages(req analysis.Request) []openai.ChatCompletionMessage {
	parts := make([]openai.ChatMessagePart, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.IsImage() {
			parts = append(parts, openai.ChatMessagePart{ //nolint:exhaustruct // text is unused
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    "data:" + p.MediaType + ";base64," + base64.StdEncoding.EncodeToString(p.Data),
					Detail: openai.ImageURLDetailAuto,
				},
			})
			continue
		}
		parts = append(parts, openai.ChatMessagePart{ //nolint:exhaustruct // image is unused
			Type: openai.ChatMessagePartTypeText,
			Text: p.Text,
		})
	}
	var messages []openai.ChatCompletionMessage
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{ //nolint:exhaustruct // plain text message
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}
	return append(messages, openai.ChatCompletionMessage{ //nolint:exhaustruct // multi-part message
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	})
}
