package analysis

import (
	"encoding/base64"
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
	"strings"
)

// SystemInstruction tells the engine how to verify content and which tags to answer with.
const SystemInstruction = `
You are an expert AI Fact-Checker and Misinformation Analyst.
Your task is to analyze text (provided directly or as an image) and visual content from news, social media, or messages to determine its authenticity.

You MUST use Google Search to verify claims against the latest news and real-world events.

Return your analysis in a structured format using these specific tags:
[VERDICT] Real | Fake | Suspicious | Mixed Context
[CONFIDENCE] (Number 0-100)
[LANGUAGE] (Detected language name)
[EXPLANATION] (Detailed reasoning)
[CLAIMS] (Comma separated list of flagged claims)
[ACTION] (Practical advice for the user)
[CROSSCHECK] (Summary of findings from search grounding)

Evaluation criteria:
1. Logical consistency and internal contradictions.
2. Cross-referencing with verified current events via Google Search.
3. Identifying AI-generated imagery markers or deepfake patterns.
4. Detecting emotional manipulation or clickbait rhetoric.
`

// DefaultPrompt replaces the user text when only an image is analyzed.
const DefaultPrompt = "Analyze this content for misinformation based on the latest news and visual recognition."

// ImageMediaType is the media type every attached image is declared with.
const ImageMediaType = "image/jpeg"

// Temperature biases the engine towards deterministic, literal answers.
const Temperature float32 = 0.2

var ErrInvalidImage = errors.NewSentinel("invalid image payload")

// Image is binary image content with the media type it was declared with.
type Image struct {
	Data      []byte
	MediaType string
}

// DecodeImage decodes an image sent by the browser. The payload is either a data URI such as
// "data:image/png;base64,iVBOR..." or bare base64. The data URI prefix is stripped because the engines expect
// the raw image bytes.
func DecodeImage(payload string) (*Image, error) {
	payload = strings.TrimSpace(payload)
	mediaType := ImageMediaType
	if strings.HasPrefix(payload, "data:") {
		header, data, found := strings.Cut(payload, ",")
		if !found {
			return nil, errors.Wrap(ErrInvalidImage, "data URI without data")
		}
		declared := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		if declared != "" {
			mediaType = declared
		}
		payload = data
	}
	if payload == "" {
		return nil, errors.Wrap(ErrInvalidImage, "empty image")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidImage, "decode base64", slog.String("cause", err.Error()))
	}
	return &Image{Data: data, MediaType: mediaType}, nil
}

// DataURI encodes the image for embedding in a page or an OpenAI image part.
func (i *Image) DataURI() string {
	return "data:" + i.MediaType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Part is one piece of user content, either text or an image.
type Part struct {
	Text      string
	Data      []byte
	MediaType string
}

// IsImage reports whether the part carries image data.
func (p Part) IsImage() bool {
	return len(p.Data) > 0
}

// Request is everything an Engine needs for one analysis.
type Request struct {
	SystemInstruction string
	Parts             []Part
	Temperature       float32
	// SearchGrounding enables the engine's web search augmentation.
	SearchGrounding bool
}

// BuildRequest assembles the engine request from the user's text and optional image.
func BuildRequest(text string, image *Image) Request {
	prompt := text
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}
	parts := []Part{{Text: prompt}}
	if image != nil && len(image.Data) > 0 {
		parts = append(parts, Part{Data: image.Data, MediaType: ImageMediaType})
	}
	return Request{
		SystemInstruction: SystemInstruction,
		Parts:             parts,
		Temperature:       Temperature,
		SearchGrounding:   true,
	}
}
