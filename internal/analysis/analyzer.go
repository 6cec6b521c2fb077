package analysis

import (
	"context"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/models"
	"log/slog"
	"strings"
	"time"
)

var (
	// ErrEmptyInput signals that there was neither text nor an image to analyze. Callers treat it as a no-op.
	ErrEmptyInput = errors.NewSentinel("nothing to analyze")
	// ErrEngineUnreachable is the only error surfaced for engine failures. The cause is logged instead.
	ErrEngineUnreachable = errors.NewSentinel(
		"Analysis engine failed to connect. Please check your network or try again later.")
)

// Response is the engine's raw answer.
type Response struct {
	Text      string
	Citations []Citation
}

// Engine performs the actual analysis by calling the external generative-language service.
type Engine interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, req Request) (Response, error)

// Generate calls f.
func (f EngineFunc) Generate(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Observer is notified about the outcome of each engine call.
type Observer interface {
	ObserveAnalysis(verdict models.Verdict, elapsed time.Duration)
	ObserveFailure(elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveAnalysis(models.Verdict, time.Duration) {}
func (noopObserver) ObserveFailure(time.Duration)                  {}

// Analyzer builds the request, invokes the engine once and parses its answer.
type Analyzer struct {
	engine   Engine
	logger   *slog.Logger
	observer Observer
}

// NewAnalyzer creates an Analyzer. observer may be nil.
func NewAnalyzer(engine Engine, logger *slog.Logger, observer Observer) *Analyzer {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Analyzer{
		engine:   engine,
		logger:   logger.With(slog.String("source", "Analyzer")),
		observer: observer,
	}
}

// Analyze verifies text and/or image with the engine.
//
// It returns ErrEmptyInput without calling the engine when text is blank and image is nil. Every engine
// failure is logged and reported as ErrEngineUnreachable. The engine call is not retried and no timeout is
// added beyond what ctx carries.
func (a *Analyzer) Analyze(ctx context.Context, text string, image *Image) (models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" && image == nil {
		return models.AnalysisResult{}, ErrEmptyInput
	}

	req := BuildRequest(text, image)
	start := time.Now()
	resp, err := a.engine.Generate(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		a.observer.ObserveFailure(elapsed)
		err = errors.Wrap(err, "generate analysis",
			slog.Bool("has_image", image != nil),
			slog.Duration("elapsed", elapsed),
		)
		a.logger.LogAttrs(ctx, slog.LevelError, "analysis engine failed", errors.SlogError(err))
		return models.AnalysisResult{}, ErrEngineUnreachable
	}

	result := Parse(resp.Text)
	result.Sources = DedupeSources(resp.Citations)
	a.observer.ObserveAnalysis(result.Verdict, elapsed)
	a.logger.LogAttrs(ctx, slog.LevelDebug, "analysis finished",
		slog.String("verdict", string(result.Verdict)),
		slog.Int("confidence", result.Confidence),
		slog.Int("sources", len(result.Sources)),
		slog.Duration("elapsed", elapsed),
	)
	return result, nil
}
