// Package workspace holds the input, camera and result state of one browser session.
package workspace

import (
	"context"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/history"
	"github.com/myrjola/veritruth/internal/models"
	"golang.org/x/sync/semaphore"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// CameraDeniedMessage is shown when the browser refuses access to the camera.
const CameraDeniedMessage = "Camera access denied. Please enable permissions to scan physical media."

var (
	ErrAnalysisInFlight = errors.NewSentinel("analysis already in progress")
	ErrUnknownExample   = errors.NewSentinel("unknown example prompt")
)

// ExamplePrompts are sample inquiries offered to first-time users.
var ExamplePrompts = []string{ //nolint:gochecknoglobals // constant list
	"Verify if NASA discovered liquid water cities on Mars in 2024.",
	"Fact-check the viral claim about a new gold-backed currency launched by BRICS.",
	"Is it true that a major volcanic eruption happened in Hawaii this morning?",
	"Check the authenticity of the latest central bank announcement about CBDC testing.",
}

// Origin tells where the attached image came from.
type Origin string

const (
	OriginNone   Origin = ""
	OriginUpload Origin = "upload"
	OriginCamera Origin = "camera"
)

// Analyzer runs one analysis. It is satisfied by *analysis.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, text string, image *analysis.Image) (models.AnalysisResult, error)
}

// State is the workspace of one browser session. All methods are safe for concurrent use.
type State struct {
	id string

	mu         sync.Mutex
	text       string
	image      *analysis.Image
	origin     Origin
	cameraOpen bool
	result     *models.AnalysisResult
	errMsg     string
	analyzing  bool
	lastUsed   time.Time

	// flight allows a single analysis at a time.
	flight *semaphore.Weighted
	ledger *history.Ledger
}

// New creates an empty workspace.
func New(id string) *State {
	return &State{
		id:       id,
		lastUsed: time.Now(),
		flight:   semaphore.NewWeighted(1),
		ledger:   history.New(history.DefaultCapacity),
	}
}

// ID identifies the workspace within its Registry.
func (s *State) ID() string {
	return s.id
}

func (s *State) update(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f()
	s.lastUsed = time.Now()
}

// SetText replaces the input text.
func (s *State) SetText(text string) {
	s.update(func() { WithText(text)(s) })
}

// InputEdit changes the input of a workspace. Pass edits to Analyze to apply them only once the analysis is
// allowed to start.
type InputEdit func(s *State)

// WithText replaces the input text.
func WithText(text string) InputEdit {
	return func(s *State) {
		s.text = text
	}
}

// WithImage attaches image like AttachImage. A nil image detaches the current one.
func WithImage(image *analysis.Image, origin Origin) InputEdit {
	return func(s *State) {
		s.attach(image, origin)
		s.cameraOpen = false
		s.errMsg = ""
	}
}

// UseExample fills the input with the example prompt at index and clears the image and the result.
func (s *State) UseExample(index int) error {
	if index < 0 || index >= len(ExamplePrompts) {
		return errors.Wrap(ErrUnknownExample, "use example", slog.Int("index", index))
	}
	s.update(func() {
		s.text = ExamplePrompts[index]
		s.attach(nil, OriginNone)
		s.result = nil
	})
	return nil
}

// OpenCamera opens the camera dialog for a fresh scan.
func (s *State) OpenCamera() {
	s.update(func() {
		s.cameraOpen = true
		s.result = nil
		s.errMsg = ""
	})
}

// CloseCamera closes the camera dialog. The page releases the device when the dialog closes.
func (s *State) CloseCamera() {
	s.update(func() {
		s.cameraOpen = false
	})
}

// CameraDenied records that the browser refused camera access.
func (s *State) CameraDenied() {
	s.update(func() {
		s.cameraOpen = false
		s.errMsg = CameraDeniedMessage
	})
}

// AttachImage attaches a captured or uploaded image, closing the camera and clearing any error.
func (s *State) AttachImage(image *analysis.Image, origin Origin) {
	s.update(func() { WithImage(image, origin)(s) })
}

func (s *State) attach(image *analysis.Image, origin Origin) {
	if image == nil {
		origin = OriginNone
	}
	s.image = image
	s.origin = origin
}

// ClearMedia removes the attached image and the result it produced.
func (s *State) ClearMedia() {
	s.update(func() {
		s.attach(nil, OriginNone)
		s.result = nil
	})
}

// ClearAll resets the input, the result and the error. History is kept.
func (s *State) ClearAll() {
	s.update(func() {
		s.text = ""
		s.attach(nil, OriginNone)
		s.result = nil
		s.errMsg = ""
	})
}

// Fail shows msg as the current error, e.g. for an unsupported upload.
func (s *State) Fail(msg string) {
	s.update(func() {
		s.errMsg = msg
	})
}

// Analyze applies edits to the input and analyzes it.
//
// It returns ErrAnalysisInFlight without applying edits when another analysis of this workspace has not
// finished. With neither text nor an image after the edits it returns analysis.ErrEmptyInput and changes
// nothing else. On success the result is stored and recorded in the history. On failure the error's message
// is stored for display.
func (s *State) Analyze(ctx context.Context, analyzer Analyzer, edits ...InputEdit) (models.AnalysisResult, error) {
	if !s.flight.TryAcquire(1) {
		return models.AnalysisResult{}, ErrAnalysisInFlight
	}
	defer s.flight.Release(1)

	s.mu.Lock()
	for _, edit := range edits {
		edit(s)
	}
	text, image := s.text, s.image
	if strings.TrimSpace(text) == "" && image == nil {
		s.mu.Unlock()
		return models.AnalysisResult{}, analysis.ErrEmptyInput
	}
	s.analyzing = true
	s.errMsg = ""
	s.result = nil
	s.lastUsed = time.Now()
	s.mu.Unlock()

	result, err := analyzer.Analyze(ctx, text, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false
	s.lastUsed = time.Now()
	if err != nil {
		s.errMsg = userMessage(err)
		return models.AnalysisResult{}, err
	}
	s.result = &result
	s.ledger.Record(result, history.Describe(text, image != nil))
	return result, nil
}

func userMessage(err error) string {
	if errors.Is(err, analysis.ErrEngineUnreachable) {
		return analysis.ErrEngineUnreachable.Error()
	}
	return "Verification engine encountered an error. Please try again."
}

// View is a read-only copy of a workspace for rendering.
type View struct {
	ID          string
	Text        string
	Image       *analysis.Image
	ImageOrigin Origin
	CameraOpen  bool
	Result      *models.AnalysisResult
	Error       string
	Analyzing   bool
	History     []models.HistoryItem
}

// HasInput reports whether there is anything to analyze.
func (v View) HasInput() bool {
	return strings.TrimSpace(v.Text) != "" || v.Image != nil
}

// Snapshot returns the current state of the workspace.
func (s *State) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := View{
		ID:          s.id,
		Text:        s.text,
		Image:       nil,
		ImageOrigin: s.origin,
		CameraOpen:  s.cameraOpen,
		Result:      nil,
		Error:       s.errMsg,
		Analyzing:   s.analyzing,
		History:     s.ledger.Items(),
	}
	if s.image != nil {
		image := *s.image
		view.Image = &image
	}
	if s.result != nil {
		result := *s.result
		view.Result = &result
	}
	return view
}

// History returns the recorded analyses, newest first.
func (s *State) History() []models.HistoryItem {
	return s.ledger.Items()
}

func (s *State) idleSince(now time.Time) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed), s.analyzing
}
