package testhelpers

import (
	"context"
	"fmt"
	"github.com/myrjola/veritruth/internal/analysis"
	"strings"
	"sync"
)

// Answer is an engine answer in the tagged format the engine is instructed to produce.
type Answer struct {
	Verdict     string
	Confidence  string
	Language    string
	Explanation string
	Claims      []string
	Action      string
	CrossCheck  string
}

// String renders the answer with one tag per line.
func (a Answer) String() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "[VERDICT] %s\n", a.Verdict)
	_, _ = fmt.Fprintf(&b, "[CONFIDENCE] %s\n", a.Confidence)
	_, _ = fmt.Fprintf(&b, "[LANGUAGE] %s\n", a.Language)
	_, _ = fmt.Fprintf(&b, "[EXPLANATION] %s\n", a.Explanation)
	_, _ = fmt.Fprintf(&b, "[CLAIMS] %s\n", strings.Join(a.Claims, ", "))
	_, _ = fmt.Fprintf(&b, "[ACTION] %s\n", a.Action)
	_, _ = fmt.Fprintf(&b, "[CROSSCHECK] %s", a.CrossCheck)
	return b.String()
}

// StubEngine is an [analysis.Engine] that records requests and answers with a canned response.
type StubEngine struct {
	mu       sync.Mutex
	response analysis.Response
	err      error
	requests []analysis.Request

	// release, when set, blocks Generate until it is closed. started receives a value when Generate is entered.
	release chan struct{}
	started chan struct{}
}

// NewStubEngine creates a StubEngine answering with resp.
func NewStubEngine(resp analysis.Response) *StubEngine {
	return &StubEngine{response: resp, started: make(chan struct{}, 1)}
}

// Generate implements [analysis.Engine].
func (e *StubEngine) Generate(ctx context.Context, req analysis.Request) (analysis.Response, error) {
	e.mu.Lock()
	e.requests = append(e.requests, req)
	release := e.release
	resp, err := e.response, e.err
	e.mu.Unlock()

	select {
	case e.started <- struct{}{}:
	default:
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return analysis.Response{}, ctx.Err()
		}
	}
	return resp, err
}

// Respond replaces the canned response and clears any failure.
func (e *StubEngine) Respond(resp analysis.Response) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.response = resp
	e.err = nil
}

// Fail makes subsequent calls return err.
func (e *StubEngine) Fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// Hold makes subsequent calls block until the returned function is called.
func (e *StubEngine) Hold() (release func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch := make(chan struct{})
	e.release = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			e.release = nil
			e.mu.Unlock()
			close(ch)
		})
	}
}

// Started is signalled when a call enters Generate.
func (e *StubEngine) Started() <-chan struct{} {
	return e.started
}

// Requests returns the requests received so far.
func (e *StubEngine) Requests() []analysis.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]analysis.Request(nil), e.requests...)
}
