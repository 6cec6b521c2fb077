package main

import (
	"context"
	"github.com/gabriel-vasile/mimetype"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/contexthelpers"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/myrjola/veritruth/internal/workspace"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	missingUploadMessage     = "Choose an image to upload."
	unsupportedUploadMessage = "Unsupported file. Please upload an image."
	unreadableCaptureMessage = "The captured photo could not be read. Please try again."
)

// runAnalysis analyzes the workspace input. The analysis is detached from the request so that a result is
// applied even if the browser goes away before the engine answers.
func (app *application) runAnalysis(
	r *http.Request,
	ws *workspace.State,
	edits ...workspace.InputEdit,
) (models.AnalysisResult, error) {
	ctx := r.Context()
	result, err := ws.Analyze(context.WithoutCancel(ctx), app.analyzer, edits...)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, analysis.ErrEmptyInput):
		app.logger.LogAttrs(ctx, slog.LevelDebug, "nothing to analyze")
	case errors.Is(err, workspace.ErrAnalysisInFlight):
		app.metrics.ObserveRejected()
		app.logger.LogAttrs(ctx, slog.LevelInfo, "analysis rejected", errors.SlogError(err))
	case errors.Is(err, analysis.ErrEngineUnreachable):
		// Logged with the cause by the analyzer.
	default:
		app.logger.LogAttrs(ctx, slog.LevelError, "analysis failed", errors.SlogError(err))
	}
	return result, err
}

// analyze analyzes the submitted text together with the attached image, if any.
func (app *application) analyze(w http.ResponseWriter, r *http.Request) {
	ws := contexthelpers.Workspace(r.Context())
	_, _ = app.runAnalysis(r, ws, workspace.WithText(r.PostFormValue("text")))
	redirectHome(w, r)
}

// withImage attaches image and keeps the typed text when the text field is submitted along with it.
func withImage(r *http.Request, image *analysis.Image, origin workspace.Origin) []workspace.InputEdit {
	edits := []workspace.InputEdit{workspace.WithImage(image, origin)}
	if _, ok := r.PostForm["text"]; ok {
		edits = append(edits, workspace.WithText(r.PostForm.Get("text")))
	}
	return edits
}

// upload attaches the uploaded image and analyzes it.
func (app *application) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := contexthelpers.Workspace(ctx)
	if err := r.ParseMultipartForm(app.maxUploadBytes); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "invalid upload", slog.String("cause", err.Error()))
		ws.Fail(missingUploadMessage)
		redirectHome(w, r)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		ws.Fail(missingUploadMessage)
		redirectHome(w, r)
		return
	}
	defer func() {
		_ = file.Close()
	}()
	data, err := io.ReadAll(file)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "read upload"))
		return
	}
	if len(data) == 0 {
		ws.Fail(missingUploadMessage)
		redirectHome(w, r)
		return
	}

	mediaType := mimetype.Detect(data).String()
	if !strings.HasPrefix(mediaType, "image/") {
		app.logger.LogAttrs(ctx, slog.LevelInfo, "upload rejected", slog.String("media_type", mediaType))
		ws.Fail(unsupportedUploadMessage)
		redirectHome(w, r)
		return
	}

	image := &analysis.Image{Data: data, MediaType: mediaType}
	_, _ = app.runAnalysis(r, ws, withImage(r, image, workspace.OriginUpload)...)
	redirectHome(w, r)
}

// capture attaches a camera snapshot sent as a data URI and analyzes it.
func (app *application) capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := contexthelpers.Workspace(ctx)
	image, err := analysis.DecodeImage(r.PostFormValue("image"))
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelInfo, "capture rejected", errors.SlogError(err))
		ws.CloseCamera()
		ws.Fail(unreadableCaptureMessage)
		redirectHome(w, r)
		return
	}
	_, _ = app.runAnalysis(r, ws, withImage(r, image, workspace.OriginCamera)...)
	redirectHome(w, r)
}
