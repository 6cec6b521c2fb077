package main

import (
	"encoding/json"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/contexthelpers"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/myrjola/veritruth/internal/workspace"
	"log/slog"
	"mime"
	"net/http"
)

type analyzeRequest struct {
	Text string `json:"text"`
	// Image is a data URI or bare base64.
	Image string `json:"image"`
}

// apiAnalyze analyzes the posted input in the session's workspace and responds with the result.
func (app *application) apiAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil ||
		mediaType != "application/json" {
		app.clientError(w, r, http.StatusUnsupportedMediaType)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "invalid analyze request", slog.String("cause", err.Error()))
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	var image *analysis.Image
	if req.Image != "" {
		var err error
		if image, err = analysis.DecodeImage(req.Image); err != nil {
			app.logger.LogAttrs(ctx, slog.LevelDebug, "invalid image", errors.SlogError(err))
			app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid image"})
			return
		}
	}

	ws := contexthelpers.Workspace(ctx)
	// A rejected analysis leaves the running one's input in place.
	result, err := app.runAnalysis(r, ws,
		workspace.WithText(req.Text),
		workspace.WithImage(image, workspace.OriginUpload),
	)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrEmptyInput):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, workspace.ErrAnalysisInFlight):
			app.writeJSON(w, r, http.StatusConflict, errorResponse{Error: err.Error()})
		case errors.Is(err, analysis.ErrEngineUnreachable):
			app.writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: analysis.ErrEngineUnreachable.Error()})
		default:
			app.serverError(w, r, err)
		}
		return
	}
	app.writeJSON(w, r, http.StatusOK, result)
}

func (app *application) apiHistory(w http.ResponseWriter, r *http.Request) {
	items := contexthelpers.Workspace(r.Context()).History()
	if items == nil {
		items = []models.HistoryItem{}
	}
	app.writeJSON(w, r, http.StatusOK, items)
}
