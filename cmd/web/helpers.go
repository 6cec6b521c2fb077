package main

import (
	"encoding/json"
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
	"net/http"
)

// serverError logs err and responds with 500. The request method and URI are added by logRequest.
func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status), slog.Int("status", status))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// redirectHome finishes a form post by redirecting the browser back to the page.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal JSON response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
