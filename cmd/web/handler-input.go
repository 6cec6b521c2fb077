package main

import (
	"github.com/myrjola/veritruth/internal/contexthelpers"
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
	"net/http"
	"strconv"
)

func (app *application) openCamera(w http.ResponseWriter, r *http.Request) {
	contexthelpers.Workspace(r.Context()).OpenCamera()
	redirectHome(w, r)
}

func (app *application) closeCamera(w http.ResponseWriter, r *http.Request) {
	contexthelpers.Workspace(r.Context()).CloseCamera()
	redirectHome(w, r)
}

// cameraDenied is posted by the page when getUserMedia fails.
func (app *application) cameraDenied(w http.ResponseWriter, r *http.Request) {
	contexthelpers.Workspace(r.Context()).CameraDenied()
	redirectHome(w, r)
}

func (app *application) clearMedia(w http.ResponseWriter, r *http.Request) {
	contexthelpers.Workspace(r.Context()).ClearMedia()
	redirectHome(w, r)
}

func (app *application) clearAll(w http.ResponseWriter, r *http.Request) {
	contexthelpers.Workspace(r.Context()).ClearAll()
	redirectHome(w, r)
}

func (app *application) useExample(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		app.notFound(w, r)
		return
	}
	if err = contexthelpers.Workspace(ctx).UseExample(index); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "example not found", errors.SlogError(err))
		app.notFound(w, r)
		return
	}
	redirectHome(w, r)
}
