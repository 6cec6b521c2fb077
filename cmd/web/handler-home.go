package main

import (
	"github.com/myrjola/veritruth/internal/contexthelpers"
	"github.com/myrjola/veritruth/internal/workspace"
	"net/http"
)

const bytesPerMiB = 1 << 20

type homeTemplateData struct {
	BaseTemplateData

	Workspace    workspace.View
	Examples     []string
	MaxUploadMiB int64
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ws := contexthelpers.Workspace(r.Context())
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Workspace:        ws.Snapshot(),
		Examples:         workspace.ExamplePrompts,
		MaxUploadMiB:     app.maxUploadBytes / bytesPerMiB,
	}

	app.render(w, r, http.StatusOK, "home", data)
}
