package main

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
	// Workspaces is the number of browser sessions with a workspace in memory.
	Workspaces int `json:"workspaces"`
}

// healthy reports that the server is up. Sessions live in memory, so the workspace count shows how much state a
// restart would drop.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Workspaces: app.workspaces.Len()})
}
