package main

import (
	"github.com/justinas/alice"
	"github.com/myrjola/veritruth/ui"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", cacheForeverHeaders(http.FileServerFS(ui.Files)))
	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.Handle("GET /metrics", app.metrics.Handler())

	session := alice.New(app.sessionManager.LoadAndSave, app.noSurf, commonContext, app.loadWorkspace)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /analyze", session.ThenFunc(app.analyze))
	mux.Handle("POST /upload", session.ThenFunc(app.upload))
	mux.Handle("POST /capture", session.ThenFunc(app.capture))
	mux.Handle("POST /camera/open", session.ThenFunc(app.openCamera))
	mux.Handle("POST /camera/close", session.ThenFunc(app.closeCamera))
	mux.Handle("POST /camera/denied", session.ThenFunc(app.cameraDenied))
	mux.Handle("POST /media/clear", session.ThenFunc(app.clearMedia))
	mux.Handle("POST /clear", session.ThenFunc(app.clearAll))
	mux.Handle("POST /examples/{index}", session.ThenFunc(app.useExample))

	mux.Handle("POST /api/analyze", session.ThenFunc(app.apiAnalyze))
	mux.Handle("GET /api/history", session.ThenFunc(app.apiHistory))

	mux.HandleFunc("/", app.notFound)

	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders, app.limitBody)
	return standard.Then(timeoutHandler(mux, app.requestTimeout))
}
