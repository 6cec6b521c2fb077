package pprofserver_test

import (
	"bytes"
	"context"
	"github.com/myrjola/veritruth/internal/pprofserver"
	"github.com/myrjola/veritruth/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandle(t *testing.T) {
	mux := http.NewServeMux()
	pprofserver.Handle(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "goroutine")
}

func TestLaunch_disabled(t *testing.T) {
	var logs bytes.Buffer
	pprofserver.Launch(context.Background(), "", testhelpers.NewLogger(&logs))
	require.Empty(t, logs.String())
}
