package main

import (
	"context"
	"github.com/myrjola/veritruth/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

func Test_application_healthy(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t, testhelpers.NewStubEngine(fakeVerdict()))
	client := server.Client()

	resp, err := client.Get(ctx, "/api/healthy")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Equal(t, healthResponse{Status: "ok", Workspaces: 0}, decodeJSON[healthResponse](t, resp))

	resp, err = client.Get(ctx, "/")
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = client.Get(ctx, "/api/healthy")
	require.NoError(t, err)
	require.Equal(t, healthResponse{Status: "ok", Workspaces: 1}, decodeJSON[healthResponse](t, resp))
}
