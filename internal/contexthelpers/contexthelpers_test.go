package contexthelpers_test

import (
	"context"
	"github.com/myrjola/veritruth/internal/contexthelpers"
	"github.com/myrjola/veritruth/internal/workspace"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestContextHelpers(t *testing.T) {
	ws := workspace.New("ws")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = contexthelpers.SetCurrentPath(r, "/")
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	r = contexthelpers.SetWorkspace(r, ws)

	ctx := r.Context()
	require.Equal(t, "/", contexthelpers.CurrentPath(ctx))
	require.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	require.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
	require.Same(t, ws, contexthelpers.Workspace(ctx))
}

func TestContextHelpers_missing(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, contexthelpers.CurrentPath(ctx))
	require.Empty(t, contexthelpers.CSRFToken(ctx))
	require.Empty(t, contexthelpers.CSPNonce(ctx))
	require.Nil(t, contexthelpers.Workspace(ctx))
}
