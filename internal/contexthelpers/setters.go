package contexthelpers

import (
	"context"
	"github.com/myrjola/veritruth/internal/workspace"
	"net/http"
)

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, currentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenContextKey, csrfToken)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	ctx := context.WithValue(r.Context(), cspNonceContextKey, nonce)
	return r.WithContext(ctx)
}

func SetWorkspace(r *http.Request, ws *workspace.State) *http.Request {
	ctx := context.WithValue(r.Context(), workspaceContextKey, ws)
	return r.WithContext(ctx)
}
