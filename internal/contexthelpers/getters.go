package contexthelpers

import (
	"context"
	"github.com/myrjola/veritruth/internal/workspace"
)

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	nonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return nonce
}

// Workspace returns the workspace of the current browser session or nil outside the session middleware.
func Workspace(ctx context.Context) *workspace.State {
	ws, ok := ctx.Value(workspaceContextKey).(*workspace.State)
	if !ok {
		return nil
	}

	return ws
}
