// Package ui holds the page templates and static assets served by cmd/web.
package ui

import "embed"

// Files contains the templates/ and static/ trees.
//
//go:embed templates static
var Files embed.FS
