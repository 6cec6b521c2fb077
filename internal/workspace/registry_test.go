package workspace_test

import (
	"github.com/myrjola/veritruth/internal/workspace"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestRegistry(t *testing.T) {
	registry := workspace.NewRegistry()

	first := registry.Get("a")
	first.SetText("claim")
	require.Same(t, first, registry.Get("a"))
	require.NotSame(t, first, registry.Get("b"))
	require.Equal(t, 2, registry.Len())
	require.Equal(t, "claim", registry.Get("a").Snapshot().Text)

	require.Zero(t, registry.Sweep(time.Hour))
	require.Equal(t, 2, registry.Len())

	require.Equal(t, 2, registry.Sweep(0))
	require.Zero(t, registry.Len())
	require.Empty(t, registry.Get("a").Snapshot().Text, "swept workspace starts over")
}
