package random

import (
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestLetters(t *testing.T) {
	tests := []struct {
		name   string
		length uint
	}{
		{name: "zero length", length: 0},
		{name: "32 length", length: 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Letters(tt.length)
			require.NoError(t, err)
			require.Len(t, got, int(tt.length))
			for _, r := range got {
				require.True(t, strings.ContainsRune(string(allowedLetters), r), "unexpected rune %q", r)
			}
		})
	}
}

func TestLetters_usesWholeAlphabet(t *testing.T) {
	// Drawing 4096 letters without ever hitting X, Y or Z has a probability well below 1e-100.
	got, err := Letters(4096)
	require.NoError(t, err)
	require.True(t, strings.ContainsAny(got, "XYZ"), "upper case letters are never drawn")
}
