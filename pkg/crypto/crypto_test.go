package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortHash(t *testing.T) {
	a := ShortHash([]byte("user-1"), 8)
	require.Len(t, a, 8)
	require.Equal(t, a, ShortHash([]byte("user-1"), 8))
	require.NotEqual(t, a, ShortHash([]byte("user-2"), 8))
	require.Len(t, ShortHash([]byte("user-1"), 1000), 52)
}

func TestGenerateRandomAlphabet(t *testing.T) {
	s := GenerateRandomAlphabet(32)
	require.Len(t, s, 32)
	for _, c := range s {
		require.True(t, strings.ContainsRune(alphabet, c))
	}
}
