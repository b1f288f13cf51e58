package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)
	assert.Len(t, code, CodeLength)

	for _, r := range code {
		assert.Contains(t, codeAlphabet, string(r))
	}

	// no ambiguous characters
	assert.NotContains(t, code, "0")
	assert.NotContains(t, code, "O")
	assert.NotContains(t, code, "1")
	assert.NotContains(t, code, "I")
}

func TestGenerateVerificationCodeUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateVerificationCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestCodeAlphabetHasNoLookalikes(t *testing.T) {
	for _, bad := range []string{"0", "O", "1", "I"} {
		assert.False(t, strings.Contains(codeAlphabet, bad))
	}
}
