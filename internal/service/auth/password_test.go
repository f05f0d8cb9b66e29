package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse", "digest must not embed the plaintext")

	assert.NoError(t, h.Compare(hash, "correct horse battery staple"))
	assert.Error(t, h.Compare(hash, "wrong password"))
}

func TestBcryptHasherSaltsDigests(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	first, err := h.Hash("пароль123")
	require.NoError(t, err)
	second, err := h.Hash("пароль123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
