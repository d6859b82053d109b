package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("exp-1", "cico/2024-05.xlsx")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	link, err := signer.Parse(token, false)
	require.NoError(t, err)
	assert.Equal(t, "exp-1", link.ExportID)
	assert.Equal(t, "cico/2024-05.xlsx", link.Path)
	assert.WithinDuration(t, expiresAt, link.ExpiresAt, time.Second)
}

func TestSignedURLSignerExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	signer := NewSignedURLSigner("secret", time.Minute)
	signer.now = func() time.Time { return now }

	token, _, err := signer.Generate("exp-1", "notes.pdf")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = signer.Parse(token, false)
	assert.ErrorIs(t, err, ErrTokenExpired)

	link, err := signer.Parse(token, true)
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", link.Path)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("exp-1", "tier.csv")
	require.NoError(t, err)

	other := NewSignedURLSigner("other", time.Hour)
	_, err = other.Parse(token, false)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = signer.Parse("not-a-token", false)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSignedURLSignerValidatesInput(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	_, _, err := signer.Generate("", "x.csv")
	assert.Error(t, err)
	_, _, err = signer.Generate("a.b", "x.csv")
	assert.Error(t, err)
	_, _, err = NewSignedURLSigner("", time.Hour).Generate("a", "x.csv")
	assert.Error(t, err)
}
