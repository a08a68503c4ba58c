package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesense/stylesense/domain"
)

func TestSession_SaveLoadClear(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(filepath.Join(dir, "a", "token"), filepath.Join(dir, "a", "user.json"))

	_, err := s.User()
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	user := domain.User{ID: "u1", Email: "ana@example.test", Username: "ana"}
	require.NoError(t, s.Save(" tok ", user))

	got, err := s.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, got)

	tok, err := s.Tokens().AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	_, err = s.Tokens().AccessToken()
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSession_SaveRejectsEmptyToken(t *testing.T) {
	s := NewSession(filepath.Join(t.TempDir(), "token"), filepath.Join(t.TempDir(), "user.json"))
	require.Error(t, s.Save("  ", domain.User{}))
}
