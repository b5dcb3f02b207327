package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stattrackr/stattrackr/internal/session"
	"github.com/stattrackr/stattrackr/internal/store"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	sess := session.NewMemory("", "")
	require.NoError(t, sess.SetTokens(t.Context(), "a1", "r1"))
	require.Equal(t, "a1", sess.Access())
	require.Equal(t, "r1", sess.Refresh())

	require.NoError(t, sess.SetAccess(t.Context(), "a2"))
	require.Equal(t, "a2", sess.Access())
	require.Equal(t, "r1", sess.Refresh())

	require.NoError(t, sess.Clear(t.Context()))
	require.Empty(t, sess.Access())
	require.Empty(t, sess.Refresh())
}

func TestPersistent(t *testing.T) {
	db, err := store.Open(t.Context(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	queries := store.New(db)
	const profile = "https://stats.example.com/api"

	sess, errSess := session.NewPersistent(t.Context(), queries, profile)
	require.NoError(t, errSess)
	require.Empty(t, sess.Access())

	require.NoError(t, sess.SetTokens(t.Context(), "a1", "r1"))
	require.NoError(t, sess.SetAccess(t.Context(), "a2"))

	reloaded, errReload := session.NewPersistent(t.Context(), queries, profile)
	require.NoError(t, errReload)
	require.Equal(t, "a2", reloaded.Access())
	require.Equal(t, "r1", reloaded.Refresh())

	other, errOther := session.NewPersistent(t.Context(), queries, "http://other")
	require.NoError(t, errOther)
	require.Empty(t, other.Access())

	require.NoError(t, reloaded.Clear(t.Context()))
	cleared, errCleared := session.NewPersistent(t.Context(), queries, profile)
	require.NoError(t, errCleared)
	require.Empty(t, cleared.Access())
	require.Empty(t, cleared.Refresh())
}

func TestParseClaims(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "42",
		"username": "gunner",
		"exp":      expires.Unix(),
	})
	signed, err := token.SignedString([]byte("unknown-to-the-client"))
	require.NoError(t, err)

	claims, errClaims := session.ParseClaims(signed)
	require.NoError(t, errClaims)
	require.Equal(t, "gunner", claims.Username)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, expires.Unix(), claims.ExpiresAt.Unix())
	require.False(t, claims.Expired(time.Now()))
	require.True(t, claims.Expired(expires.Add(time.Minute)))

	_, errOpaque := session.ParseClaims("9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b")
	require.ErrorIs(t, errOpaque, session.ErrNotJWT)

	_, errEmpty := session.ParseClaims("")
	require.ErrorIs(t, errEmpty, session.ErrNotJWT)
}
