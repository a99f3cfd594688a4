package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), identity.StudentID)
	require.True(t, identity.IsAdmin)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(1, false)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.Issue(1, false)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(tokenStr)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
