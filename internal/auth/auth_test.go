package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher := auth.NewPasswordHasherWithParams(auth.PasswordParams{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16})

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"))

	ok, err := hasher.Verify("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	// hashes made with other settings still verify
	ok, err = auth.NewPasswordHasher().Verify("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, bad := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=16$m=1,t=1,p=1$c2FsdA$aGFzaA"} {
		_, err := hasher.Verify("x", bad)
		assert.ErrorIs(t, err, auth.ErrMalformedHash, bad)
	}
}

func TestTokenManager(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)
	userID := uuid.New()

	token, err := tm.Generate(userID, "kim@example.com")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "kim@example.com", claims.Email)

	_, err = auth.NewTokenManager("other", time.Hour).Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, err := auth.NewTokenManager("secret", -time.Minute).Generate(userID, "kim@example.com")
	require.NoError(t, err)
	_, err = tm.Validate(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUserIDContext(t *testing.T) {
	_, ok := auth.UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = auth.UserIDFromContext(auth.WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	id := uuid.New()
	got, ok := auth.UserIDFromContext(auth.WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
