package service_test

import (
	"testing"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*service.UserService, *auth.TokenManager, harness) {
	t.Helper()
	h := newHarness(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	hasher := auth.NewPasswordHasherWithParams(auth.PasswordParams{
		Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16,
	})
	return service.NewUserService(h.store.Users, hasher, tokens), tokens, h
}

func TestSignupAndLogin(t *testing.T) {
	svc, tokens, h := newUserService(t)

	result, err := svc.Signup(h.ctx, service.SignupInput{Email: " Ana@Example.test ", Name: "Ana", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.test", result.User.Email)
	assert.NotEqual(t, "correct horse", result.User.PasswordHash)

	claims, err := tokens.Validate(result.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, id)

	_, err = svc.Signup(h.ctx, service.SignupInput{Email: "ana@example.test", Name: "Ana again", Password: "another pass"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	login, err := svc.Login(h.ctx, service.LoginInput{Email: "ANA@example.test", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	_, err = svc.Login(h.ctx, service.LoginInput{Email: "ana@example.test", Password: "wrong horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Login(h.ctx, service.LoginInput{Email: "nobody@example.test", Password: "correct horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignupValidation(t *testing.T) {
	svc, _, h := newUserService(t)

	_, err := svc.Signup(h.ctx, service.SignupInput{Email: "nope", Name: "", Password: "short"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "name")
	assert.Equal(t, "must be at least 8", verr.Fields["password"])
}
