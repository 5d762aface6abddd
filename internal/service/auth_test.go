package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboardapp/backend/internal/apperrors"
	"github.com/homeboardapp/backend/internal/service"
	"github.com/homeboardapp/backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	user, token, err := svc.Register(context.Background(), " Alice@Example.COM ", "supersecret", "Alice", "Alice", "Smith")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	logged, loginToken, err := svc.Login(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	_, _, err := svc.Register(context.Background(), "alice@example.com", "supersecret", "Alice", "", "")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "ALICE@example.com", "othersecret", "Imposter", "", "")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	_, _, err := svc.Register(context.Background(), "alice@example.com", "supersecret", "Alice", "", "")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	user, token, err := svc.Register(context.Background(), "alice@example.com", "supersecret", "Alice", "", "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	_, token, err := svc.Register(context.Background(), "alice@example.com", "supersecret", "Alice", "", "")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
