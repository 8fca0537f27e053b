package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("cook@example.com", "secret123", "cook")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cook", claims.Username)

	var user models.User
	require.NoError(t, db.Preload("Profile").First(&user, "email = ?", "cook@example.com").Error)
	assert.Equal(t, claims.UserID, user.ID)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	loginToken, err := svc.Login("cook@example.com", "secret123")
	require.NoError(t, err)
	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loginClaims.UserID)
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("cook@example.com", "secret123", "cook")
	require.NoError(t, err)

	_, err = svc.Register("cook@example.com", "other-pass", "someone_else")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register("other@example.com", "other-pass", "cook")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("cook@example.com", "secret123", "cook")
	require.NoError(t, err)

	_, err = svc.Login("cook@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "different-secret")

	token, err := svc.Register("cook@example.com", "secret123", "cook")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
