package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReturnsToken(t *testing.T) {
	ts := setupTestServer(t)

	w := doJSON(t, ts, "POST", "/api/auth/register", "", map[string]string{
		"email":    "cook@example.com",
		"password": "secret123",
		"username": "cook",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token, ok := decodeBody(t, w)["token"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, token)

	claims, err := ts.AuthService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cook", claims.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	createTestUser(t, ts, "cook")

	w := doJSON(t, ts, "POST", "/api/auth/register", "", map[string]string{
		"email":    "cook@example.com",
		"password": "secret123",
		"username": "another_cook",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := setupTestServer(t)
	createTestUser(t, ts, "cook")

	w := doJSON(t, ts, "POST", "/api/auth/register", "", map[string]string{
		"email":    "other@example.com",
		"password": "secret123",
		"username": "cook",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	ts := setupTestServer(t)

	w := doJSON(t, ts, "POST", "/api/auth/register", "", map[string]string{
		"email": "cook@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	createTestUser(t, ts, "cook")

	w := doJSON(t, ts, "POST", "/api/auth/login", "", map[string]string{
		"email":    "cook@example.com",
		"password": "testpassword123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	createTestUser(t, ts, "cook")

	w := doJSON(t, ts, "POST", "/api/auth/login", "", map[string]string{
		"email":    "cook@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	ts := setupTestServer(t)

	w := doJSON(t, ts, "POST", "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
