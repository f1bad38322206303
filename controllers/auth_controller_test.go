package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlinkhq/devlink/utils"
)

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "u@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	require.NotEmpty(t, body.Token)

	// The token's embedded identity resolves back to the same user.
	claims, err := utils.ParseToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLogin_WrongPasswordIsGeneric(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	createUser(t, db, "Uma", "u@x.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "u@x.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors": "Invalid credentials"}`, w.Body.String())
}

func TestLogin_UnknownEmailMatchesWrongPasswordBody(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	createUser(t, db, "Uma", "u@x.com", "secret1")

	wrongPassword := doJSON(r, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "u@x.com",
		"password": "nope",
	})
	unknownEmail := doJSON(r, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})

	// No account enumeration: both failures are indistinguishable.
	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogin_MalformedEmailFailsValidation(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)

	w := doJSON(r, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")
	assert.Contains(t, w.Body.String(), "valid email")
}

func TestMe_ReturnsCallerWithoutHash(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")

	w := doJSON(r, http.MethodGet, "/api/auth", tokenFor(t, user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "Uma", body["name"])
	assert.Equal(t, "u@x.com", body["email"])
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
	assert.NotContains(t, w.Body.String(), user.PasswordHash)
}
