package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlinkhq/devlink/models"
	"github.com/devlinkhq/devlink/utils"
)

func TestRegister_CreatesUserAndIssuesToken(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)

	w := doJSON(r, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Dana",
		"email":    "Dana@Example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	require.NotEmpty(t, body.Token)

	var user models.User
	require.NoError(t, db.Where("email = ?", "dana@example.com").First(&user).Error)
	assert.Equal(t, "Dana", user.Name)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "secret1"))
	assert.Contains(t, user.Avatar, "gravatar.com/avatar/")

	claims, err := utils.ParseToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	createUser(t, db, "Dana", "dana@example.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Other",
		"email":    "dana@example.com",
		"password": "secret2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors": "User already exists"}`, w.Body.String())
}

func TestRegister_ValidationDetail(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)

	w := doJSON(r, http.MethodPost, "/api/users", "", map[string]string{
		"email":    "bad",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []utils.FieldError `json:"errors"`
	}
	decodeBody(t, w, &body)
	require.Len(t, body.Errors, 3)

	fields := map[string]bool{}
	for _, fe := range body.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["Name"])
	assert.True(t, fields["Email"])
	assert.True(t, fields["Password"])
}
