package handlers

import (
	"testing"

	"github.com/farebid/farebid-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, "POST", "/api/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
		"phone":    "0700000000",
		"userType": "traveler",
	}, "")
	require.Equal(t, 201, w.Code)

	var registered struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, w, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "alice", registered.User.Username)
	assert.Equal(t, models.UserTypeTraveler, registered.User.UserType)

	w = doRequest(t, r, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, 200, w.Code)

	var loggedIn struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &loggedIn)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	db, r := setupTest(t)
	createUser(t, db, "alice", models.UserTypeTraveler, false)

	w := doRequest(t, r, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, 401, w.Code)
}

func TestRegisterRejectsUnknownUserType(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, "POST", "/api/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
		"userType": "admin",
	}, "")
	assert.Equal(t, 400, w.Code)
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	db, r := setupTest(t)
	user := createUser(t, db, "alice", models.UserTypeTraveler, false)

	w := doRequest(t, r, "GET", "/api/users/profile", nil, tokenFor(t, user))
	require.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, "GET", "/api/users/profile", nil, "")
	assert.Equal(t, 401, w.Code)
}
