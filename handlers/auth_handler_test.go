package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isip/models"
	"isip/utils"
)

func seedLoginUser(t *testing.T, users *fakeUserStore, username, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		FirstName:    "Ada",
		LastName:     "Admin",
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
	require.NoError(t, users.Create(context.Background(), &user))
	return user
}

func TestLoginIssuesTokenPairAndRecordsLogin(t *testing.T) {
	router, _, users := newTestEnv(t)
	user := seedLoginUser(t, users, "ada", "correct horse battery")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "ada", "password": "correct horse battery"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var tokens map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokens))
	require.NotEmpty(t, tokens["access"])
	require.NotEmpty(t, tokens["refresh"])

	// The access token authenticates against the admin surface.
	rr = doJSON(t, router, http.MethodGet, "/api/ideas", tokens["access"], nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	// A refresh token is not a bearer credential.
	rr = doJSON(t, router, http.MethodGet, "/api/ideas", tokens["refresh"], nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin, "login must stamp last_login")
}

func TestLoginWrongPassword(t *testing.T) {
	router, _, users := newTestEnv(t)
	seedLoginUser(t, users, "ada", "correct horse battery")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "ada", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	router, _, _ := newTestEnv(t)

	rr := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "ghost", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	router, _, users := newTestEnv(t)
	user, _ := seedAdmin(t, users)

	refresh, err := utils.GenerateRefreshToken(user.ID.Hex(), user.Username)
	require.NoError(t, err)

	rr := doJSON(t, router, http.MethodPost, "/api/auth/refresh", "",
		map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotEmpty(t, body["access"])

	rr = doJSON(t, router, http.MethodGet, "/api/ideas", body["access"], nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	router, _, users := newTestEnv(t)
	_, access := seedAdmin(t, users)

	rr := doJSON(t, router, http.MethodPost, "/api/auth/refresh", "",
		map[string]string{"refresh": access})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeletedAdminLosesAccess(t *testing.T) {
	router, _, users := newTestEnv(t)
	user, token := seedAdmin(t, users)

	require.NoError(t, users.Delete(context.Background(), user.ID))

	rr := doJSON(t, router, http.MethodGet, "/api/ideas", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
