package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/pkg/testkit"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := testkit.Request(t, env.handler, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Ayesha",
		"email":    "ayesha@example.com",
		"password": "hunter22",
	}, nil)
	testkit.AssertStatus(t, rec, http.StatusOK)

	var resp models.TokenResponse
	testkit.DecodeJSON(t, rec, &resp)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "ayesha@example.com", resp.User.Email)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{"email": "dup@example.com", "password": "hunter22"}
	rec := testkit.Request(t, env.handler, http.MethodPost, "/api/auth/register", body, nil)
	testkit.AssertStatus(t, rec, http.StatusOK)

	rec = testkit.Request(t, env.handler, http.MethodPost, "/api/auth/register", body, nil)
	testkit.AssertStatus(t, rec, http.StatusConflict)

	var errResp map[string]string
	testkit.DecodeJSON(t, rec, &errResp)
	assert.Equal(t, "Email already registered", errResp["detail"])
}

func TestRegisterMissingIdentifier(t *testing.T) {
	env := newTestEnv(t)

	rec := testkit.Request(t, env.handler, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"password": "hunter22",
	}, nil)
	testkit.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestRegisterShortPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := testkit.Request(t, env.handler, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"email":    "short@example.com",
		"password": "abc",
	}, nil)
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	testkit.DecodeJSON(t, rec, &resp)
	assert.Contains(t, resp.Errors, "password")
}

func TestRegisterMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := testkit.Request(t, env.handler, http.MethodPost, "/api/auth/register", "{not json", nil)
	testkit.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := testkit.Request(t, env.handler, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"email":    "login@example.com",
		"password": "hunter22",
	}, nil)
	testkit.AssertStatus(t, rec, http.StatusOK)

	rec = testkit.Request(t, env.handler, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "hunter22",
	}, nil)
	testkit.AssertStatus(t, rec, http.StatusOK)

	var resp models.TokenResponse
	testkit.DecodeJSON(t, rec, &resp)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, models.RoleUser)

	rec := testkit.Request(t, env.handler, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "whoever@example.com",
		"password": "wrong",
	}, nil)
	testkit.AssertStatus(t, rec, http.StatusUnauthorized)

	var errResp map[string]string
	testkit.DecodeJSON(t, rec, &errResp)
	assert.Equal(t, "Invalid credentials", errResp["detail"])
}

func TestMeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.seedUser(t, models.RoleUser)

	rec := testkit.Request(t, env.handler, http.MethodGet, "/api/auth/me", nil, testkit.BearerHeader(token))
	testkit.AssertStatus(t, rec, http.StatusOK)

	var resp models.PublicUser
	testkit.DecodeJSON(t, rec, &resp)
	assert.Equal(t, user.ID.Hex(), resp.ID)
	assert.Equal(t, user.Email, resp.Email)
}

func TestMeRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := testkit.Request(t, env.handler, http.MethodGet, "/api/auth/me", nil, nil)
	testkit.AssertStatus(t, rec, http.StatusUnauthorized)

	rec = testkit.Request(t, env.handler, http.MethodGet, "/api/auth/me", nil, testkit.BearerHeader("garbage-token"))
	testkit.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestMeDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleUser)

	// Drop all users; the token subject no longer resolves.
	env.users.users = nil

	rec := testkit.Request(t, env.handler, http.MethodGet, "/api/auth/me", nil, testkit.BearerHeader(token))
	testkit.AssertStatus(t, rec, http.StatusUnauthorized)
	require.Contains(t, rec.Body.String(), "detail")
}
