package controllers

import (
	testutils "github.com/alex-pricope/simple-polls/api/controllers/testing"
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestAccountRoutes(t *testing.T) {
	app := setupTestApp(t)
	app.register(t, "alice")

	t.Run("Unhappy path - duplicate username", func(t *testing.T) {
		res := testutils.PerformRequest(app.router, http.MethodPost, "/polls/register/", models.RegisterRequest{
			Username: "alice", Password1: "correct-horse", Password2: "correct-horse",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Code)

		var body models.ErrorResponse
		decode(t, res, &body)
		assert.Equal(t, "username", body.Field)
	})

	t.Run("Happy path - login sets the session cookie and it works", func(t *testing.T) {
		form := url.Values{"username": {"alice"}, "password": {"correct-horse"}, "next": {"/polls/search/"}}
		res := testutils.PerformFormRequest(app.router, "/polls/login/", form, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var session models.SessionResponse
		decode(t, res, &session)
		assert.Equal(t, "/polls/search/", session.Next)

		cookie := sessionCookie(t, res)
		assert.Equal(t, session.Token, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		res = testutils.PerformRequest(app.router, http.MethodGet, "/polls/", nil, map[string]string{"Cookie": "sessionid=" + cookie.Value})
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("Happy path - offsite next is ignored", func(t *testing.T) {
		res := testutils.PerformRequest(app.router, http.MethodPost, "/polls/login/",
			models.LoginRequest{Username: "alice", Password: "correct-horse", Next: "//evil.example/"}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var session models.SessionResponse
		decode(t, res, &session)
		assert.Equal(t, "/polls/", session.Next)
	})

	t.Run("Happy path - logout revokes the token", func(t *testing.T) {
		res := testutils.PerformRequest(app.router, http.MethodPost, "/polls/login/",
			models.LoginRequest{Username: "alice", Password: "correct-horse"}, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var session models.SessionResponse
		decode(t, res, &session)

		res = testutils.PerformRequest(app.router, http.MethodPost, "/polls/logout/", nil, testutils.Bearer(session.Token))
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(app.router, http.MethodGet, "/polls/", nil, testutils.Bearer(session.Token))
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - wrong password", func(t *testing.T) {
		res := testutils.PerformRequest(app.router, http.MethodPost, "/polls/login/",
			models.LoginRequest{Username: "alice", Password: "wrong-password"}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestLoginThrottleRoute(t *testing.T) {
	app := setupTestApp(t)
	app.register(t, "alice")

	for i := 0; i < 5; i++ {
		res := testutils.PerformRequest(app.router, http.MethodPost, "/polls/login/",
			models.LoginRequest{Username: "alice", Password: "wrong-password"}, nil)
		require.Equal(t, http.StatusUnauthorized, res.Code)
	}

	res := testutils.PerformRequest(app.router, http.MethodPost, "/polls/login/",
		models.LoginRequest{Username: "alice", Password: "correct-horse"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, res.Code)
}

func sessionCookie(t *testing.T, res *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range res.Result().Cookies() {
		if c.Name == "sessionid" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}
