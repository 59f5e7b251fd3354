package transport

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeAuthenticator struct {
	tokens map[string]services.Identity
	err    error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (services.Identity, error) {
	if f.err != nil {
		return services.Identity{}, f.err
	}
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return services.Identity{}, services.ErrUnauthenticated
}

func setupRouter(auth Authenticator) *gin.Engine {
	r := NewRouter(gin.TestMode, []string{"http://localhost:3000"})
	r.GET("/polls/secret/", AuthMiddleware(auth, "sessionid"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentIdentity(c).Username})
	})
	return r
}

func TestRouter(t *testing.T) {
	r := setupRouter(&fakeAuthenticator{})

	t.Run("Happy path - health", func(t *testing.T) {
		res := httptest.NewRecorder()
		r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, res.Code)
		assert.NotEmpty(t, res.Header().Get(RequestIDHeader))
	})

	t.Run("Happy path - request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		assert.Equal(t, "abc-123", res.Header().Get(RequestIDHeader))
	})

	t.Run("Unhappy path - unknown route", func(t *testing.T) {
		res := httptest.NewRecorder()
		r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Happy path - CORS preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "GET")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		assert.Equal(t, http.StatusNoContent, res.Code)
		assert.Equal(t, "http://localhost:3000", res.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAuthMiddleware(t *testing.T) {
	alice := services.Identity{UserID: 1, Username: "alice"}
	r := setupRouter(&fakeAuthenticator{tokens: map[string]services.Identity{"good": alice}})

	t.Run("Happy path - cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/polls/secret/", nil)
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: "good"})
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), "alice")
	})

	t.Run("Happy path - bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/polls/secret/", nil)
		req.Header.Set("Authorization", "Bearer good")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("Unhappy path - anonymous gets the login url", func(t *testing.T) {
		res := httptest.NewRecorder()
		r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/polls/secret/?x=1", nil))
		require.Equal(t, http.StatusUnauthorized, res.Code)

		var body models.UnauthenticatedResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, "/polls/login/?next=%2Fpolls%2Fsecret%2F%3Fx%3D1", body.LoginURL)
	})

	t.Run("Unhappy path - store failure is a 500", func(t *testing.T) {
		broken := setupRouter(&fakeAuthenticator{err: errors.New("redis down")})
		req := httptest.NewRequest(http.MethodGet, "/polls/secret/", nil)
		req.Header.Set("Authorization", "Bearer good")
		res := httptest.NewRecorder()
		broken.ServeHTTP(res, req)
		assert.Equal(t, http.StatusInternalServerError, res.Code)
	})
}
