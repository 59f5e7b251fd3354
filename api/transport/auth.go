package transport

import (
	"context"
	"errors"
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"net/http"
	"net/url"
	"strings"
)

const (
	identityKey = "identity"
	LoginPath   = "/polls/login/"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Identity, error)
}

// AuthMiddleware resolves the session token from the cookie or a bearer header
// and rejects the request with a login hint when there is no valid session.
func AuthMiddleware(authenticator Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				logging.Log.Infof("AUTH: anonymous request to %s", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.UnauthenticatedResponse{
					Error:    services.ErrUnauthenticated.Error(),
					LoginURL: LoginURL(c.Request.URL.RequestURI()),
				})
				return
			}
			logging.Log.Errorf("AUTH: failed to authenticate request: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not verify session"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func SessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// CurrentIdentity is the caller set by AuthMiddleware, or the anonymous identity.
func CurrentIdentity(c *gin.Context) services.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(services.Identity); ok {
			return identity
		}
	}
	return services.Identity{}
}

func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}
