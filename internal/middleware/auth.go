package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/freelance-tracker-api/internal/errors"
	"github.com/yukikurage/freelance-tracker-api/internal/metrics"
	"github.com/yukikurage/freelance-tracker-api/internal/models"
)

// Authenticator resolves a session token to the user holding it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Record, error)
}

// AuthenticateToken gates every mutating request behind a bearer token.
// GET requests and the login/register paths pass through unchecked.
func AuthenticateToken(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == constants.PathLogin || path == constants.PathRegister || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, constants.BearerPrefix) {
			token := strings.TrimPrefix(header, constants.BearerPrefix)
			if token != "" {
				if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
					// Store the user in context for handlers that assign ownership
					c.Set(constants.ContextKeyUser, user)
					c.Next()
					return
				}
			}
		}

		metrics.AuthRejections.Inc()
		apierrors.Unauthorized(c, "")
	}
}

// CurrentUser retrieves the authenticated user from context
func CurrentUser(c *gin.Context) (models.Record, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(models.Record)
	return user, ok
}
