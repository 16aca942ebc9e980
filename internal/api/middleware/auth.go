package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mawuli/afrivoice/internal/identity"
	"github.com/mawuli/afrivoice/internal/logger"
)

// userKey is the Gin context key for the resolved user.
const userKey = "user"

// RequireUser resolves the bearer token through the identity provider and
// aborts with 401 when no identity can be established. Handlers behind it
// can rely on CurrentUser returning a non-nil user.
func RequireUser(client *identity.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		user, err := client.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "authentication required",
				})
				return
			}
			logger.FromContext(c.Request.Context()).WithError(err).Error("Identity lookup failed")
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"error": "identity provider unavailable",
			})
			return
		}

		c.Set(userKey, user)
		ctx := logger.SetUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser, or nil.
func CurrentUser(c *gin.Context) *identity.User {
	if v, exists := c.Get(userKey); exists {
		if user, ok := v.(*identity.User); ok {
			return user
		}
	}
	return nil
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
