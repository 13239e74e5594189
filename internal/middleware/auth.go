package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/auth"
)

const (
	userIDKey  = "user_id"
	primaryKey = "primary_session"
)

// Authenticate resolves the caller from a bearer access token or the session
// cookie and stores the user id in the gin context. Requests with neither are
// rejected before any handler or storage call runs.
func Authenticate(provider auth.Provider, sessions *auth.SessionCodec, resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var primary *auth.PrimarySession
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
				return
			}
			session, err := provider.Verify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: " + err.Error()})
				return
			}
			primary = session
		}

		var secondary *auth.SecondarySession
		if primary == nil {
			if value, err := c.Cookie(auth.SessionCookieName); err == nil && value != "" {
				// A stale or tampered cookie is treated as no session at all.
				if s, err := sessions.Decode(value); err == nil {
					secondary = s
				}
			}
		}

		userID, ok := resolver.Resolve(c.Request.Context(), primary, secondary)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(userIDKey, userID)
		c.Set(primaryKey, primary != nil)
		c.Next()
	}
}

// UserID returns the id set by Authenticate.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// IsPrimary reports whether the caller signed in with a password account.
func IsPrimary(c *gin.Context) bool {
	return c.GetBool(primaryKey)
}
