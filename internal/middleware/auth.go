package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/studenthub-api/internal/auth"
	"github.com/studenthub/studenthub-api/internal/constants"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
)

// RequireAuth extracts the bearer credential, verifies it, and stores the
// identity in the request context. A missing header and a failed verification
// produce the identical response so callers cannot tell the two apart.
func RequireAuth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthenticated(c)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthenticated(c)
			c.Abort()
			return
		}

		identity, err := tm.Verify(parts[1])
		if err != nil {
			apierrors.Unauthenticated(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

// RequireAdmin checks the admin flag on the verified identity. It must be
// mounted after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthenticated(c)
			c.Abort()
			return
		}

		if !identity.IsAdmin {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetIdentity retrieves the verified identity from the request context.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}

	identity, ok := value.(auth.Identity)
	return identity, ok
}
