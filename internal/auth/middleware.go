package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yapyap/backend/pkg/jwt"
)

const identityKey = "identity"

// Identity is the verified acting identity for a request, extracted once from
// the bearer token and threaded to every downstream call.
type Identity struct {
	UserID   uint
	Name     string
	StatusID int
}

// Middleware verifies the Authorization header and stores the resulting
// Identity in the request context. Missing, malformed and invalid tokens all
// produce the same 401 response.
func Middleware(issuer *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := issuer.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		SetIdentity(c, Identity{UserID: userID, Name: claims.Name, StatusID: claims.StatusID})
		c.Next()
	}
}

// SetIdentity stores the identity in the gin context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// MustIdentity returns the identity set by Middleware. It must only be called
// on routes behind the middleware.
func MustIdentity(c *gin.Context) Identity {
	v, _ := c.Get(identityKey)
	return v.(Identity)
}
