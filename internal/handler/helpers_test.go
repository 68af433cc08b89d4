package handler

import (
	"github.com/gin-gonic/gin"

	"yapyap/backend/internal/auth"
)

// asIdentity seeds the context with a verified identity, standing in for the
// auth middleware in handler tests.
func asIdentity(id auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.SetIdentity(c, id)
		c.Next()
	}
}

var alice = auth.Identity{UserID: 1, Name: "alice", StatusID: 1}
