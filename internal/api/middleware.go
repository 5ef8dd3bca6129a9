package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/wordflow/internal/database"
)

const userIDKey = "userID"

// authRequired resolves the Authorization header to a user. Both
// "Bearer <token>" and "Token <token>" forms are accepted.
func (s *Server) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
		return
	}

	token := header
	for _, prefix := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, prefix) {
			token = strings.TrimPrefix(header, prefix)
			break
		}
	}

	user, err := s.store.Users.GetByToken(token)
	if errors.Is(err, database.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	c.Set(userIDKey, user.ID)
	c.Next()
}

// currentUserID returns the authenticated user's id set by authRequired
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
