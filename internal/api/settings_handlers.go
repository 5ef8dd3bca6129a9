package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/wordflow/pkg/models"
)

// handleGetSettings returns the user's learning profile, including the
// effective values a free account actually runs with.
func (s *Server) handleGetSettings(c *gin.Context) {
	userID := currentUserID(c)

	profile, err := s.store.Profiles.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"effective": gin.H{
			"daily_new_word_target": profile.EffectiveDailyNewWordTarget(now),
			"filter_stop_words":     profile.EffectiveStopWordFilter(now),
			"is_pro":                profile.IsProActive(now),
		},
	})
}

// handleUpdateSettings applies a partial settings update. Each field is
// validated on its own: valid fields are saved even when a sibling
// field is rejected, and the rejections come back per field.
func (s *Server) handleUpdateSettings(c *gin.Context) {
	userID := currentUserID(c)

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}

	profile, err := s.store.Profiles.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	changes, fieldErrors := profile.ApplyUpdate(update, time.Now().UTC())
	if len(changes) > 0 {
		if err := s.store.Profiles.Update(profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"changes": changes,
		"errors":  fieldErrors,
	})
}
