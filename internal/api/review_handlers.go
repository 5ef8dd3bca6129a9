package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/wordflow/internal/database"
	"github.com/example/wordflow/internal/review"
	"github.com/example/wordflow/pkg/models"
)

// handleNextWord returns the next word to review, or a null record
// when nothing is due and the daily quota is spent.
func (s *Server) handleNextWord(c *gin.Context) {
	userID := currentUserID(c)

	rec, err := s.review.NextWord(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"record": nil, "word": nil})
		return
	}

	word, err := s.store.Words.GetByID(rec.WordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec, "word": word})
}

type reviewRequest struct {
	Action string `json:"action" binding:"required"`
}

// handleSubmitReview grades one review and returns the updated record,
// progress toward KNOWN, and the next word in the queue.
func (s *Server) handleSubmitReview(c *gin.Context) {
	userID := currentUserID(c)

	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	result, err := s.review.SubmitReview(userID, recordID, req.Action)
	if errors.Is(err, review.ErrInvalidAction) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"record":   result.Record,
		"progress": result.Progress,
		"next":     result.Next,
	}
	if result.Next != nil {
		nextWord, err := s.store.Words.GetByID(result.Next.WordID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp["next_word"] = nextWord
	}
	c.JSON(http.StatusOK, resp)
}

// handleMarkKnown marks a word the user already knows without going
// through the review cycle.
func (s *Server) handleMarkKnown(c *gin.Context) {
	s.applyWordAction(c, s.review.MarkKnown)
}

// handleIgnoreWord removes a word from scheduling permanently.
func (s *Server) handleIgnoreWord(c *gin.Context) {
	s.applyWordAction(c, s.review.Ignore)
}

func (s *Server) applyWordAction(c *gin.Context, action func(userID, wordID int64) (*models.KnowledgeRecord, error)) {
	userID := currentUserID(c)

	wordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word id"})
		return
	}
	if _, err := s.store.Words.GetByID(wordID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rec, err := action(userID, wordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}
