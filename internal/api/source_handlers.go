package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/wordflow/internal/database"
	"github.com/example/wordflow/internal/textproc"
	"github.com/example/wordflow/internal/wordlist"
	"github.com/example/wordflow/pkg/models"
)

type createSourceRequest struct {
	Title   string `json:"title" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// handleCreateSource ingests a new text source: tokenize, score, and
// create knowledge records for every word the user has not met yet.
func (s *Server) handleCreateSource(c *gin.Context) {
	userID := currentUserID(c)

	var req createSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, type and content are required"})
		return
	}

	sourceType := models.SourceType(req.Type)
	if !sourceType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown source type"})
		return
	}

	frequencies := textproc.Frequencies(req.Content)
	if len(frequencies) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source contains no words"})
		return
	}

	analysis, err := s.ingest.Analyze(userID, frequencies)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	source, err := s.store.Sources.Create(userID, req.Title, sourceType, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ingest.IngestWordFrequencies(source, userID, frequencies)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"source":   source,
		"result":   result,
		"analysis": analysis,
	})
}

type analyzeRequest struct {
	Content string `json:"content" binding:"required"`
}

// handleAnalyzeText reports coverage for a text without importing it.
func (s *Server) handleAnalyzeText(c *gin.Context) {
	userID := currentUserID(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	frequencies := textproc.Frequencies(req.Content)
	analysis, err := s.ingest.Analyze(userID, frequencies)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"analysis":   analysis,
		"stop_words": textproc.Stats(frequencies),
	})
}

// handleUploadWordlist imports an uploaded Excel or CSV vocabulary
// list as a WORDLIST source.
func (s *Server) handleUploadWordlist(c *gin.Context) {
	userID := currentUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	parsed, err := wordlist.Parse(file, fileHeader.Filename, wordlist.DefaultConfig())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(parsed.Frequencies) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wordlist contains no usable words"})
		return
	}

	source, err := s.store.Sources.Create(userID, title, models.SourceWordList, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ingest.IngestWordFrequencies(source, userID, parsed.Frequencies)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"source": source,
		"import": parsed,
		"result": result,
	})
}

// handleListSources returns the user's imported sources.
func (s *Server) handleListSources(c *gin.Context) {
	sources, err := s.store.Sources.ListByUser(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

// handleDeleteSource removes a source and sweeps the words that only
// existed because of it.
func (s *Server) handleDeleteSource(c *gin.Context) {
	userID := currentUserID(c)

	sourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source id"})
		return
	}

	if _, err := s.store.Sources.GetByIDAndUser(sourceID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ingest.OnSourceDeleted(sourceID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
