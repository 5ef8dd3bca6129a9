package api

import (
	"github.com/gin-gonic/gin"

	"github.com/example/wordflow/internal/database"
	"github.com/example/wordflow/internal/ingest"
	"github.com/example/wordflow/internal/review"
)

// Server is the HTTP surface of the application
type Server struct {
	store  *database.Store
	review *review.Service
	ingest *ingest.Service
	router *gin.Engine
}

// NewServer creates the server and registers all routes
func NewServer(store *database.Store, reviewSvc *review.Service, ingestSvc *ingest.Service) *Server {
	router := gin.Default()

	s := &Server{
		store:  store,
		review: reviewSvc,
		ingest: ingestSvc,
		router: router,
	}

	api := router.Group("/api", s.authRequired)
	{
		api.GET("/review/next", s.handleNextWord)
		api.POST("/review/:id", s.handleSubmitReview)
		api.POST("/words/:id/known", s.handleMarkKnown)
		api.POST("/words/:id/ignore", s.handleIgnoreWord)

		api.GET("/sources", s.handleListSources)
		api.POST("/sources", s.handleCreateSource)
		api.POST("/sources/analyze", s.handleAnalyzeText)
		api.POST("/sources/wordlist", s.handleUploadWordlist)
		api.DELETE("/sources/:id", s.handleDeleteSource)

		api.GET("/settings", s.handleGetSettings)
		api.PATCH("/settings", s.handleUpdateSettings)

		api.GET("/stats/reviews", s.handleReviewStats)
	}

	return s
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests and custom http.Server setups
func (s *Server) Handler() *gin.Engine {
	return s.router
}
