package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// dayCount is one bar of the review activity chart
type dayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// handleReviewStats returns review counts per UTC day for the chart on
// the progress page. Days with no reviews are included as zeros so the
// chart axis stays continuous.
func (s *Server) handleReviewStats(c *gin.Context) {
	userID := currentUserID(c)

	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || (n != 7 && n != 30) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be 7 or 30"})
			return
		}
		days = n
	}

	now := time.Now().UTC()
	start := now.Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))

	times, err := s.store.Records.ReviewTimesSince(userID, start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	counts := make(map[string]int)
	for _, ts := range times {
		counts[ts.UTC().Format("2006-01-02")]++
	}

	series := make([]dayCount, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, dayCount{Date: day, Count: counts[day]})
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "series": series})
}
