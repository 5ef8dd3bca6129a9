package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordflow/pkg/models"
)

func testProfile() *models.LearningProfile {
	p := models.NewLearningProfile(1, time.Now())
	p.RetentionRate = 0.9
	p.KnownThreshold = 5
	return p
}

func TestFirstSuccessfulReview(t *testing.T) {
	s := New()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rec := models.NewKnowledgeRecord(1, 1, 0, now)

	s.Process(rec, OutcomeSuccess, testProfile(), now)

	assert.Equal(t, 1.0, rec.Stability, "first success starts stability at one day")
	assert.Equal(t, models.StateLearning, rec.State)
	assert.Equal(t, 1, rec.ReviewCount)
	assert.Equal(t, 1, rec.SuccessfulReviews)
	assert.InDelta(t, 4.9, rec.Difficulty, 1e-9)
	// retention 0.9 makes the interval exactly stability days
	assert.Equal(t, now.Add(24*time.Hour), rec.Due)
	require.NotNil(t, rec.LastReview)
	assert.True(t, rec.Due.After(*rec.LastReview))
}

func TestSecondSuccessGrowsStabilityByDifficultyFactor(t *testing.T) {
	s := New()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	profile := testProfile()

	s.Process(rec, OutcomeSuccess, profile, now)
	s.Process(rec, OutcomeSuccess, profile, now.Add(24*time.Hour))

	// difficulty was 4.9 entering the second review: factor = 1.3 + 0.1*(5-4.9)
	assert.InDelta(t, 1.31, rec.Stability, 1e-9)
	assert.InDelta(t, 4.8, rec.Difficulty, 1e-9)
	assert.Equal(t, 2, rec.ReviewCount)
}

func TestFailedReview(t *testing.T) {
	s := New()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.Stability = 2.0
	rec.State = models.StateLearning
	rec.ReviewCount = 3

	s.Process(rec, OutcomeFail, testProfile(), now)

	assert.InDelta(t, 0.4, rec.Stability, 1e-9)
	assert.Equal(t, 1, rec.Lapses)
	assert.InDelta(t, 5.5, rec.Difficulty, 1e-9)
	assert.Equal(t, models.StateLearning, rec.State)
	// 0.1 days is roughly 2.4 hours
	assert.WithinDuration(t, now.Add(144*time.Minute), rec.Due, time.Second)
}

func TestFailedReviewFloorsStability(t *testing.T) {
	s := New()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.Stability = 0.2

	s.Process(rec, OutcomeFail, testProfile(), now)

	assert.Equal(t, 0.1, rec.Stability)
}

func TestFailNeverLeavesRecordNew(t *testing.T) {
	s := New()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	require.Equal(t, models.StateNew, rec.State)

	s.Process(rec, OutcomeFail, testProfile(), now)

	assert.Equal(t, models.StateLearning, rec.State)
}

func TestFailRegressesKnownWord(t *testing.T) {
	s := New()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.State = models.StateKnown
	rec.Stability = 30

	s.Process(rec, OutcomeFail, testProfile(), now)

	assert.Equal(t, models.StateLearning, rec.State)
}

func TestPromotionToKnown(t *testing.T) {
	s := New()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.State = models.StateLearning
	rec.Stability = 8
	rec.SuccessfulReviews = 4
	rec.ReviewCount = 6

	s.Process(rec, OutcomeSuccess, testProfile(), now)

	assert.Equal(t, 5, rec.SuccessfulReviews)
	assert.Equal(t, models.StateKnown, rec.State)
	assert.Equal(t, now.AddDate(0, 0, 365), rec.Due)
}

func TestNewRecordNeverPromotesDirectly(t *testing.T) {
	s := New()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	// Counters that would satisfy the predicate if state were LEARNING.
	rec.Stability = 20
	rec.SuccessfulReviews = 9
	rec.ReviewCount = 9

	s.Process(rec, OutcomeSuccess, testProfile(), now)

	assert.Equal(t, models.StateLearning, rec.State)
}

func TestPromotionRequiresStability(t *testing.T) {
	s := New()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.State = models.StateLearning
	rec.Stability = 3
	rec.SuccessfulReviews = 10
	rec.ReviewCount = 10

	s.Process(rec, OutcomeSuccess, testProfile(), now)

	assert.Equal(t, models.StateLearning, rec.State)
}

func TestSuccessKeepsInvariants(t *testing.T) {
	s := New()
	profile := testProfile()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.Difficulty = 1.0 // already at the floor

	for i := 0; i < 50; i++ {
		s.Process(rec, OutcomeSuccess, profile, now)
		assert.Greater(t, rec.Stability, 0.0)
		assert.GreaterOrEqual(t, rec.Difficulty, 1.0)
		assert.LessOrEqual(t, rec.Difficulty, 10.0)
		assert.True(t, rec.Due.After(*rec.LastReview))
	}
}

func TestFailKeepsDifficultyCapped(t *testing.T) {
	s := New()
	profile := testProfile()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)

	for i := 0; i < 30; i++ {
		s.Process(rec, OutcomeFail, profile, now)
	}
	assert.Equal(t, 10.0, rec.Difficulty)
	assert.Equal(t, 30, rec.Lapses)
}

func TestIntervalScalesWithRetention(t *testing.T) {
	s := New()

	tests := []struct {
		name      string
		stability float64
		retention float64
		want      float64
	}{
		{"retention 0.9 is identity", 10, 0.9, 10},
		{"higher retention lengthens", 10, 0.95, 10 * 0.48677},
		{"lower retention shortens", 10, 0.8, 10 * 2.11770},
		{"floored at one day", 0.5, 0.9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Interval(tt.stability, tt.retention), 1e-3)
		})
	}
}

func TestGrowthFactorFloor(t *testing.T) {
	s := New()
	// In practice difficulty caps at 10 so the factor never drops below 0.8,
	// but the floor guards the arithmetic anyway.
	assert.InDelta(t, 0.8, s.growthFactor(10), 1e-9)
	assert.InDelta(t, 0.1, s.growthFactor(50), 1e-9)
}

func TestMarkKnown(t *testing.T) {
	s := New()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	profile := testProfile()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.SuccessfulReviews = 2

	s.MarkKnown(rec, profile, now)

	assert.Equal(t, models.StateKnown, rec.State)
	assert.Equal(t, now.AddDate(0, 0, 9999), rec.Due)
	assert.Equal(t, profile.KnownThreshold, rec.SuccessfulReviews)
	require.NotNil(t, rec.LastReview)
	assert.Equal(t, now, *rec.LastReview)
}

func TestMarkKnownKeepsHigherCount(t *testing.T) {
	s := New()
	now := time.Now()
	rec := models.NewKnowledgeRecord(1, 1, 0, now)
	rec.SuccessfulReviews = 9

	s.MarkKnown(rec, testProfile(), now)

	assert.Equal(t, 9, rec.SuccessfulReviews)
}
