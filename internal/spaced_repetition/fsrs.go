package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/wordflow/pkg/models"
)

// Outcome is the binary result of a single review.
type Outcome int

const (
	// OutcomeFail means the user did not recall the word.
	OutcomeFail Outcome = iota
	// OutcomeSuccess means the user recalled the word.
	OutcomeSuccess
)

// Scheduler implements the FSRS-inspired interval algorithm: stability models
// how many days of retention a word currently has, difficulty modulates how
// fast stability grows on success, and the next due date follows from the
// target retention rate.
type Scheduler struct {
	// MinStability is the floor stability can never drop below.
	MinStability float64
	// FailStabilityFactor shrinks stability on a failed review.
	FailStabilityFactor float64
	// RelearnIntervalDays is the fixed short interval after a failure,
	// regardless of prior stability.
	RelearnIntervalDays float64
	// FailDifficultyStep / SuccessDifficultyStep move difficulty within [1, 10].
	FailDifficultyStep    float64
	SuccessDifficultyStep float64
	// BaseGrowth and GrowthSlope define the stability growth factor
	// 1.3 + 0.1*(5 - difficulty). MinGrowthFactor keeps it positive.
	BaseGrowth      float64
	GrowthSlope     float64
	MinGrowthFactor float64
	// KnownStability is the minimum stability required for promotion to KNOWN.
	KnownStability float64
	// KnownDueDays parks a promoted record far in the future.
	KnownDueDays int
	// ManualKnownDueDays parks a manually marked record effectively forever.
	ManualKnownDueDays int
}

// New returns a scheduler with the default tuning.
func New() *Scheduler {
	return &Scheduler{
		MinStability:          0.1,
		FailStabilityFactor:   0.2,
		RelearnIntervalDays:   0.1, // ~2.4 hours
		FailDifficultyStep:    0.5,
		SuccessDifficultyStep: 0.1,
		BaseGrowth:            1.3,
		GrowthSlope:           0.1,
		MinGrowthFactor:       0.1,
		KnownStability:        7,
		KnownDueDays:          365,
		ManualKnownDueDays:    9999,
	}
}

// Process applies a review outcome to a knowledge record, updating stability,
// difficulty, lapse and review counters, state, and due date. The profile
// supplies the target retention rate and the known-promotion threshold.
// Numeric edge cases are clamped, never raised: stability stays positive and
// difficulty stays within [1, 10] after every call.
func (s *Scheduler) Process(rec *models.KnowledgeRecord, outcome Outcome, profile *models.LearningProfile, now time.Time) {
	switch outcome {
	case OutcomeFail:
		rec.Lapses++
		rec.Stability = math.Max(s.MinStability, rec.Stability*s.FailStabilityFactor)
		rec.Difficulty = math.Min(10.0, rec.Difficulty+s.FailDifficultyStep)
		// A failure always lands in LEARNING: NEW advances, KNOWN regresses
		// back into active review.
		rec.State = models.StateLearning
		rec.Due = now.Add(daysToDuration(s.RelearnIntervalDays))

	case OutcomeSuccess:
		if rec.ReviewCount == 0 {
			rec.Stability = 1.0
		} else {
			rec.Stability *= s.growthFactor(rec.Difficulty)
		}
		rec.SuccessfulReviews++
		rec.Difficulty = math.Max(1.0, rec.Difficulty-s.SuccessDifficultyStep)

		// Promotion is evaluated against the state the record entered the
		// review with, so a NEW record never jumps straight to KNOWN.
		if s.ReadyForKnown(rec, profile) {
			rec.State = models.StateKnown
			rec.Due = now.AddDate(0, 0, s.KnownDueDays)
		} else {
			if rec.State == models.StateNew {
				rec.State = models.StateLearning
			}
			rec.Due = now.Add(daysToDuration(s.Interval(rec.Stability, profile.RetentionRate)))
		}
	}

	rec.ReviewCount++
	reviewed := now
	rec.LastReview = &reviewed
}

// Interval returns the next review interval in days, at least one day:
// stability * ln(retention) / ln(0.9). Both logarithms are negative for
// retention < 1, so the ratio is positive and grows with the target
// retention.
func (s *Scheduler) Interval(stability, retentionRate float64) float64 {
	interval := stability * math.Log(retentionRate) / math.Log(0.9)
	return math.Max(1, interval)
}

// ReadyForKnown reports whether the record qualifies for promotion to KNOWN:
// enough successful reviews, currently LEARNING, and stability of at least a
// week. NEW and KNOWN records never qualify.
func (s *Scheduler) ReadyForKnown(rec *models.KnowledgeRecord, profile *models.LearningProfile) bool {
	return rec.SuccessfulReviews >= profile.KnownThreshold &&
		rec.State == models.StateLearning &&
		rec.Stability >= s.KnownStability
}

// MarkKnown bypasses normal scheduling for a user-initiated "I already know
// this word" action. The successful-review count is raised to the profile
// threshold so the record stays consistent with the promotion invariant.
func (s *Scheduler) MarkKnown(rec *models.KnowledgeRecord, profile *models.LearningProfile, now time.Time) {
	rec.State = models.StateKnown
	rec.Due = now.AddDate(0, 0, s.ManualKnownDueDays)
	reviewed := now
	rec.LastReview = &reviewed
	if rec.SuccessfulReviews < profile.KnownThreshold {
		rec.SuccessfulReviews = profile.KnownThreshold
	}
}

func (s *Scheduler) growthFactor(difficulty float64) float64 {
	factor := s.BaseGrowth + s.GrowthSlope*(5-difficulty)
	if factor < s.MinGrowthFactor {
		factor = s.MinGrowthFactor
	}
	return factor
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
