// Package review selects the next word a user should study and applies
// review outcomes through the spaced-repetition scheduler.
package review

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/example/wordflow/internal/spaced_repetition"
	"github.com/example/wordflow/pkg/models"
)

// ErrInvalidAction is returned for a review action outside {"know",
// "dont_know"}. No state is mutated in that case.
var ErrInvalidAction = errors.New("invalid review action")

// Store is the persistence the review service needs. The core assumes
// at-most-one in-flight mutation per record; serializing concurrent writers
// to the same record is the store's responsibility.
type Store interface {
	// DueRecords returns the user's records in the given state with
	// due <= now, ordered by priority descending then due ascending.
	DueRecords(userID int64, state models.State, now time.Time) ([]models.KnowledgeRecord, error)
	RecordByID(userID, recordID int64) (*models.KnowledgeRecord, error)
	GetOrCreateRecord(userID, wordID int64, priority int, now time.Time) (*models.KnowledgeRecord, bool, error)
	SaveRecord(rec *models.KnowledgeRecord) error
	GetOrCreateProfile(userID int64) (*models.LearningProfile, error)
	SaveProfile(profile *models.LearningProfile) error
}

// Progress describes how far a record is from KNOWN promotion, returned with
// every review response.
type Progress struct {
	SuccessfulReviews int     `json:"successful_reviews"`
	Threshold         int     `json:"threshold"`
	ReviewsRemaining  int     `json:"reviews_remaining"`
	StabilityDays     float64 `json:"stability_days"`
	NextReviewHours   float64 `json:"next_review_hours"`
}

// Result is the outcome of a submitted review: the updated record, progress
// toward KNOWN, and the next word to present (nil when the queue is empty).
type Result struct {
	Record   *models.KnowledgeRecord `json:"record"`
	Progress Progress                `json:"progress"`
	Next     *models.KnowledgeRecord `json:"next"`
}

// Service coordinates queue selection, quota accounting, and scheduling.
type Service struct {
	store     Store
	scheduler *spaced_repetition.Scheduler
	now       func() time.Time
}

// NewService creates a review service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store:     store,
		scheduler: spaced_repetition.New(),
		now:       time.Now,
	}
}

// NextWord returns the highest-priority due record for the user, or nil when
// nothing is available. LEARNING reviews are never limited; NEW words are
// rationed by the remaining daily quota before the final merge. Excluded ids
// support an immediate re-fetch without re-surfacing the word just answered.
func (s *Service) NextWord(userID int64, excluding ...int64) (*models.KnowledgeRecord, error) {
	now := s.now()

	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.CheckAndResetDailyCount(now) {
		if err := s.store.SaveProfile(profile); err != nil {
			return nil, fmt.Errorf("failed to reset daily count: %w", err)
		}
	}

	reviewWords, err := s.store.DueRecords(userID, models.StateLearning, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due reviews: %w", err)
	}
	newWords, err := s.store.DueRecords(userID, models.StateNew, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch new words: %w", err)
	}

	skip := make(map[int64]struct{}, len(excluding))
	for _, id := range excluding {
		skip[id] = struct{}{}
	}
	reviewWords = dropExcluded(reviewWords, skip)
	newWords = dropExcluded(newWords, skip)

	// Truncate the NEW candidates to the remaining quota before merging;
	// the cap applies to how many enter consideration, not the final order.
	remaining := profile.EffectiveDailyNewWordTarget(now) - profile.WordsLearnedToday
	if remaining <= 0 {
		newWords = nil
	} else if len(newWords) > remaining {
		newWords = newWords[:remaining]
	}

	candidates := append(reviewWords, newWords...)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].Due.Before(candidates[j].Due)
	})

	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}

// SubmitReview applies a "know"/"dont_know" answer to the record, updates the
// daily counter when a NEW word enters learning, and fetches the next word
// excluding the one just answered.
func (s *Service) SubmitReview(userID, recordID int64, action string) (*Result, error) {
	outcome, err := parseAction(action)
	if err != nil {
		return nil, err
	}
	now := s.now()

	rec, err := s.store.RecordByID(userID, recordID)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	profileDirty := profile.CheckAndResetDailyCount(now)

	// Any review moves a NEW word out of NEW, so the daily counter moves on
	// the first review regardless of outcome, gated by the legacy target.
	if rec.State == models.StateNew && profile.RecordNewWordLearned() {
		profileDirty = true
	}
	if profileDirty {
		if err := s.store.SaveProfile(profile); err != nil {
			return nil, fmt.Errorf("failed to save profile: %w", err)
		}
	}

	s.scheduler.Process(rec, outcome, profile, now)
	if err := s.store.SaveRecord(rec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	next, err := s.NextWord(userID, rec.ID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Record: rec,
		Progress: Progress{
			SuccessfulReviews: rec.SuccessfulReviews,
			Threshold:         profile.KnownThreshold,
			ReviewsRemaining:  maxInt(0, profile.KnownThreshold-rec.SuccessfulReviews),
			StabilityDays:     round1(rec.Stability),
			NextReviewHours:   round1(rec.Due.Sub(now).Hours()),
		},
		Next: next,
	}, nil
}

// MarkKnown records a user-initiated "I already know this word". The record
// is created on the fly (priority 0) when the word was never encountered.
func (s *Service) MarkKnown(userID, wordID int64) (*models.KnowledgeRecord, error) {
	now := s.now()

	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	rec, _, err := s.store.GetOrCreateRecord(userID, wordID, 0, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	s.scheduler.MarkKnown(rec, profile, now)
	if err := s.store.SaveRecord(rec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	return rec, nil
}

// Ignore moves a word into the terminal IGNORED state. Only this explicit
// action reaches IGNORED; the scheduler never does.
func (s *Service) Ignore(userID, wordID int64) (*models.KnowledgeRecord, error) {
	now := s.now()

	rec, _, err := s.store.GetOrCreateRecord(userID, wordID, 0, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	rec.State = models.StateIgnored
	rec.Due = now.AddDate(0, 0, 9999)
	if err := s.store.SaveRecord(rec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	return rec, nil
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func parseAction(action string) (spaced_repetition.Outcome, error) {
	switch action {
	case "know":
		return spaced_repetition.OutcomeSuccess, nil
	case "dont_know":
		return spaced_repetition.OutcomeFail, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, action)
}

func dropExcluded(recs []models.KnowledgeRecord, skip map[int64]struct{}) []models.KnowledgeRecord {
	if len(skip) == 0 {
		return recs
	}
	kept := recs[:0]
	for _, r := range recs {
		if _, ok := skip[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	return kept
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
