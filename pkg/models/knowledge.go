package models

import "time"

// State is the lifecycle stage of a user's knowledge of a word.
type State string

const (
	// StateNew marks a word the user has encountered but never reviewed.
	StateNew State = "NEW"
	// StateLearning marks a word in active spaced-repetition review.
	StateLearning State = "LEARNING"
	// StateKnown marks a word the user has mastered, organically or manually.
	StateKnown State = "KNOWN"
	// StateIgnored marks a word excluded from review by explicit user action.
	// Treated like KNOWN for queue and coverage purposes, tracked separately
	// for reporting.
	StateIgnored State = "IGNORED"
)

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	switch s {
	case StateNew, StateLearning, StateKnown, StateIgnored:
		return true
	}
	return false
}

// Reviewable reports whether records in this state still circulate through
// the review queue.
func (s State) Reviewable() bool {
	return s == StateNew || s == StateLearning
}

// Covered reports whether the word counts as known for coverage analysis.
func (s State) Covered() bool {
	return s == StateKnown || s == StateIgnored
}

// KnowledgeRecord is the per-user, per-word spaced-repetition state.
// Exactly one record exists per (user, word) pair.
type KnowledgeRecord struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
	WordID int64 `json:"word_id" db:"word_id"`
	State  State `json:"state" db:"state"`

	// Due is the earliest time the record may again be selected for review.
	// A due date in the past is the normal condition for NEW and LEARNING
	// records awaiting review.
	Due        time.Time  `json:"due" db:"due"`
	Stability  float64    `json:"stability" db:"stability"`   // retention days, >= 0
	Difficulty float64    `json:"difficulty" db:"difficulty"` // [1.0, 10.0]
	Lapses     int        `json:"lapses" db:"lapses"`
	LastReview *time.Time `json:"last_review" db:"last_review"`

	// Priority is the content-importance score driving queue order,
	// higher first.
	Priority int `json:"priority" db:"priority"`

	ReviewCount       int `json:"review_count" db:"review_count"`
	SuccessfulReviews int `json:"successful_reviews" db:"successful_reviews"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultDifficulty is the starting difficulty for a freshly created record.
const DefaultDifficulty = 5.0

// NewKnowledgeRecord creates a record in the NEW state, due immediately.
func NewKnowledgeRecord(userID, wordID int64, priority int, now time.Time) *KnowledgeRecord {
	return &KnowledgeRecord{
		UserID:     userID,
		WordID:     wordID,
		State:      StateNew,
		Due:        now,
		Difficulty: DefaultDifficulty,
		Priority:   priority,
	}
}
