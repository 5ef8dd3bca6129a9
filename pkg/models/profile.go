package models

import "time"

// Settings bounds enforced on profile updates.
const (
	MinDailyNewWordTarget = 5
	MaxDailyNewWordTarget = 100
	MinRetentionRate      = 0.8
	MaxRetentionRate      = 0.95
	MinKnownThreshold     = 3
	MaxKnownThreshold     = 10

	// FreeDailyNewWordTarget is the fixed effective daily target for
	// non-Pro accounts regardless of the stored preference.
	FreeDailyNewWordTarget = 20
)

// LearningProfile holds a user's spaced-repetition settings and the daily
// new-word accounting. One profile exists per user.
type LearningProfile struct {
	UserID int64 `json:"user_id" db:"user_id"`

	// DailyLearningTarget is the legacy cap gating the words_learned_today
	// increment. It is distinct from DailyNewWordTarget and the two are
	// deliberately not unified.
	DailyLearningTarget int `json:"daily_learning_target" db:"daily_learning_target"`

	// DailyNewWordTarget caps how many NEW words enter the queue per day.
	// Pro-customizable within [5, 100]; free accounts get a fixed 20.
	DailyNewWordTarget int `json:"daily_new_word_target" db:"daily_new_word_target"`

	// WordsLearnedToday is meaningful only when LastLearningDate is the
	// current UTC calendar date; read it through CheckAndResetDailyCount.
	WordsLearnedToday int       `json:"words_learned_today" db:"words_learned_today"`
	LastLearningDate  time.Time `json:"last_learning_date" db:"last_learning_date"`

	IsPro     bool       `json:"is_pro" db:"is_pro"`
	ProExpiry *time.Time `json:"pro_expiry" db:"pro_expiry"`

	// FilterStopWords penalizes stop words in priority scoring. Pro-gated:
	// free accounts are always treated as filtering enabled.
	FilterStopWords bool `json:"filter_stop_words" db:"filter_stop_words"`

	RetentionRate  float64 `json:"retention_rate" db:"retention_rate"`   // [0.8, 0.95]
	KnownThreshold int     `json:"known_threshold" db:"known_threshold"` // [3, 10]

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewLearningProfile returns a profile with default settings.
func NewLearningProfile(userID int64, now time.Time) *LearningProfile {
	return &LearningProfile{
		UserID:              userID,
		DailyLearningTarget: 20,
		DailyNewWordTarget:  20,
		LastLearningDate:    utcDate(now),
		FilterStopWords:     true,
		RetentionRate:       0.9,
		KnownThreshold:      5,
	}
}

// utcDate truncates t to its UTC calendar date.
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckAndResetDailyCount zeroes WordsLearnedToday when the UTC calendar
// date has rolled over since the last reset. It reports whether the profile
// changed and must be persisted. Calling it again on the same day is a no-op.
func (p *LearningProfile) CheckAndResetDailyCount(now time.Time) bool {
	today := utcDate(now)
	if p.LastLearningDate.Before(today) {
		p.WordsLearnedToday = 0
		p.LastLearningDate = today
		return true
	}
	return false
}

// RecordNewWordLearned counts one more new word learned today, gated by the
// legacy DailyLearningTarget cap. It reports whether the counter moved.
// CheckAndResetDailyCount must have been called first.
func (p *LearningProfile) RecordNewWordLearned() bool {
	if p.WordsLearnedToday >= p.DailyLearningTarget {
		return false
	}
	p.WordsLearnedToday++
	return true
}

// IsProActive reports whether the account has a currently valid Pro
// entitlement. A Pro account without an expiry date is treated as unlimited.
func (p *LearningProfile) IsProActive(now time.Time) bool {
	if !p.IsPro {
		return false
	}
	if p.ProExpiry == nil {
		return true
	}
	return now.Before(*p.ProExpiry)
}

// EffectiveDailyNewWordTarget returns the daily new-word cap actually
// applied: the stored target for Pro accounts, the fixed free-tier value
// otherwise.
func (p *LearningProfile) EffectiveDailyNewWordTarget(now time.Time) int {
	if !p.IsProActive(now) {
		return FreeDailyNewWordTarget
	}
	return p.DailyNewWordTarget
}

// EffectiveStopWordFilter returns the stop-word filtering actually applied:
// always on for free accounts, the stored preference for Pro.
func (p *LearningProfile) EffectiveStopWordFilter(now time.Time) bool {
	if !p.IsProActive(now) {
		return true
	}
	return p.FilterStopWords
}

// CanModifyDailyNewWordTarget reports whether the account may customize the
// daily new-word target (Pro only).
func (p *LearningProfile) CanModifyDailyNewWordTarget(now time.Time) bool {
	return p.IsProActive(now)
}

// CanModifyStopWordFilter reports whether the account may customize stop-word
// filtering (Pro only).
func (p *LearningProfile) CanModifyStopWordFilter(now time.Time) bool {
	return p.IsProActive(now)
}
