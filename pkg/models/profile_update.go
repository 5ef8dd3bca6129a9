package models

import (
	"fmt"
	"time"
)

// ProfileUpdate is a partial settings update. Nil fields are untouched.
type ProfileUpdate struct {
	DailyNewWordTarget *int     `json:"daily_new_word_target"`
	FilterStopWords    *bool    `json:"filter_stop_words"`
	RetentionRate      *float64 `json:"retention_rate"`
	KnownThreshold     *int     `json:"known_threshold"`
}

// FieldChange records an accepted settings change.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// ApplyUpdate validates and applies a partial settings update. Fields are
// handled independently: a rejected field keeps its prior value and is
// reported in the error map without blocking sibling fields. Pro-gated
// fields (daily_new_word_target, filter_stop_words) are rejected for
// non-Pro accounts rather than silently downgraded.
func (p *LearningProfile) ApplyUpdate(u ProfileUpdate, now time.Time) (map[string]FieldChange, map[string]string) {
	changes := make(map[string]FieldChange)
	fieldErrors := make(map[string]string)

	if u.DailyNewWordTarget != nil {
		switch {
		case !p.CanModifyDailyNewWordTarget(now):
			fieldErrors["daily_new_word_target"] = "upgrade to Pro to customize daily new word target"
		case *u.DailyNewWordTarget < MinDailyNewWordTarget || *u.DailyNewWordTarget > MaxDailyNewWordTarget:
			fieldErrors["daily_new_word_target"] = fmt.Sprintf(
				"daily new word target must be between %d and %d", MinDailyNewWordTarget, MaxDailyNewWordTarget)
		default:
			changes["daily_new_word_target"] = FieldChange{Old: p.DailyNewWordTarget, New: *u.DailyNewWordTarget}
			p.DailyNewWordTarget = *u.DailyNewWordTarget
		}
	}

	if u.FilterStopWords != nil {
		if !p.CanModifyStopWordFilter(now) {
			fieldErrors["filter_stop_words"] = "upgrade to Pro to customize stop words filtering"
		} else {
			changes["filter_stop_words"] = FieldChange{Old: p.FilterStopWords, New: *u.FilterStopWords}
			p.FilterStopWords = *u.FilterStopWords
		}
	}

	if u.RetentionRate != nil {
		if *u.RetentionRate < MinRetentionRate || *u.RetentionRate > MaxRetentionRate {
			fieldErrors["retention_rate"] = fmt.Sprintf(
				"retention rate must be between %g and %g", MinRetentionRate, MaxRetentionRate)
		} else {
			changes["retention_rate"] = FieldChange{Old: p.RetentionRate, New: *u.RetentionRate}
			p.RetentionRate = *u.RetentionRate
		}
	}

	if u.KnownThreshold != nil {
		if *u.KnownThreshold < MinKnownThreshold || *u.KnownThreshold > MaxKnownThreshold {
			fieldErrors["known_threshold"] = fmt.Sprintf(
				"known threshold must be between %d and %d", MinKnownThreshold, MaxKnownThreshold)
		} else {
			changes["known_threshold"] = FieldChange{Old: p.KnownThreshold, New: *u.KnownThreshold}
			p.KnownThreshold = *u.KnownThreshold
		}
	}

	return changes, fieldErrors
}
