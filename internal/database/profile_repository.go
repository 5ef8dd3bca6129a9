package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/wordflow/pkg/models"
)

// ProfileRepository handles database operations for learning profiles
type ProfileRepository struct{}

// NewProfileRepository creates a new repository instance
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

// GetOrCreate returns the user's learning profile, creating it with default
// settings on first access. Every entry point that needs a profile goes
// through here; nothing is created implicitly elsewhere.
func (r *ProfileRepository) GetOrCreate(userID int64) (*models.LearningProfile, error) {
	var profile models.LearningProfile
	err := DB.Get(&profile, "SELECT * FROM learning_profiles WHERE user_id = $1", userID)
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get profile: %v", err)
	}

	fresh := models.NewLearningProfile(userID, time.Now())
	_, err = DB.Exec(`
		INSERT INTO learning_profiles (
			user_id, daily_learning_target, daily_new_word_target,
			words_learned_today, last_learning_date, is_pro, pro_expiry,
			filter_stop_words, retention_rate, known_threshold
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		fresh.UserID, fresh.DailyLearningTarget, fresh.DailyNewWordTarget,
		fresh.WordsLearnedToday, fresh.LastLearningDate, fresh.IsPro, fresh.ProExpiry,
		fresh.FilterStopWords, fresh.RetentionRate, fresh.KnownThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %v", err)
	}
	return fresh, nil
}

// Update persists the profile's mutable settings and counters.
func (r *ProfileRepository) Update(profile *models.LearningProfile) error {
	_, err := DB.Exec(`
		UPDATE learning_profiles SET
			daily_learning_target = $1,
			daily_new_word_target = $2,
			words_learned_today = $3,
			last_learning_date = $4,
			is_pro = $5,
			pro_expiry = $6,
			filter_stop_words = $7,
			retention_rate = $8,
			known_threshold = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $10`,
		profile.DailyLearningTarget, profile.DailyNewWordTarget,
		profile.WordsLearnedToday, profile.LastLearningDate, profile.IsPro,
		profile.ProExpiry, profile.FilterStopWords, profile.RetentionRate,
		profile.KnownThreshold, profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %v", err)
	}
	return nil
}
