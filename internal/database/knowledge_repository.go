package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/wordflow/pkg/models"
)

// KnowledgeRepository handles database operations for knowledge records
type KnowledgeRepository struct{}

// NewKnowledgeRepository creates a new repository instance
func NewKnowledgeRepository() *KnowledgeRepository {
	return &KnowledgeRepository{}
}

// GetByID returns one of the user's records by primary key.
func (r *KnowledgeRepository) GetByID(userID, id int64) (*models.KnowledgeRecord, error) {
	var rec models.KnowledgeRecord
	err := DB.Get(&rec, "SELECT * FROM knowledge_records WHERE id = $1 AND user_id = $2", id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("knowledge record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge record: %v", err)
	}
	return &rec, nil
}

// GetByUserAndWord returns the record for a specific user and word.
func (r *KnowledgeRepository) GetByUserAndWord(userID, wordID int64) (*models.KnowledgeRecord, error) {
	var rec models.KnowledgeRecord
	err := DB.Get(&rec, "SELECT * FROM knowledge_records WHERE user_id = $1 AND word_id = $2", userID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("knowledge record for word %d: %w", wordID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge record: %v", err)
	}
	return &rec, nil
}

// GetOrCreate returns the record for (user, word), creating it in the NEW
// state with the given priority when absent. At most one record exists per
// pair; the unique constraint backs that invariant.
func (r *KnowledgeRepository) GetOrCreate(userID, wordID int64, priority int, now time.Time) (*models.KnowledgeRecord, bool, error) {
	rec, err := r.GetByUserAndWord(userID, wordID)
	if err == nil {
		return rec, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	fresh := models.NewKnowledgeRecord(userID, wordID, priority, now)
	if err := r.Create(fresh); err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}

// Create inserts a new knowledge record.
func (r *KnowledgeRepository) Create(rec *models.KnowledgeRecord) error {
	query := `
		INSERT INTO knowledge_records (
			user_id, word_id, state, due, stability, difficulty, lapses,
			last_review, priority, review_count, successful_reviews
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	args := []interface{}{
		rec.UserID, rec.WordID, rec.State, rec.Due, rec.Stability, rec.Difficulty,
		rec.Lapses, rec.LastReview, rec.Priority, rec.ReviewCount, rec.SuccessfulReviews,
	}

	if isPostgres() {
		return DB.QueryRow(query+" RETURNING id", args...).Scan(&rec.ID)
	}

	result, err := DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to create knowledge record: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get knowledge record id: %v", err)
	}
	rec.ID = id
	return nil
}

// Update modifies an existing knowledge record.
func (r *KnowledgeRepository) Update(rec *models.KnowledgeRecord) error {
	_, err := DB.Exec(`
		UPDATE knowledge_records SET
			state = $1,
			due = $2,
			stability = $3,
			difficulty = $4,
			lapses = $5,
			last_review = $6,
			priority = $7,
			review_count = $8,
			successful_reviews = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10`,
		rec.State, rec.Due, rec.Stability, rec.Difficulty, rec.Lapses,
		rec.LastReview, rec.Priority, rec.ReviewCount, rec.SuccessfulReviews, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update knowledge record: %v", err)
	}
	return nil
}

// DueByState returns the user's records in the given state that are due at
// or before now, highest priority first, ties broken by earliest due date.
func (r *KnowledgeRepository) DueByState(userID int64, state models.State, now time.Time) ([]models.KnowledgeRecord, error) {
	var recs []models.KnowledgeRecord
	err := DB.Select(&recs, `
		SELECT * FROM knowledge_records
		WHERE user_id = $1 AND state = $2 AND due <= $3
		ORDER BY priority DESC, due ASC`,
		userID, state, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get due records: %v", err)
	}
	return recs, nil
}

// CountDue counts the user's reviewable records that are currently due.
func (r *KnowledgeRepository) CountDue(userID int64, now time.Time) (int, error) {
	var count int
	err := DB.Get(&count, `
		SELECT COUNT(*) FROM knowledge_records
		WHERE user_id = $1 AND state IN ($2, $3) AND due <= $4`,
		userID, models.StateNew, models.StateLearning, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count due records: %v", err)
	}
	return count, nil
}

// DeleteByUserAndWord removes the user's record for a word.
func (r *KnowledgeRepository) DeleteByUserAndWord(userID, wordID int64) error {
	_, err := DB.Exec("DELETE FROM knowledge_records WHERE user_id = $1 AND word_id = $2", userID, wordID)
	if err != nil {
		return fmt.Errorf("failed to delete knowledge record: %v", err)
	}
	return nil
}

// KnownWordTexts returns the texts of the user's KNOWN and IGNORED words.
func (r *KnowledgeRepository) KnownWordTexts(userID int64) (map[string]struct{}, error) {
	var texts []string
	err := DB.Select(&texts, `
		SELECT w.text FROM knowledge_records k
		JOIN words w ON w.id = k.word_id
		WHERE k.user_id = $1 AND k.state IN ($2, $3)`,
		userID, models.StateKnown, models.StateIgnored,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get known words: %v", err)
	}
	known := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		known[t] = struct{}{}
	}
	return known, nil
}

// ReviewTimesSince returns the last-review timestamps of the user's records
// reviewed at or after the cutoff. Bucketing by day happens in the caller.
func (r *KnowledgeRepository) ReviewTimesSince(userID int64, cutoff time.Time) ([]time.Time, error) {
	var times []time.Time
	err := DB.Select(&times, `
		SELECT last_review FROM knowledge_records
		WHERE user_id = $1 AND last_review IS NOT NULL AND last_review >= $2`,
		userID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get review times: %v", err)
	}
	return times, nil
}
