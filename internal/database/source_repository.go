package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/wordflow/pkg/models"
)

// SourceRepository handles database operations for imported sources
type SourceRepository struct{}

// NewSourceRepository creates a new repository instance
func NewSourceRepository() *SourceRepository {
	return &SourceRepository{}
}

// Create inserts a new source and returns it with its assigned ID.
func (r *SourceRepository) Create(userID int64, title string, sourceType models.SourceType, content string) (*models.Source, error) {
	src := &models.Source{
		UserID:    userID,
		Title:     title,
		Type:      sourceType,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if isPostgres() {
		err := DB.Get(&src.ID, `
			INSERT INTO sources (user_id, title, source_type, content, processed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			src.UserID, src.Title, src.Type, src.Content, src.Processed, src.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create source: %v", err)
		}
		return src, nil
	}
	res, err := DB.Exec(`
		INSERT INTO sources (user_id, title, source_type, content, processed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		src.UserID, src.Title, src.Type, src.Content, src.Processed, src.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %v", err)
	}
	src.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get source id: %v", err)
	}
	return src, nil
}

// GetByIDAndUser fetches a source only if it belongs to the user.
func (r *SourceRepository) GetByIDAndUser(id, userID int64) (*models.Source, error) {
	var src models.Source
	err := DB.Get(&src, "SELECT * FROM sources WHERE id = $1 AND user_id = $2", id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("source %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get source: %v", err)
	}
	return &src, nil
}

// ListByUser returns the user's sources, newest first.
func (r *SourceRepository) ListByUser(userID int64) ([]models.Source, error) {
	var sources []models.Source
	err := DB.Select(&sources, "SELECT * FROM sources WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %v", err)
	}
	return sources, nil
}

// Delete removes a source. Links are removed first so the cleanup works
// the same with and without foreign key cascades.
func (r *SourceRepository) Delete(id int64) error {
	if _, err := DB.Exec("DELETE FROM word_source_links WHERE source_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete source links: %v", err)
	}
	if _, err := DB.Exec("DELETE FROM sources WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete source: %v", err)
	}
	return nil
}

// MarkProcessed flags a source as fully ingested.
func (r *SourceRepository) MarkProcessed(id int64) error {
	_, err := DB.Exec("UPDATE sources SET processed = $1 WHERE id = $2", true, id)
	if err != nil {
		return fmt.Errorf("failed to mark source processed: %v", err)
	}
	return nil
}
