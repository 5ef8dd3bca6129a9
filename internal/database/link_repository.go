package database

import (
	"fmt"

	"github.com/example/wordflow/pkg/models"
)

// LinkRepository handles database operations for word-source links
type LinkRepository struct{}

// NewLinkRepository creates a new repository instance
func NewLinkRepository() *LinkRepository {
	return &LinkRepository{}
}

// Create inserts a link between a word and a source with the word's
// occurrence count in that source.
func (r *LinkRepository) Create(wordID, sourceID int64, frequency int) error {
	_, err := DB.Exec(
		"INSERT INTO word_source_links (word_id, source_id, frequency) VALUES ($1, $2, $3)",
		wordID, sourceID, frequency,
	)
	if err != nil {
		return fmt.Errorf("failed to create word-source link: %v", err)
	}
	return nil
}

// ForSource returns all links of one source.
func (r *LinkRepository) ForSource(sourceID int64) ([]models.WordSourceLink, error) {
	var links []models.WordSourceLink
	err := DB.Select(&links, "SELECT * FROM word_source_links WHERE source_id = $1", sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get links for source: %v", err)
	}
	return links, nil
}

// CountForWord counts a word's links across all users' sources.
func (r *LinkRepository) CountForWord(wordID int64) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM word_source_links WHERE word_id = $1", wordID)
	if err != nil {
		return 0, fmt.Errorf("failed to count links: %v", err)
	}
	return count, nil
}

// SumFrequencyForUserWord sums the word's frequency across the user's
// sources. Zero means the user no longer has any source containing the word.
func (r *LinkRepository) SumFrequencyForUserWord(userID, wordID int64) (int, error) {
	var total int
	err := DB.Get(&total, `
		SELECT COALESCE(SUM(l.frequency), 0)
		FROM word_source_links l
		JOIN sources s ON s.id = l.source_id
		WHERE s.user_id = $1 AND l.word_id = $2`,
		userID, wordID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sum frequency: %v", err)
	}
	return total, nil
}

// DeleteForSource removes all links belonging to a source.
func (r *LinkRepository) DeleteForSource(sourceID int64) error {
	_, err := DB.Exec("DELETE FROM word_source_links WHERE source_id = $1", sourceID)
	if err != nil {
		return fmt.Errorf("failed to delete links for source: %v", err)
	}
	return nil
}
