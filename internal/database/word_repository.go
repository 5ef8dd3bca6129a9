package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/wordflow/pkg/models"
)

// WordRepository handles database operations for words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetByID returns a word by primary key.
func (r *WordRepository) GetByID(id int64) (*models.Word, error) {
	var word models.Word
	err := DB.Get(&word, "SELECT * FROM words WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	return &word, nil
}

// GetByText returns a word by its unique text.
func (r *WordRepository) GetByText(text string) (*models.Word, error) {
	var word models.Word
	err := DB.Get(&word, "SELECT * FROM words WHERE text = $1", text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %q: %w", text, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	return &word, nil
}

// GetOrCreate returns the word with the given text, creating it when absent.
func (r *WordRepository) GetOrCreate(text string) (*models.Word, bool, error) {
	word, err := r.GetByText(text)
	if err == nil {
		return word, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	fresh := &models.Word{Text: text}
	if isPostgres() {
		err = DB.QueryRow("INSERT INTO words (text) VALUES ($1) RETURNING id", text).Scan(&fresh.ID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create word: %v", err)
		}
		return fresh, true, nil
	}

	result, err := DB.Exec("INSERT INTO words (text) VALUES ($1)", text)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create word: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get word id: %v", err)
	}
	fresh.ID = id
	return fresh, true, nil
}

// Update persists a word's enrichment fields.
func (r *WordRepository) Update(word *models.Word) error {
	_, err := DB.Exec(`
		UPDATE words SET
			definition = $1,
			translation = $2,
			part_of_speech = $3,
			phonetic = $4,
			audio_url = $5,
			example_sentence = $6,
			synonyms = $7,
			antonyms = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $9`,
		word.Definition, word.Translation, word.PartOfSpeech, word.Phonetic,
		word.AudioURL, word.ExampleSentence, word.Synonyms, word.Antonyms, word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}
	return nil
}

// Delete removes a word entirely. Callers delete words only once no source
// of any user links to them.
func (r *WordRepository) Delete(id int64) error {
	_, err := DB.Exec("DELETE FROM words WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}
	return nil
}
