package models

import "time"

// Word is a globally unique vocabulary entry shared across users. Enrichment
// fields are filled lazily from the dictionary client when available.
type Word struct {
	ID              int64  `json:"id" db:"id"`
	Text            string `json:"text" db:"text"`
	Definition      string `json:"definition" db:"definition"`
	Translation     string `json:"translation" db:"translation"`
	PartOfSpeech    string `json:"part_of_speech" db:"part_of_speech"`
	Phonetic        string `json:"phonetic" db:"phonetic"`
	AudioURL        string `json:"audio_url" db:"audio_url"`
	ExampleSentence string `json:"example_sentence" db:"example_sentence"`
	// Synonyms and Antonyms are comma-separated lists.
	Synonyms string `json:"synonyms" db:"synonyms"`
	Antonyms string `json:"antonyms" db:"antonyms"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WordSourceLink ties a word to one source with its occurrence count there.
// A word's cumulative frequency for a user is the sum over the links of that
// user's sources.
type WordSourceLink struct {
	ID        int64 `json:"id" db:"id"`
	WordID    int64 `json:"word_id" db:"word_id"`
	SourceID  int64 `json:"source_id" db:"source_id"`
	Frequency int   `json:"frequency" db:"frequency"`
}
