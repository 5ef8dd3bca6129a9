package models

import "time"

// SourceType identifies where a source's text came from. Parsing the raw
// input (web page, PDF, transcript, subtitles) happens upstream; by the time
// a source reaches ingestion its Content is plain text.
type SourceType string

const (
	SourceURL      SourceType = "URL"
	SourceText     SourceType = "TEXT"
	SourcePDF      SourceType = "PDF"
	SourceYouTube  SourceType = "YOUTUBE"
	SourceSRT      SourceType = "SRT"
	SourceWordList SourceType = "WORDLIST"
)

// Valid reports whether t is one of the defined source types.
func (t SourceType) Valid() bool {
	switch t {
	case SourceURL, SourceText, SourcePDF, SourceYouTube, SourceSRT, SourceWordList:
		return true
	}
	return false
}

// Source is one ingested piece of content belonging to a user.
type Source struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	Type      SourceType `json:"source_type" db:"source_type"`
	Content   string     `json:"content" db:"content"`
	Processed bool       `json:"processed" db:"processed"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
