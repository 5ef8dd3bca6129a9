// Package ingest turns tokenized source content into words, word-source
// links, and priority-scored knowledge records, and unwinds them when a
// source is deleted.
package ingest

import (
	"fmt"
	"log"
	"time"

	"github.com/example/wordflow/internal/textproc"
	"github.com/example/wordflow/pkg/models"
)

// Store is the persistence the ingestion service needs.
type Store interface {
	GetOrCreateWord(text string) (*models.Word, bool, error)
	GetWord(wordID int64) (*models.Word, error)
	SaveWord(word *models.Word) error
	DeleteWord(wordID int64) error

	CreateLink(wordID, sourceID int64, frequency int) error
	LinksForSource(sourceID int64) ([]models.WordSourceLink, error)
	// CountLinksForWord counts surviving links across all users.
	CountLinksForWord(wordID int64) (int, error)
	// SumFrequencyForUserWord sums the word's frequency over the user's
	// surviving sources.
	SumFrequencyForUserWord(userID, wordID int64) (int, error)

	GetOrCreateRecord(userID, wordID int64, priority int, now time.Time) (*models.KnowledgeRecord, bool, error)
	RecordByUserAndWord(userID, wordID int64) (*models.KnowledgeRecord, error)
	SaveRecord(rec *models.KnowledgeRecord) error
	DeleteRecord(userID, wordID int64) error
	// KnownWordTexts returns the texts of the user's KNOWN and IGNORED words.
	KnownWordTexts(userID int64) (map[string]struct{}, error)

	GetOrCreateProfile(userID int64) (*models.LearningProfile, error)

	DeleteSource(sourceID int64) error
	MarkSourceProcessed(sourceID int64) error
}

// Enricher fills dictionary data for newly created words. Lookup failures are
// logged and ignored; enrichment is best effort.
type Enricher interface {
	Enrich(word *models.Word) error
}

// Result summarizes one ingestion run.
type Result struct {
	UniqueWords    int `json:"unique_words"`
	WordsCreated   int `json:"words_created"`
	RecordsCreated int `json:"records_created"`
	RecordsUpdated int `json:"records_updated"`
	StopWords      int `json:"stop_words"`
	ContentWords   int `json:"content_words"`
}

// Analysis reports how much of a text the user already covers.
type Analysis struct {
	Coverage    float64 `json:"coverage"`
	TotalWords  int     `json:"total_words"`
	UniqueWords int     `json:"unique_words"`
	KnownWords  int     `json:"known_words"`
	NewWords    int     `json:"new_words"`
}

// DeletionResult summarizes a source-deletion sweep.
type DeletionResult struct {
	TotalWordsInSource int `json:"total_words_in_source"`
	WordsPreserved     int `json:"words_preserved"`
	WordsDeleted       int `json:"words_deleted"`
}

// Service ingests word frequencies and maintains priorities.
type Service struct {
	store    Store
	enricher Enricher
	now      func() time.Time
}

// NewService creates an ingestion service. enricher may be nil to skip
// dictionary enrichment.
func NewService(store Store, enricher Enricher) *Service {
	return &Service{store: store, enricher: enricher, now: time.Now}
}

// IngestWordFrequencies creates or updates words, links, and knowledge
// records for every entry of the tokenizer's word-frequency map. First
// encounters get priority from this source's frequency alone; re-encounters
// are rescored from the cumulative frequency across all of the user's
// sources, so recomputation never double-counts.
func (s *Service) IngestWordFrequencies(source *models.Source, userID int64, frequencies map[string]int) (*Result, error) {
	now := s.now()

	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	filter := profile.EffectiveStopWordFilter(now)

	result := &Result{UniqueWords: len(frequencies)}
	for text, frequency := range frequencies {
		if textproc.IsStopWord(text) {
			result.StopWords++
		} else {
			result.ContentWords++
		}

		word, created, err := s.store.GetOrCreateWord(text)
		if err != nil {
			return nil, fmt.Errorf("failed to get or create word %q: %w", text, err)
		}
		if created {
			result.WordsCreated++
			s.enrich(word)
		}

		if err := s.store.CreateLink(word.ID, source.ID, frequency); err != nil {
			return nil, fmt.Errorf("failed to link word %q to source %d: %w", text, source.ID, err)
		}

		score := textproc.ContentScore(text, frequency, filter)
		rec, createdRec, err := s.store.GetOrCreateRecord(userID, word.ID, int(score), now)
		if err != nil {
			return nil, fmt.Errorf("failed to get or create record for %q: %w", text, err)
		}
		if createdRec {
			result.RecordsCreated++
			continue
		}

		// Already known from another source: rescore from the cumulative
		// frequency, which now includes the link created above.
		cumulative, err := s.store.SumFrequencyForUserWord(userID, word.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum frequency for %q: %w", text, err)
		}
		rec.Priority = int(textproc.ContentScore(text, cumulative, filter))
		if err := s.store.SaveRecord(rec); err != nil {
			return nil, fmt.Errorf("failed to save record for %q: %w", text, err)
		}
		result.RecordsUpdated++
	}

	if err := s.store.MarkSourceProcessed(source.ID); err != nil {
		return nil, fmt.Errorf("failed to mark source processed: %w", err)
	}
	return result, nil
}

// Analyze reports coverage of a word-frequency map against the user's known
// and ignored words.
func (s *Service) Analyze(userID int64, frequencies map[string]int) (*Analysis, error) {
	analysis := &Analysis{UniqueWords: len(frequencies)}
	if len(frequencies) == 0 {
		analysis.Coverage = 100
		return analysis, nil
	}

	known, err := s.store.KnownWordTexts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load known words: %w", err)
	}
	for text, freq := range frequencies {
		analysis.TotalWords += freq
		if _, ok := known[text]; ok {
			analysis.KnownWords++
		}
	}
	analysis.NewWords = analysis.UniqueWords - analysis.KnownWords
	analysis.Coverage = float64(analysis.KnownWords) / float64(analysis.UniqueWords) * 100
	return analysis, nil
}

// OnSourceDeleted removes a source and sweeps its words: records with no
// surviving link for the user are deleted, surviving words are rescored from
// the remaining cumulative frequency, and words orphaned across all users
// are removed entirely.
func (s *Service) OnSourceDeleted(sourceID, userID int64) (*DeletionResult, error) {
	now := s.now()

	links, err := s.store.LinksForSource(sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load links for source %d: %w", sourceID, err)
	}
	if err := s.store.DeleteSource(sourceID); err != nil {
		return nil, fmt.Errorf("failed to delete source %d: %w", sourceID, err)
	}

	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	filter := profile.EffectiveStopWordFilter(now)

	result := &DeletionResult{TotalWordsInSource: len(links)}
	for _, link := range links {
		remaining, err := s.store.SumFrequencyForUserWord(userID, link.WordID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum frequency for word %d: %w", link.WordID, err)
		}

		if remaining == 0 {
			if err := s.store.DeleteRecord(userID, link.WordID); err != nil {
				return nil, fmt.Errorf("failed to delete record for word %d: %w", link.WordID, err)
			}
			result.WordsDeleted++
		} else {
			result.WordsPreserved++
			if err := s.rescore(userID, link.WordID, remaining, filter); err != nil {
				return nil, err
			}
		}

		globalLinks, err := s.store.CountLinksForWord(link.WordID)
		if err != nil {
			return nil, fmt.Errorf("failed to count links for word %d: %w", link.WordID, err)
		}
		if globalLinks == 0 {
			if err := s.store.DeleteWord(link.WordID); err != nil {
				return nil, fmt.Errorf("failed to delete word %d: %w", link.WordID, err)
			}
		}
	}
	return result, nil
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) rescore(userID, wordID int64, cumulative int, filter bool) error {
	rec, err := s.store.RecordByUserAndWord(userID, wordID)
	if err != nil {
		return fmt.Errorf("failed to load record for word %d: %w", wordID, err)
	}
	word, err := s.store.GetWord(wordID)
	if err != nil {
		return fmt.Errorf("failed to load word %d: %w", wordID, err)
	}
	rec.Priority = int(textproc.ContentScore(word.Text, cumulative, filter))
	if err := s.store.SaveRecord(rec); err != nil {
		return fmt.Errorf("failed to save record for word %d: %w", wordID, err)
	}
	return nil
}

func (s *Service) enrich(word *models.Word) {
	if s.enricher == nil {
		return
	}
	if err := s.enricher.Enrich(word); err != nil {
		log.Printf("Failed to enrich word %q: %v", word.Text, err)
		return
	}
	if err := s.store.SaveWord(word); err != nil {
		log.Printf("Failed to save enriched word %q: %v", word.Text, err)
	}
}
