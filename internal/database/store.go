package database

import (
	"time"

	"github.com/example/wordflow/pkg/models"
)

// Store bundles the repositories behind the method sets the review and
// ingest services depend on. The handlers hold one Store instead of
// five repositories.
type Store struct {
	Users    *UserRepository
	Words    *WordRepository
	Sources  *SourceRepository
	Links    *LinkRepository
	Records  *KnowledgeRepository
	Profiles *ProfileRepository
}

// NewStore creates a store over the shared connection.
func NewStore() *Store {
	return &Store{
		Users:    NewUserRepository(),
		Words:    NewWordRepository(),
		Sources:  NewSourceRepository(),
		Links:    NewLinkRepository(),
		Records:  NewKnowledgeRepository(),
		Profiles: NewProfileRepository(),
	}
}

func (s *Store) DueRecords(userID int64, state models.State, now time.Time) ([]models.KnowledgeRecord, error) {
	return s.Records.DueByState(userID, state, now)
}

func (s *Store) RecordByID(userID, recordID int64) (*models.KnowledgeRecord, error) {
	return s.Records.GetByID(userID, recordID)
}

func (s *Store) RecordByUserAndWord(userID, wordID int64) (*models.KnowledgeRecord, error) {
	return s.Records.GetByUserAndWord(userID, wordID)
}

func (s *Store) GetOrCreateRecord(userID, wordID int64, priority int, now time.Time) (*models.KnowledgeRecord, bool, error) {
	return s.Records.GetOrCreate(userID, wordID, priority, now)
}

func (s *Store) SaveRecord(rec *models.KnowledgeRecord) error {
	return s.Records.Update(rec)
}

func (s *Store) DeleteRecord(userID, wordID int64) error {
	return s.Records.DeleteByUserAndWord(userID, wordID)
}

func (s *Store) KnownWordTexts(userID int64) (map[string]struct{}, error) {
	return s.Records.KnownWordTexts(userID)
}

func (s *Store) GetOrCreateProfile(userID int64) (*models.LearningProfile, error) {
	return s.Profiles.GetOrCreate(userID)
}

func (s *Store) SaveProfile(profile *models.LearningProfile) error {
	return s.Profiles.Update(profile)
}

func (s *Store) GetOrCreateWord(text string) (*models.Word, bool, error) {
	return s.Words.GetOrCreate(text)
}

func (s *Store) GetWord(wordID int64) (*models.Word, error) {
	return s.Words.GetByID(wordID)
}

func (s *Store) SaveWord(word *models.Word) error {
	return s.Words.Update(word)
}

func (s *Store) DeleteWord(wordID int64) error {
	return s.Words.Delete(wordID)
}

func (s *Store) CreateLink(wordID, sourceID int64, frequency int) error {
	return s.Links.Create(wordID, sourceID, frequency)
}

func (s *Store) LinksForSource(sourceID int64) ([]models.WordSourceLink, error) {
	return s.Links.ForSource(sourceID)
}

func (s *Store) CountLinksForWord(wordID int64) (int, error) {
	return s.Links.CountForWord(wordID)
}

func (s *Store) SumFrequencyForUserWord(userID, wordID int64) (int, error) {
	return s.Links.SumFrequencyForUserWord(userID, wordID)
}

func (s *Store) DeleteSource(sourceID int64) error {
	return s.Sources.Delete(sourceID)
}

func (s *Store) MarkSourceProcessed(sourceID int64) error {
	return s.Sources.MarkProcessed(sourceID)
}
