package review

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordflow/pkg/models"
)

// fakeStore keeps records and profiles in memory, mirroring the ordering the
// real repository produces.
type fakeStore struct {
	records  map[int64]*models.KnowledgeRecord
	profiles map[int64]*models.LearningProfile
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:  make(map[int64]*models.KnowledgeRecord),
		profiles: make(map[int64]*models.LearningProfile),
	}
}

func (f *fakeStore) add(rec *models.KnowledgeRecord) *models.KnowledgeRecord {
	f.nextID++
	rec.ID = f.nextID
	f.records[rec.ID] = rec
	return rec
}

func (f *fakeStore) DueRecords(userID int64, state models.State, now time.Time) ([]models.KnowledgeRecord, error) {
	var out []models.KnowledgeRecord
	for _, r := range f.records {
		if r.UserID == userID && r.State == state && !r.Due.After(now) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Due.Before(out[j].Due)
	})
	return out, nil
}

func (f *fakeStore) RecordByID(userID, recordID int64) (*models.KnowledgeRecord, error) {
	r, ok := f.records[recordID]
	if !ok || r.UserID != userID {
		return nil, fmt.Errorf("record %d not found", recordID)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) GetOrCreateRecord(userID, wordID int64, priority int, now time.Time) (*models.KnowledgeRecord, bool, error) {
	for _, r := range f.records {
		if r.UserID == userID && r.WordID == wordID {
			cp := *r
			return &cp, false, nil
		}
	}
	rec := f.add(models.NewKnowledgeRecord(userID, wordID, priority, now))
	cp := *rec
	return &cp, true, nil
}

func (f *fakeStore) SaveRecord(rec *models.KnowledgeRecord) error {
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeStore) GetOrCreateProfile(userID int64) (*models.LearningProfile, error) {
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	p := models.NewLearningProfile(userID, time.Now())
	f.profiles[userID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeStore) SaveProfile(profile *models.LearningProfile) error {
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func dueRecord(userID, wordID int64, state models.State, priority int, due time.Time) *models.KnowledgeRecord {
	rec := models.NewKnowledgeRecord(userID, wordID, priority, due)
	rec.State = state
	rec.Due = due
	return rec
}

func TestNextWordOrdersByPriorityThenDue(t *testing.T) {
	store := newFakeStore()
	late := testNow.Add(-1 * time.Hour)
	store.add(dueRecord(1, 10, models.StateLearning, 3, late))
	hi := store.add(dueRecord(1, 11, models.StateLearning, 8, late))
	store.add(dueRecord(1, 12, models.StateNew, 7, late))
	store.add(dueRecord(1, 13, models.StateLearning, 8, testNow))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	next, err := svc.NextWord(1)
	require.NoError(t, err)
	require.NotNil(t, next)
	// Highest priority wins; equal priority breaks ties on earlier due.
	assert.Equal(t, hi.ID, next.ID)
}

func TestNextWordTieBreaksOnEarlierDue(t *testing.T) {
	store := newFakeStore()
	later := store.add(dueRecord(1, 10, models.StateLearning, 5, testNow.Add(-time.Hour)))
	earlier := store.add(dueRecord(1, 11, models.StateLearning, 5, testNow.Add(-2*time.Hour)))
	_ = later

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	next, err := svc.NextWord(1)
	require.NoError(t, err)
	assert.Equal(t, earlier.ID, next.ID)
}

func TestNextWordEmptyQueue(t *testing.T) {
	store := newFakeStore()
	// Only a future record exists.
	store.add(dueRecord(1, 10, models.StateLearning, 5, testNow.Add(time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	next, err := svc.NextWord(1)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNextWordExcludesGivenIDs(t *testing.T) {
	store := newFakeStore()
	first := store.add(dueRecord(1, 10, models.StateLearning, 9, testNow.Add(-time.Hour)))
	second := store.add(dueRecord(1, 11, models.StateLearning, 5, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	next, err := svc.NextWord(1, first.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, next.ID)

	next, err = svc.NextWord(1, first.ID, second.ID)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNextWordRationsNewWordsByQuota(t *testing.T) {
	store := newFakeStore()
	profile, _ := store.GetOrCreateProfile(1)
	profile.LastLearningDate = testNow.UTC().Truncate(24 * time.Hour)
	profile.WordsLearnedToday = models.FreeDailyNewWordTarget // quota exhausted
	require.NoError(t, store.SaveProfile(profile))

	store.add(dueRecord(1, 10, models.StateNew, 50, testNow.Add(-time.Hour)))
	learning := store.add(dueRecord(1, 11, models.StateLearning, 1, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	// NEW words are capped out, but LEARNING reviews still flow.
	next, err := svc.NextWord(1)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, learning.ID, next.ID)
}

func TestNextWordQuotaTruncatesBeforeMerge(t *testing.T) {
	store := newFakeStore()
	profile, _ := store.GetOrCreateProfile(1)
	profile.LastLearningDate = testNow.UTC().Truncate(24 * time.Hour)
	profile.WordsLearnedToday = models.FreeDailyNewWordTarget - 1 // room for one NEW
	require.NoError(t, store.SaveProfile(profile))

	top := store.add(dueRecord(1, 10, models.StateNew, 90, testNow.Add(-time.Hour)))
	store.add(dueRecord(1, 11, models.StateNew, 80, testNow.Add(-time.Hour)))
	store.add(dueRecord(1, 12, models.StateLearning, 10, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	next, err := svc.NextWord(1)
	require.NoError(t, err)
	// The single NEW slot goes to the highest-priority NEW candidate, which
	// then outranks the LEARNING word in the merged sort.
	assert.Equal(t, top.ID, next.ID)
}

func TestDailyCapAcrossRepeatedCalls(t *testing.T) {
	store := newFakeStore()
	profile, _ := store.GetOrCreateProfile(1)
	profile.LastLearningDate = testNow.UTC().Truncate(24 * time.Hour)
	profile.WordsLearnedToday = models.FreeDailyNewWordTarget - 2
	require.NoError(t, store.SaveProfile(profile))

	for i := int64(0); i < 10; i++ {
		store.add(dueRecord(1, 100+i, models.StateNew, 5, testNow.Add(-time.Hour)))
	}

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	seen := make(map[int64]struct{})
	for i := 0; i < 10; i++ {
		next, err := svc.NextWord(1)
		require.NoError(t, err)
		if next == nil {
			break
		}
		seen[next.ID] = struct{}{}
		_, err = svc.SubmitReview(1, next.ID, "know")
		require.NoError(t, err)
	}

	// Only the remaining quota of distinct NEW records can ever surface.
	assert.Len(t, seen, 2)
}

func TestSubmitReviewInvalidAction(t *testing.T) {
	store := newFakeStore()
	rec := store.add(dueRecord(1, 10, models.StateLearning, 5, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	_, err := svc.SubmitReview(1, rec.ID, "maybe")
	assert.ErrorIs(t, err, ErrInvalidAction)

	// No partial update happened.
	stored := store.records[rec.ID]
	assert.Equal(t, 0, stored.ReviewCount)
	assert.Equal(t, models.StateLearning, stored.State)
}

func TestSubmitReviewKnow(t *testing.T) {
	store := newFakeStore()
	rec := store.add(dueRecord(1, 10, models.StateNew, 5, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	result, err := svc.SubmitReview(1, rec.ID, "know")
	require.NoError(t, err)

	assert.Equal(t, models.StateLearning, result.Record.State)
	assert.Equal(t, 1.0, result.Record.Stability)
	assert.Equal(t, 1, result.Progress.SuccessfulReviews)
	assert.Equal(t, 5, result.Progress.Threshold)
	assert.Equal(t, 4, result.Progress.ReviewsRemaining)
	assert.Equal(t, 1.0, result.Progress.StabilityDays)
	assert.Equal(t, 24.0, result.Progress.NextReviewHours)
	assert.Nil(t, result.Next)

	// Persisted and counted against the daily quota.
	assert.Equal(t, 1, store.records[rec.ID].ReviewCount)
	assert.Equal(t, 1, store.profiles[1].WordsLearnedToday)
}

func TestSubmitReviewDontKnowCountsNewWord(t *testing.T) {
	store := newFakeStore()
	rec := store.add(dueRecord(1, 10, models.StateNew, 5, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	result, err := svc.SubmitReview(1, rec.ID, "dont_know")
	require.NoError(t, err)

	// Leaving NEW counts as learned today even on a failed answer.
	assert.Equal(t, 1, store.profiles[1].WordsLearnedToday)
	assert.Equal(t, models.StateLearning, result.Record.State)
	assert.Equal(t, 1, result.Record.Lapses)
	assert.InDelta(t, 2.4, result.Progress.NextReviewHours, 0.05)
}

func TestSubmitReviewLegacyTargetGatesCounter(t *testing.T) {
	store := newFakeStore()
	profile, _ := store.GetOrCreateProfile(1)
	profile.LastLearningDate = testNow.UTC().Truncate(24 * time.Hour)
	profile.DailyLearningTarget = 1
	profile.WordsLearnedToday = 1
	require.NoError(t, store.SaveProfile(profile))

	rec := store.add(dueRecord(1, 10, models.StateNew, 5, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	_, err := svc.SubmitReview(1, rec.ID, "know")
	require.NoError(t, err)

	// The legacy cap blocks the increment but not the review itself.
	assert.Equal(t, 1, store.profiles[1].WordsLearnedToday)
	assert.Equal(t, 1, store.records[rec.ID].ReviewCount)
}

func TestSubmitReviewReturnsNextExcludingCurrent(t *testing.T) {
	store := newFakeStore()
	rec := store.add(dueRecord(1, 10, models.StateLearning, 9, testNow.Add(-time.Hour)))
	other := store.add(dueRecord(1, 11, models.StateLearning, 1, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	result, err := svc.SubmitReview(1, rec.ID, "dont_know")
	require.NoError(t, err)
	require.NotNil(t, result.Next)
	assert.Equal(t, other.ID, result.Next.ID)
}

func TestSubmitReviewPromotes(t *testing.T) {
	store := newFakeStore()
	rec := dueRecord(1, 10, models.StateLearning, 5, testNow.Add(-time.Hour))
	rec.Stability = 8
	rec.SuccessfulReviews = 4
	rec.ReviewCount = 6
	store.add(rec)

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	result, err := svc.SubmitReview(1, rec.ID, "know")
	require.NoError(t, err)

	assert.Equal(t, models.StateKnown, result.Record.State)
	assert.Equal(t, testNow.AddDate(0, 0, 365), result.Record.Due)
	assert.Equal(t, 0, result.Progress.ReviewsRemaining)
}

func TestDailyCountResetsOnRollover(t *testing.T) {
	store := newFakeStore()
	profile, _ := store.GetOrCreateProfile(1)
	profile.LastLearningDate = testNow.AddDate(0, 0, -1).UTC().Truncate(24 * time.Hour)
	profile.WordsLearnedToday = 15
	require.NoError(t, store.SaveProfile(profile))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	_, err := svc.NextWord(1)
	require.NoError(t, err)
	assert.Equal(t, 0, store.profiles[1].WordsLearnedToday)

	// Second call the same day changes nothing further.
	_, err = svc.NextWord(1)
	require.NoError(t, err)
	assert.Equal(t, 0, store.profiles[1].WordsLearnedToday)
}

func TestMarkKnownCreatesRecordOnDemand(t *testing.T) {
	store := newFakeStore()

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	rec, err := svc.MarkKnown(1, 42)
	require.NoError(t, err)

	assert.Equal(t, models.StateKnown, rec.State)
	assert.Equal(t, testNow.AddDate(0, 0, 9999), rec.Due)
	assert.Equal(t, 5, rec.SuccessfulReviews)
	assert.Equal(t, 0, rec.Priority)
}

func TestIgnoreIsTerminalAndOffQueue(t *testing.T) {
	store := newFakeStore()
	rec := store.add(dueRecord(1, 10, models.StateLearning, 50, testNow.Add(-time.Hour)))

	svc := NewService(store)
	svc.SetClock(fixedClock(testNow))

	ignored, err := svc.Ignore(1, rec.WordID)
	require.NoError(t, err)
	assert.Equal(t, models.StateIgnored, ignored.State)

	next, err := svc.NextWord(1)
	require.NoError(t, err)
	assert.Nil(t, next)
}
