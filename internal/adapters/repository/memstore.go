package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/sport"
)

// MemStore is an in-memory implementation of all three store contracts,
// guarded by a single RWMutex. Reads vastly outnumber writes here (every
// recommendation fans out over per-school review queries), so the read lock
// path is the one that matters.
type MemStore struct {
	mu sync.RWMutex

	schools     []model.School
	schoolIndex map[int]int

	prefs map[string]map[sport.Sport]model.PreferenceVector

	reviews    []model.Review
	reviewSeen map[reviewKey]bool

	now func() time.Time
}

type reviewKey struct {
	userID   string
	schoolID int
	sport    sport.Sport
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSchools seeds the school catalog.
func WithSchools(schools []model.School) Option {
	return func(s *MemStore) {
		s.schools = append([]model.School(nil), schools...)
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty store, optionally seeded with schools.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		prefs:      make(map[string]map[sport.Sport]model.PreferenceVector),
		reviewSeen: make(map[reviewKey]bool),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	sort.Slice(s.schools, func(i, j int) bool { return s.schools[i].ID < s.schools[j].ID })
	s.schoolIndex = make(map[int]int, len(s.schools))
	for i, sc := range s.schools {
		s.schoolIndex[sc.ID] = i
	}
	return s
}

// Save upserts a preference vector, replacing any prior vector for the same
// (user, sport).
func (s *MemStore) Save(_ context.Context, pref model.PreferenceVector) (model.PreferenceVector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bySport, ok := s.prefs[pref.UserID]
	if !ok {
		bySport = make(map[sport.Sport]model.PreferenceVector)
		s.prefs[pref.UserID] = bySport
	}

	now := s.now()
	if existing, ok := bySport[pref.Sport]; ok {
		pref.ID = existing.ID
		pref.CreatedAt = existing.CreatedAt
	} else {
		pref.ID = uuid.New()
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now
	bySport[pref.Sport] = pref
	return pref, nil
}

// Preference returns the user's most recently updated vector.
func (s *MemStore) Preference(_ context.Context, userID string) (model.PreferenceVector, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest model.PreferenceVector
	found := false
	for _, p := range s.prefs[userID] {
		if !found || p.UpdatedAt.After(latest.UpdatedAt) {
			latest = p
			found = true
		}
	}
	return latest, found, nil
}

// PreferencesFor returns all of the user's vectors, newest first.
func (s *MemStore) PreferencesFor(_ context.Context, userID string) ([]model.PreferenceVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PreferenceVector, 0, len(s.prefs[userID]))
	for _, p := range s.prefs[userID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Add stores a review, enforcing uniqueness per (user, school, sport).
func (s *MemStore) Add(_ context.Context, review model.Review) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schoolIndex[review.SchoolID]; !ok {
		return model.Review{}, fmt.Errorf("add review: %w", ErrSchoolNotFound)
	}

	key := reviewKey{userID: review.UserID, schoolID: review.SchoolID, sport: review.Sport}
	if s.reviewSeen[key] {
		return model.Review{}, fmt.Errorf("add review: %w", ErrDuplicateReview)
	}

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = s.now()
	}
	s.reviewSeen[key] = true
	s.reviews = append(s.reviews, review)
	return review, nil
}

// BySchoolSport returns reviews for a (school, sport) pair, newest first.
func (s *MemStore) BySchoolSport(_ context.Context, schoolID int, sp sport.Sport, excludeUserID string) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Review
	for _, r := range s.reviews {
		if r.SchoolID != schoolID || r.Sport != sp {
			continue
		}
		if excludeUserID != "" && r.UserID == excludeUserID {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ByUser returns the user's reviews, newest first.
func (s *MemStore) ByUser(_ context.Context, userID string) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Review
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UserReviewed reports whether the user has reviewed the school for the sport.
func (s *MemStore) UserReviewed(_ context.Context, userID string, schoolID int, sp sport.Sport) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewSeen[reviewKey{userID: userID, schoolID: schoolID, sport: sp}], nil
}

// List returns all schools in id order.
func (s *MemStore) List(_ context.Context) ([]model.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.School(nil), s.schools...), nil
}

// Get returns one school or ErrSchoolNotFound.
func (s *MemStore) Get(_ context.Context, id int) (model.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.schoolIndex[id]
	if !ok {
		return model.School{}, fmt.Errorf("get school %d: %w", id, ErrSchoolNotFound)
	}
	return s.schools[i], nil
}

// BySport returns the schools offering the sport, in id order.
func (s *MemStore) BySport(_ context.Context, sp sport.Sport) ([]model.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.School
	for _, sc := range s.schools {
		if sc.Offers(sp) {
			out = append(out, sc)
		}
	}
	return out, nil
}

// Counts returns store totals for the stats endpoint.
func (s *MemStore) Counts() (schools, reviews, preferences int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, bySport := range s.prefs {
		preferences += len(bySport)
	}
	return len(s.schools), len(s.reviews), preferences
}
