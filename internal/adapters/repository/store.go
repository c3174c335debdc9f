// Package repository defines the persistence contracts for schools, reviews,
// and preference vectors, plus an in-memory implementation.
//
// The domain treats these stores as external collaborators: it reads fresh
// state on every request and owns no entity lifecycle of its own.
package repository

import (
	"context"

	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/sport"
)

// PreferenceStore persists user preference vectors.
//
// Uniqueness per (user, sport) is enforced here: Save upserts, replacing any
// prior vector for the same user and sport. This is the policy the
// recommender's "at most one active vector" assumption depends on.
type PreferenceStore interface {
	// Save upserts the vector and returns the stored copy with identifiers
	// and timestamps filled in.
	Save(ctx context.Context, pref model.PreferenceVector) (model.PreferenceVector, error)

	// Preference returns the user's most recently updated vector. The found
	// flag is false when the user has never saved preferences.
	Preference(ctx context.Context, userID string) (model.PreferenceVector, bool, error)

	// PreferencesFor returns all of the user's vectors, one per sport.
	PreferencesFor(ctx context.Context, userID string) ([]model.PreferenceVector, error)
}

// ReviewStore persists reviews. Reviews are immutable once created and
// unique per (user, school, sport); Add returns ErrDuplicateReview when the
// user has already reviewed that program.
type ReviewStore interface {
	Add(ctx context.Context, review model.Review) (model.Review, error)

	// BySchoolSport returns reviews for a (school, sport) pair, newest
	// first, excluding those authored by excludeUserID when non-empty.
	BySchoolSport(ctx context.Context, schoolID int, sp sport.Sport, excludeUserID string) ([]model.Review, error)

	// ByUser returns the user's own reviews, newest first.
	ByUser(ctx context.Context, userID string) ([]model.Review, error)

	// UserReviewed reports whether the user has reviewed the school for the
	// sport.
	UserReviewed(ctx context.Context, userID string, schoolID int, sp sport.Sport) (bool, error)
}

// SchoolStore exposes the school catalog.
type SchoolStore interface {
	// List returns all schools in id order.
	List(ctx context.Context) ([]model.School, error)

	// Get returns one school or ErrSchoolNotFound.
	Get(ctx context.Context, id int) (model.School, error)

	// BySport returns the schools offering the sport, in id order.
	BySport(ctx context.Context, sp sport.Sport) ([]model.School, error)
}
