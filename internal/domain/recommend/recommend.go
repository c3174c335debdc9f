// Package recommend ranks schools against a user's stated preferences.
//
// The recommender is a pure function of the data it reads through its store
// interfaces: it holds no mutable state and recomputes from the stores'
// current contents on every call.
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/sport"
)

// Baseline is the neutral midpoint on the 0-10 rating scale. A dimension
// with no data contributes the baseline, and the similarity score measures
// preference-weighted deviation from it.
const Baseline = 5.0

const (
	minScore = 0.0
	maxScore = 10.0
)

// PreferenceStore resolves a user's stored preference vector. The found
// flag distinguishes "user has no preferences" from a store failure.
type PreferenceStore interface {
	Preference(ctx context.Context, userID string) (model.PreferenceVector, bool, error)
}

// ReviewStore exposes the review reads the recommender needs.
type ReviewStore interface {
	// BySchoolSport returns reviews for a (school, sport) pair, excluding
	// those authored by excludeUserID when it is non-empty.
	BySchoolSport(ctx context.Context, schoolID int, sp sport.Sport, excludeUserID string) ([]model.Review, error)

	// UserReviewed reports whether the user has already reviewed the school
	// for the sport.
	UserReviewed(ctx context.Context, userID string, schoolID int, sp sport.Sport) (bool, error)
}

// SchoolStore lists schools offering a sport.
type SchoolStore interface {
	BySport(ctx context.Context, sp sport.Sport) ([]model.School, error)
}

// Recommendation is one ranked entry in the recommender's output.
type Recommendation struct {
	School          model.School   `json:"school"`
	Sport           string         `json:"sport"`
	SimilarityScore float64        `json:"similarity_score"`
	AverageRatings  model.Averages `json:"average_ratings"`
	ReviewCount     int            `json:"review_count"`
}

// Result is the recommender's answer. NoPreferences marks a user who has
// not submitted a preference vector yet; that is a different state from a
// valid vector with no qualifying schools, which yields empty Items.
type Result struct {
	NoPreferences bool             `json:"no_preferences"`
	Items         []Recommendation `json:"recommendations"`
}

// Recommender computes ranked school recommendations.
type Recommender struct {
	preferences PreferenceStore
	reviews     ReviewStore
	schools     SchoolStore

	defaultTopN int
	maxTopN     int
}

// Option applies a configuration option to the Recommender.
type Option func(*Recommender)

// WithDefaultTopN sets the result size used when the caller passes topN < 1.
func WithDefaultTopN(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.defaultTopN = n
		}
	}
}

// WithMaxTopN caps the result size regardless of what the caller requests.
func WithMaxTopN(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.maxTopN = n
		}
	}
}

// New creates a Recommender reading from the given stores.
func New(prefs PreferenceStore, reviews ReviewStore, schools SchoolStore, opts ...Option) *Recommender {
	r := &Recommender{
		preferences: prefs,
		reviews:     reviews,
		schools:     schools,
		defaultTopN: 5,
		maxTopN:     50,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend scores every candidate school for the user's preferred sport and
// returns the top N ranked by similarity, highest first. Ties keep school
// insertion order. Store failures propagate unchanged; "nothing found"
// states come back as values, never errors.
func (r *Recommender) Recommend(ctx context.Context, userID string, topN int) (Result, error) {
	if topN < 1 {
		topN = r.defaultTopN
	}
	if topN > r.maxTopN {
		topN = r.maxTopN
	}

	pref, found, err := r.preferences.Preference(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("load preferences for %s: %w", userID, err)
	}
	if !found {
		return Result{NoPreferences: true, Items: []Recommendation{}}, nil
	}

	candidates, err := r.collectCandidates(ctx, userID, pref.Sport)
	if err != nil {
		return Result{}, err
	}

	scored, err := r.scoreCandidates(ctx, userID, pref, candidates)
	if err != nil {
		return Result{}, err
	}

	// Stable sort keeps insertion order on equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return Result{Items: scored}, nil
}

// collectCandidates returns the schools that offer the sport and that the
// requester has not already reviewed for it.
func (r *Recommender) collectCandidates(ctx context.Context, userID string, sp sport.Sport) ([]model.School, error) {
	schools, err := r.schools.BySport(ctx, sp)
	if err != nil {
		return nil, fmt.Errorf("list schools for %s: %w", sp, err)
	}

	candidates := make([]model.School, 0, len(schools))
	for _, s := range schools {
		reviewed, err := r.reviews.UserReviewed(ctx, userID, s.ID, sp)
		if err != nil {
			return nil, fmt.Errorf("check existing review for school %d: %w", s.ID, err)
		}
		if !reviewed {
			candidates = append(candidates, s)
		}
	}
	return candidates, nil
}

// scoreCandidates computes aggregates and similarity per candidate. The
// per-school reads are independent, so they run scatter-gather; no partial
// results are returned — one failed read fails the whole computation.
func (r *Recommender) scoreCandidates(ctx context.Context, userID string, pref model.PreferenceVector, candidates []model.School) ([]Recommendation, error) {
	type slot struct {
		rec Recommendation
		ok  bool
		err error
	}

	slots := make([]slot, len(candidates))
	var wg sync.WaitGroup
	for i, school := range candidates {
		wg.Add(1)
		go func(i int, school model.School) {
			defer wg.Done()
			reviews, err := r.reviews.BySchoolSport(ctx, school.ID, pref.Sport, userID)
			if err != nil {
				slots[i].err = fmt.Errorf("load reviews for school %d: %w", school.ID, err)
				return
			}
			if len(reviews) == 0 {
				// No foreign reviews: not a candidate at all.
				return
			}
			avg := Aggregate(reviews)
			slots[i] = slot{
				rec: Recommendation{
					School:          school,
					Sport:           pref.Sport.DisplayName(),
					SimilarityScore: Score(pref.Ratings, avg),
					AverageRatings:  avg,
					ReviewCount:     len(reviews),
				},
				ok: true,
			}
		}(i, school)
	}
	wg.Wait()

	scored := make([]Recommendation, 0, len(candidates))
	for _, s := range slots {
		if s.err != nil {
			return nil, s.err
		}
		if s.ok {
			scored = append(scored, s.rec)
		}
	}
	return scored, nil
}

// Aggregate computes per-dimension mean ratings over a set of reviews.
// A dimension with no contributing values falls back to the baseline; the
// guard also covers the empty set so no caller can divide by zero.
func Aggregate(reviews []model.Review) model.Averages {
	var sums [model.DimensionCount]float64
	for _, rev := range reviews {
		for i, v := range rev.Ratings.Values() {
			sums[i] += float64(v)
		}
	}

	var means [model.DimensionCount]float64
	for i := range sums {
		if len(reviews) == 0 {
			means[i] = Baseline
			continue
		}
		means[i] = sums[i] / float64(len(reviews))
	}
	return model.FromValues(means)
}

// Score computes the preference-weighted similarity of a school's average
// ratings to the user's preference vector, on the 0-10 scale.
//
// Each dimension contributes its deviation from the baseline weighted by how
// much the user cares about it. A stated preference of 0 is floored to
// weight 1 so the dimension still participates instead of collapsing; this
// is deliberately not a symmetric distance — a dimension the user rates
// unimportant should barely move the score either way.
func Score(pref model.Ratings, avg model.Averages) float64 {
	var sumWeights, sumContrib float64
	weights := pref.Values()
	means := avg.Values()
	for i := range weights {
		w := float64(weights[i])
		if w <= 0 {
			w = 1
		}
		sumWeights += w
		sumContrib += w * (means[i] - Baseline)
	}

	score := Baseline + sumContrib/sumWeights
	return math.Max(minScore, math.Min(maxScore, score))
}

// Round2 rounds to two decimals for the serializer boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
