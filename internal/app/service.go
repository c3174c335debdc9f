// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/courtside/fieldrank/internal/adapters/repository"
	"github.com/courtside/fieldrank/internal/adapters/tenure"
	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/namematch"
	"github.com/courtside/fieldrank/internal/domain/recommend"
	"github.com/courtside/fieldrank/internal/domain/sport"
	"github.com/courtside/fieldrank/pkg/logger"
	"github.com/courtside/fieldrank/pkg/metrics"
)

// ErrSportNotOffered signals a review submitted for a sport the school does
// not field.
var ErrSportNotOffered = errors.New("school does not offer this sport")

// AnnotatedReview is a stored review plus the live presence judgement for
// its coach, produced when listing a school's reviews.
type AnnotatedReview struct {
	model.Review
	CoachPresence string `json:"coach_presence"`
}

// SchoolView is a school plus its derived sport display list.
type SchoolView struct {
	model.School
	AvailableSports []string `json:"available_sports"`
}

// Service implements the API dependencies for the review and
// recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       *repository.MemStore
	normalizer  *namematch.Normalizer
	tenure      tenure.Lookup
	recommender *recommend.Recommender

	// Configuration
	defaultTopN       int
	maxTopN           int
	aliasTablePath    string
	schoolFixturePath string
	tenureDataPath    string
	tenureMinLatency  time.Duration
	tenureMaxLatency  time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultTopN sets the recommendation list size used when the caller
// does not ask for one.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithMaxTopN caps the recommendation list size.
func WithMaxTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}

// WithAliasTablePath points at a YAML file extending the embedded alias tables.
func WithAliasTablePath(path string) Option {
	return func(s *Service) { s.aliasTablePath = path }
}

// WithSchoolFixturePath replaces the embedded school catalog.
func WithSchoolFixturePath(path string) Option {
	return func(s *Service) { s.schoolFixturePath = path }
}

// WithTenureDataPath points at a YAML file of tenure records for the static
// lookup. Ignored when a lookup is injected via WithTenureLookup.
func WithTenureDataPath(path string) Option {
	return func(s *Service) { s.tenureDataPath = path }
}

// WithTenureLatencyRange sets the simulated tenure lookup latency range.
// Equal bounds mean a fixed latency.
func WithTenureLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency > 0 && maxLatency >= minLatency {
			s.tenureMinLatency = minLatency
			s.tenureMaxLatency = maxLatency
		}
	}
}

// WithTenureLookup injects a tenure lookup implementation, replacing the
// static one built at Start.
func WithTenureLookup(l tenure.Lookup) Option {
	return func(s *Service) {
		if l != nil {
			s.tenure = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultTopN:      5,
		maxTopN:          50,
		tenureMinLatency: 20 * time.Millisecond,
		tenureMaxLatency: 60 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting review service...")

	tables, err := namematch.LoadTables(s.aliasTablePath)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.normalizer = namematch.New(namematch.WithTables(tables))

	schools, err := repository.LoadSchools(s.schoolFixturePath)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.store = repository.NewMemStore(repository.WithSchools(schools))

	if s.tenure == nil {
		records, err := tenure.LoadRecords(s.tenureDataPath)
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.tenure = tenure.NewStaticLookup(
			tenure.WithRecords(records),
			tenure.WithLatencyRange(s.tenureMinLatency, s.tenureMaxLatency),
		)
	}

	s.recommender = recommend.New(s.store, s.store, s.store,
		recommend.WithDefaultTopN(s.defaultTopN),
		recommend.WithMaxTopN(s.maxTopN),
	)

	metrics.UpdateTotalSchools(len(schools))

	s.started = true
	s.logger.Info(ctx, "review service started",
		logger.Int("schools", len(schools)),
		logger.Int("aliases", len(tables.Aliases)),
		logger.Int("defaultTopN", s.defaultTopN),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "review service stopped")
}

// SavePreferences upserts the user's preference vector for a sport. Saving
// again for the same (user, sport) replaces the prior vector.
func (s *Service) SavePreferences(ctx context.Context, pref model.PreferenceVector) (model.PreferenceVector, error) {
	saved, err := s.store.Save(ctx, pref)
	if err != nil {
		return model.PreferenceVector{}, err
	}
	metrics.RecordPreferenceUpsert()
	s.refreshGauges()

	s.logger.Debug(ctx, "saved preference vector",
		logger.String("userID", saved.UserID),
		logger.String("sport", string(saved.Sport)),
	)
	return saved, nil
}

// PreferencesFor returns the user's stored preference vectors.
func (s *Service) PreferencesFor(ctx context.Context, userID string) ([]model.PreferenceVector, error) {
	return s.store.PreferencesFor(ctx, userID)
}

// SubmitReview stores a review after resolving the coach's tenure. The
// departed flag is set only on a definite "departed" judgement; unknown
// presence leaves it false.
func (s *Service) SubmitReview(ctx context.Context, review model.Review) (model.Review, error) {
	school, err := s.store.Get(ctx, review.SchoolID)
	if err != nil {
		return model.Review{}, err
	}
	if !school.Offers(review.Sport) {
		return model.Review{}, fmt.Errorf("school %q, sport %q: %w", school.Name, review.Sport, ErrSportNotOffered)
	}

	review.CoachName = namematch.DisplayName(review.CoachName)

	blob, presence, err := s.resolvePresence(ctx, review.CoachName, school.Name, review.Sport)
	if err != nil {
		return model.Review{}, err
	}
	if !strings.EqualFold(blob, namematch.NotFoundSentinel) {
		review.CoachHistory = blob
	}
	review.CoachDeparted = presence == namematch.PresenceDeparted

	stored, err := s.store.Add(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			metrics.RecordReviewDuplicate()
		}
		return model.Review{}, err
	}
	metrics.RecordReviewIngested()
	s.refreshGauges()

	s.logger.Info(ctx, "stored review",
		logger.String("school", school.Name),
		logger.String("sport", string(review.Sport)),
		logger.String("coach", review.CoachName),
		logger.String("presence", presence.String()),
	)
	return stored, nil
}

// SchoolReviews returns a school's reviews for a sport, each annotated with
// the coach's current presence judgement.
func (s *Service) SchoolReviews(ctx context.Context, schoolID int, sp sport.Sport) ([]AnnotatedReview, error) {
	school, err := s.store.Get(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.store.BySchoolSport(ctx, schoolID, sp, "")
	if err != nil {
		return nil, err
	}

	out := make([]AnnotatedReview, 0, len(reviews))
	for _, r := range reviews {
		_, presence, err := s.resolvePresence(ctx, r.CoachName, school.Name, sp)
		if err != nil {
			return nil, err
		}
		out = append(out, AnnotatedReview{Review: r, CoachPresence: presence.String()})
	}
	return out, nil
}

// UserReviews returns the user's own reviews, newest first, each annotated
// with the coach's current presence judgement.
func (s *Service) UserReviews(ctx context.Context, userID string) ([]AnnotatedReview, error) {
	reviews, err := s.store.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]AnnotatedReview, 0, len(reviews))
	for _, r := range reviews {
		school, err := s.store.Get(ctx, r.SchoolID)
		if err != nil {
			return nil, err
		}
		_, presence, err := s.resolvePresence(ctx, r.CoachName, school.Name, r.Sport)
		if err != nil {
			return nil, err
		}
		out = append(out, AnnotatedReview{Review: r, CoachPresence: presence.String()})
	}
	return out, nil
}

// Recommend computes the user's top-N school recommendations, with scores
// and averages rounded for the wire.
func (s *Service) Recommend(ctx context.Context, userID string, topN int) (recommend.Result, error) {
	start := time.Now()
	result, err := s.recommender.Recommend(ctx, userID, topN)
	if err != nil {
		return recommend.Result{}, err
	}

	metrics.RecordRecommendationServed()
	metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	switch {
	case result.NoPreferences:
		metrics.RecordRecommendationNoPreferences()
	case len(result.Items) == 0:
		metrics.RecordRecommendationEmpty()
	}

	for i := range result.Items {
		item := &result.Items[i]
		item.SimilarityScore = recommend.Round2(item.SimilarityScore)
		v := item.AverageRatings.Values()
		for d := range v {
			v[d] = recommend.Round2(v[d])
		}
		item.AverageRatings = model.FromValues(v)
	}
	return result, nil
}

// Schools returns the catalog with derived sport display lists.
func (s *Service) Schools(ctx context.Context) ([]SchoolView, error) {
	schools, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return viewsOf(schools), nil
}

// FilterSchools returns schools whose normalized name contains the
// normalized query, optionally restricted to a sport. Normalizing both
// sides makes "Wisconsin" find "Wisconsin-Madison" and ignores case,
// punctuation, and generic words.
func (s *Service) FilterSchools(ctx context.Context, nameQuery string, sp sport.Sport) ([]SchoolView, error) {
	schools, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	query := s.normalizer.Normalize(nameQuery)
	var matched []model.School
	for _, sc := range schools {
		if sp != "" && !sc.Offers(sp) {
			continue
		}
		if query != "" && !strings.Contains(s.normalizer.Normalize(sc.Name), query) {
			continue
		}
		matched = append(matched, sc)
	}
	return viewsOf(matched), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"defaultTopN": s.defaultTopN,
		"maxTopN":     s.maxTopN,
	}
	if s.started {
		schools, reviews, prefs := s.store.Counts()
		stats["totalSchools"] = schools
		stats["totalReviews"] = reviews
		stats["totalPreferences"] = prefs
	}
	return stats
}

// resolvePresence runs the tenure lookup and the name matcher for one coach.
func (s *Service) resolvePresence(ctx context.Context, coachName, schoolName string, sp sport.Sport) (string, namematch.Presence, error) {
	start := time.Now()
	metrics.RecordTenureLookup()
	blob, err := s.tenure.Search(ctx, coachName, schoolName, sp)
	metrics.RecordTenureLookupLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordTenureLookupError()
		return "", namematch.PresenceUnknown, fmt.Errorf("tenure lookup for %q: %w", coachName, err)
	}

	presence := s.normalizer.StillAtSchool(blob, schoolName)
	metrics.RecordTenurePresence(presence.String())
	return blob, presence, nil
}

func (s *Service) refreshGauges() {
	schools, reviews, prefs := s.store.Counts()
	metrics.UpdateTotalSchools(schools)
	metrics.UpdateTotalReviews(reviews)
	metrics.UpdateTotalPreferences(prefs)
}

func viewsOf(schools []model.School) []SchoolView {
	views := make([]SchoolView, len(schools))
	for i, sc := range schools {
		views[i] = SchoolView{School: sc, AvailableSports: sc.AvailableSports()}
	}
	return views
}
