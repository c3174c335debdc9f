// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/courtside/fieldrank/internal/adapters/repository"
	service "github.com/courtside/fieldrank/internal/app"
	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/recommend"
	"github.com/courtside/fieldrank/internal/domain/sport"
)

// AnnotatedReview and SchoolView mirror the read shapes the service returns.
type (
	AnnotatedReview = service.AnnotatedReview
	SchoolView      = service.SchoolView
	Recommendation  = recommend.Recommendation
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SavePreferences(ctx context.Context, pref model.PreferenceVector) (model.PreferenceVector, error)
	PreferencesFor(ctx context.Context, userID string) ([]model.PreferenceVector, error)
	SubmitReview(ctx context.Context, review model.Review) (model.Review, error)
	SchoolReviews(ctx context.Context, schoolID int, sp sport.Sport) ([]AnnotatedReview, error)
	UserReviews(ctx context.Context, userID string) ([]AnnotatedReview, error)
	Recommend(ctx context.Context, userID string, topN int) (recommend.Result, error)
	Schools(ctx context.Context) ([]SchoolView, error)
	FilterSchools(ctx context.Context, nameQuery string, sp sport.Sport) ([]SchoolView, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	schoolsHandler         *SchoolsHandler
	reviewsHandler         *ReviewsHandler
	preferencesHandler     *PreferencesHandler
	recommendationsHandler *RecommendationsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		schoolsHandler:         NewSchoolsHandler(deps),
		reviewsHandler:         NewReviewsHandler(deps),
		preferencesHandler:     NewPreferencesHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/schools", MetricsMiddleware(s.schoolsHandler.HandleListSchools, "schools"))
	mux.HandleFunc("/schools/", MetricsMiddleware(s.schoolsHandler.HandleSchoolReviews, "school_reviews"))
	mux.HandleFunc("/reviews", MetricsMiddleware(s.reviewsHandler.Handle, "reviews"))
	mux.HandleFunc("/preferences", MetricsMiddleware(s.preferencesHandler.Handle, "preferences"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates known domain error kinds to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrSchoolNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrDuplicateReview):
		writeError(w, http.StatusConflict, "duplicate_review", err)
	case errors.Is(err, service.ErrSportNotOffered):
		writeError(w, http.StatusBadRequest, "sport_not_offered", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// requiredString trims s and reports whether anything is left.
func requiredString(s string) bool {
	return strings.TrimSpace(s) != ""
}
