// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/sport"
)

// reviewRequest mirrors the POST /reviews payload. Rating fields are flat,
// matching the shape clients already send.
type reviewRequest struct {
	SchoolID  int    `json:"school_id"`
	UserID    string `json:"user_id"`
	Sport     string `json:"sport"`
	CoachName string `json:"head_coach_name"`
	Message   string `json:"review_message"`

	HeadCoach          int `json:"head_coach"`
	AssistantCoaches   int `json:"assistant_coaches"`
	TeamCulture        int `json:"team_culture"`
	CampusLife         int `json:"campus_life"`
	AthleticFacilities int `json:"athletic_facilities"`
	AthleticDepartment int `json:"athletic_department"`
	PlayerDevelopment  int `json:"player_development"`
	NILOpportunity     int `json:"nil_opportunity"`
}

func (req reviewRequest) validate() error {
	switch {
	case req.SchoolID < 1:
		return errors.New("missing school_id")
	case !requiredString(req.UserID):
		return errors.New("missing user_id")
	case !requiredString(req.Sport):
		return errors.New("missing sport")
	case !requiredString(req.CoachName):
		return errors.New("missing head_coach_name")
	case !requiredString(req.Message):
		return errors.New("missing review_message")
	}
	return validateRatings(req.ratings())
}

func (req reviewRequest) ratings() model.Ratings {
	return model.Ratings{
		HeadCoach:          req.HeadCoach,
		AssistantCoaches:   req.AssistantCoaches,
		TeamCulture:        req.TeamCulture,
		CampusLife:         req.CampusLife,
		AthleticFacilities: req.AthleticFacilities,
		AthleticDepartment: req.AthleticDepartment,
		PlayerDevelopment:  req.PlayerDevelopment,
		NILOpportunity:     req.NILOpportunity,
	}
}

// validateRatings checks every dimension sits on the 0-10 scale.
func validateRatings(r model.Ratings) error {
	for i, v := range r.Values() {
		if v < 0 || v > 10 {
			return fmt.Errorf("%s must be between 0 and 10", model.Dimensions[i])
		}
	}
	return nil
}

// ReviewsHandler handles review submission requests.
type ReviewsHandler struct {
	deps Dependencies
}

// NewReviewsHandler creates a new reviews handler.
func NewReviewsHandler(deps Dependencies) *ReviewsHandler {
	return &ReviewsHandler{deps: deps}
}

// Handle dispatches /reviews requests: POST stores a review, GET lists the
// reviews a user has written.
func (h *ReviewsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleListByUser(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ReviewsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_review"

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	review := model.Review{
		SchoolID:  req.SchoolID,
		UserID:    req.UserID,
		Sport:     sport.Parse(req.Sport),
		CoachName: req.CoachName,
		Message:   req.Message,
		Ratings:   req.ratings(),
	}
	stored, err := h.deps.SubmitReview(r.Context(), review)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *ReviewsHandler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	const op = "api.user_reviews"

	userID := r.URL.Query().Get("user_id")
	if !requiredString(userID) {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("user_id parameter is required")))
		return
	}

	reviews, err := h.deps.UserReviews(r.Context(), userID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if reviews == nil {
		reviews = []AnnotatedReview{}
	}
	writeJSON(w, http.StatusOK, reviews)
}
