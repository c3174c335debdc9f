// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/sport"
)

// preferenceRequest mirrors the POST /preferences payload.
type preferenceRequest struct {
	UserID string `json:"user_id"`
	Sport  string `json:"sport"`

	HeadCoach          int `json:"head_coach"`
	AssistantCoaches   int `json:"assistant_coaches"`
	TeamCulture        int `json:"team_culture"`
	CampusLife         int `json:"campus_life"`
	AthleticFacilities int `json:"athletic_facilities"`
	AthleticDepartment int `json:"athletic_department"`
	PlayerDevelopment  int `json:"player_development"`
	NILOpportunity     int `json:"nil_opportunity"`
}

func (req preferenceRequest) validate() error {
	switch {
	case !requiredString(req.UserID):
		return errors.New("missing user_id")
	case !requiredString(req.Sport):
		return errors.New("missing sport")
	}
	return validateRatings(req.ratings())
}

func (req preferenceRequest) ratings() model.Ratings {
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

// PreferencesHandler handles preference vector requests.
type PreferencesHandler struct {
	deps Dependencies
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(deps Dependencies) *PreferencesHandler {
	return &PreferencesHandler{deps: deps}
}

// Handle dispatches /preferences requests: POST upserts a vector for a
// user and sport, GET lists the vectors stored for a user.
func (h *PreferencesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleUpsert(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PreferencesHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	const op = "api.upsert_preferences"

	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	pref := model.PreferenceVector{
		UserID:  req.UserID,
		Sport:   sport.Parse(req.Sport),
		Ratings: req.ratings(),
	}
	stored, err := h.deps.SavePreferences(r.Context(), pref)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *PreferencesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_preferences"

	userID := r.URL.Query().Get("user_id")
	if !requiredString(userID) {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("user_id parameter is required")))
		return
	}

	prefs, err := h.deps.PreferencesFor(r.Context(), userID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if prefs == nil {
		prefs = []model.PreferenceVector{}
	}
	writeJSON(w, http.StatusOK, prefs)
}
