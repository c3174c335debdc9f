// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
)

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps Dependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

// HandleGetRecommendations handles GET /recommendations?user_id=&limit=
// requests. A missing or non-positive limit defers to the service default;
// oversized limits are capped by the service.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recommendations"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if !requiredString(userID) {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("user_id parameter is required")))
		return
	}

	topN := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("limit must be an integer")))
			return
		}
		topN = n
	}

	result, err := h.deps.Recommend(r.Context(), userID, topN)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	if result.NoPreferences {
		writeJSON(w, http.StatusOK, map[string]bool{"no_preferences": true})
		return
	}
	items := result.Items
	if items == nil {
		items = []Recommendation{}
	}
	writeJSON(w, http.StatusOK, items)
}
