// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/courtside/fieldrank/internal/domain/sport"
)

// SchoolsHandler handles school catalog requests.
type SchoolsHandler struct {
	deps Dependencies
}

// NewSchoolsHandler creates a new schools handler.
func NewSchoolsHandler(deps Dependencies) *SchoolsHandler {
	return &SchoolsHandler{deps: deps}
}

// HandleListSchools handles GET /schools?name=&sport= requests. Without
// query parameters the full catalog is returned; with them the catalog is
// filtered by normalized-name substring and/or sport capability.
func (h *SchoolsHandler) HandleListSchools(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_schools"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := r.URL.Query().Get("name")
	sportRaw := r.URL.Query().Get("sport")

	var (
		schools []SchoolView
		err     error
	)
	if name == "" && sportRaw == "" {
		schools, err = h.deps.Schools(r.Context())
	} else {
		var sp sport.Sport
		if sportRaw != "" {
			sp = sport.Parse(sportRaw)
		}
		schools, err = h.deps.FilterSchools(r.Context(), name, sp)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if schools == nil {
		schools = []SchoolView{}
	}
	writeJSON(w, http.StatusOK, schools)
}

// HandleSchoolReviews handles GET /schools/{id}/reviews?sport= requests.
func (h *SchoolsHandler) HandleSchoolReviews(w http.ResponseWriter, r *http.Request) {
	const op = "api.school_reviews"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Extract path parameters after /schools/: expect "{id}/reviews".
	path := strings.TrimPrefix(r.URL.Path, "/schools/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[1] != "reviews" {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	sportRaw := r.URL.Query().Get("sport")
	if !requiredString(sportRaw) {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("sport parameter is required")))
		return
	}

	reviews, err := h.deps.SchoolReviews(r.Context(), id, sport.Parse(sportRaw))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if reviews == nil {
		reviews = []AnnotatedReview{}
	}
	writeJSON(w, http.StatusOK, reviews)
}
