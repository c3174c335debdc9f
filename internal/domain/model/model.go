// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/courtside/fieldrank/internal/domain/sport"
)

// DimensionCount is the number of rating dimensions on every review and
// preference vector.
const DimensionCount = 8

// Dimensions lists the rating dimension names in canonical order. The order
// matches Ratings.Values and Averages.Values.
var Dimensions = [DimensionCount]string{
	"head_coach",
	"assistant_coaches",
	"team_culture",
	"campus_life",
	"athletic_facilities",
	"athletic_department",
	"player_development",
	"nil_opportunity",
}

// Ratings holds the eight integer rating dimensions on a 0-10 scale.
type Ratings struct {
	HeadCoach          int `json:"head_coach"`
	AssistantCoaches   int `json:"assistant_coaches"`
	TeamCulture        int `json:"team_culture"`
	CampusLife         int `json:"campus_life"`
	AthleticFacilities int `json:"athletic_facilities"`
	AthleticDepartment int `json:"athletic_department"`
	PlayerDevelopment  int `json:"player_development"`
	NILOpportunity     int `json:"nil_opportunity"`
}

// Values returns the dimensions in canonical order.
func (r Ratings) Values() [DimensionCount]int {
	return [DimensionCount]int{
		r.HeadCoach,
		r.AssistantCoaches,
		r.TeamCulture,
		r.CampusLife,
		r.AthleticFacilities,
		r.AthleticDepartment,
		r.PlayerDevelopment,
		r.NILOpportunity,
	}
}

// Averages holds per-dimension mean ratings for a (school, sport) pair.
type Averages struct {
	HeadCoach          float64 `json:"head_coach"`
	AssistantCoaches   float64 `json:"assistant_coaches"`
	TeamCulture        float64 `json:"team_culture"`
	CampusLife         float64 `json:"campus_life"`
	AthleticFacilities float64 `json:"athletic_facilities"`
	AthleticDepartment float64 `json:"athletic_department"`
	PlayerDevelopment  float64 `json:"player_development"`
	NILOpportunity     float64 `json:"nil_opportunity"`
}

// Values returns the dimensions in canonical order.
func (a Averages) Values() [DimensionCount]float64 {
	return [DimensionCount]float64{
		a.HeadCoach,
		a.AssistantCoaches,
		a.TeamCulture,
		a.CampusLife,
		a.AthleticFacilities,
		a.AthleticDepartment,
		a.PlayerDevelopment,
		a.NILOpportunity,
	}
}

// FromValues builds Averages from dimensions in canonical order.
func FromValues(v [DimensionCount]float64) Averages {
	return Averages{
		HeadCoach:          v[0],
		AssistantCoaches:   v[1],
		TeamCulture:        v[2],
		CampusLife:         v[3],
		AthleticFacilities: v[4],
		AthleticDepartment: v[5],
		PlayerDevelopment:  v[6],
		NILOpportunity:     v[7],
	}
}

// PreferenceVector is a user's stated importance weights for one sport.
// At most one active vector exists per (user, sport); saving replaces the
// prior one.
type PreferenceVector struct {
	ID        uuid.UUID   `json:"preference_id"`
	UserID    string      `json:"user_id"`
	Sport     sport.Sport `json:"sport"`
	Ratings   Ratings     `json:"ratings"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Review is a user-submitted rating of a school's program under one coach.
// Reviews are immutable once created.
type Review struct {
	ID            uuid.UUID   `json:"review_id"`
	SchoolID      int         `json:"school_id"`
	UserID        string      `json:"user_id"`
	Sport         sport.Sport `json:"sport"`
	CoachName     string      `json:"head_coach_name"`
	Message       string      `json:"review_message"`
	Ratings       Ratings     `json:"ratings"`
	CoachHistory  string      `json:"coach_history,omitempty"`
	CoachDeparted bool        `json:"coach_no_longer_at_school"`
	CreatedAt     time.Time   `json:"created_at"`
}

// School is an institution offering one or more tracked sports.
type School struct {
	ID         int    `json:"id"`
	Name       string `json:"school_name"`
	Conference string `json:"conference"`
	Location   string `json:"location"`
	MBB        bool   `json:"mbb"`
	WBB        bool   `json:"wbb"`
	FB         bool   `json:"fb"`
}

// Offers reports whether the school fields a program for the sport.
func (s School) Offers(sp sport.Sport) bool {
	switch sp {
	case sport.MensBasketball:
		return s.MBB
	case sport.WomensBasketball:
		return s.WBB
	case sport.Football:
		return s.FB
	}
	return false
}

// AvailableSports lists the display names of the sports the school offers.
func (s School) AvailableSports() []string {
	var sports []string
	for _, sp := range sport.All() {
		if s.Offers(sp) {
			sports = append(sports, sp.DisplayName())
		}
	}
	return sports
}
