// Package sport defines the canonical sport codes used across the service.
//
// Upstream clients send sports interchangeably as short codes ("mbb") and
// display names ("Men's Basketball"). Everything past the HTTP boundary
// works with the Sport code only; display names are produced on the way out.
package sport

import "strings"

// Sport is the canonical short code for an athletic program.
type Sport string

// Known sport codes.
const (
	MensBasketball   Sport = "mbb"
	WomensBasketball Sport = "wbb"
	Football         Sport = "fb"
)

// displayNames maps codes to their human-readable form.
var displayNames = map[Sport]string{
	MensBasketball:   "Men's Basketball",
	WomensBasketball: "Women's Basketball",
	Football:         "Football",
}

// All returns the known sport codes in a stable order.
func All() []Sport {
	return []Sport{MensBasketball, WomensBasketball, Football}
}

// Parse resolves a raw sport string to its canonical code. It accepts both
// codes and display names, case-insensitively, and tolerates the curly
// apostrophe some clients send in "Men’s Basketball". Unknown input is
// returned as a literal lowercased code rather than an error so that new
// sports degrade gracefully instead of breaking ingestion.
func Parse(raw string) Sport {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "’", "'")
	switch s {
	case "mbb", "men's basketball", "mens basketball":
		return MensBasketball
	case "wbb", "women's basketball", "womens basketball":
		return WomensBasketball
	case "fb", "football":
		return Football
	}
	return Sport(s)
}

// DisplayName returns the human-readable name for the sport. Codes without
// a known display form echo themselves, matching Parse's literal fallback.
func (s Sport) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

// Known reports whether the sport is one of the codes this service tracks.
func (s Sport) Known() bool {
	_, ok := displayNames[s]
	return ok
}
