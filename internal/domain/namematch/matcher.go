package namematch

import "strings"

// NotFoundSentinel is the literal value the external tenure lookup returns
// when it has no record for a coach.
const NotFoundSentinel = "not found"

// Presence is the three-state answer to "is the coach still at the school".
// Unknown means the tenure data could not support a judgement either way and
// must never be coerced to a boolean.
type Presence int

const (
	// PresenceUnknown means tenure data was missing or unparseable.
	PresenceUnknown Presence = iota
	// PresenceAtSchool means the most recent tenure entry matches the school.
	PresenceAtSchool
	// PresenceDeparted means the most recent tenure entry names another school.
	PresenceDeparted
)

// String returns a wire-friendly name for the presence state.
func (p Presence) String() string {
	switch p {
	case PresenceAtSchool:
		return "at_school"
	case PresenceDeparted:
		return "departed"
	default:
		return "unknown"
	}
}

// StillAtSchool judges whether the coach described by tenureBlob is still at
// schoolName. The blob is newline-separated entries of the form
// "YYYY-YYYY: Head Coach @ School Name" (or "YYYY-present: ..."); the last
// entry is treated as the most recent. The coach is at the school iff the
// normalized institution text after the "@" marker ends with the normalized
// school name, or matches one of the school's configured aliases.
//
// Missing, sentinel, or malformed input yields PresenceUnknown. The blob is
// uncontrolled external text, so nothing in here may panic.
func (n *Normalizer) StillAtSchool(tenureBlob, schoolName string) Presence {
	blob := strings.TrimSpace(tenureBlob)
	if blob == "" || strings.EqualFold(blob, NotFoundSentinel) {
		return PresenceUnknown
	}

	var last string
	for _, line := range strings.Split(blob, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			last = line
		}
	}
	if last == "" {
		return PresenceUnknown
	}

	at := strings.LastIndex(last, "@")
	if at < 0 || at == len(last)-1 {
		return PresenceUnknown
	}

	inst := n.Normalize(last[at+1:])
	school := n.Normalize(schoolName)
	if inst == "" || school == "" {
		return PresenceUnknown
	}

	if strings.HasSuffix(inst, school) {
		return PresenceAtSchool
	}
	for _, alias := range n.schoolAliases[school] {
		if inst == alias || strings.HasSuffix(inst, alias) {
			return PresenceAtSchool
		}
	}
	return PresenceDeparted
}

// SchoolAliases returns the configured alias list for a normalized school
// name. The returned slice must not be mutated.
func (n *Normalizer) SchoolAliases(normalizedSchool string) []string {
	return n.schoolAliases[normalizedSchool]
}
