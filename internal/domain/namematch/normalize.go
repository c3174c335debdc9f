// Package namematch normalizes institution and coach names into canonical
// comparable forms and decides whether a coach's most recent recorded tenure
// matches a given school.
//
// The normalizer consumes uncontrolled free text (tenure records come from an
// external lookup), so every function here degrades instead of failing.
package namematch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents removes diacritic marks so "José" and "Jose" compare equal.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	initialGapRe = regexp.MustCompile(`\b([a-z])\.\s+([a-z])\.`)
)

// genericWords are dropped from institution names before comparison.
var genericWords = map[string]bool{
	"university": true,
	"college":    true,
	"the":        true,
	"of":         true,
	"@":          true,
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithAliasTable sets the general short-form alias table. Keys and values
// are run through the mechanical normalization steps at construction, so a
// hand-maintained table entry that drifts out of normalized form still
// matches at lookup time.
func WithAliasTable(aliases map[string]string) Option {
	return func(n *Normalizer) {
		out := make(map[string]string, len(aliases))
		for k, v := range aliases {
			out[n.Normalize(k)] = n.Normalize(v)
		}
		n.aliases = out
	}
}

// WithSchoolAliases sets the per-school override table keyed by school name.
// It is consulted only by StillAtSchool, after Normalize. Keys and values
// are normalized at construction; when the general alias table is already
// set (as WithTables does), values pass through it too.
func WithSchoolAliases(overrides map[string][]string) Option {
	return func(n *Normalizer) {
		n.schoolAliases = make(map[string][]string, len(overrides))
		for k, v := range overrides {
			list := make([]string, 0, len(v))
			for _, alias := range v {
				list = append(list, n.Normalize(alias))
			}
			n.schoolAliases[n.Normalize(k)] = list
		}
	}
}

// WithTables sets both alias tables from a loaded Tables value.
func WithTables(t Tables) Option {
	return func(n *Normalizer) {
		WithAliasTable(t.Aliases)(n)
		WithSchoolAliases(t.SchoolAliases)(n)
	}
}

// Normalizer produces canonical institution name forms. The alias tables are
// injected at construction and never mutated afterwards, so a single
// Normalizer is safe for concurrent use.
type Normalizer struct {
	aliases       map[string]string
	schoolAliases map[string][]string
}

// New creates a Normalizer. Without options both alias tables are empty and
// only the mechanical normalization steps apply.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		aliases:       make(map[string]string),
		schoolAliases: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize reduces an institution name to its canonical comparable form.
//
// The steps run in a fixed order; in particular "state university" handling
// must precede generic word removal or "Ohio State University" would lose
// "university" first and come out as "ohio state" instead of "ohio st".
func (n *Normalizer) Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}

	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	s = strings.NewReplacer("-", " ", "–", " ", "—", " ").Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")

	// Close the gap between spelled-out initials: "a. b." -> "a.b."
	for {
		out := initialGapRe.ReplaceAllString(s, "$1.$2.")
		if out == s {
			break
		}
		s = out
	}

	s = strings.TrimPrefix(s, "university of ")
	s = strings.ReplaceAll(s, "state university", "st")
	if strings.HasSuffix(s, " state") {
		s = strings.TrimSuffix(s, " state") + " st"
	}

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if !genericWords[f] {
			kept = append(kept, f)
		}
	}
	s = strings.Join(kept, " ")

	if canonical, ok := n.aliases[s]; ok {
		s = canonical
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// DisplayName standardizes capitalization of a person name for display:
// the first letter of each token is upcased and the rest left untouched,
// so "van der Berg" keeps its interior casing. This is a display transform
// only and must not be used for matching; use Normalize for that.
func DisplayName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	for i, f := range fields {
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
