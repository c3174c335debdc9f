package namematch_test

import (
	"testing"

	"github.com/courtside/fieldrank/internal/domain/namematch"
	. "github.com/smartystreets/goconvey/convey"
)

func newNormalizer(t *testing.T) *namematch.Normalizer {
	t.Helper()
	tables, err := namematch.LoadTables("")
	if err != nil {
		t.Fatalf("load embedded tables: %v", err)
	}
	return namematch.New(namematch.WithTables(tables))
}

func TestNormalize(t *testing.T) {
	n := newNormalizer(t)

	Convey("Given institution names in the wild", t, func() {
		Convey("When normalizing canonical long forms", func() {
			So(n.Normalize("University of Wisconsin-Madison"), ShouldEqual, "wisconsin madison")
			So(n.Normalize("The Ohio State University"), ShouldEqual, "ohio st")
			So(n.Normalize("Ohio State University"), ShouldEqual, "ohio st")
			So(n.Normalize("Penn State"), ShouldEqual, "penn st")
			So(n.Normalize("Michigan State University"), ShouldEqual, "michigan st")
		})

		Convey("When the input carries noise", func() {
			So(n.Normalize("  ohio   state  "), ShouldEqual, "ohio st")
			So(n.Normalize("OHIO STATE"), ShouldEqual, "ohio st")
			So(n.Normalize("Michigan–Ann Arbor"), ShouldEqual, "michigan ann arbor")
		})

		Convey("When the input has diacritics", func() {
			So(n.Normalize("José State"), ShouldEqual, "jose st")
		})

		Convey("When initials are spelled with gaps", func() {
			So(n.Normalize("a. b. foster institute"), ShouldEqual, "a.b. foster institute")
			So(n.Normalize("j. r. r. tolkien hall"), ShouldEqual, "j.r.r. tolkien hall")
		})

		Convey("When a short-form alias is configured", func() {
			So(n.Normalize("OSU"), ShouldEqual, "ohio st")
			So(n.Normalize("UW Madison"), ShouldEqual, "wisconsin madison")
			So(n.Normalize("UW"), ShouldEqual, "wisconsin madison")
			So(n.Normalize("PSU"), ShouldEqual, "penn st")
		})

		Convey("When the input is empty or all generic words", func() {
			So(n.Normalize(""), ShouldEqual, "")
			So(n.Normalize("   "), ShouldEqual, "")
			So(n.Normalize("The University of"), ShouldEqual, "")
		})

		Convey("Then normalization is idempotent", func() {
			for _, name := range []string{
				"University of Wisconsin-Madison",
				"The Ohio State University",
				"OSU",
				"Penn State",
			} {
				once := n.Normalize(name)
				So(n.Normalize(once), ShouldEqual, once)
			}
		})
	})
}

func TestNormalizeWithoutTables(t *testing.T) {
	Convey("Given a normalizer with no alias tables", t, func() {
		n := namematch.New()

		Convey("Then mechanical steps still apply", func() {
			So(n.Normalize("University of Wisconsin-Madison"), ShouldEqual, "wisconsin madison")
			So(n.Normalize("Ohio State University"), ShouldEqual, "ohio st")
		})

		Convey("Then unconfigured aliases pass through untouched", func() {
			So(n.Normalize("OSU"), ShouldEqual, "osu")
		})
	})
}

func TestDisplayName(t *testing.T) {
	Convey("Given coach names in free-form casing", t, func() {
		Convey("Then the first letter of each token is upcased", func() {
			So(namematch.DisplayName("sherri m. coale"), ShouldEqual, "Sherri M. Coale")
			So(namematch.DisplayName("  kirby   smart "), ShouldEqual, "Kirby Smart")
		})

		Convey("Then interior casing is left untouched", func() {
			So(namematch.DisplayName("greg mcDermott"), ShouldEqual, "Greg McDermott")
		})

		Convey("Then empty input yields empty output", func() {
			So(namematch.DisplayName(""), ShouldEqual, "")
			So(namematch.DisplayName("   "), ShouldEqual, "")
		})
	})
}
