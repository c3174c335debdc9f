package tenure_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/courtside/fieldrank/internal/adapters/tenure"
	"github.com/courtside/fieldrank/internal/domain/namematch"
	"github.com/courtside/fieldrank/internal/domain/sport"
	. "github.com/smartystreets/goconvey/convey"
)

const painterBlob = "2005-present: Head Coach @ Purdue University"

func newLookup() *tenure.StaticLookup {
	return tenure.NewStaticLookup(
		tenure.WithRecords(map[string]string{"Matt Painter": painterBlob}),
		tenure.WithLatencyRange(time.Millisecond, 2*time.Millisecond),
	)
}

func TestStaticLookup_Search(t *testing.T) {
	ctx := context.Background()

	Convey("Given a static lookup seeded with records", t, func() {
		l := newLookup()

		Convey("When the coach has a record", func() {
			blob, err := l.Search(ctx, "Matt Painter", "Purdue", sport.MensBasketball)
			So(err, ShouldBeNil)
			So(blob, ShouldEqual, painterBlob)
		})

		Convey("When the coach name differs only in case or spacing", func() {
			blob, err := l.Search(ctx, "  matt painter  ", "Purdue", sport.MensBasketball)
			So(err, ShouldBeNil)
			So(blob, ShouldEqual, painterBlob)
		})

		Convey("When the coach has no record the sentinel comes back", func() {
			blob, err := l.Search(ctx, "Nobody Known", "Purdue", sport.MensBasketball)
			So(err, ShouldBeNil)
			So(blob, ShouldEqual, namematch.NotFoundSentinel)
		})

		Convey("When the coach name is blank the sentinel comes back", func() {
			blob, err := l.Search(ctx, "   ", "Purdue", sport.MensBasketball)
			So(err, ShouldBeNil)
			So(blob, ShouldEqual, namematch.NotFoundSentinel)
		})

		Convey("When the latency bounds are equal the latency is fixed", func() {
			fixed := tenure.NewStaticLookup(
				tenure.WithRecords(map[string]string{"Matt Painter": painterBlob}),
				tenure.WithLatencyRange(time.Millisecond, time.Millisecond),
			)
			blob, err := fixed.Search(ctx, "Matt Painter", "Purdue", sport.MensBasketball)
			So(err, ShouldBeNil)
			So(blob, ShouldEqual, painterBlob)
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := l.Search(cancelled, "Matt Painter", "Purdue", sport.MensBasketball)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadRecords(t *testing.T) {
	Convey("Given tenure record files", t, func() {
		Convey("When the path is empty the table is empty", func() {
			records, err := tenure.LoadRecords("")
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)
		})

		Convey("When the path points at a YAML file", func() {
			path := filepath.Join(t.TempDir(), "records.yaml")
			data := "records:\n  \"Matt Painter\": \"2005-present: Head Coach @ Purdue University\"\n"
			So(os.WriteFile(path, []byte(data), 0o600), ShouldBeNil)

			records, err := tenure.LoadRecords(path)
			So(err, ShouldBeNil)
			So(records["Matt Painter"], ShouldEqual, painterBlob)
		})

		Convey("When the path does not exist loading fails", func() {
			_, err := tenure.LoadRecords(filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
