package recommend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/courtside/fieldrank/internal/domain/model"
	"github.com/courtside/fieldrank/internal/domain/recommend"
	"github.com/courtside/fieldrank/internal/domain/sport"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeStores is an in-memory implementation of the three store contracts,
// small enough to set up inline per test.
type fakeStores struct {
	pref      model.PreferenceVector
	prefFound bool
	prefErr   error

	schools []model.School

	// reviews per school id; the map value already excludes nobody.
	reviews    map[int][]model.Review
	reviewsErr error

	reviewed map[int]string // school id -> user who reviewed it
}

func (f *fakeStores) Preference(context.Context, string) (model.PreferenceVector, bool, error) {
	return f.pref, f.prefFound, f.prefErr
}

func (f *fakeStores) BySchoolSport(_ context.Context, schoolID int, _ sport.Sport, excludeUserID string) ([]model.Review, error) {
	if f.reviewsErr != nil {
		return nil, f.reviewsErr
	}
	var out []model.Review
	for _, r := range f.reviews[schoolID] {
		if excludeUserID != "" && r.UserID == excludeUserID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStores) UserReviewed(_ context.Context, userID string, schoolID int, _ sport.Sport) (bool, error) {
	return f.reviewed[schoolID] == userID, nil
}

func (f *fakeStores) BySport(context.Context, sport.Sport) ([]model.School, error) {
	return f.schools, nil
}

func uniformRatings(v int) model.Ratings {
	return model.Ratings{
		HeadCoach:          v,
		AssistantCoaches:   v,
		TeamCulture:        v,
		CampusLife:         v,
		AthleticFacilities: v,
		AthleticDepartment: v,
		PlayerDevelopment:  v,
		NILOpportunity:     v,
	}
}

func reviewWith(userID string, schoolID int, ratings model.Ratings) model.Review {
	return model.Review{
		UserID:   userID,
		SchoolID: schoolID,
		Sport:    sport.MensBasketball,
		Ratings:  ratings,
	}
}

func TestScore(t *testing.T) {
	Convey("Given the preference-weighted similarity score", t, func() {
		Convey("When averages sit exactly on the baseline", func() {
			avg := model.FromValues([model.DimensionCount]float64{5, 5, 5, 5, 5, 5, 5, 5})
			So(recommend.Score(uniformRatings(10), avg), ShouldEqual, recommend.Baseline)
			So(recommend.Score(uniformRatings(1), avg), ShouldEqual, recommend.Baseline)
		})

		Convey("When every dimension maxes out the score clamps to 10", func() {
			avg := model.FromValues([model.DimensionCount]float64{10, 10, 10, 10, 10, 10, 10, 10})
			So(recommend.Score(uniformRatings(10), avg), ShouldEqual, 10.0)
		})

		Convey("When every dimension bottoms out the score clamps to 0", func() {
			avg := model.FromValues([model.DimensionCount]float64{0, 0, 0, 0, 0, 0, 0, 0})
			So(recommend.Score(uniformRatings(10), avg), ShouldEqual, 0.0)
		})

		Convey("When a preference is zero it is floored to weight one", func() {
			// One dimension above baseline; the user claims not to care.
			var vals [model.DimensionCount]float64
			for i := range vals {
				vals[i] = 5
			}
			vals[0] = 9
			avg := model.FromValues(vals)

			pref := uniformRatings(0)
			// All weights floor to 1: score = 5 + 4/8.
			So(recommend.Score(pref, avg), ShouldEqual, 5.5)
		})

		Convey("When weights differ the cared-about dimension dominates", func() {
			var vals [model.DimensionCount]float64
			for i := range vals {
				vals[i] = 5
			}
			vals[0] = 9

			pref := uniformRatings(1)
			pref.HeadCoach = 10
			weighted := recommend.Score(pref, model.FromValues(vals))

			pref.HeadCoach = 1
			unweighted := recommend.Score(pref, model.FromValues(vals))

			So(weighted, ShouldBeGreaterThan, unweighted)
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given review sets to aggregate", t, func() {
		Convey("When the set is empty every mean is the baseline", func() {
			avg := recommend.Aggregate(nil)
			for _, v := range avg.Values() {
				So(v, ShouldEqual, recommend.Baseline)
			}
		})

		Convey("When reviews disagree the mean is per-dimension", func() {
			avg := recommend.Aggregate([]model.Review{
				reviewWith("u1", 1, uniformRatings(8)),
				reviewWith("u2", 1, uniformRatings(4)),
			})
			for _, v := range avg.Values() {
				So(v, ShouldEqual, 6.0)
			}
		})
	})
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()

	schoolA := model.School{ID: 1, Name: "School A", MBB: true}
	schoolB := model.School{ID: 2, Name: "School B", MBB: true}
	schoolC := model.School{ID: 3, Name: "School C", MBB: true}

	Convey("Given a user with stored preferences", t, func() {
		stores := &fakeStores{
			pref: model.PreferenceVector{
				UserID:  "asker",
				Sport:   sport.MensBasketball,
				Ratings: uniformRatings(8),
			},
			prefFound: true,
			schools:   []model.School{schoolA, schoolB, schoolC},
			reviews: map[int][]model.Review{
				schoolA.ID: {
					reviewWith("u1", schoolA.ID, uniformRatings(8)),
					reviewWith("u2", schoolA.ID, uniformRatings(8)),
				},
				schoolB.ID: {
					reviewWith("u1", schoolB.ID, uniformRatings(4)),
				},
			},
			reviewed: map[int]string{},
		}
		r := recommend.New(stores, stores, stores)

		Convey("When recommendations are computed", func() {
			result, err := r.Recommend(ctx, "asker", 10)
			So(err, ShouldBeNil)
			So(result.NoPreferences, ShouldBeFalse)

			Convey("Then the closer school ranks first", func() {
				So(len(result.Items), ShouldEqual, 2)
				So(result.Items[0].School.Name, ShouldEqual, "School A")
				So(result.Items[1].School.Name, ShouldEqual, "School B")
				So(result.Items[0].SimilarityScore, ShouldBeGreaterThan, 7.5)
				So(result.Items[0].SimilarityScore, ShouldBeGreaterThan, result.Items[1].SimilarityScore)
			})

			Convey("Then the sport is reported by display name", func() {
				So(result.Items[0].Sport, ShouldEqual, "Men's Basketball")
			})

			Convey("Then review counts and averages come along", func() {
				So(result.Items[0].ReviewCount, ShouldEqual, 2)
				So(result.Items[0].AverageRatings.Values()[0], ShouldEqual, 8.0)
			})

			Convey("Then schools without foreign reviews are absent", func() {
				for _, item := range result.Items {
					So(item.School.ID, ShouldNotEqual, schoolC.ID)
				}
			})
		})

		Convey("When the user already reviewed a school it is excluded", func() {
			stores.reviewed[schoolA.ID] = "asker"
			result, err := r.Recommend(ctx, "asker", 10)
			So(err, ShouldBeNil)
			So(len(result.Items), ShouldEqual, 1)
			So(result.Items[0].School.Name, ShouldEqual, "School B")
		})

		Convey("When a school has only the requester's own review it is excluded", func() {
			stores.reviews[schoolC.ID] = []model.Review{
				reviewWith("asker", schoolC.ID, uniformRatings(10)),
			}
			result, err := r.Recommend(ctx, "asker", 10)
			So(err, ShouldBeNil)
			for _, item := range result.Items {
				So(item.School.ID, ShouldNotEqual, schoolC.ID)
			}
		})

		Convey("When topN is smaller than the candidate set it truncates", func() {
			result, err := r.Recommend(ctx, "asker", 1)
			So(err, ShouldBeNil)
			So(len(result.Items), ShouldEqual, 1)
			So(result.Items[0].School.Name, ShouldEqual, "School A")
		})

		Convey("When topN is non-positive the default applies", func() {
			limited := recommend.New(stores, stores, stores, recommend.WithDefaultTopN(1))
			result, err := limited.Recommend(ctx, "asker", 0)
			So(err, ShouldBeNil)
			So(len(result.Items), ShouldEqual, 1)
		})

		Convey("When topN exceeds the cap it is clamped", func() {
			capped := recommend.New(stores, stores, stores, recommend.WithMaxTopN(1))
			result, err := capped.Recommend(ctx, "asker", 100)
			So(err, ShouldBeNil)
			So(len(result.Items), ShouldEqual, 1)
		})

		Convey("When a review read fails the whole computation fails", func() {
			stores.reviewsErr = errors.New("backend down")
			_, err := r.Recommend(ctx, "asker", 10)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a user with no stored preferences", t, func() {
		stores := &fakeStores{prefFound: false, schools: []model.School{schoolA}}
		r := recommend.New(stores, stores, stores)

		Convey("Then the no-preferences marker comes back, not an error", func() {
			result, err := r.Recommend(ctx, "stranger", 10)
			So(err, ShouldBeNil)
			So(result.NoPreferences, ShouldBeTrue)
			So(result.Items, ShouldBeEmpty)
		})
	})

	Convey("Given a failing preference store", t, func() {
		stores := &fakeStores{prefErr: errors.New("backend down")}
		r := recommend.New(stores, stores, stores)

		Convey("Then the error propagates", func() {
			_, err := r.Recommend(ctx, "asker", 10)
			So(err, ShouldNotBeNil)
		})
	})
}
