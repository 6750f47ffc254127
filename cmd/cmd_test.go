package cmd

import (
	"context"
	"testing"

	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/malbuddy/malbuddy/mal"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// titles resolves titles from a fixed table and records what was asked.
type titles struct {
	ids   map[string]int
	asked []string
}

func (t *titles) FindClosest(_ context.Context, title string) (mal.Anime, error) {
	t.asked = append(t.asked, title)
	return mal.Anime{ID: t.ids[title], Title: title}, nil
}

func TestResolveID(t *testing.T) {
	Convey("Given a show whose title is a number", t, func() {
		finder := &titles{ids: map[string]int{"86": 41457}}

		Convey("The title is searched rather than taken as an id", func() {
			id, err := resolveID(context.Background(), finder, "86")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, 41457)
			So(finder.asked, ShouldResemble, []string{"86"})
		})
	})
}

func TestKindFolders(t *testing.T) {
	Convey("The combined item ratings are kept out of the per-anime ratings folder", t, func() {
		So(kindFolders[dataset.ItemRatings.Name](), ShouldNotEqual, kindFolders[dataset.Ratings.Name]())
		So(kindFolders, ShouldHaveLength, len(dataset.KindNames()))
	})
}

func TestAuthorizationCode(t *testing.T) {
	Convey("authorizationCode", t, func() {
		Convey("A bare code should pass through trimmed", func() {
			So(authorizationCode("  abc123 \n"), ShouldEqual, "abc123")
		})

		Convey("The code should be taken from a redirect address", func() {
			So(authorizationCode("http://localhost/callback?code=xyz&state=1"), ShouldEqual, "xyz")
		})

		Convey("The code should be taken from a bare query", func() {
			So(authorizationCode("?code=q1&state=2"), ShouldEqual, "q1")
		})
	})
}

func TestRows(t *testing.T) {
	Convey("Given stored ratings", t, func() {
		ratings := []dataset.RatingRecord{
			{User: "a", Rating: 8},
			{User: "b", Rating: 9},
			{User: "c", Rating: 10},
		}

		Convey("limitRows should cut only positive limits below the length", func() {
			So(limitRows(ratings, 2), ShouldHaveLength, 2)
			So(limitRows(ratings, 0), ShouldHaveLength, 3)
			So(limitRows(ratings, 10), ShouldHaveLength, 3)
		})

		Convey("meanRating should print two decimals", func() {
			So(meanRating(ratings), ShouldEqual, "9.00")
			So(meanRating(nil), ShouldEqual, "-")
		})
	})
}
