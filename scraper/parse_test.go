package scraper

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given a statistics page", t, func() {
		doc := lo.Must(Parse(statsPage(
			row{"alice", "8"},
			row{"bob", "-"},
			row{"carol", "10"},
		)))

		Convey("ExtractUsers takes the trailing path segment of every profile link", func() {
			So(ExtractUsers(doc), ShouldResemble, []string{"alice", "bob", "carol"})
		})

		Convey("ExtractRatings keeps one or two character cells only", func() {
			So(ExtractRatings(doc), ShouldResemble, []string{"8", "-", "10"})
		})

		Convey("ExtractEntries pairs users with the score of their own row", func() {
			So(ExtractEntries(doc), ShouldResemble, []Entry{
				{User: "alice", Rating: "8"},
				{User: "bob", Rating: "-"},
				{User: "carol", Rating: "10"},
			})
		})
	})

	Convey("Given a row whose score cell is missing", t, func() {
		doc := lo.Must(Parse([]byte(`<table>
<tr><td><a class="image-member" href="/profile/alice"></a></td><td class="borderClass ac">7</td></tr>
<tr><td><a class="image-member" href="/profile/ghost"></a></td><td class="borderClass ac">Watching</td></tr>
<tr><td><a class="image-member" href="/profile/dave"></a></td><td class="borderClass ac"> 9 </td></tr>
</table>`)))

		Convey("Positional extraction desynchronizes", func() {
			So(len(ExtractUsers(doc)), ShouldEqual, 3)
			So(ExtractRatings(doc), ShouldResemble, []string{"7", "9"})
		})

		Convey("Paired extraction skips the row instead", func() {
			So(ExtractEntries(doc), ShouldResemble, []Entry{
				{User: "alice", Rating: "7"},
				{User: "dave", Rating: "9"},
			})
		})
	})

	Convey("Given a row without a score cell nested in a layout table", t, func() {
		doc := lo.Must(Parse([]byte(`<table><tr><td class="borderClass ac">3</td><td>
<table>
<tr><td><a class="image-member" href="/profile/alice"></a></td><td class="borderClass ac">7</td></tr>
<tr><td><a class="image-member" href="/profile/ghost"></a></td><td class="borderClass ac">Watching</td></tr>
<tr><td><a class="image-member" href="/profile/dave"></a></td><td class="borderClass ac">9</td></tr>
</table>
</td></tr></table>`)))

		Convey("The user is skipped instead of taking a score from the outer row", func() {
			So(ExtractEntries(doc), ShouldResemble, []Entry{
				{User: "alice", Rating: "7"},
				{User: "dave", Rating: "9"},
			})
		})
	})

	Convey("Given profile links without a trailing segment", t, func() {
		doc := lo.Must(Parse([]byte(`<table><tr>
<td><a class="image-member" href="/profile/"></a><a class="image-member"></a></td>
<td class="borderClass ac">5</td></tr></table>`)))

		So(ExtractUsers(doc), ShouldBeEmpty)
		So(ExtractEntries(doc), ShouldBeEmpty)
	})

	Convey("Given a page with no listing", t, func() {
		doc := lo.Must(Parse([]byte(`<html><body>Too many requests</body></html>`)))
		So(ExtractUsers(doc), ShouldBeEmpty)
		So(ExtractRatings(doc), ShouldBeEmpty)
		So(ExtractEntries(doc), ShouldBeEmpty)
	})
}
