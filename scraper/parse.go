package scraper

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	userSelector   = "a.image-member"
	ratingSelector = "td.borderClass.ac"
)

// trailingSegment matches the last path segment of a profile link.
var trailingSegment = regexp.MustCompile(`[^/]+$`)

// Entry is a user and the rating cell text found on the same table row.
type Entry struct {
	User   string
	Rating string
}

// Parse builds a document from a page body.
func Parse(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// ExtractUsers returns the user names of every profile link, in document order.
// Links without a trailing path segment are skipped.
func ExtractUsers(doc *goquery.Document) []string {
	var users []string
	doc.Find(userSelector).Each(func(_ int, a *goquery.Selection) {
		if user, ok := userOf(a); ok {
			users = append(users, user)
		}
	})
	return users
}

// ExtractRatings returns the text of every rating cell holding one or two characters, in document order.
func ExtractRatings(doc *goquery.Document) []string {
	var ratings []string
	doc.Find(ratingSelector).Each(func(_ int, td *goquery.Selection) {
		if rating, ok := ratingOf(td); ok {
			ratings = append(ratings, rating)
		}
	})
	return ratings
}

// ExtractEntries pairs each profile link with the first rating cell of its own row.
// Links whose own row has no such cell are skipped.
func ExtractEntries(doc *goquery.Document) []Entry {
	var entries []Entry
	doc.Find(userSelector).Each(func(_ int, a *goquery.Selection) {
		user, ok := userOf(a)
		if !ok {
			return
		}

		cell := a.ParentsFiltered("tr").First().
			ChildrenFiltered(ratingSelector).
			FilterFunction(func(_ int, td *goquery.Selection) bool {
				_, ok := ratingOf(td)
				return ok
			}).First()
		if cell.Length() == 0 {
			return
		}

		rating, _ := ratingOf(cell)
		entries = append(entries, Entry{User: user, Rating: rating})
	})
	return entries
}

func userOf(a *goquery.Selection) (string, bool) {
	href, ok := a.Attr("href")
	if !ok {
		return "", false
	}

	user := trailingSegment.FindString(href)
	return user, user != ""
}

func ratingOf(td *goquery.Selection) (string, bool) {
	text := strings.TrimSpace(td.Text())
	n := utf8.RuneCountInString(text)
	return text, n >= 1 && n <= 2
}
