package dataset

import (
	"context"
	"iter"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/malbuddy/malbuddy/log"
	"github.com/malbuddy/malbuddy/scraper"
	"github.com/samber/lo"
)

// PageSource yields the statistics pages of an anime. *scraper.Fetcher implements it.
type PageSource interface {
	Pages(ctx context.Context, itemID, maxPages int) (iter.Seq2[int, []byte], error)
}

// Builder assembles rating and user datasets from statistics pages.
type Builder struct {
	source PageSource

	// OnPage, when set, is called after each page is parsed with its zero-based index.
	OnPage func(page int)
}

func NewBuilder(source PageSource) *Builder {
	return &Builder{source: source}
}

// Ratings returns the scores found on up to maxPages pages of itemID.
// Unscored entries are dropped first, then users keep their first appearance.
// Scores that are not integers in [1,10] are dropped last.
func (b *Builder) Ratings(ctx context.Context, itemID, maxPages int) ([]RatingRecord, error) {
	var entries []scraper.Entry
	err := b.walk(ctx, itemID, maxPages, func(doc *goquery.Document) {
		entries = append(entries, scraper.ExtractEntries(doc)...)
	})
	if err != nil {
		return nil, err
	}

	entries = lo.Reject(entries, func(e scraper.Entry, _ int) bool { return e.Rating == Sentinel })
	entries = lo.UniqBy(entries, func(e scraper.Entry) string { return e.User })

	records := make([]RatingRecord, 0, len(entries))
	for _, e := range entries {
		rating, err := strconv.Atoi(e.Rating)
		if err != nil || rating < 1 || rating > 10 {
			log.With(log.Fields{"anime_id": itemID, "user": e.User}).Warnf("dropping unreadable score %q", e.Rating)
			continue
		}

		records = append(records, RatingRecord{User: e.User, Rating: rating})
	}

	return records, nil
}

// Users returns every distinct user listed on up to maxPages pages of itemID.
func (b *Builder) Users(ctx context.Context, itemID, maxPages int) ([]UserRecord, error) {
	var users []string
	err := b.walk(ctx, itemID, maxPages, func(doc *goquery.Document) {
		users = append(users, scraper.ExtractUsers(doc)...)
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(lo.Uniq(users), func(user string, _ int) UserRecord {
		return UserRecord{User: user}
	}), nil
}

// ItemRatings is Ratings stamped with itemID.
func (b *Builder) ItemRatings(ctx context.Context, itemID, maxPages int) ([]ItemRatingRecord, error) {
	ratings, err := b.Ratings(ctx, itemID, maxPages)
	if err != nil {
		return nil, err
	}

	return StampRatings(itemID, ratings), nil
}

func (b *Builder) walk(ctx context.Context, itemID, maxPages int, visit func(*goquery.Document)) error {
	pages, err := b.source.Pages(ctx, itemID, maxPages)
	if err != nil {
		return err
	}

	for page, body := range pages {
		doc, err := scraper.Parse(body)
		if err != nil {
			log.Warnf("anime %d: unreadable page %d: %s", itemID, page+1, err)
			continue
		}

		visit(doc)
		if b.OnPage != nil {
			b.OnPage(page)
		}
	}

	return nil
}
