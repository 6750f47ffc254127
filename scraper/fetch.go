// Package scraper downloads the public rating statistics pages of an anime and extracts user ratings from them.
package scraper

import (
	"context"
	"fmt"
	"iter"

	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/log"
)

const (
	// PageSize is the number of users listed on one statistics page.
	PageSize = 75

	// MaxPages is the deepest page the site serves.
	MaxPages = 99
)

// Options configure a Fetcher.
type Options struct {
	// BaseURL of the site. Defaults to constant.ScrapeBaseURL.
	BaseURL string

	// HTTP is required; see network.NewScrapeClient.
	HTTP *resty.Client
}

// Fetcher walks the statistics pages of an anime in order.
type Fetcher struct {
	base string
	http *resty.Client
}

func NewFetcher(opts Options) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = constant.ScrapeBaseURL
	}
	return &Fetcher{base: opts.BaseURL, http: opts.HTTP}
}

// URL returns the address of the zero-based page of itemID.
func (f *Fetcher) URL(itemID, page int) string {
	return fmt.Sprintf("%s/anime/%d/anime_title/stats?m=all&show=%d.html", f.base, itemID, page*PageSize)
}

// Pages returns a lazy sequence of page bodies keyed by page index.
// The sequence ends at the first transport error, non-2xx response or cancelled context,
// so it may be shorter than maxPages. Asking for more than MaxPages fails before any request.
func (f *Fetcher) Pages(ctx context.Context, itemID, maxPages int) (iter.Seq2[int, []byte], error) {
	if maxPages > MaxPages {
		return nil, fmt.Errorf("%w: cannot scrape more than %d pages, got %d", errs.ErrConfig, MaxPages, maxPages)
	}

	return func(yield func(int, []byte) bool) {
		for page := 0; page < maxPages; page++ {
			if err := ctx.Err(); err != nil {
				log.Warnf("anime %d: stopped before page %d: %s", itemID, page+1, err)
				return
			}

			body, err := f.fetch(ctx, itemID, page)
			if err != nil {
				log.Warnf("anime %d: stopped at page %d: %s", itemID, page+1, err)
				return
			}

			log.Debugf("anime %d: loaded page %d", itemID, page+1)
			if !yield(page, body) {
				return
			}
		}
	}, nil
}

// FetchAll collects Pages into a slice.
func (f *Fetcher) FetchAll(ctx context.Context, itemID, maxPages int) ([][]byte, error) {
	pages, err := f.Pages(ctx, itemID, maxPages)
	if err != nil {
		return nil, err
	}

	var bodies [][]byte
	for _, body := range pages {
		bodies = append(bodies, body)
	}
	return bodies, nil
}

func (f *Fetcher) fetch(ctx context.Context, itemID, page int) ([]byte, error) {
	resp, err := f.http.R().
		SetContext(ctx).
		Get(f.URL(itemID, page))
	if err != nil {
		return nil, errs.Wrap(errs.ErrRequest, "stats page", err)
	}

	if !resp.IsSuccess() {
		return nil, errs.Status("stats page", resp.StatusCode())
	}

	return resp.Body(), nil
}
