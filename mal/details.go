package mal

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/malbuddy/malbuddy/log"
	"github.com/samber/lo"
)

// detailFields lists the fields requested for every anime.
const detailFields = "id,title,start_date,end_date,genres"

// BatchError reports the ids a batch call had to skip.
type BatchError struct {
	Failed map[int]error
}

func (e *BatchError) Error() string {
	ids := lo.Keys(e.Failed)
	slices.Sort(ids)
	return fmt.Sprintf("%d anime skipped: %s", len(ids), strings.Join(lo.Map(ids, func(id int, _ int) string {
		return fmt.Sprint(id)
	}), ", "))
}

func (e *BatchError) Unwrap() []error {
	return lo.Values(e.Failed)
}

// Details fetches metadata for each id in order. Ids that still fail after the
// refresh-and-retry are logged and skipped; the returned error is then a *BatchError
// alongside the details that did succeed.
func (c *Client) Details(ctx context.Context, ids []int) ([]AnimeDetail, error) {
	details := make([]AnimeDetail, 0, len(ids))
	failed := make(map[int]error)

	for _, id := range ids {
		if c.details != nil {
			if cached, ok := c.details.Get(id).Get(); ok {
				details = append(details, cached)
				continue
			}
		}

		detail, err := c.Detail(ctx, id)
		if err != nil {
			log.With(log.Fields{"anime_id": id}).Warnf("skipping anime: %s", err)
			failed[id] = err
			continue
		}

		details = append(details, detail)
	}

	if len(failed) > 0 {
		return details, &BatchError{Failed: failed}
	}
	return details, nil
}

// Detail fetches metadata for a single anime, bypassing the cache on read.
func (c *Client) Detail(ctx context.Context, id int) (AnimeDetail, error) {
	var detail AnimeDetail

	query := url.Values{}
	query.Set("fields", detailFields)

	if err := c.do(ctx, "anime details", fmt.Sprintf("/anime/%d", id), query, &detail); err != nil {
		return detail, err
	}

	if detail.Genres == nil {
		detail.Genres = Genres{}
	}

	if c.details != nil {
		if err := c.details.Set(id, detail); err != nil {
			log.Warnf("cache anime %d: %s", id, err)
		}
	}

	return detail, nil
}
