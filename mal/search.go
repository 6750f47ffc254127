package mal

import (
	"context"
	"net/url"
	"strconv"

	"github.com/samber/lo"
)

// searchLimit caps the candidates considered when resolving a title.
const searchLimit = 10

type searchItem struct {
	Node Anime `json:"node"`
}

type searchPage struct {
	Data []searchItem `json:"data"`
}

// Search returns the anime whose titles match query.
func (c *Client) Search(ctx context.Context, query string) ([]Anime, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(searchLimit))

	var page searchPage
	if err := c.do(ctx, "anime search", "/anime", params, &page); err != nil {
		return nil, err
	}

	return lo.Map(page.Data, func(item searchItem, _ int) Anime {
		return item.Node
	}), nil
}
