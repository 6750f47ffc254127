package mal

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strconv"

	"dario.cat/mergo"
	"github.com/malbuddy/malbuddy/errs"
)

// DefaultListLimit is the number of list entries requested when no limit is given.
const DefaultListLimit = 500

type listEntry struct {
	Node       map[string]any `json:"node"`
	ListStatus map[string]any `json:"list_status"`
}

type listPage struct {
	Data []listEntry `json:"data"`
}

// AnimeList fetches up to limit entries of user's anime list. Each entry is the
// node merged with its list status, status keys overriding node keys.
func (c *Client) AnimeList(ctx context.Context, user string, limit int) ([]ListRecord, error) {
	if user == "" {
		return nil, fmt.Errorf("%w: empty user name", errs.ErrConfig)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := url.Values{}
	query.Set("fields", "list_status")
	query.Set("limit", strconv.Itoa(limit))

	var page listPage
	if err := c.do(ctx, "anime list", "/users/"+url.PathEscape(user)+"/animelist", query, &page); err != nil {
		return nil, err
	}

	records := make([]ListRecord, 0, len(page.Data))
	for _, entry := range page.Data {
		record, err := flatten(entry)
		if err != nil {
			return nil, fmt.Errorf("flatten list entry: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func flatten(entry listEntry) (ListRecord, error) {
	record := maps.Clone(entry.Node)
	if record == nil {
		record = make(ListRecord)
	}

	if len(entry.ListStatus) == 0 {
		return record, nil
	}

	if err := mergo.Merge(&record, entry.ListStatus, mergo.WithOverride); err != nil {
		return nil, err
	}
	return record, nil
}
