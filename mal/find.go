package mal

import (
	"context"
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/log"
	"github.com/malbuddy/malbuddy/util"
	"github.com/samber/lo"
)

// findAttempts bounds how many shortened titles are searched before giving up.
const findAttempts = 3

// notFound marks a title that is known to have no match.
const notFound = -1

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindClosest resolves a human title to the anime whose title is nearest by edit distance.
// When a search returns nothing the last word is dropped and the search repeated.
func (c *Client) FindClosest(ctx context.Context, title string) (Anime, error) {
	name := normalizedName(title)
	if name == "" {
		return Anime{}, fmt.Errorf("%w: empty title", errs.ErrConfig)
	}

	if c.relations != nil {
		if id, ok := c.relations.Get(name).Get(); ok {
			if id == notFound {
				return Anime{}, fmt.Errorf("anime %q: %w", title, errs.ErrNotFound)
			}
			if detail, ok := c.cachedDetail(id); ok {
				return Anime{ID: detail.ID, Title: detail.Title, MainPicture: detail.MainPicture}, nil
			}
		}
	}

	return c.findClosest(ctx, name, name, 0)
}

func (c *Client) findClosest(ctx context.Context, name, original string, try int) (Anime, error) {
	if try >= findAttempts {
		c.remember(original, notFound)
		return Anime{}, fmt.Errorf("anime %q: %w", original, errs.ErrNotFound)
	}

	animes, err := c.Search(ctx, name)
	if err != nil {
		return Anime{}, err
	}

	if len(animes) == 0 {
		words := strings.Fields(name)
		if len(words) <= 2 {
			return c.findClosest(ctx, name, original, findAttempts)
		}

		shorter := strings.Join(words[:util.Max(len(words)-1, 1)], " ")
		log.Infof(`no results for %q, trying %q`, name, shorter)
		return c.findClosest(ctx, shorter, original, try+1)
	}

	closest := lo.MinBy(animes, func(a, b Anime) bool {
		return levenshtein.Distance(name, normalizedName(a.Title)) <
			levenshtein.Distance(name, normalizedName(b.Title))
	})

	log.Infof("closest match for %q: %s (%d)", original, closest.Title, closest.ID)
	c.remember(name, closest.ID)
	c.remember(original, closest.ID)

	return closest, nil
}

func (c *Client) remember(name string, id int) {
	if c.relations == nil {
		return
	}
	if err := c.relations.Set(name, id); err != nil {
		log.Warnf("cache title %q: %s", name, err)
	}
}

func (c *Client) cachedDetail(id int) (AnimeDetail, bool) {
	if c.details == nil {
		return AnimeDetail{}, false
	}
	return c.details.Get(id).Get()
}
