package mal

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/log"
	"github.com/malbuddy/malbuddy/network"
	"github.com/malbuddy/malbuddy/where"
)

// Tokens supplies and renews access tokens. *TokenManager implements it.
type Tokens interface {
	AccessToken() (string, error)
	Refresh(ctx context.Context) error
}

// ClientOptions configure a Client.
type ClientOptions struct {
	// BaseURL of the REST API. Defaults to constant.APIBaseURL.
	BaseURL string

	// HTTP defaults to a client over network.Client.
	HTTP *resty.Client

	// NoCache disables the on-disk detail and title caches.
	NoCache bool

	// CacheDir holds the cache files. Defaults to where.Cache().
	CacheDir string
}

// Client issues authenticated REST calls.
type Client struct {
	tokens    Tokens
	http      *resty.Client
	base      string
	details   *cacher[int, AnimeDetail]
	relations *cacher[string, int]
}

// NewClient returns a client that signs every request with a token from tokens.
func NewClient(tokens Tokens, opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = constant.APIBaseURL
	}
	if opts.HTTP == nil {
		opts.HTTP = network.NewResty(nil)
	}

	c := &Client{
		tokens: tokens,
		http:   opts.HTTP,
		base:   opts.BaseURL,
	}

	if !opts.NoCache {
		dir := opts.CacheDir
		if dir == "" {
			dir = where.Cache()
		}
		c.details = newCacher[int, AnimeDetail](filepath.Join(dir, "details.json"), detailsLifetime, nil)
		c.relations = newCacher[string, int](filepath.Join(dir, "titles.json"), 0, normalizedName)
	}

	return c
}

// do runs one authenticated GET. Any failure triggers exactly one token refresh
// followed by exactly one retry.
func (c *Client) do(ctx context.Context, op, path string, query url.Values, out any) error {
	first := c.attempt(ctx, op, path, query, out)
	if first == nil {
		return nil
	}

	if ctx.Err() != nil {
		return first
	}

	log.Warnf("%s: %s, refreshing token and retrying", op, first)
	if err := c.tokens.Refresh(ctx); err != nil {
		log.Errorf("%s: %s", op, err)
	}

	second := c.attempt(ctx, op, path, query, out)
	if second == nil {
		return nil
	}

	return errors.Join(first, second)
}

func (c *Client) attempt(ctx context.Context, op, path string, query url.Values, out any) error {
	token, err := c.tokens.AccessToken()
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParamsFromValues(query).
		Get(c.base + path)
	if err != nil {
		return errs.Wrap(errs.ErrRequest, op, err)
	}

	if !resp.IsSuccess() {
		return errs.Status(op, resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errs.Wrap(errs.ErrRequest, op, err)
	}

	return nil
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, "current user", "/users/@me", nil, &user)
	return user, err
}
