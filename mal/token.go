package mal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/log"
	"github.com/malbuddy/malbuddy/network"
	"github.com/samber/mo"
)

// Token is the raw OAuth token response.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// TokenOptions configure a TokenManager.
type TokenOptions struct {
	// OAuthURL is the base of the authorize and token endpoints.
	OAuthURL string

	// HTTP defaults to a client over network.Client.
	HTTP *resty.Client

	// PersistRefreshed writes refreshed tokens back to the store.
	PersistRefreshed bool
}

// TokenManager owns the current token and renews it on demand.
// It is not safe for concurrent use.
type TokenManager struct {
	creds Credentials
	store TokenStore
	opts  TokenOptions
	http  *resty.Client
	token mo.Option[Token]
}

// NewTokenManager returns a manager without a token. The first Refresh or Exchange installs one.
func NewTokenManager(creds Credentials, store TokenStore, opts TokenOptions) *TokenManager {
	if opts.OAuthURL == "" {
		opts.OAuthURL = constant.OAuthBaseURL
	}
	if opts.HTTP == nil {
		opts.HTTP = network.NewResty(nil)
	}

	return &TokenManager{
		creds: creds,
		store: store,
		opts:  opts,
		http:  opts.HTTP,
		token: mo.None[Token](),
	}
}

// Token returns a snapshot of the current token.
func (m *TokenManager) Token() mo.Option[Token] {
	return m.token
}

// AccessToken returns the current access token, or errs.ErrNoToken before one was installed.
func (m *TokenManager) AccessToken() (string, error) {
	token, ok := m.token.Get()
	if !ok || token.AccessToken == "" {
		return "", errs.ErrNoToken
	}
	return token.AccessToken, nil
}

// Refresh trades the refresh token for a new token and installs it.
// The in-memory refresh token is preferred; the store is consulted when none is held.
// On failure the previous token is kept and the error wraps errs.ErrAuth.
func (m *TokenManager) Refresh(ctx context.Context) error {
	refresh, err := m.refreshToken()
	if err != nil {
		log.Errorf("token refresh: %s", err)
		return fmt.Errorf("%w: %w", errs.ErrAuth, err)
	}

	token, err := m.request(ctx, "refresh token", map[string]string{
		"client_id":     m.creds.ClientID,
		"client_secret": m.creds.ClientSecret,
		"grant_type":    "refresh_token",
		"refresh_token": refresh,
	})
	if err != nil {
		log.Errorf("token refresh: %s", err)
		return err
	}

	m.token = mo.Some(token)
	log.Info("access token refreshed")

	if m.opts.PersistRefreshed && m.store != nil {
		if err := m.store.Save(token); err != nil {
			log.Warnf("persist refreshed token: %s", err)
		}
	}

	return nil
}

// Exchange completes the authorization-code flow, saves the token to the store and installs it.
func (m *TokenManager) Exchange(ctx context.Context, code, verifier string) (Token, error) {
	token, err := m.request(ctx, "exchange code", map[string]string{
		"client_id":     m.creds.ClientID,
		"client_secret": m.creds.ClientSecret,
		"code":          code,
		"code_verifier": verifier,
		"grant_type":    "authorization_code",
	})
	if err != nil {
		return token, err
	}

	if m.store != nil {
		if err := m.store.Save(token); err != nil {
			return token, fmt.Errorf("save token: %w", err)
		}
	}

	m.token = mo.Some(token)
	return token, nil
}

// AuthURL returns the authorization page for the plain PKCE challenge built from verifier.
func (m *TokenManager) AuthURL(verifier string) string {
	return AuthURL(m.opts.OAuthURL, m.creds.ClientID, verifier)
}

func (m *TokenManager) refreshToken() (string, error) {
	if token, ok := m.token.Get(); ok && token.RefreshToken != "" {
		return token.RefreshToken, nil
	}

	if m.store == nil {
		return "", errs.ErrNoToken
	}

	stored, err := m.store.Load()
	if err != nil {
		return "", fmt.Errorf("load stored token: %w", err)
	}
	if stored.RefreshToken == "" {
		return "", fmt.Errorf("stored token has no refresh token: %w", errs.ErrNoToken)
	}
	return stored.RefreshToken, nil
}

func (m *TokenManager) request(ctx context.Context, op string, form map[string]string) (Token, error) {
	var token Token

	resp, err := m.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(m.opts.OAuthURL + "/token")
	if err != nil {
		return token, fmt.Errorf("%w: %w", errs.ErrAuth, errs.Wrap(errs.ErrRequest, op, err))
	}

	if !resp.IsSuccess() {
		status := errs.Status(op, resp.StatusCode())
		status.Kind = errs.ErrAuth
		return token, status
	}

	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return token, fmt.Errorf("%w: %s: decode token: %w", errs.ErrAuth, op, err)
	}

	if token.AccessToken == "" {
		return token, fmt.Errorf("%w: %s: %w", errs.ErrAuth, op, errors.New("response carries no access token"))
	}

	return token, nil
}
