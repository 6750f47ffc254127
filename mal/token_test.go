package mal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func TestGenerateCodeVerifier(t *testing.T) {
	Convey("GenerateCodeVerifier", t, func() {
		verifier, err := GenerateCodeVerifier()
		So(err, ShouldBeNil)

		Convey("It is 128 url-safe characters", func() {
			So(len(verifier), ShouldEqual, 128)
			So(regexp.MustCompile(`^[A-Za-z0-9_-]+$`).MatchString(verifier), ShouldBeTrue)
		})

		Convey("It differs between calls", func() {
			other, _ := GenerateCodeVerifier()
			So(other, ShouldNotEqual, verifier)
		})
	})
}

func TestAuthURL(t *testing.T) {
	Convey("AuthURL", t, func() {
		u := AuthURL("", "client-id", "verifier")
		So(u, ShouldStartWith, "https://myanimelist.net/v1/oauth2/authorize?")
		So(u, ShouldContainSubstring, "client_id=client-id")
		So(u, ShouldContainSubstring, "code_challenge=verifier")
		So(u, ShouldContainSubstring, "code_challenge_method=plain")
		So(u, ShouldContainSubstring, "response_type=code")
	})
}

func TestLoadCredentials(t *testing.T) {
	Convey("Given a credentials file with a comment and a trailing comma", t, func() {
		path := "/config/client.json"
		So(filesystem.API().MkdirAll("/config", 0o755), ShouldBeNil)
		So(filesystem.API().WriteFile(path, []byte(`{
			// registered at myanimelist.net/apiconfig
			"CLIENT_ID": "id",
			"CLIENT_SECRET": "secret",
		}`), 0o600), ShouldBeNil)

		creds, err := LoadCredentials(path)
		So(err, ShouldBeNil)
		So(creds, ShouldResemble, Credentials{ClientID: "id", ClientSecret: "secret"})
	})

	Convey("Given a missing credentials file", t, func() {
		_, err := LoadCredentials("/config/absent.json")
		So(errors.Is(err, errs.ErrNotFound), ShouldBeTrue)
	})

	Convey("Given credentials without a client id", t, func() {
		So(filesystem.API().WriteFile("/config/empty.json", []byte(`{"CLIENT_SECRET": "s"}`), 0o600), ShouldBeNil)
		_, err := LoadCredentials("/config/empty.json")
		So(errors.Is(err, errs.ErrConfig), ShouldBeTrue)
	})
}

func TestStores(t *testing.T) {
	token := Token{AccessToken: "a", TokenType: "Bearer", ExpiresIn: 3600, RefreshToken: "r"}

	for _, store := range []TokenStore{
		&FileStore{Path: "/secrets/token.json"},
		&KeyringStore{Service: "malbuddy-test", User: "mal-token"},
	} {
		Convey("Given an empty store", t, func() {
			_ = store.Delete()

			Convey("Load reports a missing token", func() {
				_, err := store.Load()
				So(errors.Is(err, errs.ErrNoToken), ShouldBeTrue)
			})

			Convey("A saved token loads back", func() {
				So(store.Save(token), ShouldBeNil)
				loaded, err := store.Load()
				So(err, ShouldBeNil)
				So(loaded, ShouldResemble, token)

				Convey("And is gone after Delete", func() {
					So(store.Delete(), ShouldBeNil)
					_, err := store.Load()
					So(err, ShouldNotBeNil)
				})
			})
		})
	}

	Convey("NewStore rejects unknown kinds", t, func() {
		_, err := NewStore("vault", "")
		So(errors.Is(err, errs.ErrConfig), ShouldBeTrue)
	})
}

// oauthServer answers the token endpoint, accepting only the refresh token "good".
func oauthServer(calls *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if r.URL.Path != "/token" || r.ParseForm() != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch {
		case r.PostForm.Get("grant_type") == "refresh_token" && r.PostForm.Get("refresh_token") == "good":
		case r.PostForm.Get("grant_type") == "authorization_code" && r.PostForm.Get("code") == "code":
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}

		if r.PostForm.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":2678400,"refresh_token":"good"}`))
	}))
}

func TestTokenManager(t *testing.T) {
	creds := Credentials{ClientID: "id", ClientSecret: "secret"}
	ctx := context.Background()

	Convey("Given a token manager", t, func() {
		calls := 0
		server := oauthServer(&calls)
		Reset(server.Close)

		store := &FileStore{Path: "/secrets/manager.json"}
		_ = store.Delete()
		manager := NewTokenManager(creds, store, TokenOptions{OAuthURL: server.URL, HTTP: resty.New()})

		Convey("The token starts empty", func() {
			_, err := manager.AccessToken()
			So(errors.Is(err, errs.ErrNoToken), ShouldBeTrue)
			So(manager.Token().IsAbsent(), ShouldBeTrue)
		})

		Convey("Refresh without any stored token fails with an auth error", func() {
			err := manager.Refresh(ctx)
			So(errors.Is(err, errs.ErrAuth), ShouldBeTrue)
			So(calls, ShouldEqual, 0)
		})

		Convey("Refresh with a valid stored refresh token installs the new token", func() {
			So(store.Save(Token{AccessToken: "stale", RefreshToken: "good"}), ShouldBeNil)

			So(manager.Refresh(ctx), ShouldBeNil)
			So(calls, ShouldEqual, 1)
			So(lo.Must(manager.AccessToken()), ShouldEqual, "fresh")

			Convey("The store is left untouched by default", func() {
				stored := lo.Must(store.Load())
				So(stored.AccessToken, ShouldEqual, "stale")
			})
		})

		Convey("A rejected refresh keeps the previous token", func() {
			So(store.Save(Token{AccessToken: "stale", RefreshToken: "good"}), ShouldBeNil)
			So(manager.Refresh(ctx), ShouldBeNil)

			manager.token = mo.Some(Token{AccessToken: "fresh", RefreshToken: "revoked"})

			err := manager.Refresh(ctx)
			So(errors.Is(err, errs.ErrAuth), ShouldBeTrue)
			So(lo.Must(manager.AccessToken()), ShouldEqual, "fresh")
		})

		Convey("Exchange saves and installs the token", func() {
			token, err := manager.Exchange(ctx, "code", "verifier")
			So(err, ShouldBeNil)
			So(token.AccessToken, ShouldEqual, "fresh")
			So(lo.Must(manager.AccessToken()), ShouldEqual, "fresh")
			So(lo.Must(store.Load()).RefreshToken, ShouldEqual, "good")
		})

		Convey("Exchange with a bad code is an auth error", func() {
			_, err := manager.Exchange(ctx, "wrong", "verifier")
			So(errors.Is(err, errs.ErrAuth), ShouldBeTrue)
			So(manager.Token().IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Given persistence of refreshed tokens", t, func() {
		calls := 0
		server := oauthServer(&calls)
		Reset(server.Close)

		store := &FileStore{Path: "/secrets/persist.json"}
		So(store.Save(Token{AccessToken: "stale", RefreshToken: "good"}), ShouldBeNil)

		manager := NewTokenManager(creds, store, TokenOptions{
			OAuthURL:         server.URL,
			HTTP:             resty.New(),
			PersistRefreshed: true,
		})

		So(manager.Refresh(ctx), ShouldBeNil)
		So(lo.Must(store.Load()).AccessToken, ShouldEqual, "fresh")
	})
}
