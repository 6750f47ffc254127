package mal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/errs"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeTokens struct {
	token     string
	next      string
	refreshes int
	err       error
}

func (f *fakeTokens) AccessToken() (string, error) {
	if f.token == "" {
		return "", errs.ErrNoToken
	}
	return f.token, nil
}

func (f *fakeTokens) Refresh(context.Context) error {
	f.refreshes++
	if f.err != nil {
		return f.err
	}
	f.token = f.next
	return nil
}

// apiServer serves a tiny catalogue and rejects every token except "fresh".
func apiServer(requests *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/@me":
			_, _ = w.Write([]byte(`{"id":7,"name":"buddy"}`))
		case "/anime/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Cowboy Bebop","start_date":"1998-04-03","genres":[{"id":1,"name":"Action"},{"id":24,"name":"Sci-Fi"}]}`))
		case "/anime/3":
			_, _ = w.Write([]byte(`{"id":3,"title":"Trigun","genres":"broken"}`))
		case "/users/buddy/animelist":
			if r.URL.Query().Get("fields") != "list_status" || r.URL.Query().Get("limit") != "500" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"data":[
				{"node":{"id":1,"title":"Cowboy Bebop"},"list_status":{"status":"completed","score":9}},
				{"node":{"id":3,"title":"Trigun"},"list_status":{"status":"plan_to_watch","score":0}}
			]}`))
		case "/anime":
			switch r.URL.Query().Get("q") {
			case "attack on titan season 2 part":
				_, _ = w.Write([]byte(`{"data":[]}`))
			default:
				_, _ = w.Write([]byte(`{"data":[
					{"node":{"id":16498,"title":"Shingeki no Kyojin"}},
					{"node":{"id":25777,"title":"Attack on Titan Season 2"}},
					{"node":{"id":40028,"title":"Attack on Titan: Final Season"}}
				]}`))
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(server *httptest.Server, tokens Tokens) *Client {
	return NewClient(tokens, ClientOptions{BaseURL: server.URL, HTTP: resty.New(), NoCache: true})
}

func TestRefreshAndRetry(t *testing.T) {
	ctx := context.Background()

	Convey("Given an API that only accepts a fresh token", t, func() {
		requests := 0
		server := apiServer(&requests)
		Reset(server.Close)

		Convey("An expired token is refreshed once and the call retried once", func() {
			tokens := &fakeTokens{token: "expired", next: "fresh"}
			user, err := newTestClient(server, tokens).Me(ctx)
			So(err, ShouldBeNil)
			So(user.Name, ShouldEqual, "buddy")
			So(tokens.refreshes, ShouldEqual, 1)
			So(requests, ShouldEqual, 2)
		})

		Convey("A missing token is refreshed before the only request", func() {
			tokens := &fakeTokens{next: "fresh"}
			_, err := newTestClient(server, tokens).Me(ctx)
			So(err, ShouldBeNil)
			So(tokens.refreshes, ShouldEqual, 1)
			So(requests, ShouldEqual, 1)
		})

		Convey("A valid token needs no refresh", func() {
			tokens := &fakeTokens{token: "fresh"}
			_, err := newTestClient(server, tokens).Me(ctx)
			So(err, ShouldBeNil)
			So(tokens.refreshes, ShouldEqual, 0)
			So(requests, ShouldEqual, 1)
		})

		Convey("A failing refresh still retries exactly once", func() {
			tokens := &fakeTokens{token: "expired", err: fmt.Errorf("%w: revoked", errs.ErrAuth)}
			_, err := newTestClient(server, tokens).Me(ctx)
			So(errors.Is(err, errs.ErrAuth), ShouldBeTrue)
			So(tokens.refreshes, ShouldEqual, 1)
			So(requests, ShouldEqual, 2)
		})

		Convey("A cancelled context is not retried", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			tokens := &fakeTokens{token: "fresh"}
			_, err := newTestClient(server, tokens).Me(cancelled)
			So(err, ShouldNotBeNil)
			So(tokens.refreshes, ShouldEqual, 0)
		})
	})
}

func TestDetails(t *testing.T) {
	ctx := context.Background()

	Convey("Given ids where one always fails", t, func() {
		requests := 0
		server := apiServer(&requests)
		Reset(server.Close)

		tokens := &fakeTokens{token: "fresh", next: "fresh"}
		details, err := newTestClient(server, tokens).Details(ctx, []int{1, 2, 3})

		Convey("The failing id is skipped and the rest returned in order", func() {
			So(len(details), ShouldEqual, 2)
			So(details[0].Title, ShouldEqual, "Cowboy Bebop")
			So(details[1].ID, ShouldEqual, 3)
		})

		Convey("The batch error names the skipped id", func() {
			var batch *BatchError
			So(errors.As(err, &batch), ShouldBeTrue)
			So(batch.Failed, ShouldContainKey, 2)
			So(len(batch.Failed), ShouldEqual, 1)
			So(errors.Is(err, errs.ErrRequest), ShouldBeTrue)
		})

		Convey("Genres are flattened, and malformed genres become empty", func() {
			So([]string(details[0].Genres), ShouldResemble, []string{"Action", "Sci-Fi"})
			So(details[1].Genres, ShouldNotBeNil)
			So(len(details[1].Genres), ShouldEqual, 0)
		})

		Convey("The failing id was attempted twice around one refresh", func() {
			So(tokens.refreshes, ShouldEqual, 1)
			So(requests, ShouldEqual, 4)
		})
	})

	Convey("Given a cache directory", t, func() {
		requests := 0
		server := apiServer(&requests)
		Reset(server.Close)

		client := NewClient(&fakeTokens{token: "fresh"}, ClientOptions{
			BaseURL:  server.URL,
			HTTP:     resty.New(),
			CacheDir: "/cache/details-test",
		})

		_, err := client.Details(ctx, []int{1})
		So(err, ShouldBeNil)
		_, err = client.Details(ctx, []int{1})
		So(err, ShouldBeNil)

		So(requests, ShouldEqual, 1)
	})
}

func TestAnimeList(t *testing.T) {
	Convey("Given a user's list", t, func() {
		requests := 0
		server := apiServer(&requests)
		Reset(server.Close)

		records, err := newTestClient(server, &fakeTokens{token: "fresh"}).AnimeList(context.Background(), "buddy", 0)
		So(err, ShouldBeNil)
		So(len(records), ShouldEqual, 2)

		Convey("Node and list status are flattened into one record", func() {
			So(records[0]["title"], ShouldEqual, "Cowboy Bebop")
			So(records[0]["status"], ShouldEqual, "completed")
			So(records[0]["score"], ShouldEqual, 9.0)
			So(records[0], ShouldNotContainKey, "list_status")
			So(records[1]["score"], ShouldEqual, 0.0)
		})
	})

	Convey("An empty user name is rejected", t, func() {
		client := NewClient(&fakeTokens{}, ClientOptions{BaseURL: "http://127.0.0.1:0", NoCache: true})
		_, err := client.AnimeList(context.Background(), "", 10)
		So(errors.Is(err, errs.ErrConfig), ShouldBeTrue)
	})
}

func TestFindClosest(t *testing.T) {
	ctx := context.Background()

	Convey("Given search results", t, func() {
		requests := 0
		server := apiServer(&requests)
		Reset(server.Close)

		client := newTestClient(server, &fakeTokens{token: "fresh"})

		Convey("The title nearest by edit distance wins", func() {
			anime, err := client.FindClosest(ctx, "Attack on Titan Season 2 ")
			So(err, ShouldBeNil)
			So(anime.ID, ShouldEqual, 25777)
		})

		Convey("An empty search drops the last word and retries", func() {
			anime, err := client.FindClosest(ctx, "Attack on Titan Season 2 Part")
			So(err, ShouldBeNil)
			So(anime.ID, ShouldEqual, 25777)
			So(requests, ShouldEqual, 2)
		})

		Convey("An empty title is rejected", func() {
			_, err := client.FindClosest(ctx, "   ")
			So(errors.Is(err, errs.ErrConfig), ShouldBeTrue)
		})
	})
}
