package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/errs"
	. "github.com/smartystreets/goconvey/convey"
)

// statsServer serves `available` pages for any anime and fails past them.
func statsServer(available int, requests *[]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests = append(*requests, r.URL.RequestURI())

		offset, err := strconv.Atoi(strings.TrimSuffix(r.URL.Query().Get("show"), ".html"))
		if err != nil || r.URL.Query().Get("m") != "all" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		page := offset / PageSize
		if page >= available {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		_, _ = w.Write(statsPage(row{"user" + strconv.Itoa(page), "7"}))
	}))
}

func TestFetcher(t *testing.T) {
	ctx := context.Background()

	Convey("Given a site serving 3 pages", t, func() {
		var requests []string
		server := statsServer(3, &requests)
		Reset(server.Close)

		fetcher := NewFetcher(Options{BaseURL: server.URL, HTTP: resty.New()})

		Convey("Asking for 10 pages stops at the first failure", func() {
			pages, err := fetcher.FetchAll(ctx, 5114, 10)
			So(err, ShouldBeNil)
			So(len(pages), ShouldEqual, 3)
			So(len(requests), ShouldEqual, 4)
		})

		Convey("Pages are requested at 75 user offsets", func() {
			_, err := fetcher.FetchAll(ctx, 5114, 2)
			So(err, ShouldBeNil)
			So(requests, ShouldResemble, []string{
				"/anime/5114/anime_title/stats?m=all&show=0.html",
				"/anime/5114/anime_title/stats?m=all&show=75.html",
			})
		})

		Convey("Asking for more than 99 pages fails before any request", func() {
			_, err := fetcher.Pages(ctx, 5114, 100)
			So(errors.Is(err, errs.ErrConfig), ShouldBeTrue)
			So(requests, ShouldBeEmpty)
		})

		Convey("Asking for no pages yields nothing", func() {
			pages, err := fetcher.FetchAll(ctx, 5114, 0)
			So(err, ShouldBeNil)
			So(pages, ShouldBeEmpty)
			So(requests, ShouldBeEmpty)
		})

		Convey("The sequence is lazy", func() {
			pages, err := fetcher.Pages(ctx, 5114, 3)
			So(err, ShouldBeNil)
			So(requests, ShouldBeEmpty)

			for page := range pages {
				So(page, ShouldEqual, 0)
				break
			}
			So(len(requests), ShouldEqual, 1)
		})

		Convey("A cancelled context ends the sequence", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			pages, err := fetcher.FetchAll(cancelled, 5114, 3)
			So(err, ShouldBeNil)
			So(pages, ShouldBeEmpty)
			So(requests, ShouldBeEmpty)
		})
	})
}
