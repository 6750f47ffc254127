// Package network builds the HTTP clients used for the REST API and for scraping statistics pages.
package network

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/errs"
	"golang.org/x/net/publicsuffix"
)

// Transport modes accepted by NewScrapeClient.
const (
	TransportStandard = "standard"
	TransportChrome   = "chrome"
)

// Client is the shared HTTP client for REST API calls.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// NewResty wraps hc in a resty client that identifies itself with the application user agent.
// A nil hc means the shared Client.
func NewResty(hc *http.Client) *resty.Client {
	if hc == nil {
		hc = Client
	}
	return resty.NewWithClient(hc).
		SetHeader("User-Agent", constant.UserAgent)
}

// NewScrapeClient returns a cookie-aware client for the public statistics pages.
// The standard mode layers the Cloudflare bypass headers over the tuned transport.
// The chrome mode dials with a Chrome TLS fingerprint.
func NewScrapeClient(mode string) (*resty.Client, error) {
	var rt http.RoundTripper
	switch mode {
	case "", TransportStandard:
		rt = cloudflarebp.AddCloudFlareByPass(newTransport())
	case TransportChrome:
		rt = chromeTransport()
	default:
		return nil, fmt.Errorf("%w: unknown scrape transport %q", errs.ErrConfig, mode)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.GetClient().Transport = rt
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")
	client.SetTimeout(30 * time.Second)

	return client, nil
}
