package constant

// Remote endpoints used when no override is configured.
const (
	APIBaseURL    = "https://api.myanimelist.net/v2"
	OAuthBaseURL  = "https://myanimelist.net/v1/oauth2"
	ScrapeBaseURL = "https://myanimelist.net"
)
