// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "malbuddy"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// Repository hosts the source and the published releases.
	Repository = "https://github.com/malbuddy/malbuddy"

	// ReleasesAPI returns the latest published release.
	ReleasesAPI = "https://api.github.com/repos/malbuddy/malbuddy/releases/latest"

	// UserAgent is sent with every request to the scrape target and the REST API.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
