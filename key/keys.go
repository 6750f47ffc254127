// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Authentication - where client credentials and the OAuth token live.
const (
	AuthClientFile       = "auth.client_file"
	AuthTokenFile        = "auth.token_file"
	AuthStore            = "auth.store"
	AuthPersistRefreshed = "auth.persist_refreshed"
	AuthOAuthURL         = "auth.oauth_url"
)

// REST API access.
const (
	APIBaseURL   = "api.base_url"
	APIListLimit = "api.list_limit"
	APICache     = "api.cache"
)

// Rating page scraping.
const (
	ScrapeBaseURL   = "scrape.base_url"
	ScrapePages     = "scrape.pages"
	ScrapeTransport = "scrape.transport"
)

// Dataset persistence.
const (
	DatasetRatingsFolder = "dataset.ratings_folder"
	DatasetUsersFolder   = "dataset.users_folder"
	DatasetItemsFolder   = "dataset.item_ratings_folder"
	DatasetListsFolder   = "dataset.lists_folder"
	DatasetDetailsFolder = "dataset.details_folder"
	DatasetOrient        = "dataset.orient"
	DatasetAppend        = "dataset.append"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
