// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/malbuddy/malbuddy/color"
	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.AuthClientFile, "", "Path to the JSON file holding CLIENT_ID and CLIENT_SECRET.\nEmpty means client.json in the config directory")
	register(key.AuthTokenFile, "", "Path to the JSON file holding the OAuth token.\nEmpty means token.json in the config directory")
	register(key.AuthStore, "file", "Where the OAuth token is stored.\nAvailable options are: file, keyring")
	register(key.AuthPersistRefreshed, false, "Write refreshed tokens back to the token store")
	register(key.AuthOAuthURL, constant.OAuthBaseURL, "Base URL of the OAuth2 endpoints")
	register(key.APIBaseURL, constant.APIBaseURL, "Base URL of the REST API")
	register(key.APIListLimit, 500, "Maximum number of entries to load from an anime list")
	register(key.APICache, true, "Cache anime details between runs")
	register(key.ScrapeBaseURL, constant.ScrapeBaseURL, "Base URL of the rating statistics pages")
	register(key.ScrapePages, 99, "Number of statistics pages to scrape. At most 99")
	register(key.ScrapeTransport, "standard", "HTTP transport used for scraping.\nAvailable options are: standard, chrome")
	register(key.DatasetRatingsFolder, "", "Folder for rating datasets.\nEmpty means anime_ratings in the data directory")
	register(key.DatasetUsersFolder, "", "Folder for user datasets.\nEmpty means anime_users in the data directory")
	register(key.DatasetItemsFolder, "", "Folder for the cross-anime item ratings dataset.\nEmpty means anime_item_ratings in the data directory")
	register(key.DatasetListsFolder, "", "Folder for anime list datasets.\nEmpty means anime_lists in the data directory")
	register(key.DatasetDetailsFolder, "", "Folder for anime detail datasets.\nEmpty means anime_details in the data directory")
	register(key.DatasetOrient, "columns", "JSON layout of written datasets.\nAvailable options are: columns, records")
	register(key.DatasetAppend, true, "Merge freshly scraped records into existing dataset files")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain, kaomoji, squares")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when printing the version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
