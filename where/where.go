// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/malbuddy/malbuddy/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "MALBUDDY_CONFIG_PATH"

// EnvDataPath overrides the directory that holds the default dataset folders.
const EnvDataPath = "MALBUDDY_DATA_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It prioritizes the XDG_CONFIG_HOME specification on Linux and equivalent user profile paths on Darwin and Windows.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the absolute path to the directory used for application diagnostic and audit logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Data resolves the directory that holds the default dataset folders.
func Data() string {
	if custom, ok := os.LookupEnv(EnvDataPath); ok {
		return ensureDir(custom)
	}
	return ensureDir(filepath.Join(Config(), "data"))
}

// ClientFile resolves the client credentials file.
func ClientFile() string {
	return configured(key.AuthClientFile, func() string {
		return filepath.Join(Config(), "client.json")
	})
}

// TokenFile resolves the OAuth token file.
func TokenFile() string {
	return configured(key.AuthTokenFile, func() string {
		return filepath.Join(Config(), "token.json")
	})
}

// Ratings resolves the folder for per-anime rating datasets.
func Ratings() string {
	return folder(key.DatasetRatingsFolder, "anime_ratings")
}

// Users resolves the folder for per-anime viewer datasets.
func Users() string {
	return folder(key.DatasetUsersFolder, "anime_users")
}

// ItemRatings resolves the folder for the cross-anime item ratings dataset.
func ItemRatings() string {
	return folder(key.DatasetItemsFolder, "anime_item_ratings")
}

// Lists resolves the folder for per-user anime list datasets.
func Lists() string {
	return folder(key.DatasetListsFolder, "anime_lists")
}

// Details resolves the folder for anime detail datasets.
func Details() string {
	return folder(key.DatasetDetailsFolder, "anime_details")
}

// folder returns a configured folder untouched, so a missing custom folder is
// reported by the caller, and creates the default one on demand.
func folder(k, name string) string {
	if custom := viper.GetString(k); custom != "" {
		return custom
	}
	return ensureDir(filepath.Join(Data(), name))
}

func configured(k string, fallback func() string) string {
	if custom := viper.GetString(k); custom != "" {
		return custom
	}
	return fallback()
}
