package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/malbuddy/malbuddy/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer turns a config key into the suffix of its environment variable.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// File is the TOML file the configuration is read from and written to.
func File() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Setup registers every default, binds the MALBUDDY_* variables and reads File when it exists.
// A file that exists but does not parse is an errs.ErrConfig.
func Setup() error {
	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
	}
	for k, field := range Default {
		viper.SetDefault(k, field.Value)
	}

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("%w: read %s: %w", errs.ErrConfig, File(), err)
	}
	return nil
}
