// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package config loads the settings of the chatopera command line tool. Values
// come from, in order of precedence, command line flags, CHATOPERA_*
// environment variables, an optional chatopera.yaml file, and defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/theckman/chatopera"
)

const (
	EnvPrefix = "CHATOPERA"
	FileName  = "chatopera"

	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "warn"
)

// Config holds the settings needed to build a *chatopera.Client.
type Config struct {
	ClientID     string        `mapstructure:"client_id"     validate:"required"`
	ClientSecret string        `mapstructure:"client_secret" validate:"required"`
	BaseURL      string        `mapstructure:"base_url"      validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout"       validate:"min=1s,max=5m"`
	LogLevel     string        `mapstructure:"log_level"     validate:"oneof=trace debug info warn error disabled"`
}

// New returns a viper instance with defaults, environment bindings, and the
// config file search path set up. If file is not empty, it is used instead of
// searching.
func New(file string) *viper.Viper {
	v := viper.New()

	v.SetDefault("base_url", chatopera.DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about
	for _, k := range []string{"client_id", "client_secret"} {
		_ = v.BindEnv(k)
	}

	if len(file) > 0 {
		v.SetConfigFile(file)
		return v
	}

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "chatopera"))
	}

	return v
}

// BindFlags binds the flags in fs whose names match config keys, with dashes in
// place of underscores (e.g., --client-id for client_id).
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, k := range []string{"client_id", "client_secret", "base_url", "timeout", "log_level"} {
		f := fs.Lookup(strings.Replace(k, "_", "-", -1))
		if f == nil {
			continue
		}

		if err := v.BindPFlag(k, f); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", f.Name)
		}
	}

	return nil
}

// Load reads the config file, if there is one, and returns the validated
// configuration.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine when we were searching for one
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return nil
}
