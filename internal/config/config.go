// Package config loads the command line settings from flags, TINIFY_*
// environment variables and an optional YAML/JSON/TOML file, in that order
// of precedence.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/shestakovda/tinify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "TINIFY"

// Config keys, also the names of the global flags.
const (
	KeyKey      = "key"
	KeyAppID    = "app-id"
	KeyProxy    = "proxy"
	KeyTimeout  = "timeout"
	KeyEndpoint = "endpoint"
)

type Config struct {
	Key      string        `mapstructure:"key"`
	AppID    string        `mapstructure:"app-id"`
	Proxy    string        `mapstructure:"proxy"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Endpoint string        `mapstructure:"endpoint"`
}

var defaults = map[string]any{
	KeyKey:      "",
	KeyAppID:    "",
	KeyProxy:    "",
	KeyTimeout:  time.Duration(0),
	KeyEndpoint: tinify.APIEndpoint,
}

// Load reads the configuration. An empty path searches for .tinify.* in the
// home and working directories and tolerates its absence; an explicit path
// must exist. Flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".tinify")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// Options converts the configuration into client options.
func (c *Config) Options() []tinify.Option {
	opts := make([]tinify.Option, 0, 4)

	if c.AppID != "" {
		opts = append(opts, tinify.AppIdentifier(c.AppID))
	}

	if c.Proxy != "" {
		opts = append(opts, tinify.Proxy(c.Proxy))
	}

	if c.Timeout > 0 {
		opts = append(opts, tinify.Timeout(c.Timeout))
	}

	if c.Endpoint != "" && c.Endpoint != tinify.APIEndpoint {
		opts = append(opts, tinify.Endpoint(c.Endpoint))
	}

	return opts
}

// NewClient creates a client from the configuration.
func (c *Config) NewClient() (tinify.Client, error) {
	return tinify.NewClient(c.Key, c.Options()...)
}
