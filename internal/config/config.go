// Package config loads daybook configuration from file, environment, and
// defaults.
//
// Configuration is read from daybook.yaml in the working directory or
// ~/.config/daybook, with environment overrides under the DAYBOOK_ prefix
// (e.g. DAYBOOK_HTTP_ADDR, DAYBOOK_WEATHER_API_KEY). Missing config files
// are not an error; defaults apply.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all daybook settings.
type Config struct {
	HTTP struct {
		// Addr the API server listens on.
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`

	DB struct {
		// Path to the SQLite database file.
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Weather struct {
		// APIKey for weatherapi.com. Held server-side only.
		APIKey string `mapstructure:"api_key"`
		// City to report weather for.
		City string `mapstructure:"city"`
	} `mapstructure:"weather"`

	Log struct {
		// File to write logs to. Empty means stderr.
		File string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// Source retains the viper instance behind a loaded Config so the caller
// can watch the backing file for changes. Each Load returns its own Source;
// there is no shared state between loads.
type Source struct {
	v *viper.Viper
}

// Load reads configuration from file and environment. The returned Source
// belongs to this load and drives Watch.
func Load() (*Config, *Source, error) {
	v := viper.New()

	v.SetConfigName("daybook")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/daybook")

	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.path", "db/daybook.db")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.city", "New York")
	v.SetDefault("log.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, &Source{v: v}, nil
}

// Watch re-reads the config file on change and invokes onChange with the
// fresh configuration. Unparseable edits are reported through onErr and the
// previous configuration stays in effect.
func (s *Source) Watch(onChange func(*Config), onErr func(error)) {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		var cfg Config
		if err := s.v.Unmarshal(&cfg); err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("failed to reload config after %s: %w", e.Name, err))
			}
			return
		}
		onChange(&cfg)
	})
	s.v.WatchConfig()
}
