// Package config loads the web shell configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/autoresum/autoresum-web/pkg/logger"
	"github.com/autoresum/autoresum-web/pkg/redis"
)

// ErrInvalidConfig is returned when the environment parses but the values
// do not make sense together.
var ErrInvalidConfig = errors.New("config: invalid configuration")

const envDevelopment = "development"

// Config is the full application configuration.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"production"`
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`

	// ThemeFile overrides the embedded theme. Empty keeps the default.
	ThemeFile string `env:"THEME_FILE"`

	SessionCookie string `env:"SESSION_COOKIE" envDefault:"__sid"`
	SessionSecure bool   `env:"SESSION_SECURE" envDefault:"true"`
	ClientCookie  string `env:"CLIENT_COOKIE" envDefault:"__bid"`

	// NotifyChannel is the Redis pub/sub channel shared by all instances.
	NotifyChannel string `env:"REDIS_CHANNEL" envDefault:"autoresum:notifications"`

	Log   logger.Config
	Redis redis.Config
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given environment map instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.Log.Text = cfg.Log.Text || cfg.IsDevelopment()
	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("%w: HTTP_ADDR is empty", ErrInvalidConfig)
	}
	if len(c.LoginPath) == 0 || c.LoginPath[0] != '/' {
		return fmt.Errorf("%w: LOGIN_PATH must start with /", ErrInvalidConfig)
	}
	if c.SessionCookie == "" || c.ClientCookie == "" {
		return fmt.Errorf("%w: cookie names must not be empty", ErrInvalidConfig)
	}
	if c.SessionCookie == c.ClientCookie {
		return fmt.Errorf("%w: SESSION_COOKIE and CLIENT_COOKIE must differ", ErrInvalidConfig)
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode. It is the
// only switch for the render failure diagnostics.
func (c Config) IsDevelopment() bool {
	return c.Env == envDevelopment
}

// RedisEnabled reports whether a Redis URL was configured.
func (c Config) RedisEnabled() bool {
	return c.Redis.URL != ""
}
