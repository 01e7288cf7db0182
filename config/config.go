// Package config loads the service configuration from the environment
// (and an optional config file), with defaults matching a local
// development setup.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is everything the server needs to start.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `mapstructure:"addr"`

	// MongoURL and DBName locate the document store.
	MongoURL string `mapstructure:"mongo_url"`
	DBName   string `mapstructure:"db_name"`

	// JWTSecret signs access tokens (HS256).
	JWTSecret string `mapstructure:"jwt_secret"`

	// Provider API keys. Yahoo and CoinGecko need none.
	FinnhubKey      string `mapstructure:"finnhub_key"`
	AlphaVantageKey string `mapstructure:"alpha_vantage_key"`

	// CORSOrigins is a comma separated allow list, "*" for any.
	CORSOrigins string `mapstructure:"cors_origins"`

	// AlertSweep is the background alert-check interval; 0 disables it
	// and leaves checking entirely to the browser poll.
	AlertSweep time.Duration `mapstructure:"alert_sweep"`
}

// Origins returns the CORS allow list as a slice.
func (c Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads configuration from the environment. Every key is also
// readable from an optional stockfolio.yaml in the working directory,
// with the environment taking precedence.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8000")
	v.SetDefault("mongo_url", "mongodb://localhost:27017")
	v.SetDefault("db_name", "stockfolio")
	v.SetDefault("jwt_secret", "stock-portfolio-secret-key-2024")
	v.SetDefault("finnhub_key", "")
	v.SetDefault("alpha_vantage_key", "demo")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("alert_sweep", time.Duration(0))

	v.SetConfigName("stockfolio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	v.AutomaticEnv()
	// env vars are upper-cased and unprefixed: MONGO_URL, JWT_SECRET, ...
	for _, key := range []string{"addr", "mongo_url", "db_name", "jwt_secret",
		"finnhub_key", "alpha_vantage_key", "cors_origins", "alert_sweep"} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
