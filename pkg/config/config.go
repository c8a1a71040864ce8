// Package config loads process configuration with spf13/viper: a
// config.yaml searched on a small set of paths, overridden by
// environment variables bound explicitly (AutomaticEnv alone won't see
// nested keys reliably), then unmarshaled into a typed struct.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`

	Store struct {
		Backend     string `mapstructure:"backend"` // "memory" or "postgres"
		PostgresDSN string `mapstructure:"postgres_dsn"`
	} `mapstructure:"store"`

	Auth struct {
		JWTSecret       string        `mapstructure:"jwt_secret"`
		IdentityPepper  string        `mapstructure:"identity_pepper"`
		AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
		RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	} `mapstructure:"auth"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// Load reads config.yaml (if present) from the working directory or its
// parent, then env vars (TRADECIRCLE_ prefix, "." replaced by "_"),
// unmarshals, and fills in defaults for anything left empty.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig()

	v.SetEnvPrefix("tradecircle")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("http.addr", "TRADECIRCLE_HTTP_ADDR")
	_ = v.BindEnv("store.backend", "TRADECIRCLE_STORE_BACKEND")
	_ = v.BindEnv("store.postgres_dsn", "TRADECIRCLE_POSTGRES_DSN")
	_ = v.BindEnv("auth.jwt_secret", "TRADECIRCLE_JWT_SECRET")
	_ = v.BindEnv("auth.identity_pepper", "TRADECIRCLE_IDENTITY_PEPPER")
	_ = v.BindEnv("cors.allowed_origins", "TRADECIRCLE_CORS_ALLOWED_ORIGINS")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if c.Store.Backend != "memory" && c.Store.Backend != "postgres" {
		return nil, fmt.Errorf("config: store.backend must be \"memory\" or \"postgres\", got %q", c.Store.Backend)
	}
	if c.Store.Backend == "postgres" && c.Store.PostgresDSN == "" {
		return nil, fmt.Errorf("config: store.postgres_dsn is required when store.backend is postgres")
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = "dev-secret-change-in-production"
	}
	if c.Auth.IdentityPepper == "" {
		c.Auth.IdentityPepper = "dev-pepper-change-in-production"
	}
	return &c, nil
}
