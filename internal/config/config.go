package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	APIURL         string        `mapstructure:"API_URL"`
	SessionSecret  string        `mapstructure:"SESSION_SECRET"`
	CookieSecure   bool          `mapstructure:"COOKIE_SECURE"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	MongoURI       string        `mapstructure:"MONGO_URI"`
	MongoDatabase  string        `mapstructure:"MONGO_DATABASE"`
	TextbeltAPIKey string        `mapstructure:"TEXTBELT_API_KEY"`
	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"`
	ViewIdleTTL    time.Duration `mapstructure:"VIEW_IDLE_TTL"`
}

var keys = []string{
	"PORT", "ENV", "API_URL", "SESSION_SECRET", "COOKIE_SECURE", "CORS_ORIGINS",
	"MONGO_URI", "MONGO_DATABASE", "TEXTBELT_API_KEY", "HTTP_TIMEOUT", "VIEW_IDLE_TTL",
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may carry everything
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("API_URL", "http://localhost:5000/api")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("MONGO_DATABASE", "medics_admin")
	v.SetDefault("HTTP_TIMEOUT", "0s")
	v.SetDefault("VIEW_IDLE_TTL", "30m")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate refuses configurations that would leave sessions unsigned outside
// development.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("API_URL is required")
	}
	if !c.IsDev() && len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters when ENV=%q", c.Env)
	}
	if c.HTTPTimeout < 0 {
		return errors.New("HTTP_TIMEOUT must not be negative")
	}
	if c.ViewIdleTTL <= 0 {
		return errors.New("VIEW_IDLE_TTL must be positive")
	}
	return nil
}

// Secret returns the session signing key, with a fixed development key when
// none is configured in development mode.
func (c *Config) Secret() []byte {
	if c.SessionSecret == "" && c.IsDev() {
		return []byte("medics-admin-development-only-secret")
	}
	return []byte(c.SessionSecret)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
