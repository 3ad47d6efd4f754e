// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // public content cache
	StateTTL time.Duration `yaml:"state_ttl"` // visitor/privacy records
}

type GeoIPConfig struct {
	URL      string `yaml:"url"`       // ipapi-style JSON endpoint
	MMDBPath string `yaml:"mmdb_path"` // optional local GeoLite2 db
}

type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	LoginRateLimit int           `yaml:"login_rate_limit"` // attempts per window
	LoginRateWin   time.Duration `yaml:"login_rate_window"`
}

type SessionConfig struct {
	WarnLead   time.Duration `yaml:"warn_lead"`   // warning fires this long before expiry
	CheckEvery time.Duration `yaml:"check_every"` // periodic re-validation interval
}

type PrivacyConfig struct {
	// RequiredCountries lists codes whose visitors must accept the privacy
	// policy before content is shown. Empty disables the gate but the
	// mechanism stays wired.
	RequiredCountries []string `yaml:"required_countries"`
	Locale            string   `yaml:"locale"`
}

type UpstreamConfig struct {
	BaseURL   string        `yaml:"base_url"`   // e.g. https://backend.example.com (proxy relay target)
	UploadURL string        `yaml:"upload_url"` // multipart upload forward target
	Timeout   time.Duration `yaml:"timeout"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	GeoIP    GeoIPConfig    `yaml:"geoip"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
	Privacy  PrivacyConfig  `yaml:"privacy"`
	Upstream UpstreamConfig `yaml:"upstream"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.CacheTTL <= 0 {
		cfg.Redis.CacheTTL = time.Minute
	}
	if cfg.Redis.StateTTL <= 0 {
		// Visitor state mimics durable client storage; keep it for a year.
		cfg.Redis.StateTTL = 365 * 24 * time.Hour
	}
	if cfg.GeoIP.URL == "" {
		cfg.GeoIP.URL = "https://ipapi.co/"
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = time.Hour
	}
	if cfg.Auth.LoginRateLimit <= 0 {
		cfg.Auth.LoginRateLimit = 5
	}
	if cfg.Auth.LoginRateWin <= 0 {
		cfg.Auth.LoginRateWin = time.Minute
	}
	if cfg.Session.WarnLead <= 0 {
		cfg.Session.WarnLead = 30 * time.Second
	}
	if cfg.Session.CheckEvery <= 0 {
		cfg.Session.CheckEvery = 5 * time.Minute
	}
	if cfg.Privacy.Locale == "" {
		cfg.Privacy.Locale = "es"
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = 30 * time.Second
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
