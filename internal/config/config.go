// Package config loads runtime configuration for the web server from
// defaults, an optional .env file, the process environment and explicit
// overrides, in increasing order of precedence.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix = "MARISOL_WEB_"

	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultTemplatesDir    = "templates"
	defaultPublicDir       = "public"
	defaultLocalesDir      = "locales"
	defaultContentDir      = "content"
	defaultSiteName        = "Villa Marisol"
	defaultBaseURL         = "http://localhost:8080"
	defaultLocale          = "en"
	defaultInquiryTimeout  = 10 * time.Second
	defaultInquiryRetries  = 2
	defaultInquiryPerMin   = 5
	defaultLogLevel        = "info"
	devSessionKey          = "marisol-dev-session-key"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Media     MediaConfig
	Inquiry   InquiryConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig configures the HTTP server and where it reads files from.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	TemplatesDir    string
	PublicDir       string
	LocalesDir      string
	ContentDir      string
	Dev             bool
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// SiteConfig describes the hotel as shown on every page.
type SiteConfig struct {
	Name          string
	BaseURL       string
	Phone         string
	WhatsApp      string
	Email         string
	Address       string
	DefaultLocale string
	Locales       []string
}

// MediaConfig holds the image presentation flags.
type MediaConfig struct {
	OptimizeImages bool
	// ImageQuality is zero when unset so call sites apply their own default.
	ImageQuality int
}

// InquiryConfig points contact form submissions at an external endpoint.
// An empty Endpoint selects the in-process fake.
type InquiryConfig struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
	Retries  int
}

// RateLimitConfig throttles form submissions per client.
type RateLimitConfig struct {
	InquiryPerMinute int
	RedisURL         string
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	Key    string
	Secure bool
}

// AnalyticsConfig holds client instrumentation IDs surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration by combining defaults, .env overrides,
// environment variables and explicit overrides.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		key = envPrefix + key
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	port := stringWithDefault(lookup, "PORT", "")
	if port == "" && options.useSystemEnv {
		// Cloud Run and similar platforms inject PORT.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     durationWithDefault(lookup, "READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
			TemplatesDir:    stringWithDefault(lookup, "TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:       stringWithDefault(lookup, "PUBLIC_DIR", defaultPublicDir),
			LocalesDir:      stringWithDefault(lookup, "LOCALES_DIR", defaultLocalesDir),
			ContentDir:      stringWithDefault(lookup, "CONTENT_DIR", defaultContentDir),
			Dev:             boolWithDefault(lookup, "DEV", false),
		},
		Site: SiteConfig{
			Name:          stringWithDefault(lookup, "SITE_NAME", defaultSiteName),
			BaseURL:       strings.TrimRight(stringWithDefault(lookup, "BASE_URL", defaultBaseURL), "/"),
			Phone:         stringWithDefault(lookup, "PHONE", "+52 322 555 0147"),
			WhatsApp:      stringWithDefault(lookup, "WHATSAPP", ""),
			Email:         stringWithDefault(lookup, "EMAIL", "hola@villamarisol.com"),
			Address:       stringWithDefault(lookup, "ADDRESS", "Calle del Mar 12, Puerto Vallarta, Jalisco, Mexico"),
			DefaultLocale: strings.ToLower(stringWithDefault(lookup, "DEFAULT_LOCALE", defaultLocale)),
			Locales:       csvWithDefault(lookup, "LOCALES"),
		},
		Media: MediaConfig{
			OptimizeImages: boolWithDefault(lookup, "OPTIMIZE_IMAGES", false),
			ImageQuality:   intWithDefault(lookup, "IMAGE_QUALITY", 0),
		},
		Inquiry: InquiryConfig{
			Endpoint: stringWithDefault(lookup, "INQUIRY_ENDPOINT", ""),
			Token:    stringWithDefault(lookup, "INQUIRY_TOKEN", ""),
			Timeout:  durationWithDefault(lookup, "INQUIRY_TIMEOUT", defaultInquiryTimeout),
			Retries:  intWithDefault(lookup, "INQUIRY_RETRIES", defaultInquiryRetries),
		},
		RateLimit: RateLimitConfig{
			InquiryPerMinute: intWithDefault(lookup, "RATELIMIT_INQUIRY_PER_MIN", defaultInquiryPerMin),
			RedisURL:         stringWithDefault(lookup, "REDIS_URL", ""),
		},
		Session: SessionConfig{
			Key:    stringWithDefault(lookup, "SESSION_KEY", ""),
			Secure: boolWithDefault(lookup, "SESSION_SECURE", false),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "GTM_CONTAINER_ID", ""),
			Debug:            boolWithDefault(lookup, "ANALYTICS_DEBUG", false),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
	}

	// WhatsApp defaults to the front desk number.
	if cfg.Site.WhatsApp == "" {
		cfg.Site.WhatsApp = cfg.Site.Phone
	}
	if len(cfg.Site.Locales) == 0 {
		cfg.Site.Locales = []string{"en", "es"}
	}
	if cfg.Session.Key == "" && cfg.Server.Dev {
		cfg.Session.Key = devSessionKey
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		missing = append(missing, "Site.BaseURL")
	}
	if strings.TrimSpace(cfg.Site.Name) == "" {
		missing = append(missing, "Site.Name")
	}
	if !containsFold(cfg.Site.Locales, cfg.Site.DefaultLocale) {
		missing = append(missing, "Site.DefaultLocale")
	}
	if cfg.Media.ImageQuality < 0 {
		missing = append(missing, "Media.ImageQuality")
	}
	if cfg.Inquiry.Endpoint != "" {
		if u, err := url.Parse(cfg.Inquiry.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			missing = append(missing, "Inquiry.Endpoint")
		}
	}
	if cfg.Inquiry.Timeout <= 0 {
		missing = append(missing, "Inquiry.Timeout")
	}
	if cfg.Inquiry.Retries < 0 {
		missing = append(missing, "Inquiry.Retries")
	}
	if cfg.RateLimit.InquiryPerMinute < 0 {
		missing = append(missing, "RateLimit.InquiryPerMinute")
	}
	if cfg.Session.Key == "" {
		missing = append(missing, "Session.Key")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	values, err := godotenv.Read(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	return values, nil
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
