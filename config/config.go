package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	BackendFirebase = "firebase"
	BackendMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Firebase FirebaseConfig
	Invite   InviteConfig
	Redis    RedisConfig
	Jobs     JobsConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`

	// Comma-separated; empty allows every origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

type AppConfig struct {
	ServiceName        string `env:"SERVICE_NAME" envDefault:"agenda-backend"`
	Environment        string `env:"APP_ENV" envDefault:"development"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string `env:"LOG_FORMAT" envDefault:"json"`
	Version            string `env:"APP_VERSION" envDefault:"1.0.0"`
	Backend            string `env:"BACKEND" envDefault:"firebase"`
	DefaultPhoneRegion string `env:"DEFAULT_PHONE_REGION" envDefault:"BR"`
}

// FirebaseConfig carries the service account as discrete fields, the way the
// hosting platform exposes secrets, plus the database and bucket endpoints.
type FirebaseConfig struct {
	Type                    string `env:"FIREBASE_TYPE" envDefault:"service_account"`
	ProjectID               string `env:"FIREBASE_PROJECT_ID"`
	PrivateKeyID            string `env:"FIREBASE_PRIVATE_KEY_ID"`
	PrivateKey              string `env:"FIREBASE_PRIVATE_KEY"`
	ClientEmail             string `env:"FIREBASE_CLIENT_EMAIL"`
	ClientID                string `env:"FIREBASE_CLIENT_ID"`
	AuthURI                 string `env:"FIREBASE_AUTH_URI" envDefault:"https://accounts.google.com/o/oauth2/auth"`
	TokenURI                string `env:"FIREBASE_TOKEN_URI" envDefault:"https://oauth2.googleapis.com/token"`
	AuthProviderX509CertURL string `env:"FIREBASE_AUTH_PROVIDER_X509_CERT_URL" envDefault:"https://www.googleapis.com/oauth2/v1/certs"`
	ClientX509CertURL       string `env:"FIREBASE_CLIENT_X509_CERT_URL"`
	UniverseDomain          string `env:"FIREBASE_UNIVERSE_DOMAIN" envDefault:"googleapis.com"`

	DatabaseURL   string `env:"FIREBASE_DATABASE_URL"`
	StorageBucket string `env:"FIREBASE_STORAGE_BUCKET"`
}

type InviteConfig struct {
	IOSDeepLink   string `env:"INVITE_IOS_DEEP_LINK" envDefault:"agendaapp://invite/{key}"`
	AndroidIntent string `env:"INVITE_ANDROID_INTENT" envDefault:"intent://invite/{key}#Intent;scheme=agendaapp;package=com.ifproject.agenda;end"`
	StoreURL      string `env:"INVITE_STORE_URL" envDefault:"https://play.google.com/store/apps/details?id=com.ifproject.agenda"`
}

type RedisConfig struct {
	// Empty disables the invite cache.
	URL       string        `env:"REDIS_URL" envDefault:""`
	InviteTTL time.Duration `env:"INVITE_CACHE_TTL" envDefault:"1h"`
}

type JobsConfig struct {
	// Cron spec with seconds field; empty disables the sweep.
	OrphanSweepSchedule string `env:"ORPHAN_SWEEP_SCHEDULE" envDefault:""`
}

type AuthConfig struct {
	APISecret string `env:"API_SECRET"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Private keys pasted into env vars usually carry literal "\n".
	cfg.Firebase.PrivateKey = strings.ReplaceAll(cfg.Firebase.PrivateKey, `\n`, "\n")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.APISecret == "" {
		return fmt.Errorf("API_SECRET is required")
	}

	switch c.App.Backend {
	case BackendMemory:
	case BackendFirebase:
		if c.Firebase.DatabaseURL == "" {
			return fmt.Errorf("FIREBASE_DATABASE_URL is required")
		}
		if c.Firebase.StorageBucket == "" {
			return fmt.Errorf("FIREBASE_STORAGE_BUCKET is required")
		}
		if c.Firebase.ProjectID == "" || c.Firebase.ClientEmail == "" || c.Firebase.PrivateKey == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID, FIREBASE_CLIENT_EMAIL and FIREBASE_PRIVATE_KEY are required")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.App.Backend)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// AllowedOrigins parses CORS_ALLOWED_ORIGINS; nil means any origin.
func (c *Config) AllowedOrigins() []string {
	if c.Server.CORSAllowedOrigins == "" {
		return nil
	}

	var out []string
	for _, o := range strings.Split(c.Server.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
