package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the client core needs at construction time.
// Twelve-factor style: every knob is an environment variable with a sane
// default for local development.
type Config struct {
	// APIBaseURL is the backend the auth endpoints live on.
	APIBaseURL string `env:"AUTH_API_BASE_URL" envDefault:"http://localhost:3000"`

	// RequestTimeout bounds every outgoing request.
	RequestTimeout time.Duration `env:"AUTH_REQUEST_TIMEOUT" envDefault:"10s"`

	// EncryptionKey protects the credential at rest. Any string works, since it is
	// stretched to a 32-byte key, but the default must be replaced outside
	// local development.
	EncryptionKey string `env:"AUTH_ENCRYPTION_KEY" envDefault:"fallback-key-change-in-production"`

	// StorageKey is the storage slot the encrypted credential lives under.
	StorageKey string `env:"AUTH_STORAGE_KEY" envDefault:"_t"`

	// LoginPath is the route unauthenticated users are sent to.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/sign-in"`

	// LandingPath is the default route for authenticated users.
	LandingPath string `env:"AUTH_LANDING_PATH" envDefault:"/dashboard"`

	// UnauthorizedPath is the route for role mismatches.
	UnauthorizedPath string `env:"AUTH_UNAUTHORIZED_PATH" envDefault:"/unauthorized"`
}

var defaultEnvLoaded sync.Once

// Load populates a Config from the environment, reading a .env file first if
// one exists.
func Load() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// Validate checks invariants that env parsing cannot express.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("%w: AUTH_API_BASE_URL is empty", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("%w: AUTH_API_BASE_URL must be an http(s) URL", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: AUTH_REQUEST_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.EncryptionKey == "" {
		return fmt.Errorf("%w: AUTH_ENCRYPTION_KEY is empty", ErrInvalidConfig)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("%w: AUTH_STORAGE_KEY is empty", ErrInvalidConfig)
	}
	return nil
}

// Default returns the local-development configuration without touching the
// environment.
func Default() Config {
	return Config{
		APIBaseURL:       "http://localhost:3000",
		RequestTimeout:   10 * time.Second,
		EncryptionKey:    "fallback-key-change-in-production",
		StorageKey:       "_t",
		LoginPath:        "/sign-in",
		LandingPath:      "/dashboard",
		UnauthorizedPath: "/unauthorized",
	}
}
