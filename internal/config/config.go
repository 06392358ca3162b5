package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings. The session secret is the
// only hard requirement; absent PayPal credentials disable that subsystem
// gracefully rather than failing startup.
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"uploads"`
	BcryptCost    int    `envconfig:"BCRYPT_COST" default:"12"`
	SeedDemoData  bool   `envconfig:"SEED_DEMO_DATA" default:"true"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`

	PayPalClientID     string `envconfig:"PAYPAL_CLIENT_ID"`
	PayPalClientSecret string `envconfig:"PAYPAL_CLIENT_SECRET"`
	PayPalBaseURL      string `envconfig:"PAYPAL_BASE_URL" default:"https://api-m.sandbox.paypal.com"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PayPalConfigured reports whether live processor credentials are present.
func (c *Config) PayPalConfigured() bool {
	return c.PayPalClientID != "" && c.PayPalClientSecret != ""
}
