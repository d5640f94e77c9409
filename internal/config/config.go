package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret        string        `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	JWTRefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`

	FrontendCallbackURL string `envconfig:"FRONTEND_CALLBACK_URL" default:"http://localhost:5173/auth/callback"`
	BaseURL             string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	Google OAuthConfig

	// Premiums are quoted in BDT, the payment gateway charges USD.
	BDTToUSD float64 `envconfig:"BDT_TO_USD" default:"0.0087"`

	GatewaySecretKey string `envconfig:"GATEWAY_SECRET_KEY" default:""`

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:""`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME" default:""`
	Password string `envconfig:"SMTP_PASSWORD" default:""`
	From     string `envconfig:"SMTP_FROM" default:""`
}

type OAuthConfig struct {
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID" default:""`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET" default:""`
	RedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL" default:""`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
