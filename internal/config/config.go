package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Mail transports understood by MAIL_TRANSPORT.
const (
	TransportSES   = "ses"
	TransportGraph = "graph"
	TransportRelay = "relay"
)

type Config struct {
	// Contact form
	CORSOrigin        string `env:"CORS_ORIGIN" envDefault:"https://www.tudominio.com"`
	NotificationEmail string `env:"NOTIFICATION_EMAIL" envDefault:"mauro@editessolutions.com"`
	FromEmail         string `env:"FROM_EMAIL" envDefault:"noreply@editessolutions.com"`
	BrandName         string `env:"BRAND_NAME" envDefault:"Edites Solutions"`
	Port              string `env:"PORT" envDefault:"8080"`

	// Mail provider
	MailTransport       string `env:"MAIL_TRANSPORT" envDefault:"ses"`
	AWSRegion           string `env:"AWS_REGION" envDefault:"us-east-1"`
	SESEndpoint         string `env:"SES_ENDPOINT"`
	SESConfigurationSet string `env:"SES_CONFIGURATION_SET"`

	// Microsoft Graph
	TenantID     string `env:"TENANT_ID"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// NATS relay
	NatsURL      string        `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	RelayTimeout time.Duration `env:"RELAY_TIMEOUT" envDefault:"15s"`

	// Logging and tracing
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile   string `env:"LOG_FILE"`
	DDEnv     string `env:"DD_ENV"`
	DDService string `env:"DD_SERVICE" envDefault:"contact-mailer"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Reading configuration from environment.")
	}
	return Parse()
}

// Parse builds the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.MailTransport = strings.ToLower(strings.TrimSpace(cfg.MailTransport))
	return cfg, nil
}

// Validate checks the settings the selected mail transport depends on.
func (c *Config) Validate() error {
	switch c.MailTransport {
	case TransportSES:
		if c.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION environment variable is not set")
		}
	case TransportGraph:
		if c.TenantID == "" {
			return fmt.Errorf("TENANT_ID environment variable is not set")
		}
		if c.ClientID == "" {
			return fmt.Errorf("CLIENT_ID environment variable is not set")
		}
		if c.ClientSecret == "" {
			return fmt.Errorf("CLIENT_SECRET environment variable is not set")
		}
	case TransportRelay:
		if c.NatsURL == "" {
			return fmt.Errorf("NATS_URL environment variable is not set")
		}
		if c.RelayTimeout <= 0 {
			return fmt.Errorf("RELAY_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("FROM_EMAIL environment variable is not set")
	}
	if c.NotificationEmail == "" {
		return fmt.Errorf("NOTIFICATION_EMAIL environment variable is not set")
	}
	return nil
}
