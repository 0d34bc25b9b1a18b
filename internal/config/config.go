package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name        string `envconfig:"APP_NAME" default:"poflow"`
		Port        int    `envconfig:"PORT" default:"8080"`
		LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
		CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
		// LogFile is where the TUI writes its logs. Empty discards them.
		LogFile string `envconfig:"LOG_FILE"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"poflow"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"60s"`
	}

	Store struct {
		Timeout time.Duration `envconfig:"STORE_TIMEOUT" default:"30s"`
	}

	Redis struct {
		URL          string        `envconfig:"REDIS_URL"`
		FormTokenTTL time.Duration `envconfig:"FORM_TOKEN_TTL" default:"2h"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
		Issuer    string `envconfig:"JWT_ISSUER" default:"poflow"`
	}

	Archive struct {
		Enabled bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
		Root    string `envconfig:"ARCHIVE_ROOT" default:"./po_archive"`
		// Bucket switches the archive to Google Cloud Storage when set.
		Bucket          string `envconfig:"ARCHIVE_GCS_BUCKET"`
		CredentialsFile string `envconfig:"ARCHIVE_GCS_CREDENTIALS"`
	}

	Outlook struct {
		DraftEnabled bool          `envconfig:"OUTLOOK_DRAFT_ENABLED" default:"false"`
		TenantID     string        `envconfig:"OUTLOOK_TENANT_ID"`
		ClientID     string        `envconfig:"OUTLOOK_CLIENT_ID"`
		ClientSecret string        `envconfig:"OUTLOOK_CLIENT_SECRET"`
		Mailbox      string        `envconfig:"OUTLOOK_MAILBOX"`
		Timeout      time.Duration `envconfig:"OUTLOOK_TIMEOUT" default:"20s"`
	}

	Reconcile struct {
		// Interval is how often the API repairs orphaned PO numbers. Zero
		// disables the background job.
		Interval time.Duration `envconfig:"RECONCILE_INTERVAL" default:"15m"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
	}

	Document struct {
		CompanyName string `envconfig:"COMPANY_NAME" default:"poflow"`
		VATRate     string `envconfig:"VAT_RATE" default:"0.20"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
