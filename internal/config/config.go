// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EmailNone     = "none"
	EmailSendgrid = "sendgrid"
	EmailSMTP     = "smtp"
)

type Config struct {
	Database struct {
		Driver     string `yaml:"driver"`
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		SSLMode    string `yaml:"sslmode"`
		SearchPath string `yaml:"schema"`
		Path       string `yaml:"path"`
	} `yaml:"database"`
	JWT struct {
		Secret       string        `yaml:"secret"`
		ExpiryPeriod time.Duration `yaml:"expiry_period"`
	} `yaml:"jwt"`
	Server struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		// LoginRatePerMinute bounds login and signup attempts per client IP.
		LoginRatePerMinute int `yaml:"login_rate_per_minute"`
	} `yaml:"server"`
	Email struct {
		Provider string `yaml:"provider"`
		FromName string `yaml:"from_name"`
		ReplyTo  string `yaml:"reply_to"`
	} `yaml:"email"`
	Sendgrid struct {
		APIKey string `yaml:"api_key"`
		From   string `yaml:"from"`
	} `yaml:"sendgrid"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
	BaseURL string `yaml:"base_url"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}

	cfg.Database.Driver = DriverPostgres
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "postgres"
	cfg.Database.Name = "fieldwork"
	cfg.Database.SSLMode = "disable"
	cfg.Database.SearchPath = "public"
	cfg.Database.Path = "fieldwork.db"

	cfg.JWT.Secret = "your-secret-key"
	cfg.JWT.ExpiryPeriod = time.Hour * 24

	cfg.Server.Port = "8080"
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15
	cfg.Server.LoginRatePerMinute = 10

	cfg.Email.Provider = EmailNone
	cfg.Email.FromName = "Fieldwork"
	cfg.SMTP.Port = 587

	cfg.BaseURL = "http://localhost:8080"
	return cfg
}

// Load builds the configuration from defaults, then the YAML file named by
// FIELDWORK_CONFIG if set, then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("FIELDWORK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// Database configuration
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", cfg.Database.SearchPath)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	rate, err := getEnvInt("LOGIN_RATE_PER_MINUTE", cfg.Server.LoginRatePerMinute)
	if err != nil {
		return nil, err
	}
	cfg.Server.LoginRatePerMinute = rate

	// Email configuration
	cfg.Email.Provider = getEnv("EMAIL_PROVIDER", cfg.Email.Provider)
	cfg.Email.ReplyTo = getEnv("EMAIL_REPLY_TO", cfg.Email.ReplyTo)
	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", cfg.Sendgrid.APIKey)
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", cfg.Sendgrid.From)
	cfg.SMTP.Host = getEnv("SMTP_HOST", cfg.SMTP.Host)
	smtpPort, err := getEnvInt("SMTP_PORT", cfg.SMTP.Port)
	if err != nil {
		return nil, err
	}
	cfg.SMTP.Port = smtpPort
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", cfg.SMTP.Password)
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.From)

	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Email.Provider {
	case EmailNone:
	case EmailSendgrid:
		if c.Sendgrid.APIKey == "" {
			return fmt.Errorf("sendgrid email provider requires SENDGRID_API_KEY")
		}
	case EmailSMTP:
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			return fmt.Errorf("smtp email provider requires SMTP_HOST and SMTP_FROM")
		}
	default:
		return fmt.Errorf("unsupported email provider %q", c.Email.Provider)
	}

	if c.Server.LoginRatePerMinute <= 0 {
		return fmt.Errorf("login rate must be positive, got %d", c.Server.LoginRatePerMinute)
	}
	return nil
}

// PostgresDSN is the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.SearchPath,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}
