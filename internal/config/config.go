package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DevJWTSecret is only accepted with the sqlite driver.
	DevJWTSecret = "change-me-in-production"
)

type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBDriver      string        `env:"DB_DRIVER" envDefault:"pgx"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        int           `env:"DB_PORT" envDefault:"5432"`
	DBUser        string        `env:"DB_USER" envDefault:"parking"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"parking"`
	DBName        string        `env:"DB_NAME" envDefault:"parking_db"`
	DBSslMode     string        `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"parking.db"`
	DBLockTimeout time.Duration `env:"DB_LOCK_TIMEOUT" envDefault:"5s"`
	DBMaxConns    int           `env:"DB_MAX_CONNS" envDefault:"20"`

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`

	AWSRegion        string `env:"AWS_REGION" envDefault:"us-east-1"`
	SQSEventQueueURL string `env:"SQS_EVENT_QUEUE_URL"`

	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"parking.events"`

	ServiceName  string `env:"SERVICE_NAME" envDefault:"parking-business-api"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPgx, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver == DriverSQLite && c.SQLitePath == "" {
		return errors.New("config: SQLITE_PATH is required for the sqlite driver")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must not be empty")
	}
	if c.JWTSecret == DevJWTSecret {
		if c.DBDriver != DriverSQLite {
			return errors.New("config: JWT_SECRET must be set when not running on sqlite")
		}
		log.Println("Warning: using the development JWT_SECRET; tokens can be forged by anyone who knows it.")
	}
	return nil
}

// DSN builds the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		q := url.Values{}
		q.Add("_pragma", "foreign_keys(1)")
		q.Add("_pragma", "busy_timeout(5000)")
		q.Set("_time_format", "sqlite")
		return "file:" + c.SQLitePath + "?" + q.Encode()
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
