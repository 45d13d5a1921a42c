package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Nats     NatsConfig
	Limits   LimitsConfig
	Log      LogConfig
	Seed     SeedConfig
}

type DatabaseConfig struct {
	Driver         string
	URL            string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	ConnectTimeout time.Duration
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
	MealsTTL time.Duration
}

type NatsConfig struct {
	URL           string
	SubjectPrefix string
}

type LimitsConfig struct {
	LoginWindow   time.Duration
	LoginMax      int
	HTTPPerSecond float64
	HTTPBurst     int
}

type LogConfig struct {
	Level       string
	Development bool
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		HTTPAddr: GetEnvAsString("HTTP_ADDR", ":8080"),
		Database: DatabaseConfig{
			Driver:         GetEnvAsString("DB_DRIVER", "postgres"),
			URL:            os.Getenv("DB_URL"),
			Host:           os.Getenv("DB_HOST"),
			Port:           GetEnvAsString("DB_PORT", "5432"),
			User:           os.Getenv("DB_USER"),
			Password:       os.Getenv("DB_PASSWORD"),
			Name:           os.Getenv("DB_NAME"),
			SSLMode:        GetEnvAsString("DB_SSLMODE", "require"),
			ConnectTimeout: GetEnvAsDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    GetEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       GetEnvAsInt("REDIS_DB", 0),
			MealsTTL: GetEnvAsDuration("MEALS_CACHE_TTL", 5*time.Minute),
		},
		Nats: NatsConfig{
			URL:           os.Getenv("NATS_URL"),
			SubjectPrefix: GetEnvAsString("NATS_SUBJECT_PREFIX", "nutritrack"),
		},
		Limits: LimitsConfig{
			LoginWindow:   GetEnvAsDuration("LOGIN_RATE_LIMIT_WINDOW", time.Minute),
			LoginMax:      GetEnvAsInt("LOGIN_RATE_LIMIT_MAX", 10),
			HTTPPerSecond: GetEnvAsFloat("HTTP_RATE_LIMIT_RPS", 50),
			HTTPBurst:     GetEnvAsInt("HTTP_RATE_LIMIT_BURST", 100),
		},
		Log: LogConfig{
			Level:       GetEnvAsString("LOG_LEVEL", "info"),
			Development: GetEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Seed: SeedConfig{
			AdminEmail:    GetEnvAsString("SEED_ADMIN_EMAIL", "admin@esi.ac.ma"),
			AdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
		},
	}
}

// DSN returns DB_URL when set, otherwise a connection string assembled from
// the individual DB_* settings for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Driver {
	case "postgres":
		if d.Host == "" {
			return ""
		}
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   d.Host + ":" + d.Port,
			Path:   "/" + d.Name,
		}
		q := url.Values{}
		q.Set("sslmode", d.SSLMode)
		u.RawQuery = q.Encode()
		return u.String()
	case "sqlite":
		return d.Name
	}
	return ""
}

// Validate checks the settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.DSN() == "" {
		errs = append(errs, errors.New("database: DB_URL or DB_HOST/DB_NAME must be set"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("session: JWT_SECRET must be set"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session: SESSION_TTL must be positive"))
	}
	if c.Limits.LoginMax > 0 && c.Limits.LoginWindow <= 0 {
		errs = append(errs, errors.New("limits: LOGIN_RATE_LIMIT_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}
