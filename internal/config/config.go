// Package config builds the process configuration once at startup so missing
// settings fail fast instead of at first request.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every environment-derived setting. It is constructed once in
// main and passed by reference to the components that need it.
type Config struct {
	Port         int
	SecretKey    string
	AllowOrigins []string
	RateLimit    uint

	DB DBConfig
}

// DBConfig holds the configuration parameters for connecting to a database.
type DBConfig struct {
	Host      string
	Port      string
	User      string
	Password  string
	DBName    string
	Constr    string
	UseConstr bool
}

// Dsn returns the postgres connection string for this configuration.
func (d *DBConfig) Dsn() (string, error) {
	if d.UseConstr {
		if d.Constr == "" {
			return "", fmt.Errorf("DB_CONNECTION_STR is empty")
		}
		return d.Constr, nil
	}
	if d.Host == "" || d.Port == "" || d.User == "" || d.Password == "" || d.DBName == "" {
		return "", fmt.Errorf("database configuration is incomplete")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.DBName), nil
}

// Load reads configuration from the environment. It returns an error when a
// required setting is absent or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      8080,
		SecretKey: os.Getenv("SECRET_KEY"),
		RateLimit: 5,
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_DATABASE"),
			Constr:   os.Getenv("DB_CONNECTION_STR"),
		},
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY must be set")
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("PORT %q is invalid", raw)
		}
		cfg.Port = port
	}

	if raw := os.Getenv("USE_CONNECTION_STR"); raw != "" {
		useConstr, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("USE_CONNECTION_STR %q is invalid: %w", raw, err)
		}
		cfg.DB.UseConstr = useConstr
	}

	if _, err := cfg.DB.Dsn(); err != nil {
		return nil, err
	}

	if raw := os.Getenv("ALLOW_ORIGIN"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}

	if raw := os.Getenv("RATE_LIMIT_REQUESTS_PER_SECOND"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err == nil && limit > 0 {
			cfg.RateLimit = uint(limit)
		}
	}

	return cfg, nil
}
