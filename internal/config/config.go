package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	GinMode        string `mapstructure:"GIN_MODE"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	ClientURL      string `mapstructure:"CLIENT_URL"`
	StoreDriver    string `mapstructure:"STORE_DRIVER"`
	DataFile       string `mapstructure:"DATA_FILE"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBPath         string `mapstructure:"DB_PATH"`
	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`
}

var defaults = map[string]any{
	"PORT":            "3000",
	"GIN_MODE":        "debug",
	"LOG_LEVEL":       "info",
	"CLIENT_URL":      "*",
	"STORE_DRIVER":    DriverFile,
	"DATA_FILE":       "db.json",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "freelance",
	"DB_PASSWORD":     "freelance",
	"DB_NAME":         "freelance",
	"DB_PATH":         "freelance.db",
	"METRICS_ENABLED": true,
}

// Load reads the optional .env files, then the environment. Variables already
// present in the environment are never overridden by .env contents.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration values the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT is required")
	}
	switch c.StoreDriver {
	case DriverFile:
		if c.DataFile == "" {
			return errors.New("DATA_FILE is required for the file store")
		}
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// AllowedOrigins splits CLIENT_URL into the list of CORS origins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ClientURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
