// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, if present, is loaded into the
// process environment first, so any env:"..." override below can also be
// set there during local development.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing. Better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// ReferenceDataPath points at the course → branches file (YAML or
	// JSON). Empty means the table embedded in the binary.
	ReferenceDataPath string `yaml:"reference_data_path" env:"REFERENCE_DATA_PATH"`

	Storage Storage `yaml:"storage"`

	HTTPServer `yaml:"http_server"`
}

// Storage selects and configures the document store.
type Storage struct {
	// Driver is "mongo" (default) or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`

	// Path is the SQLite database file, used by the sqlite driver.
	Path string `yaml:"path" env:"STORAGE_PATH"`

	MongoURI       string        `yaml:"mongo_uri"       env:"MONGO_URL"`
	Database       string        `yaml:"database"        env:"MONGO_DB"          env-default:"student_profiles"`
	MaxPoolSize    uint64        `yaml:"max_pool_size"   env:"MONGO_MAX_POOL"    env-default:"100"`
	MinPoolSize    uint64        `yaml:"min_pool_size"   env:"MONGO_MIN_POOL"    env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`

	// AllowedOrigin is echoed in Access-Control-Allow-Origin. "*" allows
	// any origin.
	AllowedOrigin string `yaml:"allowed_origin" env:"HTTP_ALLOWED_ORIGIN" env-default:"*"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. Callers
// do not need to check a returned error: if this function returns, the
// config is valid.
func MustLoad() *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the config file at path, applies env overrides and checks the
// storage settings for the selected driver.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (s Storage) validate() error {
	switch s.Driver {
	case DriverMongo:
		if s.MongoURI == "" {
			return errors.New("storage.mongo_uri is required for the mongo driver")
		}
	case DriverSQLite:
		if s.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q (want %q or %q)", s.Driver, DriverMongo, DriverSQLite)
	}
	return nil
}
