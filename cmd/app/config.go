package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Environment    string        `mapstructure:"ENVIRONMENT"`
	Version        string        `mapstructure:"VERSION"`
	TrustedOrigins string        `mapstructure:"TRUSTED_ORIGINS"`
	Store          string        `mapstructure:"STORE"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
	DB             DBConfig      `mapstructure:",squash"`
	JWT            JWTConfig     `mapstructure:",squash"`
	ShutdownWait   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

type DBConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     string `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	Name     string `mapstructure:"POSTGRES_DB"`
}

type JWTConfig struct {
	Secret    string        `mapstructure:"JWT_SECRET"`
	ExpiresIn time.Duration `mapstructure:"JWT_EXPIRES_IN"`
	Issuer    string        `mapstructure:"JWT_ISSUER"`
}

const (
	storePostgres = "postgres"
	storeMemory   = "memory"
)

var configDefaults = map[string]any{
	"PORT":              "4000",
	"ENVIRONMENT":       "development",
	"VERSION":           "1.0.0",
	"TRUSTED_ORIGINS":   "",
	"STORE":             storePostgres,
	"MIGRATIONS_PATH":   "file://migrations",
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "",
	"POSTGRES_PASSWORD": "",
	"POSTGRES_DB":       "",
	"JWT_SECRET":        "",
	"JWT_EXPIRES_IN":    "1h",
	"JWT_ISSUER":        "blogapi",
	"SHUTDOWN_TIMEOUT":  "30s",
}

// loadConfig reads a dotenv file at path. Environment variables override the file, and a
// missing file leaves defaults plus environment in effect.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	if c.JWT.ExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be a positive duration")
	}

	switch c.Store {
	case storePostgres, storeMemory:
	default:
		return fmt.Errorf("STORE must be %q or %q, got %q", storePostgres, storeMemory, c.Store)
	}

	return nil
}

// trustedOrigins splits the comma separated TRUSTED_ORIGINS value.
func (c *Config) trustedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.TrustedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
