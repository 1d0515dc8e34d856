package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix           = "REGISTRY"
	defaultHTTPAddress  = "0.0.0.0:8080"
	defaultPathPrefix   = "/api"
	defaultDatabasePath = "registry.db"
	defaultStoreDriver  = StoreDriverSQLite
	defaultLogLevel     = "info"
)

// Supported store drivers.
const (
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

// AppConfig captures runtime configuration for the API server.
type AppConfig struct {
	HTTPAddress  string
	PathPrefix   string
	CORSOrigins  []string
	DatabasePath string
	StoreDriver  string
	SeedStore    bool
	LogLevel     string
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("http.path_prefix", defaultPathPrefix)
	configViper.SetDefault("http.cors_origins", []string{"*"})
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("store.driver", defaultStoreDriver)
	configViper.SetDefault("store.seed", false)
	configViper.SetDefault("log.level", defaultLogLevel)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:  configViper.GetString("http.address"),
		PathPrefix:   configViper.GetString("http.path_prefix"),
		CORSOrigins:  configViper.GetStringSlice("http.cors_origins"),
		DatabasePath: configViper.GetString("database.path"),
		StoreDriver:  configViper.GetString("store.driver"),
		SeedStore:    configViper.GetBool("store.seed"),
		LogLevel:     configViper.GetString("log.level"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	switch c.StoreDriver {
	case StoreDriverSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			return fmt.Errorf("database.path is required for the sqlite store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", StoreDriverSQLite, StoreDriverMemory, c.StoreDriver)
	}

	if c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/") {
		return fmt.Errorf("http.path_prefix must start with a slash")
	}

	return nil
}
