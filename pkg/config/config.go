package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Redis   RedisConfig
	Session SessionConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ESTATELY_APP_ENV" required:"true"`
	Port         string `envconfig:"ESTATELY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ESTATELY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ESTATELY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects and tunes the persisted key-value store binding.
type StoreConfig struct {
	Driver     string `envconfig:"ESTATELY_STORE_DRIVER" default:"sqlite"`
	FilePath   string `envconfig:"ESTATELY_STORE_FILE_PATH" default:"estately-session.json"`
	SQLitePath string `envconfig:"ESTATELY_STORE_SQLITE_PATH" default:"estately-session.db"`
	Namespace  string `envconfig:"ESTATELY_STORE_NAMESPACE" default:"estately"`
}

func (s StoreConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case StoreDriverMemory, StoreDriverFile, StoreDriverSQLite, StoreDriverRedis:
		return nil
	}
	return fmt.Errorf("unknown store driver %q", s.Driver)
}

// NormalizedDriver returns the lowercased driver name.
func (s StoreConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

type RedisConfig struct {
	URL          string        `envconfig:"ESTATELY_REDIS_URL"`
	Address      string        `envconfig:"ESTATELY_REDIS_ADDR"`
	Password     string        `envconfig:"ESTATELY_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESTATELY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESTATELY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESTATELY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESTATELY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESTATELY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESTATELY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig tunes the session state manager.
type SessionConfig struct {
	LoginDelay      time.Duration `envconfig:"ESTATELY_SESSION_LOGIN_DELAY" default:"800ms"`
	MinPasswordLen  int           `envconfig:"ESTATELY_SESSION_MIN_PASSWORD_LEN" default:"6"`
	GuestProfileURL string        `envconfig:"ESTATELY_SESSION_GUEST_PROFILE_URL"`
}

// CatalogConfig points at the static data source documents.
type CatalogConfig struct {
	PropertiesPath   string        `envconfig:"ESTATELY_CATALOG_PROPERTIES_PATH" default:"data/properties.json"`
	GuestProfilePath string        `envconfig:"ESTATELY_CATALOG_GUEST_PROFILE_PATH" default:"data/guest-profile.json"`
	BaseURL          string        `envconfig:"ESTATELY_CATALOG_BASE_URL"`
	FetchTimeout     time.Duration `envconfig:"ESTATELY_CATALOG_FETCH_TIMEOUT" default:"10s"`
}
