package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Breaker   BreakerConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	Presenter PresenterConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	switch c.Storage.Driver {
	case DriverRedis:
		if c.Redis.URL == "" && c.Redis.Addr == "" {
			return fmt.Errorf("validating config: redis url or address is required for driver %q", DriverRedis)
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("validating config: postgres dsn is required for driver %q", DriverPostgres)
		}
	}

	if _, err := c.Presenter.CurrencyUnit(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

type AppConfig struct {
	Env       string `envconfig:"CART_APP_ENV" default:"dev"`
	Addr      string `envconfig:"CART_APP_ADDR" default:":8080" validate:"required"`
	LogLevel  string `envconfig:"CART_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"CART_LOG_FORMAT" default:"json" validate:"oneof=json console"`

	// CORSOrigins is comma separated; empty disables CORS.
	CORSOrigins []string `envconfig:"CART_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

type StorageConfig struct {
	Driver  string `envconfig:"CART_STORAGE_DRIVER" default:"memory" validate:"oneof=memory file redis postgres"`
	SlotKey string `envconfig:"CART_STORAGE_SLOT_KEY" default:"fragranceCart" validate:"required"`
	FileDir string `envconfig:"CART_STORAGE_FILE_DIR" validate:"required_if=Driver file"`
}

// BreakerConfig guards the remote slots (redis, postgres).
type BreakerConfig struct {
	Enabled      bool          `envconfig:"CART_BREAKER_ENABLED" default:"true"`
	MinRequests  uint32        `envconfig:"CART_BREAKER_MIN_REQUESTS" default:"5" validate:"gte=1"`
	FailureRatio float64       `envconfig:"CART_BREAKER_FAILURE_RATIO" default:"0.5" validate:"gt=0,lte=1"`
	Interval     time.Duration `envconfig:"CART_BREAKER_INTERVAL" default:"10s"`
	Timeout      time.Duration `envconfig:"CART_BREAKER_TIMEOUT" default:"30s" validate:"gt=0"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CART_REDIS_URL"`
	Addr         string        `envconfig:"CART_REDIS_ADDR"`
	Password     string        `envconfig:"CART_REDIS_PASSWORD"`
	DB           int           `envconfig:"CART_REDIS_DB" default:"0" validate:"gte=0"`
	PoolSize     int           `envconfig:"CART_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"CART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CART_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"CART_REDIS_WRITE_TIMEOUT" default:"3s"`
	TTL          time.Duration `envconfig:"CART_REDIS_SLOT_TTL" default:"0s"`
}

type PostgresConfig struct {
	DSN         string `envconfig:"CART_POSTGRES_DSN"`
	MaxConns    int32  `envconfig:"CART_POSTGRES_MAX_CONNS" default:"4" validate:"gte=1"`
	AutoMigrate bool   `envconfig:"CART_POSTGRES_AUTO_MIGRATE" default:"true"`
}

type PresenterConfig struct {
	ToastDelay time.Duration `envconfig:"CART_TOAST_DELAY" default:"3s" validate:"gt=0"`
	Currency   string        `envconfig:"CART_CURRENCY" default:"USD" validate:"len=3"`
	ModalTitle string        `envconfig:"CART_MODAL_TITLE" default:"Wishlist"`
}

func (p PresenterConfig) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(p.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", p.Currency, err)
	}
	return unit, nil
}
