package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix  = "clickbazaar"
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	OrderService OrderServiceConfig
	Courier      CourierConfig
	Delivery     DeliveryConfig
	Coupons      CouponConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Delivery.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CLICKBAZAAR_APP_ENV" required:"true"`
	Port         string `envconfig:"CLICKBAZAAR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CLICKBAZAAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CLICKBAZAAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"CLICKBAZAAR_REDIS_URL"`
	Address      string        `envconfig:"CLICKBAZAAR_REDIS_ADDR"`
	Password     string        `envconfig:"CLICKBAZAAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLICKBAZAAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLICKBAZAAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLICKBAZAAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLICKBAZAAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLICKBAZAAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLICKBAZAAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	BaseURL  string        `envconfig:"CLICKBAZAAR_CATALOG_BASE_URL" required:"true"`
	Timeout  time.Duration `envconfig:"CLICKBAZAAR_CATALOG_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"CLICKBAZAAR_CATALOG_CACHE_TTL" default:"5m"`
}

type OrderServiceConfig struct {
	BaseURL string        `envconfig:"CLICKBAZAAR_ORDER_SERVICE_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"CLICKBAZAAR_ORDER_SERVICE_TIMEOUT" default:"15s"`
}

type CourierConfig struct {
	BaseURL string        `envconfig:"CLICKBAZAAR_COURIER_BASE_URL"`
	Timeout time.Duration `envconfig:"CLICKBAZAAR_COURIER_TIMEOUT" default:"15s"`
}

// DeliveryConfig declares the flat charge applied per delivery zone.
type DeliveryConfig struct {
	ZoneCharges map[string]int `envconfig:"CLICKBAZAAR_DELIVERY_ZONE_CHARGES" default:"insideDhaka:80,outsideDhaka:150"`
}

func (d DeliveryConfig) validate() error {
	if len(d.ZoneCharges) == 0 {
		return fmt.Errorf("at least one delivery zone must be configured")
	}
	for zone, charge := range d.ZoneCharges {
		if strings.TrimSpace(zone) == "" {
			return fmt.Errorf("delivery zone name cannot be empty")
		}
		if charge < 0 {
			return fmt.Errorf("delivery charge for zone %q cannot be negative", zone)
		}
	}
	return nil
}

// CouponConfig declares the fixed coupon code to flat-amount table.
// Codes are matched case-sensitively.
type CouponConfig struct {
	Codes map[string]int `envconfig:"CLICKBAZAAR_COUPON_CODES" default:"FreeShippingDhaka:80,EidBazaar150:150"`
}
