package config

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Billing   BillingConfig
	Rewards   RewardsConfig
	Geofence  GeofenceConfig
	Payment   PaymentConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string // mysql, postgres or sqlite
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

// RedisConfig is optional; an empty Addr disables the billing lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

type BillingConfig struct {
	UnitPrice   decimal.Decimal // per paid member per month
	FreeLimit   int
	Schedule    string // cron expression for the monthly run
	Concurrency int
	Location    *time.Location
}

// RewardsConfig holds the platform-wide reward defaults; gyms override them via settings.
type RewardsConfig struct {
	Day1             int
	Day2             int
	Day3             int
	Day4             int
	Day5             int
	Day6Plus         int
	SundayAutoStreak bool
	UnifiedMode      bool
	UnifiedValue     int
}

type GeofenceConfig struct {
	RadiusMeters    float64
	MaxSampleGap    time.Duration
	MinimumPresence time.Duration
	CheckInWindow   time.Duration
	RequirePresence bool
}

type PaymentConfig struct {
	Provider        string // stub or stripe
	StripeSecretKey string
	WebhookSecret   string
	Currency        string
	OrderExpiry     time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8099")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "flexio:flexio@tcp(localhost:3306)/flexio?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("jwt.access_secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", 24*time.Hour)
	v.SetDefault("jwt.issuer", "flexio")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", 30*time.Second)

	v.SetDefault("billing.unit_price", "10")
	v.SetDefault("billing.free_limit", 5)
	v.SetDefault("billing.schedule", "0 3 1 * *")
	v.SetDefault("billing.concurrency", 4)
	v.SetDefault("billing.timezone", "UTC")

	v.SetDefault("rewards.day1", 50)
	v.SetDefault("rewards.day2", 100)
	v.SetDefault("rewards.day3", 200)
	v.SetDefault("rewards.day4", 300)
	v.SetDefault("rewards.day5", 400)
	v.SetDefault("rewards.day6_plus", 500)
	v.SetDefault("rewards.sunday_auto_streak", true)
	v.SetDefault("rewards.unified_mode", false)
	v.SetDefault("rewards.unified_value", 50)

	v.SetDefault("geofence.radius_meters", 100.0)
	v.SetDefault("geofence.max_sample_gap", 2*time.Minute)
	v.SetDefault("geofence.minimum_presence", 20*time.Minute)
	v.SetDefault("geofence.check_in_window", 3*time.Hour)
	v.SetDefault("geofence.require_presence", true)

	v.SetDefault("payment.provider", "stub")
	v.SetDefault("payment.stripe_secret_key", "")
	v.SetDefault("payment.webhook_secret", "")
	v.SetDefault("payment.currency", "usd")
	v.SetDefault("payment.order_expiry", 30*time.Minute)

	v.SetDefault("rate_limit.requests_per_second", 5.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads config.yaml from the working directory when present and applies
// FLEXIO_* environment overrides, e.g. FLEXIO_DATABASE_DSN.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("flexio")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return fromViper(v)
}

// Default returns the built-in configuration without consulting files or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := fromViper(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

func fromViper(v *viper.Viper) (*Config, error) {
	unitPrice, err := decimal.NewFromString(v.GetString("billing.unit_price"))
	if err != nil {
		return nil, errors.New("billing.unit_price: " + err.Error())
	}
	loc, err := time.LoadLocation(v.GetString("billing.timezone"))
	if err != nil {
		return nil, errors.New("billing.timezone: " + err.Error())
	}
	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			Env:          v.GetString("server.env"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			DSN:             v.GetString("database.dsn"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("jwt.access_secret"),
			AccessExpiry: v.GetDuration("jwt.access_expiry"),
			Issuer:       v.GetString("jwt.issuer"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			LockTTL:  v.GetDuration("redis.lock_ttl"),
		},
		Billing: BillingConfig{
			UnitPrice:   unitPrice,
			FreeLimit:   v.GetInt("billing.free_limit"),
			Schedule:    v.GetString("billing.schedule"),
			Concurrency: v.GetInt("billing.concurrency"),
			Location:    loc,
		},
		Rewards: RewardsConfig{
			Day1:             v.GetInt("rewards.day1"),
			Day2:             v.GetInt("rewards.day2"),
			Day3:             v.GetInt("rewards.day3"),
			Day4:             v.GetInt("rewards.day4"),
			Day5:             v.GetInt("rewards.day5"),
			Day6Plus:         v.GetInt("rewards.day6_plus"),
			SundayAutoStreak: v.GetBool("rewards.sunday_auto_streak"),
			UnifiedMode:      v.GetBool("rewards.unified_mode"),
			UnifiedValue:     v.GetInt("rewards.unified_value"),
		},
		Geofence: GeofenceConfig{
			RadiusMeters:    v.GetFloat64("geofence.radius_meters"),
			MaxSampleGap:    v.GetDuration("geofence.max_sample_gap"),
			MinimumPresence: v.GetDuration("geofence.minimum_presence"),
			CheckInWindow:   v.GetDuration("geofence.check_in_window"),
			RequirePresence: v.GetBool("geofence.require_presence"),
		},
		Payment: PaymentConfig{
			Provider:        v.GetString("payment.provider"),
			StripeSecretKey: v.GetString("payment.stripe_secret_key"),
			WebhookSecret:   v.GetString("payment.webhook_secret"),
			Currency:        v.GetString("payment.currency"),
			OrderExpiry:     v.GetDuration("payment.order_expiry"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("rate_limit.requests_per_second"),
			Burst:             v.GetInt("rate_limit.burst"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}, nil
}
