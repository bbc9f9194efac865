package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/refresquitos/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Business BusinessConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings for the report cache
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      int // report cache TTL in seconds
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      int // seconds
	WriteTimeout     int // seconds
	IdleTimeout      int // seconds
	CORSAllowOrigins []string
}

// BusinessConfig holds the injectable business rules: unit prices,
// profit distribution rates and the work-cycle policy. Kept in
// configuration so the engine stays testable with alternate rules and
// regional variations need no code change.
type BusinessConfig struct {
	SodaPrice     float64
	IceCreamPrice float64
	TitheRate     float64
	SavingsRate   float64
	CycleDayQuota int
	AbsenceLimit  int
	BonusUnitRate float64
}

// Rules converts the business section into the costing engine's rules
func (b *BusinessConfig) Rules() costing.Rules {
	return costing.Rules{
		Prices: costing.NewPriceList(map[costing.Product]decimal.Decimal{
			costing.ProductSoda:     decimal.NewFromFloat(b.SodaPrice),
			costing.ProductIceCream: decimal.NewFromFloat(b.IceCreamPrice),
		}, costing.ProductSoda),
		TitheRate:   decimal.NewFromFloat(b.TitheRate),
		SavingsRate: decimal.NewFromFloat(b.SavingsRate),
	}
}

// CyclePolicy converts the business section into the payroll policy
func (b *BusinessConfig) CyclePolicy() payroll.CyclePolicy {
	return payroll.CyclePolicy{
		DayQuota:      b.CycleDayQuota,
		AbsenceLimit:  b.AbsenceLimit,
		BonusUnitRate: decimal.NewFromFloat(b.BonusUnitRate),
	}
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with REFRESQUITOS_ prefix
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("REFRESQUITOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetInt("redis.ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetInt("http.read_timeout"),
			WriteTimeout:     v.GetInt("http.write_timeout"),
			IdleTimeout:      v.GetInt("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Business: BusinessConfig{
			SodaPrice:     v.GetFloat64("business.soda_price"),
			IceCreamPrice: v.GetFloat64("business.ice_cream_price"),
			TitheRate:     v.GetFloat64("business.tithe_rate"),
			SavingsRate:   v.GetFloat64("business.savings_rate"),
			CycleDayQuota: v.GetInt("business.cycle_day_quota"),
			AbsenceLimit:  v.GetInt("business.absence_limit"),
			BonusUnitRate: v.GetFloat64("business.bonus_unit_rate"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "refresquitos-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "refresquitos"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60
	}
	if cfg.Business.SodaPrice == 0 {
		cfg.Business.SodaPrice = 1000
	}
	if cfg.Business.IceCreamPrice == 0 {
		cfg.Business.IceCreamPrice = 1800
	}
	if cfg.Business.TitheRate == 0 {
		cfg.Business.TitheRate = 0.1
	}
	if cfg.Business.SavingsRate == 0 {
		cfg.Business.SavingsRate = 0.2
	}
	if cfg.Business.CycleDayQuota == 0 {
		cfg.Business.CycleDayQuota = 30
	}
	if cfg.Business.AbsenceLimit == 0 {
		cfg.Business.AbsenceLimit = 4
	}
	if cfg.Business.BonusUnitRate == 0 {
		cfg.Business.BonusUnitRate = 1000
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Business.SodaPrice < 0 || c.Business.IceCreamPrice < 0 {
		return fmt.Errorf("business prices cannot be negative")
	}
	if c.Business.TitheRate < 0 || c.Business.SavingsRate < 0 ||
		c.Business.TitheRate+c.Business.SavingsRate > 1 {
		return fmt.Errorf("business distribution rates must be non-negative and sum to at most 1")
	}
	if c.Business.CycleDayQuota <= 0 {
		return fmt.Errorf("business.cycle_day_quota must be positive")
	}
	if c.Business.AbsenceLimit < 0 {
		return fmt.Errorf("business.absence_limit cannot be negative")
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis host:port address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
