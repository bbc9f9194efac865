package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refresquitos/backend/internal/domain/costing"
)

var envKeys = []string{
	"REFRESQUITOS_APP_NAME",
	"REFRESQUITOS_APP_ENV",
	"REFRESQUITOS_APP_PORT",
	"REFRESQUITOS_DATABASE_HOST",
	"REFRESQUITOS_DATABASE_PORT",
	"REFRESQUITOS_DATABASE_USER",
	"REFRESQUITOS_DATABASE_PASSWORD",
	"REFRESQUITOS_DATABASE_DBNAME",
	"REFRESQUITOS_DATABASE_SSLMODE",
	"REFRESQUITOS_REDIS_ENABLED",
	"REFRESQUITOS_BUSINESS_SODA_PRICE",
}

func withCleanEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(envKeys))
	for _, k := range envKeys {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	withCleanEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "refresquitos-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "refresquitos", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 60, cfg.Redis.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15, cfg.HTTP.ReadTimeout)

	assert.Equal(t, float64(1000), cfg.Business.SodaPrice)
	assert.Equal(t, float64(1800), cfg.Business.IceCreamPrice)
	assert.Equal(t, 0.1, cfg.Business.TitheRate)
	assert.Equal(t, 0.2, cfg.Business.SavingsRate)
	assert.Equal(t, 30, cfg.Business.CycleDayQuota)
	assert.Equal(t, 4, cfg.Business.AbsenceLimit)
	assert.Equal(t, float64(1000), cfg.Business.BonusUnitRate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	withCleanEnv(t)

	os.Setenv("REFRESQUITOS_APP_PORT", "9090")
	os.Setenv("REFRESQUITOS_DATABASE_HOST", "db.internal")
	os.Setenv("REFRESQUITOS_BUSINESS_SODA_PRICE", "1500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, float64(1500), cfg.Business.SodaPrice)
}

func TestLoad_ProductionValidation(t *testing.T) {
	withCleanEnv(t)

	os.Setenv("REFRESQUITOS_APP_ENV", "production")

	// No password and sslmode=disable must fail in production
	_, err := Load()
	require.Error(t, err)
}

func TestBusinessConfig_Rules(t *testing.T) {
	b := BusinessConfig{
		SodaPrice:     1000,
		IceCreamPrice: 1800,
		TitheRate:     0.1,
		SavingsRate:   0.2,
	}

	rules := b.Rules()

	assert.True(t, rules.Prices.PriceFor(costing.ProductSoda).Equal(decimal.NewFromInt(1000)))
	assert.True(t, rules.Prices.PriceFor(costing.ProductIceCream).Equal(decimal.NewFromInt(1800)))
	assert.True(t, rules.TitheRate.Equal(decimal.NewFromFloat(0.1)))
	assert.True(t, rules.SavingsRate.Equal(decimal.NewFromFloat(0.2)))
}

func TestBusinessConfig_CyclePolicy(t *testing.T) {
	b := BusinessConfig{
		CycleDayQuota: 30,
		AbsenceLimit:  4,
		BonusUnitRate: 1000,
	}

	policy := b.CyclePolicy()

	assert.Equal(t, 30, policy.DayQuota)
	assert.Equal(t, 4, policy.AbsenceLimit)
	assert.True(t, policy.BonusUnitRate.Equal(decimal.NewFromInt(1000)))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "refresquitos",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "refresquitos")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"idle conns above open conns", func(c *Config) {
			c.Database.MaxIdleConns = 50
			c.Database.MaxOpenConns = 10
		}},
		{"negative price", func(c *Config) {
			c.Business.SodaPrice = -1
		}},
		{"distribution rates above one", func(c *Config) {
			c.Business.TitheRate = 0.6
			c.Business.SavingsRate = 0.6
		}},
		{"negative day quota", func(c *Config) {
			c.Business.CycleDayQuota = -1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCleanEnv(t)
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
