package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "labstock-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "labstock", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.True(t, cfg.Procurement.ApprovalThreshold.Equal(decimal.NewFromInt(5000)))
	assert.True(t, cfg.Inventory.DefaultConversionFactor.Equal(decimal.NewFromInt(1)))
}

func TestValidate_ConnectionPool(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 50 // exceeds MaxOpenConns of 25

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestValidate_ProductionRequiresPassword(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.password")
}

func TestValidate_NegativeApprovalThreshold(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Procurement.ApprovalThreshold = decimal.NewFromInt(-1)

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approval_threshold")
}

func TestValidate_ConversionFactorMustBePositive(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Inventory.DefaultConversionFactor = decimal.NewFromInt(-2)

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_conversion_factor")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "labstock",
		Password: "p@ss/word",
		DBName:   "labstock",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
