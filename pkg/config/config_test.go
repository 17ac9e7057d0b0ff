package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("INVENTORY_STORAGE", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Inventory.StorageDriver)
	assert.Equal(t, int64(10), cfg.Inventory.DefaultLowStockThreshold)
	assert.Equal(t, 5*time.Second, cfg.Inventory.LockTimeout)
	assert.Equal(t, 8000, cfg.HTTP.Port)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("INVENTORY_STORAGE", "postgres")
	t.Setenv("INVENTORY_LOCK_TIMEOUT", "250ms")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "3")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Inventory.LockTimeout)
	assert.Equal(t, int64(3), cfg.Inventory.DefaultLowStockThreshold)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ":9090", config.HTTPConfig{Port: 9090}.Addr())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("INVENTORY_STORAGE", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss:w/rd", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aw%2Frd@db:5432/stock?sslmode=disable", c.DSN())
}
