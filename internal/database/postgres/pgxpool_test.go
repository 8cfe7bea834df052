package postgres

import (
	"context"
	"testing"
	"time"

	"jobmarket/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	pcfg, err := PoolConfig(config.DatabaseConfig{
		DBHost:              "db.internal",
		DBPort:              "5433",
		DBName:              "jobs",
		DBUser:              "svc",
		DBPassword:          "it's secret",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        12,
		PoolMinConns:        2,
		PoolMaxConnLifetime: time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", pcfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pcfg.ConnConfig.Port)
	assert.Equal(t, "jobs", pcfg.ConnConfig.Database)
	assert.Equal(t, "svc", pcfg.ConnConfig.User)
	assert.Equal(t, "it's secret", pcfg.ConnConfig.Password)
	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(12), pcfg.MaxConns)
	assert.Equal(t, int32(2), pcfg.MinConns)
	assert.Equal(t, time.Hour, pcfg.MaxConnLifetime)
}

func TestDSN_DefaultsSSLMode(t *testing.T) {
	assert.Contains(t, DSN(config.DatabaseConfig{DBHost: "h", DBPort: "1"}), "sslmode=disable")
}

func TestNilPool(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), errNilDB)
	assert.NoError(t, p.Close())
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, errNilDB)
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(), errNilDB)
	assert.Nil(t, p.SQLDB())
}
