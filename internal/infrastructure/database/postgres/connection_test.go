package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemReactivity/internal/config"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/logging"
)

func TestConfigurePool(t *testing.T) {
	t.Parallel()

	t.Run("applies custom settings", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			MaxConns:        50,
			MinConns:        10,
			ConnMaxLifetime: 2 * time.Hour,
			ConnMaxIdleTime: 45 * time.Minute,
		}
		poolCfg := &pgxpool.Config{}
		configurePool(poolCfg, cfg)

		assert.Equal(t, int32(50), poolCfg.MaxConns)
		assert.Equal(t, int32(10), poolCfg.MinConns)
		assert.Equal(t, 2*time.Hour, poolCfg.MaxConnLifetime)
		assert.Equal(t, 45*time.Minute, poolCfg.MaxConnIdleTime)
	})

	t.Run("handles zero values", func(t *testing.T) {
		poolCfg := &pgxpool.Config{MaxConns: 25}
		configurePool(poolCfg, config.DatabaseConfig{})
		assert.Equal(t, int32(25), poolCfg.MaxConns)
	})
}

func TestConnection_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	// sql.Open is lazy, so no live server is needed here.
	db, err := sqlOpen("postgres", "postgres://u:p@localhost:5432/x?sslmode=disable")
	require.NoError(t, err)

	conn := NewConnectionWithDB(db, logging.NewNopLogger())
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())
}
