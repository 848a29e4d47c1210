package trip

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"tripdraft/internal/infra"
)

// testPool opens TRIPDRAFT_TEST_DSN and applies migrations.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	pool, err := infra.NewDB(ctx, os.Getenv("TRIPDRAFT_TEST_DSN"))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = infra.Migrate(ctx, pool)
	require.NoError(t, err)
	return pool
}

// testRedis skips unless TRIPDRAFT_TEST_REDIS is set.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TRIPDRAFT_TEST_REDIS")
	if addr == "" {
		t.Skip("TRIPDRAFT_TEST_REDIS not set")
	}
	rdb, err := infra.NewRedis(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}
