package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/envcheck/pkg/adapters/redis"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/aretw0/envcheck/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunReportStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	report := &domain.Report{Workspace: "app", Variables: 1}

	require.NoError(t, store.Save(ctx, "app", report))

	workspaces, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, workspaces, "app")

	// Key expiry is driven by miniredis time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "app")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	// Index pruning compares scores with time.Now(), so real time must pass.
	time.Sleep(1200 * time.Millisecond)

	workspaces, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, workspaces)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "web", &domain.Report{Workspace: "web"}))

	assert.True(t, mr.Exists("custom:app:web"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, "web")
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	require.NoError(t, store.Save(context.Background(), "web", &domain.Report{}))

	assert.True(t, mr.Exists(redis.DefaultPrefix+"web"))
	assert.Same(t, client, store.Client())
}
