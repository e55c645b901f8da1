package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/vlnch/anonbox/blob"
	"github.com/vlnch/anonbox/blob/redis"
)

func setupTransport(t *testing.T) *redis.RedisTransport {
	t.Helper()
	srv := miniredis.RunT(t)

	transport, err := redis.NewRedisTransport(context.Background(), true, srv.Addr(), "anonbox")
	assert.NoError(t, err)
	return transport
}

func TestGet_NotFound(t *testing.T) {
	transport := setupTransport(t)

	_, err := transport.Get(context.Background())
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestPatchThenGet(t *testing.T) {
	transport := setupTransport(t)
	ctx := context.Background()

	content := []byte(`{"users": [], "messages": []}`)
	assert.NoError(t, transport.Patch(ctx, content))

	got, err := transport.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestPatch_ReplacesWholeBlob(t *testing.T) {
	transport := setupTransport(t)
	ctx := context.Background()

	assert.NoError(t, transport.Patch(ctx, []byte(`first`)))
	assert.NoError(t, transport.Patch(ctx, []byte(`second`)))

	got, err := transport.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`second`), got)
}

func TestNew_UnreachableEndpoint(t *testing.T) {
	_, err := redis.NewRedisTransport(context.Background(), true, "127.0.0.1:1", "anonbox")
	assert.Error(t, err)
}
