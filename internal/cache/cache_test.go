package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/conduit-lang/chartdata/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		want    interface{}
		wantErr string
	}{
		{name: "empty backend", cfg: config.CacheConfig{}, want: NopCache{}},
		{name: "none", cfg: config.CacheConfig{Backend: config.CacheNone}, want: NopCache{}},
		{name: "memory", cfg: config.CacheConfig{Backend: config.CacheMemory, TTL: time.Minute}, want: &MemoryCache{}},
		{name: "redis", cfg: config.CacheConfig{Backend: config.CacheRedis, Addr: mr.Addr()}, want: &RedisCache{}},
		{name: "unknown", cfg: config.CacheConfig{Backend: "memcached"}, wantErr: "unknown cache backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer c.Close()
			assert.IsType(t, tt.want, c)
		})
	}
}

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NopCache{}

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	_, err := c.Get(ctx, "k")
	assert.True(t, IsCacheMiss(err))

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetch(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	calls := 0
	build := func() ([]byte, error) {
		calls++
		return []byte("rendered"), nil
	}

	value, hit, err := Fetch(ctx, c, "k", nil, build)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []byte("rendered"), value)

	value, hit, err = Fetch(ctx, c, "k", nil, build)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("rendered"), value)
	assert.Equal(t, 1, calls)
}

func TestFetch_BuildError(t *testing.T) {
	c := newTestMemoryCache(t)
	boom := errors.New("boom")

	_, _, err := Fetch(context.Background(), c, "k", nil, func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestFetch_BackendDownFallsThrough(t *testing.T) {
	c, mr := setupTestRedis(t)
	mr.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	value, hit, err := Fetch(context.Background(), c, "k", zap.New(core), func() ([]byte, error) {
		return []byte("fresh"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []byte("fresh"), value)

	assert.Equal(t, 1, logs.FilterMessage("cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("cache write failed").Len())
}

func TestRenderKey(t *testing.T) {
	doc := []byte("cols: [number]\nrows: [[1]]\n")

	a := RenderKey(doc, "UTC", "compact")
	assert.Equal(t, a, RenderKey(doc, "UTC", "compact"))
	assert.Regexp(t, `^render:[0-9a-f-]{36}$`, a)

	assert.NotEqual(t, a, RenderKey(doc, "UTC", "pretty"))
	assert.NotEqual(t, a, RenderKey(doc, "Asia/Tokyo", "compact"))
	assert.NotEqual(t, a, RenderKey([]byte("cols: [string]\n"), "UTC", "compact"))
	assert.NotEqual(t, RenderKey(nil, "ab", "c"), RenderKey(nil, "a", "bc"))
}
