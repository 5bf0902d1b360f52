package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type country struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestRemember_LoadsOnceThenServesFromCache(t *testing.T) {
	c := newMemCache()
	calls := 0
	load := func(context.Context) ([]country, error) {
		calls++
		return []country{{ID: 1, Name: "Jordan"}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Remember(context.Background(), c, "countries", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "Jordan", got[0].Name)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.sets)
}

func TestRemember_LoadErrorIsNotCached(t *testing.T) {
	c := newMemCache()
	boom := errors.New("backend down")

	_, err := Remember(context.Background(), c, "countries", time.Minute, func(context.Context) ([]country, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, c.sets)
}

func TestRemember_NoopAlwaysLoads(t *testing.T) {
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := Remember(context.Background(), Noop{}, "k", time.Minute, func(context.Context) (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	r := NewRedisCache(nil, "nfc")
	assert.Equal(t, "nfc:catalog:products", r.key("catalog:products"))
}
