package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateLoadsOnce(t *testing.T) {
	c := NewCache(time.Minute)
	var loads int32

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := c.GetOrCreate("test_payload.json", func() ([]byte, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(10 * time.Millisecond)
				return []byte(`{"crop":"Paddy"}`), nil
			})
			assert.NoError(t, err)
			assert.Equal(t, `{"crop":"Paddy"}`, string(value))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	assert.Equal(t, 1, c.Len())
}

func TestGetOrCreateDoesNotCacheErrors(t *testing.T) {
	c := NewCache(time.Minute)

	_, err := c.GetOrCreate("missing.json", func() ([]byte, error) {
		return nil, errors.New("not found")
	})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	value, err := c.GetOrCreate("missing.json", func() ([]byte, error) {
		return []byte("{}"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(value))
}

func TestExpiredEntriesAreReloaded(t *testing.T) {
	c := NewCache(time.Minute)
	current := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	_, err := c.GetOrCreate("payload", func() ([]byte, error) { return []byte("v1"), nil })
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	value, err := c.GetOrCreate("payload", func() ([]byte, error) { return []byte("v2"), nil })
	require.NoError(t, err)

	assert.Equal(t, "v2", string(value))
	assert.Equal(t, 1, c.Len())
}
