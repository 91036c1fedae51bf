package mongodb

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventbooking/internal/domain"
)

// offlineClient builds a client without contacting a server; mongo.Connect
// only starts background monitoring.
func offlineClient(t *testing.T, ctx context.Context, opts *options.ClientOptions) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(ctx, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

func TestConnectionCache_Acquire_ConcurrentCallersShareOneDial(t *testing.T) {
	var dials atomic.Int32
	release := make(chan struct{})
	cache := NewConnectionCache("mongodb://127.0.0.1:1", "eventbooking", WithDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			dials.Add(1)
			<-release
			return offlineClient(t, ctx, opts), nil
		}))

	const callers = 8
	results := make([]*Connection, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := cache.Acquire(context.Background())
			assert.NoError(t, err)
			results[i] = conn
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), dials.Load())
	for _, conn := range results {
		assert.Same(t, results[0], conn)
	}
	assert.Equal(t, "eventbooking", results[0].DB.Name())

	again, err := cache.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, results[0], again)
	assert.Equal(t, int32(1), dials.Load())
}

func TestConnectionCache_Acquire_FailureIsNotCached(t *testing.T) {
	var dials atomic.Int32
	cache := NewConnectionCache("mongodb://127.0.0.1:1", "eventbooking", WithDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			if dials.Add(1) == 1 {
				return nil, errors.New("server selection timeout")
			}
			return offlineClient(t, ctx, opts), nil
		}))

	_, err := cache.Acquire(context.Background())
	require.Error(t, err)
	var connErr *domain.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Contains(t, err.Error(), "server selection timeout")

	conn, err := cache.Acquire(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, conn)
	assert.Equal(t, int32(2), dials.Load())
}

func TestConnectionCache_Acquire_MissingURI(t *testing.T) {
	called := false
	cache := NewConnectionCache("", "eventbooking", WithDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			called = true
			return nil, nil
		}))

	_, err := cache.Acquire(context.Background())
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, URIConfigKey, cfgErr.Key)
	assert.False(t, called)
}

func TestConnectionCache_Acquire_ClientOptions(t *testing.T) {
	var got *options.ClientOptions
	cache := NewConnectionCache("mongodb://127.0.0.1:1", "eventbooking", WithDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			got = opts
			return offlineClient(t, ctx, opts), nil
		}))

	_, err := cache.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.MaxPoolSize)
	assert.Equal(t, uint64(10), *got.MaxPoolSize)
	require.NotNil(t, got.ServerSelectionTimeout)
	assert.Equal(t, 15*time.Second, *got.ServerSelectionTimeout)
}

func TestConnectionCache_Acquire_CallerCancelled(t *testing.T) {
	release := make(chan struct{})
	cache := NewConnectionCache("mongodb://127.0.0.1:1", "eventbooking", WithDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			<-release
			return offlineClient(t, ctx, opts), nil
		}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cache.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	conn, err := cache.Acquire(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, conn)
}

func TestConnectionCache_Close(t *testing.T) {
	var dials atomic.Int32
	cache := NewConnectionCache("mongodb://127.0.0.1:1", "eventbooking", WithDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			dials.Add(1)
			client, err := mongo.Connect(ctx, opts)
			require.NoError(t, err)
			return client, nil
		}))

	require.NoError(t, cache.Close(context.Background()))

	_, err := cache.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, cache.Close(context.Background()))

	_, err = cache.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), dials.Load())
	require.NoError(t, cache.Close(context.Background()))
}
