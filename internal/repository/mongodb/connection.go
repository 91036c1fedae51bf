// Package mongodb implements the event and booking repositories on MongoDB
// and owns the process-wide connection cache they share.
package mongodb

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"

	"eventbooking/internal/domain"
)

const (
	// URIConfigKey names the configuration value that holds the connection string.
	URIConfigKey = "MONGODB_URI"

	maxPoolSize            = 10
	serverSelectionTimeout = 15 * time.Second
)

// Connection is a live client and the database every repository works in.
type Connection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connector hands out the shared connection.
type Connector interface {
	Acquire(ctx context.Context) (*Connection, error)
}

// DialFunc opens a client with opts and verifies it can reach the server.
type DialFunc func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)

// ConnectionCache memoizes a single MongoDB connection per process.
// Construct it once at startup and pass it to every repository.
type ConnectionCache struct {
	uri    string
	dbName string
	dial   DialFunc

	mu     sync.RWMutex
	live   *Connection
	flight singleflight.Group
}

// Option configures a ConnectionCache.
type Option func(*ConnectionCache)

// WithDialer replaces the function used to open the client.
func WithDialer(dial DialFunc) Option {
	return func(c *ConnectionCache) {
		c.dial = dial
	}
}

// NewConnectionCache returns a cache for uri/dbName. Nothing is dialed until
// the first Acquire.
func NewConnectionCache(uri, dbName string, opts ...Option) *ConnectionCache {
	c := &ConnectionCache{
		uri:    uri,
		dbName: dbName,
		dial:   dial,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire returns the live connection, establishing it on first use.
// Concurrent callers during establishment wait for the same attempt.
// A failed attempt is not cached; the next call dials again.
func (c *ConnectionCache) Acquire(ctx context.Context) (*Connection, error) {
	if conn := c.cached(); conn != nil {
		return conn, nil
	}

	ch := c.flight.DoChan("connect", func() (any, error) {
		if conn := c.cached(); conn != nil {
			return conn, nil
		}
		// The attempt is shared, so one caller's cancellation must not abort it.
		conn, err := c.establish(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.live = conn
		c.mu.Unlock()
		return conn, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Connection), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close disconnects the live client, if any.
func (c *ConnectionCache) Close(ctx context.Context) error {
	c.mu.Lock()
	conn := c.live
	c.live = nil
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Client.Disconnect(ctx)
}

func (c *ConnectionCache) cached() *Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.live
}

func (c *ConnectionCache) establish(ctx context.Context) (*Connection, error) {
	if c.uri == "" {
		return nil, &domain.ConfigurationError{Key: URIConfigKey}
	}
	opts := options.Client().
		ApplyURI(c.uri).
		SetMaxPoolSize(maxPoolSize).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := c.dial(ctx, opts)
	if err != nil {
		return nil, &domain.ConnectionError{Err: err}
	}
	return &Connection{Client: client, DB: client.Database(c.dbName)}, nil
}

func dial(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}
