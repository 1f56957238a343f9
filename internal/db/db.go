package db

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// Conn is a lazily-initialized MongoDB connection. The client is created on
// first use and reused by every caller afterwards. Concurrent callers racing
// on the first use share one in-flight connection attempt; a failed attempt
// caches nothing, so the next caller retries from scratch.
type Conn struct {
	uri string

	mu     sync.Mutex
	client *mongo.Client

	group singleflight.Group
}

func New(uri string) *Conn {
	return &Conn{uri: uri}
}

// Client returns the cached client, connecting and pinging on first use.
func (c *Conn) Client(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client != nil {
		return client, nil
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri))
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		c.mu.Lock()
		c.client = client
		c.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

// Ping verifies the connection is alive, establishing it if needed.
func (c *Conn) Ping(ctx context.Context) error {
	client, err := c.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects the cached client, if any.
func (c *Conn) Close(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
