// Package redis holds the process-wide connection backing the login-code
// store. It deliberately exposes no generic command surface; CodeStore is
// the only consumer.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

var client *goredis.Client

// Init parses the URL, dials the server and verifies it with a ping.
func Init(url, password string) error {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	client = goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

// SetClient swaps the connection, used by tests to point at miniredis.
func SetClient(c *goredis.Client) {
	client = c
}

// Close releases the connection pool.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
