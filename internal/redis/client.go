// Package redis wraps the go-redis client used by the run cache and the
// event stream publisher.
package redis

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Config describes one Redis instance. Addr is either host:port or a
// redis:// / rediss:// URL; a URL's password and db are honored.
type Config struct {
	Addr       string
	Timeout    time.Duration
	MaxRetries int
	PoolSize   int
	TLS        bool
}

// Validate checks the address and bounds
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("addr", c.Addr, vb)
	if c.Timeout < 0 {
		vb.Field("timeout", "must not be negative")
	}
	errors.ValidateMin("pool_size", c.PoolSize, 0, vb)
	return vb.Build()
}

func (c *Config) options() (*redis.Options, error) {
	var opts *redis.Options
	if strings.Contains(c.Addr, "://") {
		parsed, err := redis.ParseURL(c.Addr)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: c.Addr}
	}

	if c.Timeout > 0 {
		opts.DialTimeout = c.Timeout
		opts.ReadTimeout = c.Timeout
		opts.WriteTimeout = c.Timeout
	}
	opts.MaxRetries = c.MaxRetries
	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	if c.TLS && opts.TLSConfig == nil {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// New creates a client. Nothing is dialed until the first command, so
// reachability is checked separately with Ping.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("redis config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// Ping checks that the server answers
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis ping failed")
	}
	return nil
}
