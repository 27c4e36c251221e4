package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Option configures a PostgreSQL connection pool.
type Option func(*options)

type options struct {
	maxConns          int32
	minConns          int32
	healthCheckPeriod time.Duration
	maxConnIdleTime   time.Duration
	maxConnLifetime   time.Duration
	retryAttempts     int
	retryInterval     time.Duration
}

func defaultOptions() *options {
	return &options{
		maxConns:          10,
		minConns:          5,
		healthCheckPeriod: time.Minute,
		maxConnIdleTime:   10 * time.Minute,
		maxConnLifetime:   30 * time.Minute,
		retryAttempts:     3,
		retryInterval:     5 * time.Second,
	}
}

// WithMaxConns sets the maximum number of pooled connections.
// Default: 10
func WithMaxConns(n int32) Option {
	return func(o *options) {
		o.maxConns = n
	}
}

// WithMinConns sets the minimum number of idle connections kept open.
// Default: 5
func WithMinConns(n int32) Option {
	return func(o *options) {
		o.minConns = n
	}
}

// WithHealthCheckPeriod sets how often pooled connections are checked.
// Default: 1 minute
func WithHealthCheckPeriod(d time.Duration) Option {
	return func(o *options) {
		o.healthCheckPeriod = d
	}
}

// WithConnLifetimes sets the maximum idle time and total lifetime of a
// pooled connection.
// Default: 10 minutes idle, 30 minutes lifetime.
func WithConnLifetimes(idle, lifetime time.Duration) Option {
	return func(o *options) {
		o.maxConnIdleTime = idle
		o.maxConnLifetime = lifetime
	}
}

// WithRetry configures connection retry behavior during startup.
// Default: 3 attempts, 5 second base interval with linear backoff.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// Open establishes a PostgreSQL connection pool, retrying transient
// startup failures with increasing backoff.
//
// Example:
//
//	pool, err := db.Open(ctx, os.Getenv("DATABASE_URL"),
//	    db.WithMaxConns(10),
//	)
func Open(ctx context.Context, url string, opts ...Option) (*pgxpool.Pool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	connConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}
	connConfig.MaxConns = o.maxConns
	connConfig.MinConns = o.minConns
	connConfig.HealthCheckPeriod = o.healthCheckPeriod
	connConfig.MaxConnIdleTime = o.maxConnIdleTime
	connConfig.MaxConnLifetime = o.maxConnLifetime

	attempts := max(o.retryAttempts, 1)
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			// A real ping catches authentication and permission issues
			// that pool construction alone does not.
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrOpenConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}

	return nil, ErrOpenConnection
}
