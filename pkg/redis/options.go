package redis

import (
	"time"
)

// WithAddrs sets the Redis server addresses
func WithAddrs(addrs []string) Option {
	return func(c *Client) {
		if len(addrs) > 0 {
			c.opts.Addrs = addrs
		}
	}
}

// WithUsername sets the Redis ACL username
func WithUsername(username string) Option {
	return func(c *Client) {
		c.opts.Username = username
	}
}

// WithPassword sets the Redis password
func WithPassword(password string) Option {
	return func(c *Client) {
		c.opts.Password = password
	}
}

// WithDB selects the logical database
func WithDB(db int) Option {
	return func(c *Client) {
		c.opts.DB = db
	}
}

// WithDialTimeout sets the dial timeout, also used for the startup ping
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.opts.DialTimeout = d
	}
}

// WithReadTimeout sets the read timeout
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.opts.ReadTimeout = d
	}
}

// WithWriteTimeout sets the write timeout
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.opts.WriteTimeout = d
	}
}

// WithPoolSize sets the connection pool size. Zero keeps the default.
func WithPoolSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.opts.PoolSize = size
		}
	}
}
