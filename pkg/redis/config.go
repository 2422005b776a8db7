package redis

import (
	"time"
)

// Config is the connection subset the reference data cache and the token store need
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

// Options converts the config into client options; zero values keep the defaults
func (c Config) Options() []Option {
	opts := []Option{WithAddrs(c.Addrs), WithDB(c.DB)}
	if c.Username != "" {
		opts = append(opts, WithUsername(c.Username))
	}
	if c.Password != "" {
		opts = append(opts, WithPassword(c.Password))
	}
	if c.PoolSize > 0 {
		opts = append(opts, WithPoolSize(c.PoolSize))
	}
	if c.DialTimeout > 0 {
		opts = append(opts, WithDialTimeout(c.DialTimeout))
	}
	return opts
}
