package jwt

import (
	"time"
)

// TokenConfig holds the configuration for JWT tokens
type TokenConfig struct {
	Secret      string        `mapstructure:"secret"`
	Issuer      string        `mapstructure:"issuer"`
	AccessTTL   time.Duration `mapstructure:"access_ttl"`
	ClockLeeway time.Duration `mapstructure:"clock_leeway"`
}

// NewWithConfig creates a new JWT client from a config struct
func NewWithConfig(config TokenConfig, store RevocationStore) (JWTClient, error) {
	opts := []Option{
		WithSecret(config.Secret),
		WithRevocationStore(store),
	}
	if config.Issuer != "" {
		opts = append(opts, WithIssuer(config.Issuer))
	}
	if config.AccessTTL > 0 {
		opts = append(opts, WithAccessTTL(config.AccessTTL))
	}
	if config.ClockLeeway > 0 {
		opts = append(opts, WithClockLeeway(config.ClockLeeway))
	}
	return New(opts...)
}
