package jwt

import (
	"time"
)

// Option is a function that configures a Client
type Option func(*Client)

// WithSecret sets the HMAC signing secret
func WithSecret(secret string) Option {
	return func(c *Client) {
		c.config.Secret = secret
	}
}

// WithIssuer sets the iss claim written and required on verify
func WithIssuer(issuer string) Option {
	return func(c *Client) {
		c.config.Issuer = issuer
	}
}

// WithAccessTTL sets the access token lifetime
func WithAccessTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.config.AccessTTL = ttl
	}
}

// WithClockLeeway tolerates clock skew when checking exp and iat
func WithClockLeeway(leeway time.Duration) Option {
	return func(c *Client) {
		c.config.ClockLeeway = leeway
	}
}

// WithRevocationStore enables revocation checks on verify
func WithRevocationStore(store RevocationStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithClock overrides time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
