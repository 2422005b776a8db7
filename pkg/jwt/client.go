package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	// DefaultIssuer is written into tokens when no issuer is configured
	DefaultIssuer = "validating-carrier-service"
	// DefaultAccessTTL is the access token lifetime when none is configured
	DefaultAccessTTL = 30 * time.Minute
)

var (
	ErrSecretRequired   = errors.New("jwt secret is required")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrTokenRevoked     = errors.New("token has been revoked")
	ErrMissingClaims    = errors.New("token is missing agent claims")
)

// JWTClient defines the interface for JWT token operations
type JWTClient interface {
	// Issue signs an access token for the agent at the given point of sale
	Issue(agentID, hostID, country string) (string, error)
	// Verify parses and checks a token, returning its claims
	Verify(ctx context.Context, tokenString string) (*AgentClaims, error)
	// Revoke rejects the token for the remainder of its lifetime
	Revoke(ctx context.Context, claims *AgentClaims) error
	GetConfig() TokenConfig
}

// Client represents a JWT client that handles token operations
type Client struct {
	config TokenConfig
	store  RevocationStore
	now    func() time.Time
}

// New creates a new JWT client with the provided options
func New(opts ...Option) (JWTClient, error) {
	client := &Client{
		config: TokenConfig{
			Issuer:    DefaultIssuer,
			AccessTTL: DefaultAccessTTL,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.config.Secret == "" {
		return nil, ErrSecretRequired
	}
	return client, nil
}

// Issue signs an access token for the agent at the given point of sale
func (c *Client) Issue(agentID, hostID, country string) (string, error) {
	if agentID == "" || country == "" {
		return "", ErrMissingClaims
	}

	now := c.now()
	claims := AgentClaims{
		AgentID:   agentID,
		HostID:    hostID,
		Country:   country,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			Subject:   agentID,
			Issuer:    c.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.AccessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.Secret))
}

// Verify parses and checks a token, returning its claims
func (c *Client) Verify(ctx context.Context, tokenString string) (*AgentClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.config.Issuer),
		jwt.WithLeeway(c.config.ClockLeeway),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, &AgentClaims{}, func(*jwt.Token) (any, error) {
		return []byte(c.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AgentClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidTokenType
	}
	if claims.AgentID == "" || claims.Country == "" {
		return nil, ErrMissingClaims
	}

	if c.store != nil {
		revoked, err := c.store.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// Revoke rejects the token for the remainder of its lifetime
func (c *Client) Revoke(ctx context.Context, claims *AgentClaims) error {
	if c.store == nil {
		return errors.New("no revocation store configured")
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	return c.store.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(c.now()))
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() TokenConfig {
	return c.config
}
