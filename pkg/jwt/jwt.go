// Package jwt issues and verifies agent access tokens carrying point-of-sale claims.
package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAccess is the only token type this package issues
const TokenTypeAccess = "access"

// AgentClaims identifies the selling agent and its point of sale
type AgentClaims struct {
	AgentID string `json:"agent_id"`
	// HostID is the ticketing system host carrier, e.g. "1S"
	HostID string `json:"host_id"`
	// Country is the agency's point-of-sale nation
	Country   string `json:"country"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// RevocationStore records token IDs that must no longer be accepted
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
