// Package http contains HTTP delivery implementations for the application
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/api"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/jwt"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
)

type claimsKey struct{}

// ClaimsFromContext returns the agent claims stored by JWTMiddleware
func ClaimsFromContext(ctx context.Context) (*jwt.AgentClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.AgentClaims)
	return claims, ok
}

// WithClaims stores agent claims in ctx
func WithClaims(ctx context.Context, claims *jwt.AgentClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// HTTPRecorder observes served requests
type HTTPRecorder interface {
	ObserveHTTP(method, route string, code int, took time.Duration)
}

// RateLimitRecorder counts rejected requests
type RateLimitRecorder interface {
	RateLimited()
}

// LoggingMiddleware adds detailed request logging
// The middleware logs method, path, status, duration and client information of each request
func LoggingMiddleware(logger logger.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "HTTP request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// MetricsMiddleware records request counts and latency by route pattern
func MetricsMiddleware(recorder HTTPRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			recorder.ObserveHTTP(r.Method, route, status, time.Since(start))
		})
	}
}

// JWTMiddleware validates bearer access tokens for protected routes
// The agent claims are added to the request context
// Returns a 401 status code for missing or invalid tokens
func JWTMiddleware(jwtClient jwt.JWTClient, logger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "Missing Authorization header")
				apiClient.Unauthorized(ctx, w, "Missing Authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				logger.WarnContext(ctx, "Invalid Authorization header format")
				apiClient.Unauthorized(ctx, w, "Invalid Authorization header format")
				return
			}

			claims, err := jwtClient.Verify(ctx, authHeader[len(bearerPrefix):])
			if err != nil {
				logger.WarnContext(ctx, "Invalid access token", "error", err)
				apiClient.Unauthorized(ctx, w, "Invalid access token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// AgencyLimiter hands out one token bucket per agent
type AgencyLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*agencyBucket
}

// agencyBucket tracks the limiter and last request time of one agent
type agencyBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewAgencyLimiter creates a limiter allowing rps requests per second per agent
func NewAgencyLimiter(rps float64, burst int) *AgencyLimiter {
	return &AgencyLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*agencyBucket),
	}
}

func (l *AgencyLimiter) get(agent string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.limiters[agent]
	if !ok {
		b = &agencyBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[agent] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Reserve takes a token for agent, returning how long the caller would have to wait
// A positive delay means the request is rejected and the token is returned
func (l *AgencyLimiter) Reserve(agent string, now time.Time) time.Duration {
	res := l.get(agent, now).ReserveN(now, 1)
	if !res.OK() {
		return time.Second
	}
	delay := res.DelayFrom(now)
	if delay > 0 {
		res.CancelAt(now)
	}
	return delay
}

// Cleanup drops agents that sent no request during idle and returns how many were removed
func (l *AgencyLimiter) Cleanup(now time.Time, idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for agent, b := range l.limiters {
		if now.Sub(b.lastSeen) > idle {
			delete(l.limiters, agent)
			removed++
		}
	}
	return removed
}

// Run evicts idle agents every interval until ctx is done
func (l *AgencyLimiter) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Cleanup(now, idle)
		}
	}
}

// RateLimitMiddleware rejects agents exceeding their request rate with 429
// It should be used after JWTMiddleware; anonymous requests share one bucket
func RateLimitMiddleware(limiter *AgencyLimiter, recorder RateLimitRecorder, logger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			agent := "anonymous"
			if claims, ok := ClaimsFromContext(ctx); ok {
				agent = claims.AgentID
			}

			if delay := limiter.Reserve(agent, time.Now()); delay > 0 {
				logger.WarnContext(ctx, "Rate limit exceeded", "agent_id", agent, "retry_after", delay.String())
				if recorder != nil {
					recorder.RateLimited()
				}
				apiClient.TooManyRequests(ctx, w, delay)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
