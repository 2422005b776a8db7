package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "validating-carrier.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad_FromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
infrastructure:
  postgres:
    user: vcxr
    password: secret
security:
  jwt:
    access_token_secret: token-secret
resolver:
  multi_plan: false
  trailer_width: 64
`)

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "vcxr", cfg.Infrastructure.Postgres.User)
	assert.False(t, cfg.Resolver.MultiPlan)
	assert.Equal(t, 64, cfg.Resolver.TrailerWidth)
	// defaults survive a partial file
	assert.True(t, cfg.Resolver.GsaEnabled)
	assert.Equal(t, "validating-carrier.resolved", cfg.Infrastructure.Kafka.Topics.Resolved)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Infrastructure.Redis.Addrs)
	assert.Equal(t, 300, cfg.ReferenceData.CacheTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
security:
  jwt:
    access_token_secret: from-file
`)
	t.Setenv("VCXR_SECURITY_JWT_ACCESS_TOKEN_SECRET", "from-env")
	t.Setenv("VCXR_REFERENCE_DATA_SOURCE", "snapshot")
	t.Setenv("VCXR_REFERENCE_DATA_SNAPSHOT_FILE", "configs/reference-data.yaml")
	t.Setenv("VCXR_SERVER_PORT", "7000")

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Security.JWT.AccessTokenSecret)
	assert.Equal(t, SourceSnapshot, cfg.ReferenceData.Source)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("VCXR_SECURITY_JWT_ACCESS_TOKEN_SECRET", "s")
	t.Setenv("VCXR_INFRASTRUCTURE_POSTGRES_USER", "u")
	t.Setenv("VCXR_INFRASTRUCTURE_POSTGRES_PASSWORD", "p")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Resolver.MultiPlan)
	assert.Equal(t, 60, cfg.Resolver.TrailerWidth)
}

func TestLoad_RequiresSecret(t *testing.T) {
	_, err := load(viper.New(), t.TempDir())
	assert.EqualError(t, err, "JWT access token secret is required")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Security:       SecurityConfig{JWT: JWTConfig{AccessTokenSecret: "s"}},
			ReferenceData:  ReferenceDataConfig{Source: SourcePostgres},
			Infrastructure: InfrastructureConfig{Postgres: PostgresConfig{User: "u", Password: "p"}},
			Resolver:       ResolverConfig{TrailerWidth: 60, MaxBatchSize: 10},
			RateLimit:      RateLimitConfig{Enabled: true, RequestsPerSecond: 5, Burst: 5},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing db user", func(c *Config) { c.Infrastructure.Postgres.User = "" }, "database user is required"},
		{"missing db password", func(c *Config) { c.Infrastructure.Postgres.Password = "" }, "database password is required"},
		{"snapshot without file", func(c *Config) { c.ReferenceData.Source = SourceSnapshot }, "reference data snapshot file is required"},
		{"snapshot skips db credentials", func(c *Config) {
			c.ReferenceData = ReferenceDataConfig{Source: SourceSnapshot, SnapshotFile: "ref.yaml"}
			c.Infrastructure.Postgres = PostgresConfig{}
		}, ""},
		{"unknown source", func(c *Config) { c.ReferenceData.Source = "mongo" }, `unknown reference data source "mongo"`},
		{"narrow trailer", func(c *Config) { c.Resolver.TrailerWidth = 10 }, "resolver trailer width must be at least 20"},
		{"zero batch", func(c *Config) { c.Resolver.MaxBatchSize = 0 }, "resolver max batch size must be positive"},
		{"bad rate limit", func(c *Config) { c.RateLimit.Burst = 0 }, "rate limit requires positive requests_per_second and burst"},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.errMsg)
		})
	}
}
