// Package config handles application configuration loading and management
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Reference data sources
const (
	SourcePostgres = "postgres"
	SourceSnapshot = "snapshot"
)

// Config holds the entire application configuration
type Config struct {
	// Application contains application-level settings
	Application ApplicationConfig `mapstructure:"application"`
	// Server contains HTTP server settings
	Server ServerConfig `mapstructure:"server"`
	// Infrastructure contains infrastructure connection settings
	Infrastructure InfrastructureConfig `mapstructure:"infrastructure"`
	// Security contains security-related settings
	Security SecurityConfig `mapstructure:"security"`
	// Resolver contains the immutable options of the resolution engine
	Resolver ResolverConfig `mapstructure:"resolver"`
	// ReferenceData selects and tunes the reference data gateway
	ReferenceData ReferenceDataConfig `mapstructure:"reference_data"`
	// RateLimit contains per-agency request limits
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	// Logging contains log output settings
	Logging LoggingConfig `mapstructure:"logging"`
}

// ApplicationConfig holds the application-level configuration
type ApplicationConfig struct {
	// Name specifies the name of the application
	Name string `mapstructure:"name"`
	// Version specifies the version of the application
	Version string `mapstructure:"version"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	// Port specifies the port number the server will listen on
	Port int `mapstructure:"port"`
	// ReadTimeout is in seconds
	ReadTimeout int `mapstructure:"read_timeout"`
	// WriteTimeout is in seconds
	WriteTimeout int `mapstructure:"write_timeout"`
	// ShutdownTimeout is in seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

// InfrastructureConfig holds the infrastructure configuration
type InfrastructureConfig struct {
	// Postgres contains PostgreSQL-specific settings
	Postgres PostgresConfig `mapstructure:"postgres"`
	// Redis contains Redis configuration
	Redis RedisConfig `mapstructure:"redis"`
	// Kafka contains Kafka configuration
	Kafka KafkaConfig `mapstructure:"kafka"`
}

// PostgresConfig holds the PostgreSQL database configuration
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Schema   string `mapstructure:"schema"`
	SSLMode  string `mapstructure:"sslmode"`
	// MaxIdleConns specifies the maximum number of idle connections in the pool
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// MaxOpenConns specifies the maximum number of open connections to the database
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// ConnMaxIdleTime is in minutes
	ConnMaxIdleTime int `mapstructure:"conn_max_idle_time"`
	// ConnMaxLifetime is in minutes
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime"`
	// ConnectTimeout is in seconds
	ConnectTimeout int `mapstructure:"connect_timeout"`
	// Debug enables gorm statement logging
	Debug bool `mapstructure:"debug"`
	// IsUseMigrate runs auto-migration of the reference tables on start
	IsUseMigrate bool `mapstructure:"is_use_migrate"`
}

// RedisConfig holds the Redis configuration
type RedisConfig struct {
	// Enabled turns on the reference data cache
	Enabled  bool     `mapstructure:"enabled"`
	Addrs    []string `mapstructure:"addrs"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`
	PoolSize int      `mapstructure:"pool_size"`
	// DialTimeout is in seconds
	DialTimeout int `mapstructure:"dial_timeout"`
}

// KafkaConfig holds the Kafka configuration
type KafkaConfig struct {
	// Enabled turns on event publishing and cache invalidation
	Enabled bool `mapstructure:"enabled"`
	// Brokers specifies the Kafka broker addresses
	Brokers       []string `mapstructure:"brokers"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	ClientID      string   `mapstructure:"client_id"`
	SASLUser      string   `mapstructure:"sasl_user"`
	SASLPassword  string   `mapstructure:"sasl_password"`
	// DeliveryTimeout is in seconds
	DeliveryTimeout int `mapstructure:"delivery_timeout"`
	// Topics contains specific topic names for different message types
	Topics KafkaTopics `mapstructure:"topics"`
}

// KafkaTopics holds specific topic names for different message types
type KafkaTopics struct {
	// Resolved receives one event per resolution
	Resolved string `mapstructure:"resolved"`
	// Trace receives engine trace events
	Trace string `mapstructure:"trace"`
	// ReferenceDataChanged is consumed to invalidate cached reference data
	ReferenceDataChanged string `mapstructure:"reference_data_changed"`
}

// SecurityConfig holds the security configuration
type SecurityConfig struct {
	// JWT contains JWT token configuration
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds the JWT configuration
type JWTConfig struct {
	// AccessTokenSecret is the secret key for signing access tokens
	AccessTokenSecret string `mapstructure:"access_token_secret"`
	// Issuer is the expected token issuer
	Issuer string `mapstructure:"issuer"`
	// AccessTokenExpiry is in minutes
	AccessTokenExpiry int `mapstructure:"access_token_expiry"`
	// ClockLeeway is in seconds
	ClockLeeway int `mapstructure:"clock_leeway"`
	// Stateful checks tokens against the redis revocation list
	Stateful bool `mapstructure:"stateful"`
}

// ResolverConfig holds the options of the resolution engine
// They are read once at start and never change while serving
type ResolverConfig struct {
	// MultiPlan resolves every plan of the country when no plan is requested
	MultiPlan bool `mapstructure:"multi_plan"`
	// AlphabeticalAlternates orders alternate carriers alphabetically instead of by itinerary
	AlphabeticalAlternates bool `mapstructure:"alphabetical_alternates"`
	// GsaEnabled allows general sales agents to validate for non-participating carriers
	GsaEnabled bool `mapstructure:"gsa_enabled"`
	// NeutralEnabled allows neutral validating carriers as a fallback
	NeutralEnabled bool `mapstructure:"neutral_enabled"`
	// CheckNation rejects unknown point-of-sale countries
	CheckNation bool `mapstructure:"check_nation"`
	// TrailerWidth is the maximum length of a trailer line
	TrailerWidth int `mapstructure:"trailer_width"`
	// MaxBatchSize caps the itineraries of one batch request
	MaxBatchSize int `mapstructure:"max_batch_size"`
	// TraceToLog writes trace events to the debug log
	TraceToLog bool `mapstructure:"trace_to_log"`
	// TraceToKafka publishes trace events to the trace topic
	TraceToKafka bool `mapstructure:"trace_to_kafka"`
	// PublishOutcomes publishes one event per resolution
	PublishOutcomes bool `mapstructure:"publish_outcomes"`
}

// ReferenceDataConfig holds the reference data gateway configuration
type ReferenceDataConfig struct {
	// Source is "postgres" or "snapshot"
	Source string `mapstructure:"source"`
	// SnapshotFile is the YAML snapshot served when Source is "snapshot"
	SnapshotFile string `mapstructure:"snapshot_file"`
	// SeedFile is loaded into postgres on start when set
	SeedFile string `mapstructure:"seed_file"`
	// CacheTTL is in seconds
	CacheTTL int `mapstructure:"cache_ttl"`
}

// RateLimitConfig holds the per-agency rate limit
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
	// IdleTimeout is in seconds; agents idle longer lose their bucket
	IdleTimeout int `mapstructure:"idle_timeout"`
}

// LoggingConfig holds the log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheTTLDuration returns the reference data cache TTL
func (c ReferenceDataConfig) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// LoadConfig loads the application configuration from various sources
// It looks for validating-carrier.yaml in the usual config directories
// If no config file is found, it uses environment variables and default values
// Environment variables use the VCXR_ prefix, e.g. VCXR_SERVER_PORT
func LoadConfig() (*Config, error) {
	return load(viper.New(), "../configs", "../../configs", ".", "configs")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("validating-carrier")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("VCXR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("Config file not found, using environment variables and defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.name", "validating-carrier-service")
	v.SetDefault("application.version", "1.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)     // seconds
	v.SetDefault("server.write_timeout", 15)    // seconds
	v.SetDefault("server.shutdown_timeout", 30) // seconds
	v.SetDefault("infrastructure.postgres.host", "localhost")
	v.SetDefault("infrastructure.postgres.port", 5432)
	// Empty defaults so the keys can be bound from the environment
	v.SetDefault("infrastructure.postgres.user", "")
	v.SetDefault("infrastructure.postgres.password", "")
	v.SetDefault("infrastructure.postgres.dbname", "reference_db")
	v.SetDefault("infrastructure.postgres.schema", "public")
	v.SetDefault("infrastructure.postgres.sslmode", "disable")
	v.SetDefault("infrastructure.postgres.max_idle_conns", 10)
	v.SetDefault("infrastructure.postgres.max_open_conns", 100)
	v.SetDefault("infrastructure.postgres.conn_max_idle_time", 5) // minutes
	v.SetDefault("infrastructure.postgres.conn_max_lifetime", 60) // minutes
	v.SetDefault("infrastructure.postgres.connect_timeout", 5)    // seconds
	v.SetDefault("infrastructure.postgres.debug", false)
	v.SetDefault("infrastructure.postgres.is_use_migrate", true)
	v.SetDefault("infrastructure.redis.enabled", true)
	v.SetDefault("infrastructure.redis.addrs", []string{"localhost:6379"})
	v.SetDefault("infrastructure.redis.username", "")
	v.SetDefault("infrastructure.redis.password", "")
	v.SetDefault("infrastructure.redis.db", 0)
	v.SetDefault("infrastructure.redis.pool_size", 10)
	v.SetDefault("infrastructure.redis.dial_timeout", 5) // seconds
	v.SetDefault("infrastructure.kafka.enabled", true)
	v.SetDefault("infrastructure.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("infrastructure.kafka.consumer_group", "validating-carrier-service")
	v.SetDefault("infrastructure.kafka.client_id", "validating-carrier-service")
	v.SetDefault("infrastructure.kafka.sasl_user", "")
	v.SetDefault("infrastructure.kafka.sasl_password", "")
	v.SetDefault("infrastructure.kafka.delivery_timeout", 10) // seconds
	v.SetDefault("infrastructure.kafka.topics.resolved", "validating-carrier.resolved")
	v.SetDefault("infrastructure.kafka.topics.trace", "validating-carrier.trace")
	v.SetDefault("infrastructure.kafka.topics.reference_data_changed", "reference-data.changed")
	v.SetDefault("security.jwt.access_token_secret", "")
	v.SetDefault("security.jwt.issuer", "validating-carrier-service")
	v.SetDefault("security.jwt.access_token_expiry", 30) // minutes
	v.SetDefault("security.jwt.clock_leeway", 5)         // seconds
	v.SetDefault("security.jwt.stateful", false)
	v.SetDefault("resolver.multi_plan", true)
	v.SetDefault("resolver.alphabetical_alternates", false)
	v.SetDefault("resolver.gsa_enabled", true)
	v.SetDefault("resolver.neutral_enabled", true)
	v.SetDefault("resolver.check_nation", true)
	v.SetDefault("resolver.trailer_width", 60)
	v.SetDefault("resolver.max_batch_size", 50)
	v.SetDefault("resolver.trace_to_log", false)
	v.SetDefault("resolver.trace_to_kafka", false)
	v.SetDefault("resolver.publish_outcomes", true)
	v.SetDefault("reference_data.source", SourcePostgres)
	v.SetDefault("reference_data.snapshot_file", "")
	v.SetDefault("reference_data.seed_file", "")
	v.SetDefault("reference_data.cache_ttl", 300) // seconds
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.idle_timeout", 180) // seconds
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks required settings and value ranges
func (c *Config) Validate() error {
	if c.Security.JWT.AccessTokenSecret == "" {
		return errors.New("JWT access token secret is required")
	}
	switch c.ReferenceData.Source {
	case SourcePostgres:
		if c.Infrastructure.Postgres.User == "" {
			return errors.New("database user is required")
		}
		if c.Infrastructure.Postgres.Password == "" {
			return errors.New("database password is required")
		}
	case SourceSnapshot:
		if c.ReferenceData.SnapshotFile == "" {
			return errors.New("reference data snapshot file is required")
		}
	default:
		return fmt.Errorf("unknown reference data source %q", c.ReferenceData.Source)
	}
	if c.Resolver.TrailerWidth < 20 {
		return errors.New("resolver trailer width must be at least 20")
	}
	if c.Resolver.MaxBatchSize < 1 {
		return errors.New("resolver max batch size must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		return errors.New("rate limit requires positive requests_per_second and burst")
	}
	return nil
}
