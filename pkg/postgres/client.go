// Package postgres provides PostgreSQL database infrastructure components
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresClient defines the interface for PostgreSQL database operations
type PostgresClient interface {
	// Migrate runs auto-migration for the given models
	Migrate(dst ...any) error
	// GetDB returns the underlying gorm.DB instance
	GetDB() *gorm.DB
	// Ping checks that the database is reachable
	Ping(ctx context.Context) error
	// Close closes the database connection
	Close() error
}

type postgresClient struct {
	db *gorm.DB
}

// DSN builds the libpq connection string for cfg
func (cfg Config) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s search_path=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.Schema, cfg.SSLMode)
	if cfg.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", cfg.ConnectTimeout)
	}
	return dsn
}

// NewPostgresClient opens a pooled connection and verifies it with a ping
func NewPostgresClient(cfg Config) (PostgresClient, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig(cfg.Debug))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &postgresClient{db: db}, nil
}

// NewWithConn wraps an existing *sql.DB, used with sqlmock in tests
func NewWithConn(conn *sql.DB, debug bool) (PostgresClient, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), gormConfig(debug))
	if err != nil {
		return nil, err
	}
	return &postgresClient{db: db}, nil
}

func gormConfig(debug bool) *gorm.Config {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	return &gorm.Config{Logger: logger.Default.LogMode(level)}
}

// Migrate runs auto-migration for the given models
func (c *postgresClient) Migrate(dst ...any) error {
	if err := c.db.AutoMigrate(dst...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

// GetDB returns the underlying gorm.DB instance
func (c *postgresClient) GetDB() *gorm.DB {
	return c.db
}

// Ping checks that the database is reachable
func (c *postgresClient) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (c *postgresClient) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
