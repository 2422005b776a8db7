package postgres

// Config holds the PostgreSQL connection and pool settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Schema   string
	SSLMode  string
	// MaxIdleConns and MaxOpenConns size the connection pool
	MaxIdleConns int
	MaxOpenConns int
	// ConnMaxIdleTime and ConnMaxLifetime are in minutes
	ConnMaxIdleTime int
	ConnMaxLifetime int
	// Debug turns on gorm statement logging
	Debug bool
	// ConnectTimeout is in seconds
	ConnectTimeout int
}
