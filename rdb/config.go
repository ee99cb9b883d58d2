package rdb

import (
	"fmt"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config defines the connection options for every supported driver.
// Network fields are ignored by sqlite, Path is ignored by the others.
type Config struct {
	// Driver selects the database engine.
	Driver string `yaml:"driver" default:"postgres" validate:"oneof=postgres mysql sqlite"`

	// Debug enables SQL query logging when set to true.
	Debug bool `yaml:"debug" default:"false"`

	Host     string `yaml:"host"     validate:"required_unless=Driver sqlite"`
	Port     int    `yaml:"port"     validate:"required_unless=Driver sqlite"`
	User     string `yaml:"user"     validate:"required_unless=Driver sqlite"`
	Password string `yaml:"password" mask:"true"`
	Database string `yaml:"database" validate:"required_unless=Driver sqlite"`

	// Path is the sqlite database file, ":memory:" for a private in-memory store.
	Path string `yaml:"path" default:":memory:"`

	// SSLMode is only used by postgres.
	SSLMode string `yaml:"sslmode" default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	// SearchPath is only used by postgres.
	SearchPath string `yaml:"search_path" default:"public"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`

	MaxOpenConns    int32         `yaml:"max_open_conns"     default:"4"`
	MinConns        int32         `yaml:"min_conns"          default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" default:"30m"`

	// ReadyAttempts and ReadyDelay control WaitReady at startup.
	ReadyAttempts uint          `yaml:"ready_attempts" default:"10"`
	ReadyDelay    time.Duration `yaml:"ready_delay"    default:"2s"`
}

// postgresDSN returns a key/value connection string for pgx.
func (c Config) postgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s connect_timeout=%d",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
		c.SearchPath,
		int(c.ConnectTimeout.Seconds()),
	)
}
