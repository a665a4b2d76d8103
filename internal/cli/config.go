// Package cli provides shared configuration and utilities for the veloxjoin CLI.
package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/syssam/veloxjoin/dialect"
)

const (
	maxWalkDepth = 25
	envPrefix    = "VELOXJOIN"
)

// configNames are the file names looked up during auto-discovery.
var configNames = []string{"veloxjoin.yaml", "veloxjoin.yml"}

// Config represents the veloxjoin configuration from veloxjoin.yaml.
type Config struct {
	// Schema is the path of the YAML entity schema.
	Schema string `mapstructure:"schema"`
	// Dialect is the SQL dialect of compiled queries: sqlite, mysql or postgres.
	Dialect string `mapstructure:"dialect"`
	// DSN is the data source name used by exec. It takes precedence over Database.
	DSN     string `mapstructure:"dsn"`
	Verbose bool   `mapstructure:"verbose"`

	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig holds discrete database connection settings.
type DatabaseConfig struct {
	Host     string            `mapstructure:"host"`
	Port     int               `mapstructure:"port"`
	Name     string            `mapstructure:"name"`
	User     string            `mapstructure:"user"`
	Password string            `mapstructure:"password"`
	Params   map[string]string `mapstructure:"params"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	if !dialect.Known(cfg.Dialect) {
		return nil, configPath, fmt.Errorf("unknown dialect %q", cfg.Dialect)
	}
	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "veloxjoin.schema.yaml")
	v.SetDefault("dialect", dialect.SQLite)
	v.SetDefault("dsn", "")
	v.SetDefault("verbose", false)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for veloxjoin.yaml or veloxjoin.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

// ResolvedDSN returns the data source name for the configured dialect.
// If dsn is set, it's returned directly. Otherwise it is built from the
// discrete database fields: a go-sql-driver DSN for mysql, a postgres://
// URL for postgres and the database name as a file path for sqlite.
func (c *Config) ResolvedDSN() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	db := c.Database
	if db.Name == "" {
		return "", fmt.Errorf("database.name is required when dsn is not set")
	}
	switch c.Dialect {
	case dialect.MySQL:
		mc := mysql.NewConfig()
		mc.User = db.User
		mc.Passwd = db.Password
		mc.DBName = db.Name
		if db.Host != "" {
			mc.Net = "tcp"
			mc.Addr = db.Host
			if db.Port != 0 {
				mc.Addr += ":" + strconv.Itoa(db.Port)
			}
		}
		mc.Params = db.Params
		return mc.FormatDSN(), nil
	case dialect.Postgres:
		if db.Host == "" {
			return "", fmt.Errorf("database.host is required when dsn is not set")
		}
		host := db.Host
		if db.Port != 0 {
			host += ":" + strconv.Itoa(db.Port)
		}
		u := &url.URL{Scheme: "postgres", Host: host, Path: "/" + db.Name}
		if db.Password != "" {
			u.User = url.UserPassword(db.User, db.Password)
		} else if db.User != "" {
			u.User = url.User(db.User)
		}
		if len(db.Params) > 0 {
			q := u.Query()
			for k, v := range db.Params {
				q.Set(k, v)
			}
			u.RawQuery = q.Encode()
		}
		return u.String(), nil
	default:
		return db.Name, nil
	}
}

// Driver returns the database/sql driver name of the configured dialect.
func (c *Config) Driver() string {
	if c.Dialect == "" {
		return dialect.SQLite
	}
	return c.Dialect
}
