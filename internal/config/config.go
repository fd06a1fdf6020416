package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shotam27/NoGambleMonsterBattle/internal/catalog"
	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"

	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type ServerConfig struct {
	Address  string `yaml:"address"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite and a connection URL for postgres.
	DSN string `yaml:"dsn"`
}

type BattleConfig struct {
	// TicketTTLMinutes bounds how long a battle ticket stays valid.
	TicketTTLMinutes int `yaml:"ticket_ttl_minutes"`
	// LeaderboardSize is the default number of rows returned.
	LeaderboardSize int `yaml:"leaderboard_size"`
	// Seed fixes the AI random source; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// Config is the server configuration file. The catalog lists are inlined;
// when absent the embedded default catalog is used.
type Config struct {
	Server       ServerConfig   `yaml:"server"`
	Database     DatabaseConfig `yaml:"database"`
	Battle       BattleConfig   `yaml:"battle"`
	catalog.File `yaml:",inline"`

	// SessionSecret signs battle tickets. Only read from the environment.
	SessionSecret string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:   ServerConfig{Address: ":8080", GinMode: "release", LogLevel: "info"},
		Database: DatabaseConfig{Driver: DriverSQLite, DSN: "./data/monster_battle.db"},
		Battle:   BattleConfig{TicketTTLMinutes: 120, LeaderboardSize: 10},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file location from the environment or the default.
func Path() string {
	if p := os.Getenv(constants.EnvConfigPath); p != "" {
		return p
	}
	return constants.DefaultConfigPath
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(constants.EnvDatabaseDSN); v != "" {
		c.Database.DSN = v
	}
	if v := getenv(constants.EnvDatabaseDriver); v != "" {
		c.Database.Driver = strings.ToLower(v)
	}
	if v := getenv(constants.EnvServerAddress); v != "" {
		c.Server.Address = v
	}
	if v := getenv(constants.EnvSessionSecret); v != "" {
		c.SessionSecret = v
	}
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver '%s'", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database dsn is empty")
	}
	if c.Battle.TicketTTLMinutes <= 0 {
		return fmt.Errorf("battle.ticket_ttl_minutes must be positive")
	}
	if c.Battle.LeaderboardSize <= 0 {
		c.Battle.LeaderboardSize = 10
	}
	return nil
}

// Catalog builds the creature catalog from the inline lists, or the embedded
// default when none were given.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	if c.File.Empty() {
		return catalog.Default()
	}
	return catalog.FromFile(c.File)
}
