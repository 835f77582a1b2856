// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig             `mapstructure:"app"`
	Database DatabaseConfig        `mapstructure:"database"`
	Catalog  CatalogConfig         `mapstructure:"catalog"`
	Search   SearchConfig          `mapstructure:"search"`
	Session  SessionConfig         `mapstructure:"session"`
	Telegram TelegramConfig        `mapstructure:"telegram"`
	Areas    map[string]AreaConfig `mapstructure:"areas"`
	Logging  LoggingConfig         `mapstructure:"logging"`
	Metrics  MetricsConfig         `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CatalogConfig selects and tunes the venue catalog source.
type CatalogConfig struct {
	Source          string `mapstructure:"source"`           // file | postgres | elasticsearch
	Path            string `mapstructure:"path"`             // dataset file for the file source
	Table           string `mapstructure:"table"`            // table for the postgres source
	Index           string `mapstructure:"index"`            // index for the elasticsearch source
	RefreshInterval int    `mapstructure:"refresh_interval"` // seconds, 0 disables periodic reload
}

// SearchConfig holds the filter/rank engine constants.
type SearchConfig struct {
	RadiusKm   float64       `mapstructure:"radius_km"`
	MaxResults int           `mapstructure:"max_results"`
	Weights    WeightsConfig `mapstructure:"weights"`
}

// WeightsConfig are the fixed scoring weights. They should sum to 1 but the
// engine does not enforce it; ordering only depends on relative magnitude.
type WeightsConfig struct {
	Distance float64 `mapstructure:"distance"`
	Tags     float64 `mapstructure:"tags"`
	Rating   float64 `mapstructure:"rating"`
}

// SessionConfig tunes the conversation session store.
type SessionConfig struct {
	Backend           string `mapstructure:"backend"`            // memory | redis
	EvictionThreshold int    `mapstructure:"eviction_threshold"` // seconds of inactivity
	SweepInterval     int    `mapstructure:"sweep_interval"`     // seconds between sweeps
}

// TelegramConfig holds the transport settings.
type TelegramConfig struct {
	Token          string   `mapstructure:"token"`
	AllowedUsers   []string `mapstructure:"allowed_users"` // empty = everyone
	PollTimeout    int      `mapstructure:"poll_timeout"`  // seconds
	UpdateBuffer   int      `mapstructure:"update_buffer"`
	WorkerPoolSize int      `mapstructure:"worker_pool_size"`
}

// AreaConfig is a named location the location parser can resolve.
type AreaConfig struct {
	Lat float64 `mapstructure:"lat"`
	Lon float64 `mapstructure:"lon"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the Prometheus scrape endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
