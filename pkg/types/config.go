package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// StoreBackend identifies the document store implementation.
type StoreBackend string

const (
	StoreSQLite   StoreBackend = "sqlite"
	StoreDynamoDB StoreBackend = "dynamodb"
	StoreMemory   StoreBackend = "memory"
)

// DynamoDBConfig holds settings for the DynamoDB document store.
type DynamoDBConfig struct {
	// Table is the single table holding every collection (PK = collection, SK = id).
	Table string `json:"table" yaml:"table" mapstructure:"table"`

	// Region is the AWS region. Empty uses the SDK default chain.
	Region string `json:"region,omitempty" yaml:"region,omitempty" mapstructure:"region"`

	// Endpoint overrides the service endpoint (e.g. DynamoDB Local).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	// Backend selects the implementation: sqlite, dynamodb, or memory.
	Backend StoreBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the SQLite database file (default "data/ideas.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	DynamoDB DynamoDBConfig `json:"dynamodb" yaml:"dynamodb" mapstructure:"dynamodb"`
}

// SessionConfig locates the device-local session store.
type SessionConfig struct {
	// Path is the bbolt file (default "data/session.bolt").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// AIConfig holds settings for the hosted text-generation API.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "gpt-3.5-turbo").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the bearer credential. Empty selects the unconfigured backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL is the API root (default "https://api.openai.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MaxTokens caps the completion length for idea generation (default 2500).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature is the sampling temperature for idea generation (default 0.8).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8001").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Config groups every setting the CLI and server read at startup.
type Config struct {
	// Environment is "production" or "development"; it selects the log encoder.
	Environment string `json:"environment" yaml:"environment" mapstructure:"environment"`

	// LogLevel overrides the logger level (debug, info, warn, error).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// UserID scopes preferences (default "default_user").
	UserID string `json:"user_id" yaml:"user_id" mapstructure:"user_id"`

	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Session SessionConfig `json:"session" yaml:"session" mapstructure:"session"`
	AI      AIConfig      `json:"ai" yaml:"ai" mapstructure:"ai"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
