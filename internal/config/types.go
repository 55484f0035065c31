// Package config handles CalBot configuration loading and management.
package config

// Config is the root configuration structure.
type Config struct {
	Model    ModelConfig    `toml:"model"`
	Agent    AgentConfig    `toml:"agent"`
	Calendar CalendarConfig `toml:"calendar"`
	Paths    PathsConfig    `toml:"paths"`
}

// ModelConfig configures the chat model backend.
type ModelConfig struct {
	// Provider selects the backend. Only "groq" is supported.
	Provider string `toml:"provider"`

	// Name is the model identifier sent with every request.
	Name string `toml:"name"`

	// BaseURL overrides the API endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey is the bearer token. Usually left empty here and supplied
	// via the GROQ_API_KEY environment variable instead.
	APIKey string `toml:"api_key"`

	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries int `toml:"max_retries"`
}

// AgentConfig configures the conversation loop.
type AgentConfig struct {
	// MaxIterations caps model round-trips per user turn.
	MaxIterations int `toml:"max_iterations"`

	// MaxTokens caps tokens per completion.
	MaxTokens int `toml:"max_tokens"`
}

// CalendarConfig configures calendar behavior.
type CalendarConfig struct {
	// Timezone is the IANA zone used to resolve "today" in prompts
	// and default listings.
	Timezone string `toml:"timezone"`

	// SeedDemoEvents installs a few sample events when the store
	// starts empty.
	SeedDemoEvents bool `toml:"seed_demo_events"`
}

// PathsConfig configures filesystem locations.
type PathsConfig struct {
	DataDir  string `toml:"data_dir"`
	EventsDB string `toml:"events_db"`
}
