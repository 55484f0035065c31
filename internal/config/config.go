package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".calbot")

	return &Config{
		Model: ModelConfig{
			Provider:       "groq",
			Name:           "llama-3.3-70b-versatile",
			BaseURL:        "https://api.groq.com/openai/v1",
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
		Agent: AgentConfig{
			MaxIterations: 10,
			MaxTokens:     4096,
		},
		Calendar: CalendarConfig{
			Timezone:       "Asia/Kolkata",
			SeedDemoEvents: true,
		},
		Paths: PathsConfig{
			DataDir:  dataDir,
			EventsDB: filepath.Join(dataDir, "events.db"),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".calbot", "config.toml")
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults. A .env file in the working
// directory and the process environment are consulted for the API key.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg = expandPaths(cfg)
	cfg.applyEnv()

	return cfg, nil
}

// Save saves the configuration to the given path.
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(c)
}

// applyEnv overlays environment values on top of file values. The
// environment wins so keys never need to live in config files.
func (c *Config) applyEnv() {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.Model.APIKey = key
	}
	if model := os.Getenv("CALBOT_MODEL"); model != "" {
		c.Model.Name = model
	}
	if tz := os.Getenv("CALBOT_TIMEZONE"); tz != "" {
		c.Calendar.Timezone = tz
	}
}

// expandPaths expands ~ in paths.
func expandPaths(cfg *Config) *Config {
	homeDir, _ := os.UserHomeDir()

	if len(cfg.Paths.DataDir) > 0 && cfg.Paths.DataDir[0] == '~' {
		cfg.Paths.DataDir = filepath.Join(homeDir, cfg.Paths.DataDir[1:])
	}
	if len(cfg.Paths.EventsDB) > 0 && cfg.Paths.EventsDB[0] == '~' {
		cfg.Paths.EventsDB = filepath.Join(homeDir, cfg.Paths.EventsDB[1:])
	}

	return cfg
}
