package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	GameDataFile    string `env:"ADVENTURE_GAME_DATA" envDefault:"game_data.json"`
	InitialLocation int    `env:"ADVENTURE_START"     envDefault:"1"`
	ScriptFile      string `env:"ADVENTURE_SCRIPT"`
	SaveDir         string `env:"ADVENTURE_SAVE_DIR"  envDefault:".saves"`
	ArchivePath     string `env:"ADVENTURE_ARCHIVE"`
	LogFile         string `env:"ADVENTURE_LOG_FILE"`
	Strict          bool   `env:"ADVENTURE_STRICT"    envDefault:"false"`

	// Narration is disabled when no key is set.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	Model        string `env:"ADVENTURE_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.GameDataFile == "" {
		return nil, fmt.Errorf("ADVENTURE_GAME_DATA must not be empty")
	}
	if cfg.InitialLocation <= 0 {
		return nil, fmt.Errorf("ADVENTURE_START must be positive, got %d", cfg.InitialLocation)
	}
	return &cfg, nil
}

// NarrationEnabled reports whether a Gemini key is configured.
func (c *Config) NarrationEnabled() bool {
	return c.GeminiAPIKey != ""
}
