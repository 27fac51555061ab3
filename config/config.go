package config

import "os"

// Defaults applied when the environment leaves a value unset
const (
	DefaultCompletionURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel         = "meta-llama/llama-3.2-3b-instruct:free"
	DefaultBackendURL    = "http://localhost:5000"
	DefaultPort          = "8000"
)

// Config holds all process-wide settings, read once at startup and
// passed by parameter into every service. Nothing reads the
// environment after Load returns.
type Config struct {
	Port string

	// Completion service
	OpenRouterAPIKey string
	CompletionURL    string
	Model            string

	// Storefront backend serving knowledge and product lookups
	BackendURL string

	// Optional Discord bot surface
	DiscordBotToken      string
	DiscordCommandPrefix string
}

// Load builds a Config from the current environment
func Load() *Config {
	return &Config{
		Port:                 getenv("PORT", DefaultPort),
		OpenRouterAPIKey:     os.Getenv("OPENROUTER_API_KEY"),
		CompletionURL:        getenv("OPENROUTER_URL", DefaultCompletionURL),
		Model:                getenv("OPENROUTER_MODEL", DefaultModel),
		BackendURL:           getenv("BACKEND_URL", DefaultBackendURL),
		DiscordBotToken:      os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordCommandPrefix: getenv("DISCORD_COMMAND_PREFIX", "!pet "),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
