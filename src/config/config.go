package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the whole service configuration. Everything comes from the
// environment (PORTAL_* variables) with sane development defaults.
type Config struct {
	Port         string
	AllowOrigins []string

	// AI provider selection and credentials. Without a valid key every
	// model call fails and the gateway serves its fallback values, so the
	// portal stays usable.
	AIProvider    string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	AIModel       string
	AIBaseURL     string
	AITemperature float64

	// ModerationFailOpen keeps the original behavior: publish forum
	// content when the moderation call cannot complete. Flip to false to
	// reject instead.
	ModerationFailOpen bool
}

func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("portal")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("allow_origins", "http://localhost:3000")
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("ai_model", "")
	v.SetDefault("ai_base_url", "")
	v.SetDefault("ai_temperature", 0.0)
	v.SetDefault("moderation_fail_open", true)

	return Config{
		Port:               v.GetString("port"),
		AllowOrigins:       splitCSV(v.GetString("allow_origins")),
		AIProvider:         v.GetString("ai_provider"),
		GeminiAPIKey:       v.GetString("gemini_api_key"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		AIModel:            v.GetString("ai_model"),
		AIBaseURL:          v.GetString("ai_base_url"),
		AITemperature:      v.GetFloat64("ai_temperature"),
		ModerationFailOpen: v.GetBool("moderation_fail_open"),
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
