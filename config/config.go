package config

import (
	"os"
	"strconv"

	"factory_floor/ai"
	"factory_floor/database"

	"github.com/sirupsen/logrus"
)

type Config struct {
	OpenRouterKey string
	AIBaseURL     string
	TextModel     string

	// Image generation is disabled while ImageModel is empty.
	ImageAPIKey  string
	ImageBaseURL string
	ImageModel   string

	BotToken string
	HTTPAddr string

	DBPath            string
	StorageQuotaBytes int

	LogLevel string
}

func Load() *Config {
	return &Config{
		OpenRouterKey:     os.Getenv("OPENROUTER_KEY"),
		AIBaseURL:         envStr("AI_BASE_URL", ai.DefaultBaseURL),
		TextModel:         envStr("TEXT_MODEL", "google/gemini-2.5-flash"),
		ImageAPIKey:       os.Getenv("IMAGE_API_KEY"),
		ImageBaseURL:      envStr("IMAGE_BASE_URL", "https://api.openai.com/v1"),
		ImageModel:        os.Getenv("IMAGE_MODEL"),
		BotToken:          os.Getenv("BOT_TOKEN"),
		HTTPAddr:          envStr("HTTP_ADDR", ":8080"),
		DBPath:            envStr("DB_PATH", "./data/factory.db"),
		StorageQuotaBytes: envInt("STORAGE_QUOTA_BYTES", database.DefaultQuotaBytes),
		LogLevel:          envStr("LOG_LEVEL", "info"),
	}
}

// ImageGenerationEnabled reports whether background images can be requested.
func (c *Config) ImageGenerationEnabled() bool {
	return c.ImageModel != "" && c.ImageAPIKey != ""
}

func envStr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).WithField("value", v).Warn("Ignoring invalid integer setting")
		return def
	}
	return n
}
