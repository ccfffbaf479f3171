package main

import (
	"os"

	"factory_floor/ai"
	"factory_floor/background"
	"factory_floor/config"
	"factory_floor/simulation"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "factory_floor",
	Short:         "Factory of the Future interactive floor showcase",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

// loadConfig reads .env (if present) and the environment, then configures logging.
func loadConfig() *config.Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	cfg := config.Load()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return cfg
}

// newGateway builds the simulation gateway. Without an API key every request
// falls back.
func newGateway(cfg *config.Config) *simulation.Gateway {
	var gen simulation.TextGenerator
	if cfg.OpenRouterKey != "" {
		gen = ai.NewProvider(cfg.OpenRouterKey, cfg.AIBaseURL)
	} else {
		logrus.Warn("OPENROUTER_KEY is not set, simulations will use the fallback report")
	}
	return simulation.NewGateway(gen, cfg.TextModel)
}

func newBackground(cfg *config.Config, store background.Store) *background.Cache {
	var gen background.ImageGenerator
	if cfg.ImageGenerationEnabled() {
		gen = ai.NewProvider(cfg.ImageAPIKey, cfg.ImageBaseURL)
	} else {
		logrus.Info("Background image generation disabled")
	}
	return background.NewCache(store, gen, cfg.ImageModel)
}
