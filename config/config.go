package config

import (
	"fmt"
	"log"
	"time"

	"autoannoy/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the configuration from the environment, with a .env file as a
// convenience for local runs.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("STATE_BACKEND", model.BackendFile)
	v.SetDefault("STATE_FILE", "data/state.json")
	v.SetDefault("STATE_DB", "data/guilds.db")
	v.SetDefault("CONFIRM_WINDOW", 60)
	v.AutomaticEnv()

	token := v.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}

	appID := v.GetString("APP_ID")
	if appID == "" {
		return nil, fmt.Errorf("APP_ID environment variable not set")
	}

	logChannelID := v.GetString("LOG_CHANNEL_ID")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, channel logging disabled")
	}

	backend := v.GetString("STATE_BACKEND")
	switch backend {
	case model.BackendFile, model.BackendSQLite, model.BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STATE_BACKEND %q (want file, sqlite or memory)", backend)
	}

	windowSeconds := v.GetInt("CONFIRM_WINDOW")
	if windowSeconds <= 0 {
		log.Printf("Warning: invalid CONFIRM_WINDOW value, using default of 60")
		windowSeconds = 60
	}

	return &model.Config{
		BotToken:      token,
		AppID:         appID,
		LogChannelID:  logChannelID,
		StateBackend:  backend,
		StateFile:     v.GetString("STATE_FILE"),
		StateDB:       v.GetString("STATE_DB"),
		ConfirmWindow: time.Duration(windowSeconds) * time.Second,
	}, nil
}
