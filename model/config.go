package model

import "time"

// Storage backends selectable via STATE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the application configuration loaded at startup.
type Config struct {
	BotToken      string
	AppID         string
	LogChannelID  string
	StateBackend  string
	StateFile     string
	StateDB       string
	ConfirmWindow time.Duration
}
