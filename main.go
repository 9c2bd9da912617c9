package main

import (
	"log"

	"autoannoy/bot"
	"autoannoy/config"
	"autoannoy/handlers"
	"autoannoy/model"
	"autoannoy/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	var st store.Store
	switch cfg.StateBackend {
	case model.BackendSQLite:
		st, err = store.NewSQLite(cfg.StateDB)
	case model.BackendMemory:
		st = store.NewMemory()
	default:
		st, err = store.NewFile(cfg.StateFile)
	}
	if err != nil {
		log.Fatalf("Error initializing guild store: %v", err)
	}

	b, err := bot.New(cfg, st)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	b.Run()

	defer b.Close()
}
