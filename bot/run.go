package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"autoannoy/commands"
	"autoannoy/utils"
)

func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	cfg := b.GetConfig()

	log.Println("Registering application commands...")
	cmds := commands.GenerateCommands()
	registered, err := b.Session.ApplicationCommandBulkOverwrite(cfg.AppID, "", cmds)
	if err != nil {
		log.Fatalf("Cannot register commands: %v", err)
	}
	b.RegisteredCommands = registered

	b.startConfirmationSweep()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	utils.LogInfo(b.Session, cfg.LogChannelID, "System", "Startup", "Bot has started successfully.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
