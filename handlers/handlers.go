package handlers

import (
	"log"

	"autoannoy/bot"
	"autoannoy/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"admin": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleAdminCommand(s, i, b)
		},
		"target": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleTargetCommand(s, i, b)
		},
		"setmessage": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleSetMessageCommand(s, i, b)
		},
		"info": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleInfoCommand(s, i, b)
		},
		"botstat": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBotStatCommand(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandleMessageCreate(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, d *discordgo.Disconnect) {
		utils.LogWarn(s, b.GetConfig().LogChannelID, "System", "Disconnect", "Gateway connection lost, reconnecting.")
	})
}
