package handlers

import (
	"log"
	"strconv"

	"autoannoy/bot"

	"github.com/bwmarrin/discordgo"
)

// HandleMessageCreate emits the configured auto-reply when a target user
// posts. Read-only: the dispatch decision never mutates guild state.
func HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.Author == nil || m.GuildID == "" {
		return
	}
	if s.State.User == nil || m.Author.ID == s.State.User.ID {
		return
	}

	authorID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		return
	}
	botID, err := strconv.ParseInt(s.State.User.ID, 10, 64)
	if err != nil {
		return
	}

	text, ok := b.Guilds.ReplyFor(m.GuildID, authorID, botID)
	if !ok {
		return
	}

	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		log.Printf("Failed to send auto-reply in guild %s: %v", m.GuildID, err)
	}
}
