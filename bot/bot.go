package bot

import (
	"log"
	"sync/atomic"
	"time"

	"autoannoy/guild"
	"autoannoy/model"
	"autoannoy/store"

	"github.com/bwmarrin/discordgo"
)

const confirmSweepInterval = 5 * time.Minute

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	Store              store.Store
	Guilds             *guild.Service
	config             atomic.Value // *model.Config
	sweepTicker        *time.Ticker
	done               chan struct{}
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func New(cfg *model.Config, st store.Store) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		Session: dg,
		Store:   st,
		Guilds:  guild.NewService(st, cfg.ConfirmWindow, time.Now),
		done:    make(chan struct{}),
	}
	b.config.Store(cfg)
	return b, nil
}

// startConfirmationSweep reclaims expired self-demotion confirmations in the
// background. Expiry itself is lazy; this only bounds memory.
func (b *Bot) startConfirmationSweep() {
	b.sweepTicker = time.NewTicker(confirmSweepInterval)
	go func() {
		for {
			select {
			case <-b.sweepTicker.C:
				b.Guilds.Confirmations().Sweep()
			case <-b.done:
				return
			}
		}
	}()
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	close(b.done)
	if b.sweepTicker != nil {
		b.sweepTicker.Stop()
	}
	b.Session.Close()
}
