package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"autoannoy/bot"
	"autoannoy/guild"
	"autoannoy/store"
	"autoannoy/utils"

	"github.com/bwmarrin/discordgo"
)

// interactionContext carries the parsed identifiers every command needs.
type interactionContext struct {
	guildID string
	ownerID int64
	actorID int64
}

// resolveInteraction rejects DM invocations and resolves the guild owner,
// preferring session state over a REST round trip.
func resolveInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) (interactionContext, error) {
	if i.GuildID == "" || i.Member == nil {
		return interactionContext{}, fmt.Errorf("command invoked outside a guild")
	}

	g, err := s.State.Guild(i.GuildID)
	if err != nil || g.OwnerID == "" {
		g, err = s.Guild(i.GuildID)
		if err != nil {
			return interactionContext{}, fmt.Errorf("fetching guild %s: %w", i.GuildID, err)
		}
	}

	ownerID, err := strconv.ParseInt(g.OwnerID, 10, 64)
	if err != nil {
		return interactionContext{}, fmt.Errorf("parsing owner ID %q: %w", g.OwnerID, err)
	}
	actorID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return interactionContext{}, fmt.Errorf("parsing actor ID %q: %w", i.Member.User.ID, err)
	}

	return interactionContext{guildID: i.GuildID, ownerID: ownerID, actorID: actorID}, nil
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// respondError maps a service error to the message shown to the actor.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, user *discordgo.User, err error) {
	switch {
	case errors.Is(err, guild.ErrUnauthorized):
		utils.SendEphemeralResponse(s, i, "You do not have permission to use this command.")
	case errors.Is(err, guild.ErrAlreadyAdmin):
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("User %s is already an admin.", user.Mention()))
	case errors.Is(err, guild.ErrNotAdmin):
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("User %s is not an admin.", user.Mention()))
	case errors.Is(err, guild.ErrCannotRemoveOwner):
		utils.SendEphemeralResponse(s, i, "Cannot remove the server owner from the admin list.")
	case errors.Is(err, guild.ErrAlreadyTarget):
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("User %s is already in the target list.", user.Mention()))
	case errors.Is(err, guild.ErrNotTarget):
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("User %s is not in the target list.", user.Mention()))
	case errors.Is(err, store.ErrStorage):
		log.Printf("Storage failure in guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to save configuration. Please try again.")
	default:
		log.Printf("Command failed in guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Something went wrong while handling the command.")
	}
}

func HandleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	ctx, err := resolveInteraction(s, i)
	if err != nil {
		log.Printf("Cannot resolve admin command: %v", err)
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return
	}

	opts := optionMap(i)
	action := opts["action"].StringValue()
	user := opts["user"].UserValue(s)
	userID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		utils.SendErrorResponse(s, i, "Invalid user.")
		return
	}

	switch action {
	case "add":
		if user.Bot {
			utils.SendEphemeralResponse(s, i, "Cannot add bots to the admin list.")
			return
		}
		if err := b.Guilds.AdminAdd(ctx.guildID, ctx.ownerID, ctx.actorID, userID); err != nil {
			respondError(s, i, user, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Successfully added %s as an admin.", user.Mention()))
	case "remove":
		outcome, err := b.Guilds.AdminRemove(ctx.guildID, ctx.ownerID, ctx.actorID, userID)
		if err != nil {
			respondError(s, i, user, err)
			return
		}
		if outcome == guild.OutcomeConfirmationRequired {
			window := int(b.Guilds.Confirmations().Window().Seconds())
			utils.SendEphemeralResponse(s, i, fmt.Sprintf(
				"Are you sure you want to remove yourself as admin?\nUse the command again within %d seconds to confirm.", window))
			return
		}
		if userID == ctx.actorID {
			utils.SendEphemeralResponse(s, i, "You have been removed from the admin list.")
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Successfully removed %s from the admin list.", user.Mention()))
	}
}

func HandleTargetCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	ctx, err := resolveInteraction(s, i)
	if err != nil {
		log.Printf("Cannot resolve target command: %v", err)
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return
	}

	opts := optionMap(i)
	action := opts["action"].StringValue()
	user := opts["user"].UserValue(s)
	userID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		utils.SendErrorResponse(s, i, "Invalid user.")
		return
	}

	switch action {
	case "add":
		if user.Bot {
			utils.SendEphemeralResponse(s, i, "Cannot add bots to the target list.")
			return
		}
		if err := b.Guilds.TargetAdd(ctx.guildID, ctx.ownerID, ctx.actorID, userID); err != nil {
			respondError(s, i, user, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Successfully added %s to the target list.", user.Mention()))
	case "remove":
		if err := b.Guilds.TargetRemove(ctx.guildID, ctx.ownerID, ctx.actorID, userID); err != nil {
			respondError(s, i, user, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Successfully removed %s from the target list.", user.Mention()))
	}
}

func HandleSetMessageCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	ctx, err := resolveInteraction(s, i)
	if err != nil {
		log.Printf("Cannot resolve setmessage command: %v", err)
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return
	}

	text := optionMap(i)["text"].StringValue()
	if err := b.Guilds.SetMessage(ctx.guildID, ctx.ownerID, ctx.actorID, text); err != nil {
		respondError(s, i, nil, err)
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Successfully set the message to: %s", text))
}

// HandleInfoCommand renders the configuration snapshot. World-readable, no
// permission gate.
func HandleInfoCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	ctx, err := resolveInteraction(s, i)
	if err != nil {
		log.Printf("Cannot resolve info command: %v", err)
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return
	}

	snapshot := b.Guilds.Info(ctx.guildID, ctx.ownerID)

	targetsText := "None"
	if len(snapshot.TargetIDs) > 0 {
		targetsText = mentionList(snapshot.TargetIDs)
	}
	adminsText := mentionList(snapshot.AdminIDs)
	messageText := snapshot.Message
	if messageText == "" {
		messageText = "No message set"
	}

	response := fmt.Sprintf("**Bot Targets:** %s\n\n**Bot Admins:** %s\n\n**Message:** %s",
		targetsText, adminsText, messageText)
	utils.SendEphemeralResponse(s, i, response)
}

func mentionList(ids []int64) string {
	mentions := make([]string, 0, len(ids))
	for _, id := range ids {
		mentions = append(mentions, fmt.Sprintf("<@%d>", id))
	}
	return strings.Join(mentions, ", ")
}
