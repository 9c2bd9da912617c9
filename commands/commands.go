package commands

import "github.com/bwmarrin/discordgo"

// GenerateCommands returns the application commands registered globally on
// startup.
func GenerateCommands() []*discordgo.ApplicationCommand {
	actionChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "add", Value: "add"},
		{Name: "remove", Value: "remove"},
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "admin",
			Description: "Add or remove admin users",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "Choose to add or remove an admin",
					Required:    true,
					Choices:     actionChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to add or remove as admin",
					Required:    true,
				},
			},
		},
		{
			Name:        "target",
			Description: "Add or remove target users",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "Choose to add or remove a target",
					Required:    true,
					Choices:     actionChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to add or remove as target",
					Required:    true,
				},
			},
		},
		{
			Name:        "setmessage",
			Description: "Set the message that will be sent to target users",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "The message to send to target users",
					Required:    true,
				},
			},
		},
		{
			Name:        "info",
			Description: "Display current bot configuration",
		},
		{
			Name:        "botstat",
			Description: "Display bot runtime statistics",
		},
	}
}
