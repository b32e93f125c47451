package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/radutopala/switchboard/internal/interaction"
)

// Command names, as registered with Discord and routed by the router.
const (
	cmdUptime      = "uptime"
	cmdInterval    = "interval"
	cmdEcho        = "echo"
	cmdInspect     = "inspect"
	cmdAccountAge  = "Account Age"
	cmdMessageAge  = "Message Age"
	groupEntity    = "entity"
	subNumber      = "number"
	prefixUptime   = "uptime"
	prefixGranular = "granularity"
)

// entityKinds lists the /inspect entity subcommands in registration order.
var entityKinds = []struct {
	name string
	kind interaction.Kind[interaction.Snowflake]
	desc string
}{
	{"user", interaction.User, "A user"},
	{"role", interaction.Role, "A role"},
	{"channel", interaction.Channel, "A channel"},
	{"mentionable", interaction.Mentionable, "A user or role"},
	{"attachment", interaction.Attachment, "An uploaded file"},
}

// Commands returns the application command definitions for the bot.
func Commands() []*discordgo.ApplicationCommand {
	zero := 0.0
	one := 1.0

	entitySubs := make([]*discordgo.ApplicationCommandOption, 0, len(entityKinds))
	for _, k := range entityKinds {
		entitySubs = append(entitySubs, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        k.name,
			Description: "Show the ID and age of " + strings.ToLower(k.desc),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        k.kind.Type(),
					Name:        "target",
					Description: k.desc,
					Required:    true,
				},
			},
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdUptime,
			Description: "Show how long the bot has been running",
		},
		{
			Name:        cmdInterval,
			Description: "Format a number of seconds as a readable duration",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "seconds",
					Description: "Number of seconds",
					MinValue:    &zero,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "preset",
					Description:  "A named duration instead of seconds",
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "granularity",
					Description: "How many units to show (1-5)",
					MinValue:    &one,
					MaxValue:    5,
				},
			},
		},
		{
			Name:        cmdEcho,
			Description: "Repeat some text back",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Text to repeat",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "ephemeral",
					Description: "Only show the reply to you",
				},
			},
		},
		{
			Name:        cmdInspect,
			Description: "Inspect command option values",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        groupEntity,
					Description: "Inspect a Discord entity",
					Options:     entitySubs,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subNumber,
					Description: "Inspect a decimal number",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        "value",
							Description: "Any number",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Type: discordgo.UserApplicationCommand,
			Name: cmdAccountAge,
		},
		{
			Type: discordgo.MessageApplicationCommand,
			Name: cmdMessageAge,
		},
	}
}
