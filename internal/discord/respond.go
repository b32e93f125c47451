package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/radutopala/switchboard/internal/router"
)

// respond sends a public message response to an interaction.
func respond(r router.Responder, i *discordgo.Interaction, content string) error {
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// respondEphemeral sends a message only the invoking user can see.
func respondEphemeral(r router.Responder, i *discordgo.Interaction, content string) error {
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondData sends a public message with components attached.
func respondData(r router.Responder, i *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// updateMessage edits the message a component is attached to.
func updateMessage(r router.Responder, i *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// autocomplete answers an autocomplete request with up to 25 choices.
func autocomplete(r router.Responder, i *discordgo.Interaction, choices []*discordgo.ApplicationCommandOptionChoice) error {
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

const maxChoices = 25
