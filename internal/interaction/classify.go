package interaction

import (
	"github.com/bwmarrin/discordgo"
)

// predicate pairs a variant with the test that selects it.
type predicate struct {
	variant Variant
	match   func(*discordgo.Interaction) bool
}

// dispatchOrder is the fixed priority order used by Classify. Modal
// submissions are not part of it; see IsModalSubmit and AsModalSubmit.
var dispatchOrder = [...]predicate{
	{Autocomplete, IsAutocomplete},
	{ChatInput, IsChatInput},
	{UserContext, IsUserContext},
	{MessageContext, IsMessageContext},
	{Button, IsButton},
	{SelectMenu, IsSelectMenu},
}

// Classify maps an interaction to exactly one Variant. The first matching
// predicate in dispatch order wins; anything else, including nil, is Unknown.
func Classify(i *discordgo.Interaction) Variant {
	for _, p := range dispatchOrder {
		if p.match(i) {
			return p.variant
		}
	}
	return Unknown
}

// IsAutocomplete reports whether i is an application command autocomplete request.
func IsAutocomplete(i *discordgo.Interaction) bool {
	return i != nil && i.Type == discordgo.InteractionApplicationCommandAutocomplete
}

// IsChatInput reports whether i is a slash command invocation.
func IsChatInput(i *discordgo.Interaction) bool {
	return isCommandOfType(i, discordgo.ChatApplicationCommand)
}

// IsUserContext reports whether i is a user context-menu command.
func IsUserContext(i *discordgo.Interaction) bool {
	return isCommandOfType(i, discordgo.UserApplicationCommand)
}

// IsMessageContext reports whether i is a message context-menu command.
func IsMessageContext(i *discordgo.Interaction) bool {
	return isCommandOfType(i, discordgo.MessageApplicationCommand)
}

// IsModalSubmit reports whether i is a modal submission.
func IsModalSubmit(i *discordgo.Interaction) bool {
	return i != nil && i.Type == discordgo.InteractionModalSubmit
}

// IsButton reports whether i is a button press.
func IsButton(i *discordgo.Interaction) bool {
	data, ok := componentData(i)
	return ok && data.ComponentType == discordgo.ButtonComponent
}

// IsSelectMenu reports whether i comes from any of the select menu components.
func IsSelectMenu(i *discordgo.Interaction) bool {
	data, ok := componentData(i)
	if !ok {
		return false
	}
	switch data.ComponentType {
	case discordgo.SelectMenuComponent,
		discordgo.UserSelectMenuComponent,
		discordgo.RoleSelectMenuComponent,
		discordgo.ChannelSelectMenuComponent,
		discordgo.MentionableSelectMenuComponent:
		return true
	default:
		return false
	}
}

func isCommandOfType(i *discordgo.Interaction, t discordgo.ApplicationCommandType) bool {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	data, ok := commandData(i)
	return ok && data.CommandType == t
}

// commandData extracts application command data held either by value, as
// discordgo's decoder stores it, or by pointer.
func commandData(i *discordgo.Interaction) (discordgo.ApplicationCommandInteractionData, bool) {
	if i == nil {
		return discordgo.ApplicationCommandInteractionData{}, false
	}
	switch d := i.Data.(type) {
	case discordgo.ApplicationCommandInteractionData:
		return d, true
	case *discordgo.ApplicationCommandInteractionData:
		if d != nil {
			return *d, true
		}
	}
	return discordgo.ApplicationCommandInteractionData{}, false
}

func componentData(i *discordgo.Interaction) (discordgo.MessageComponentInteractionData, bool) {
	if i == nil || i.Type != discordgo.InteractionMessageComponent {
		return discordgo.MessageComponentInteractionData{}, false
	}
	switch d := i.Data.(type) {
	case discordgo.MessageComponentInteractionData:
		return d, true
	case *discordgo.MessageComponentInteractionData:
		if d != nil {
			return *d, true
		}
	}
	return discordgo.MessageComponentInteractionData{}, false
}

func modalData(i *discordgo.Interaction) (discordgo.ModalSubmitInteractionData, bool) {
	if i == nil {
		return discordgo.ModalSubmitInteractionData{}, false
	}
	switch d := i.Data.(type) {
	case discordgo.ModalSubmitInteractionData:
		return d, true
	case *discordgo.ModalSubmitInteractionData:
		if d != nil {
			return *d, true
		}
	}
	return discordgo.ModalSubmitInteractionData{}, false
}
