package interaction

import (
	"github.com/bwmarrin/discordgo"
)

// Narrowed is an interaction converted to its variant's concrete type.
// The set of implementations is closed; switch on the Go type to handle it.
type Narrowed interface {
	Variant() Variant
	Raw() *discordgo.Interaction
	narrowed()
}

// AutocompleteInteraction is an autocomplete request for a command option.
type AutocompleteInteraction struct {
	*discordgo.Interaction
	Command discordgo.ApplicationCommandInteractionData
}

// ChatInputInteraction is a slash command invocation.
type ChatInputInteraction struct {
	*discordgo.Interaction
	Command discordgo.ApplicationCommandInteractionData
}

// UserContextInteraction is a user context-menu command.
type UserContextInteraction struct {
	*discordgo.Interaction
	Command discordgo.ApplicationCommandInteractionData
}

// MessageContextInteraction is a message context-menu command.
type MessageContextInteraction struct {
	*discordgo.Interaction
	Command discordgo.ApplicationCommandInteractionData
}

// ButtonInteraction is a button press.
type ButtonInteraction struct {
	*discordgo.Interaction
	Component discordgo.MessageComponentInteractionData
}

// SelectMenuInteraction is a selection from any select menu kind.
type SelectMenuInteraction struct {
	*discordgo.Interaction
	Component discordgo.MessageComponentInteractionData
}

// UnknownInteraction is anything Classify does not recognise. The embedded
// interaction may be nil.
type UnknownInteraction struct {
	*discordgo.Interaction
}

// ModalSubmitInteraction is a modal submission. It is produced only by
// AsModalSubmit, never by Narrow.
type ModalSubmitInteraction struct {
	*discordgo.Interaction
	Modal discordgo.ModalSubmitInteractionData
}

func (AutocompleteInteraction) Variant() Variant   { return Autocomplete }
func (ChatInputInteraction) Variant() Variant      { return ChatInput }
func (UserContextInteraction) Variant() Variant    { return UserContext }
func (MessageContextInteraction) Variant() Variant { return MessageContext }
func (ButtonInteraction) Variant() Variant         { return Button }
func (SelectMenuInteraction) Variant() Variant     { return SelectMenu }
func (UnknownInteraction) Variant() Variant        { return Unknown }

func (n AutocompleteInteraction) Raw() *discordgo.Interaction   { return n.Interaction }
func (n ChatInputInteraction) Raw() *discordgo.Interaction      { return n.Interaction }
func (n UserContextInteraction) Raw() *discordgo.Interaction    { return n.Interaction }
func (n MessageContextInteraction) Raw() *discordgo.Interaction { return n.Interaction }
func (n ButtonInteraction) Raw() *discordgo.Interaction         { return n.Interaction }
func (n SelectMenuInteraction) Raw() *discordgo.Interaction     { return n.Interaction }
func (n UnknownInteraction) Raw() *discordgo.Interaction        { return n.Interaction }
func (n ModalSubmitInteraction) Raw() *discordgo.Interaction    { return n.Interaction }

func (AutocompleteInteraction) narrowed()   {}
func (ChatInputInteraction) narrowed()      {}
func (UserContextInteraction) narrowed()    {}
func (MessageContextInteraction) narrowed() {}
func (ButtonInteraction) narrowed()         {}
func (SelectMenuInteraction) narrowed()     {}
func (UnknownInteraction) narrowed()        {}

// Narrow converts i into the concrete type of its variant. The result always
// agrees with Classify(i).
func Narrow(i *discordgo.Interaction) Narrowed {
	switch Classify(i) {
	case Autocomplete:
		data, _ := commandData(i)
		return AutocompleteInteraction{Interaction: i, Command: data}
	case ChatInput:
		data, _ := commandData(i)
		return ChatInputInteraction{Interaction: i, Command: data}
	case UserContext:
		data, _ := commandData(i)
		return UserContextInteraction{Interaction: i, Command: data}
	case MessageContext:
		data, _ := commandData(i)
		return MessageContextInteraction{Interaction: i, Command: data}
	case Button:
		data, _ := componentData(i)
		return ButtonInteraction{Interaction: i, Component: data}
	case SelectMenu:
		data, _ := componentData(i)
		return SelectMenuInteraction{Interaction: i, Component: data}
	default:
		return UnknownInteraction{Interaction: i}
	}
}

// AsModalSubmit narrows a modal submission. It reports false for anything
// IsModalSubmit rejects.
func AsModalSubmit(i *discordgo.Interaction) (ModalSubmitInteraction, bool) {
	if !IsModalSubmit(i) {
		return ModalSubmitInteraction{}, false
	}
	data, _ := modalData(i)
	return ModalSubmitInteraction{Interaction: i, Modal: data}, true
}

// Focused returns the option the user is currently typing into.
func (n AutocompleteInteraction) Focused() *discordgo.ApplicationCommandInteractionDataOption {
	return Focused(n.Command.Options)
}

// Path returns the space-separated command path and the leaf options.
func (n ChatInputInteraction) Path() (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	return CommandPath(n.Command)
}

// Target returns the ID of the user the command was invoked on.
func (n UserContextInteraction) Target() Snowflake {
	return Snowflake(n.Command.TargetID)
}

// TargetUser returns the resolved target user, or nil when the payload
// carries no resolved data for it.
func (n UserContextInteraction) TargetUser() *discordgo.User {
	if n.Command.Resolved == nil {
		return nil
	}
	return n.Command.Resolved.Users[n.Command.TargetID]
}

// Target returns the ID of the message the command was invoked on.
func (n MessageContextInteraction) Target() Snowflake {
	return Snowflake(n.Command.TargetID)
}

// TargetMessage returns the resolved target message, or nil.
func (n MessageContextInteraction) TargetMessage() *discordgo.Message {
	if n.Command.Resolved == nil {
		return nil
	}
	return n.Command.Resolved.Messages[n.Command.TargetID]
}
