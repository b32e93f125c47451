// Package interaction classifies Discord interaction envelopes into a closed
// set of variants and reads typed option values out of command payloads.
//
// Everything here is pure: no function performs I/O, mutates its input or
// returns an error. Unmatched or malformed input degrades to the Unknown
// variant or to an absent option.
package interaction

// Variant is the classification of an interaction envelope.
type Variant int

const (
	Autocomplete Variant = iota
	ChatInput
	UserContext
	MessageContext
	Button
	SelectMenu
	Unknown
)

var variantNames = [...]string{
	Autocomplete:   "autocomplete",
	ChatInput:      "chat-input",
	UserContext:    "user-context",
	MessageContext: "message-context",
	Button:         "button",
	SelectMenu:     "select-menu",
	Unknown:        "unknown",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return variantNames[Unknown]
	}
	return variantNames[v]
}

// IsCommand reports whether the variant carries application command data
// with an option tree.
func (v Variant) IsCommand() bool {
	switch v {
	case Autocomplete, ChatInput, UserContext, MessageContext:
		return true
	default:
		return false
	}
}
