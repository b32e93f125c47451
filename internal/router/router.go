package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/radutopala/switchboard/internal/interaction"
)

var (
	// ErrNoHandler is returned when nothing is registered for an interaction.
	ErrNoHandler = errors.New("no handler")
	// ErrRateLimited is returned when the invoking user exceeded the rate limit.
	ErrRateLimited = errors.New("rate limited")
)

// Responder sends the initial response to an interaction.
// *discordgo.Session satisfies it.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Handler handles one narrowed interaction variant.
type Handler[T any] func(ctx context.Context, r Responder, i T) error

// Router dispatches classified interactions to registered handlers.
// Commands are keyed by name, components and modals by the custom ID
// prefix before the first ':'.
type Router struct {
	logger      *slog.Logger
	modalSubmit bool
	limiter     *userLimiter

	mu             sync.RWMutex
	autocomplete   map[string]Handler[interaction.AutocompleteInteraction]
	chatInput      map[string]Handler[interaction.ChatInputInteraction]
	userContext    map[string]Handler[interaction.UserContextInteraction]
	messageContext map[string]Handler[interaction.MessageContextInteraction]
	button         map[string]Handler[interaction.ButtonInteraction]
	selectMenu     map[string]Handler[interaction.SelectMenuInteraction]
	modal          map[string]Handler[interaction.ModalSubmitInteraction]
}

// Option configures a Router.
type Option func(*Router)

// WithModalSubmit routes modal submissions to ModalSubmit handlers. Without
// it modal submissions classify as unknown and are rejected.
func WithModalSubmit() Option {
	return func(r *Router) {
		r.modalSubmit = true
	}
}

// WithRateLimit allows each user one interaction per every, with bursts of
// up to burst. Autocomplete requests are exempt.
func WithRateLimit(every time.Duration, burst int) Option {
	return func(r *Router) {
		if every > 0 && burst > 0 {
			r.limiter = newUserLimiter(every, burst)
		}
	}
}

// New creates a Router.
func New(logger *slog.Logger, opts ...Option) *Router {
	r := &Router{
		logger:         logger,
		autocomplete:   make(map[string]Handler[interaction.AutocompleteInteraction]),
		chatInput:      make(map[string]Handler[interaction.ChatInputInteraction]),
		userContext:    make(map[string]Handler[interaction.UserContextInteraction]),
		messageContext: make(map[string]Handler[interaction.MessageContextInteraction]),
		button:         make(map[string]Handler[interaction.ButtonInteraction]),
		selectMenu:     make(map[string]Handler[interaction.SelectMenuInteraction]),
		modal:          make(map[string]Handler[interaction.ModalSubmitInteraction]),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Autocomplete registers h for autocomplete requests of the named command.
func (r *Router) Autocomplete(name string, h Handler[interaction.AutocompleteInteraction]) {
	register(&r.mu, r.autocomplete, name, h)
}

// ChatInput registers h for the named slash command.
func (r *Router) ChatInput(name string, h Handler[interaction.ChatInputInteraction]) {
	register(&r.mu, r.chatInput, name, h)
}

// UserContext registers h for the named user context-menu command.
func (r *Router) UserContext(name string, h Handler[interaction.UserContextInteraction]) {
	register(&r.mu, r.userContext, name, h)
}

// MessageContext registers h for the named message context-menu command.
func (r *Router) MessageContext(name string, h Handler[interaction.MessageContextInteraction]) {
	register(&r.mu, r.messageContext, name, h)
}

// Button registers h for buttons whose custom ID starts with prefix.
func (r *Router) Button(prefix string, h Handler[interaction.ButtonInteraction]) {
	register(&r.mu, r.button, prefix, h)
}

// SelectMenu registers h for select menus whose custom ID starts with prefix.
func (r *Router) SelectMenu(prefix string, h Handler[interaction.SelectMenuInteraction]) {
	register(&r.mu, r.selectMenu, prefix, h)
}

// ModalSubmit registers h for modals whose custom ID starts with prefix.
// The handler only runs when the router was built WithModalSubmit.
func (r *Router) ModalSubmit(prefix string, h Handler[interaction.ModalSubmitInteraction]) {
	register(&r.mu, r.modal, prefix, h)
}

// Dispatch classifies i and runs the matching handler. The per-user rate
// limit is charged only once a handler has been found, so interactions the
// router ignores never use up a user's tokens.
func (r *Router) Dispatch(ctx context.Context, resp Responder, i *discordgo.Interaction) error {
	n := interaction.Narrow(i)
	limit := func() error { return r.checkRate(resp, i) }
	kind := n.Variant().String()

	switch v := n.(type) {
	case interaction.AutocompleteInteraction:
		// Autocomplete fires on every keystroke and is never limited.
		return run(ctx, &r.mu, r.autocomplete, kind, v.Command.Name, nil, resp, v)
	case interaction.ChatInputInteraction:
		return run(ctx, &r.mu, r.chatInput, kind, v.Command.Name, limit, resp, v)
	case interaction.UserContextInteraction:
		return run(ctx, &r.mu, r.userContext, kind, v.Command.Name, limit, resp, v)
	case interaction.MessageContextInteraction:
		return run(ctx, &r.mu, r.messageContext, kind, v.Command.Name, limit, resp, v)
	case interaction.ButtonInteraction:
		return run(ctx, &r.mu, r.button, kind, CustomIDPrefix(v.Component.CustomID), limit, resp, v)
	case interaction.SelectMenuInteraction:
		return run(ctx, &r.mu, r.selectMenu, kind, CustomIDPrefix(v.Component.CustomID), limit, resp, v)
	default:
		if m, ok := interaction.AsModalSubmit(i); ok && r.modalSubmit {
			return run(ctx, &r.mu, r.modal, "modal-submit", CustomIDPrefix(m.Modal.CustomID), limit, resp, m)
		}
		return fmt.Errorf("%w for %s interaction", ErrNoHandler, n.Variant())
	}
}

// CustomIDPrefix returns the part of a component custom ID before the first ':'.
func CustomIDPrefix(customID string) string {
	prefix, _, _ := strings.Cut(customID, ":")
	return prefix
}

// CustomIDArg returns the part of a component custom ID after the first ':'.
func CustomIDArg(customID string) string {
	_, arg, _ := strings.Cut(customID, ":")
	return arg
}

// UserID returns the ID of the user who triggered i, in a guild or a DM.
func UserID(i *discordgo.Interaction) string {
	if i == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func register[T any](mu *sync.RWMutex, handlers map[string]Handler[T], key string, h Handler[T]) {
	mu.Lock()
	defer mu.Unlock()
	handlers[key] = h
}

// run looks up the handler for key and, when one exists, passes the limit
// check before calling it. A nil limit skips rate limiting.
func run[T any](ctx context.Context, mu *sync.RWMutex, handlers map[string]Handler[T], kind, key string, limit func() error, resp Responder, v T) error {
	mu.RLock()
	h, ok := handlers[key]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w for %s %q", ErrNoHandler, kind, key)
	}
	if limit != nil {
		if err := limit(); err != nil {
			return err
		}
	}
	if err := h(ctx, resp, v); err != nil {
		return fmt.Errorf("handling %s %q: %w", kind, key, err)
	}
	return nil
}
