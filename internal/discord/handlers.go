package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/radutopala/switchboard/internal/interaction"
	"github.com/radutopala/switchboard/internal/interval"
	"github.com/radutopala/switchboard/internal/router"
)

const (
	maxGranularity = 5
	ageGranularity = 3
)

// presets are the named durations offered by /interval autocomplete.
var presets = []struct {
	name    string
	seconds int64
}{
	{"minute", 60},
	{"quarter-hour", 900},
	{"hour", 3600},
	{"day", 86400},
	{"week", 604800},
	{"fortnight", 1209600},
}

// Handlers implements the bot's built-in commands.
type Handlers struct {
	startedAt   time.Time
	granularity int
	now         func() time.Time
}

// NewHandlers creates Handlers that format durations with granularity units
// unless a command asks for another count.
func NewHandlers(granularity int) *Handlers {
	if granularity < 1 || granularity > maxGranularity {
		granularity = interval.DefaultGranularity
	}
	return &Handlers{
		startedAt:   time.Now(),
		granularity: granularity,
		now:         time.Now,
	}
}

// Register wires every built-in command and component into rt.
func (h *Handlers) Register(rt *router.Router) {
	rt.ChatInput(cmdUptime, h.uptime)
	rt.Button(prefixUptime, h.refreshUptime)
	rt.SelectMenu(prefixGranular, h.selectGranularity)

	rt.ChatInput(cmdInterval, h.formatInterval)
	rt.Autocomplete(cmdInterval, h.completePreset)

	rt.ChatInput(cmdEcho, h.echo)
	rt.ChatInput(cmdInspect, h.inspect)

	rt.UserContext(cmdAccountAge, h.accountAge)
	rt.MessageContext(cmdMessageAge, h.messageAge)
}

func (h *Handlers) uptime(_ context.Context, r router.Responder, n interaction.ChatInputInteraction) error {
	return respondData(r, n.Interaction, h.uptimeMessage(h.granularity))
}

func (h *Handlers) refreshUptime(_ context.Context, r router.Responder, n interaction.ButtonInteraction) error {
	g := parseGranularity(router.CustomIDArg(n.Component.CustomID), h.granularity)
	return updateMessage(r, n.Interaction, h.uptimeMessage(g))
}

func (h *Handlers) selectGranularity(_ context.Context, r router.Responder, n interaction.SelectMenuInteraction) error {
	g := h.granularity
	if len(n.Component.Values) > 0 {
		g = parseGranularity(n.Component.Values[0], h.granularity)
	}
	return updateMessage(r, n.Interaction, h.uptimeMessage(g))
}

func (h *Handlers) uptimeMessage(g int) *discordgo.InteractionResponseData {
	up := interval.Duration(h.now().Sub(h.startedAt), g)
	content := "Up for less than a second."
	if up != "" {
		content = "Up for " + up + "."
	}

	options := make([]discordgo.SelectMenuOption, 0, maxGranularity)
	for n := 1; n <= maxGranularity; n++ {
		label := strconv.Itoa(n) + " units"
		if n == 1 {
			label = "1 unit"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:   label,
			Value:   strconv.Itoa(n),
			Default: n == g,
		})
	}

	return &discordgo.InteractionResponseData{
		Content: content,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Refresh",
					Style:    discordgo.SecondaryButton,
					CustomID: prefixUptime + ":" + strconv.Itoa(g),
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    prefixGranular,
					Placeholder: "Units to show",
					Options:     options,
				},
			}},
		},
	}
}

func (h *Handlers) formatInterval(_ context.Context, r router.Responder, n interaction.ChatInputInteraction) error {
	_, opts := n.Path()

	g := h.granularity
	if v, ok := interaction.Get("granularity", interaction.Integer, opts); ok && v >= 1 && v <= maxGranularity {
		g = int(v)
	}

	seconds, ok := interaction.Get("seconds", interaction.Integer, opts)
	if !ok {
		name, _ := interaction.Get("preset", interaction.String, opts)
		seconds, ok = presetSeconds(name)
	}
	if !ok {
		return respondEphemeral(r, n.Interaction, "Give me a number of seconds or pick a preset.")
	}
	if seconds < 0 {
		return respondEphemeral(r, n.Interaction, "Seconds can't be negative.")
	}

	text := interval.Format(seconds, g)
	if text == "" {
		text = "no time at all"
	}
	return respond(r, n.Interaction, fmt.Sprintf("`%d` seconds is %s.", seconds, text))
}

func (h *Handlers) completePreset(_ context.Context, r router.Responder, n interaction.AutocompleteInteraction) error {
	focused := n.Focused()
	if focused == nil || focused.Name != "preset" {
		return autocomplete(r, n.Interaction, nil)
	}

	typed, _ := interaction.Get("preset", interaction.String, []*interaction.Option{focused})
	typed = strings.ToLower(strings.TrimSpace(typed))

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(presets))
	for _, p := range presets {
		if !strings.HasPrefix(p.name, typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%s)", p.name, interval.FormatDefault(p.seconds)),
			Value: p.name,
		})
	}
	return autocomplete(r, n.Interaction, choices)
}

func presetSeconds(name string) (int64, bool) {
	for _, p := range presets {
		if p.name == name {
			return p.seconds, true
		}
	}
	return 0, false
}

func (h *Handlers) echo(_ context.Context, r router.Responder, n interaction.ChatInputInteraction) error {
	_, opts := n.Path()
	text, _ := interaction.Get("text", interaction.String, opts)
	if strings.TrimSpace(text) == "" {
		return respondEphemeral(r, n.Interaction, "Nothing to echo.")
	}
	if private, _ := interaction.Get("ephemeral", interaction.Boolean, opts); private {
		return respondEphemeral(r, n.Interaction, text)
	}
	return respond(r, n.Interaction, text)
}

func (h *Handlers) inspect(_ context.Context, r router.Responder, n interaction.ChatInputInteraction) error {
	opts := n.Command.Options

	if group, ok := interaction.Get(groupEntity, interaction.SubCommandGroup, opts); ok {
		for _, k := range entityKinds {
			sub, ok := interaction.Get(k.name, interaction.SubCommand, group)
			if !ok {
				continue
			}
			target, ok := interaction.Get("target", k.kind, sub)
			if !ok {
				return respondEphemeral(r, n.Interaction, "No "+k.name+" given.")
			}
			return respondEphemeral(r, n.Interaction, h.describe(k.name, target))
		}
	}

	if sub, ok := interaction.Get(subNumber, interaction.SubCommand, opts); ok {
		v, ok := interaction.Get("value", interaction.Number, sub)
		if !ok {
			return respondEphemeral(r, n.Interaction, "No number given.")
		}
		return respondEphemeral(r, n.Interaction, "Number: `"+strconv.FormatFloat(v, 'g', -1, 64)+"`")
	}

	return respondEphemeral(r, n.Interaction, "Nothing to inspect.")
}

func (h *Handlers) describe(kind string, id interaction.Snowflake) string {
	created, ok := id.Time()
	if !ok {
		return fmt.Sprintf("%s `%s`", kind, id)
	}
	return fmt.Sprintf("%s `%s` was created %s ago.", kind, id, h.age(created, h.granularity))
}

func (h *Handlers) accountAge(_ context.Context, r router.Responder, n interaction.UserContextInteraction) error {
	created, ok := n.Target().Time()
	if !ok {
		return respondEphemeral(r, n.Interaction, "That user has no valid ID.")
	}

	who := "<@" + string(n.Target()) + ">"
	if u := n.TargetUser(); u != nil && u.Username != "" {
		who = u.Username
	}
	return respondEphemeral(r, n.Interaction, fmt.Sprintf("%s's account is %s old.", who, h.age(created, ageGranularity)))
}

func (h *Handlers) messageAge(_ context.Context, r router.Responder, n interaction.MessageContextInteraction) error {
	created, ok := n.Target().Time()
	if !ok {
		return respondEphemeral(r, n.Interaction, "That message has no valid ID.")
	}
	return respondEphemeral(r, n.Interaction, fmt.Sprintf("This message was sent %s ago.", h.age(created, ageGranularity)))
}

func (h *Handlers) age(t time.Time, g int) string {
	if s := interval.Duration(h.now().Sub(t), g); s != "" {
		return s
	}
	return "less than a second"
}

func parseGranularity(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxGranularity {
		return def
	}
	return n
}
