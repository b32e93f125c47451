package discord

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/radutopala/switchboard/internal/logging"
	"github.com/radutopala/switchboard/internal/router"
)

// exampleID is the snowflake from Discord's reference docs, created at
// 2016-04-30 11:18:25.796 UTC.
const exampleID = "175928847299117063"

var exampleCreated = time.Date(2016, 4, 30, 11, 18, 25, 796000000, time.UTC)

type HandlersSuite struct {
	suite.Suite
	session  *MockSession
	router   *router.Router
	handlers *Handlers
	started  time.Time
	now      time.Time
	response *discordgo.InteractionResponse
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	s.session = new(MockSession)
	s.session.On("InteractionRespond", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			s.response = args.Get(1).(*discordgo.InteractionResponse)
		}).
		Return(nil)
	s.response = nil

	s.started = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = s.started.Add(3*time.Hour + 5*time.Minute + 7*time.Second)

	s.handlers = NewHandlers(2)
	s.handlers.startedAt = s.started
	s.handlers.now = func() time.Time { return s.now }

	s.router = router.New(logging.Discard())
	s.handlers.Register(s.router)
}

func (s *HandlersSuite) dispatch(i *discordgo.Interaction) {
	require.NoError(s.T(), s.router.Dispatch(context.Background(), s.session, i))
	require.NotNil(s.T(), s.response)
}

func chatInput(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:        name,
			CommandType: discordgo.ChatApplicationCommand,
			Options:     opts,
		},
	}
}

func opt(name string, t discordgo.ApplicationCommandOptionType, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: t, Value: value}
}

func (s *HandlersSuite) content() string {
	return s.response.Data.Content
}

func (s *HandlersSuite) ephemeral() bool {
	return s.response.Data.Flags&discordgo.MessageFlagsEphemeral != 0
}

func TestNewHandlersClampsGranularity(t *testing.T) {
	require.Equal(t, 2, NewHandlers(0).granularity)
	require.Equal(t, 2, NewHandlers(6).granularity)
	require.Equal(t, 4, NewHandlers(4).granularity)
}

// --- /uptime ---

func (s *HandlersSuite) TestUptime() {
	s.dispatch(chatInput("uptime"))

	require.Equal(s.T(), discordgo.InteractionResponseChannelMessageWithSource, s.response.Type)
	require.Equal(s.T(), "Up for 3 hours, 5 minutes.", s.content())
	require.Len(s.T(), s.response.Data.Components, 2)

	button := s.response.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	require.Equal(s.T(), "uptime:2", button.CustomID)

	menu := s.response.Data.Components[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	require.Equal(s.T(), "granularity", menu.CustomID)
	require.Len(s.T(), menu.Options, 5)
	for _, o := range menu.Options {
		require.Equal(s.T(), o.Value == "2", o.Default, o.Value)
	}
}

func (s *HandlersSuite) TestUptimeJustStarted() {
	s.now = s.started.Add(300 * time.Millisecond)
	s.dispatch(chatInput("uptime"))
	require.Equal(s.T(), "Up for less than a second.", s.content())
}

func (s *HandlersSuite) TestUptimeRefreshButton() {
	tests := []struct {
		customID string
		want     string
	}{
		{"uptime:3", "Up for 3 hours, 5 minutes, 7 seconds."},
		{"uptime:1", "Up for 3 hours."},
		{"uptime:9", "Up for 3 hours, 5 minutes."},
		{"uptime", "Up for 3 hours, 5 minutes."},
	}
	for _, tc := range tests {
		s.Run(tc.customID, func() {
			s.dispatch(&discordgo.Interaction{
				Type: discordgo.InteractionMessageComponent,
				Data: discordgo.MessageComponentInteractionData{CustomID: tc.customID, ComponentType: discordgo.ButtonComponent},
			})
			require.Equal(s.T(), discordgo.InteractionResponseUpdateMessage, s.response.Type)
			require.Equal(s.T(), tc.want, s.content())
		})
	}
}

func (s *HandlersSuite) TestUptimeGranularitySelect() {
	s.dispatch(&discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      "granularity",
			ComponentType: discordgo.SelectMenuComponent,
			Values:        []string{"3"},
		},
	})

	require.Equal(s.T(), discordgo.InteractionResponseUpdateMessage, s.response.Type)
	require.Equal(s.T(), "Up for 3 hours, 5 minutes, 7 seconds.", s.content())
	button := s.response.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	require.Equal(s.T(), "uptime:3", button.CustomID)
}

func (s *HandlersSuite) TestUptimeGranularitySelectNoValues() {
	s.dispatch(&discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "granularity", ComponentType: discordgo.SelectMenuComponent},
	})
	require.Equal(s.T(), "Up for 3 hours, 5 minutes.", s.content())
}

// --- /interval ---

func (s *HandlersSuite) TestInterval() {
	tests := []struct {
		name          string
		opts          []*discordgo.ApplicationCommandInteractionDataOption
		want          string
		wantEphemeral bool
	}{
		{
			name: "seconds",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{opt("seconds", discordgo.ApplicationCommandOptionInteger, float64(3661))},
			want: "`3661` seconds is 1 hour, 1 minute.",
		},
		{
			name: "seconds with granularity",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{
				opt("seconds", discordgo.ApplicationCommandOptionInteger, float64(3661)),
				opt("granularity", discordgo.ApplicationCommandOptionInteger, float64(3)),
			},
			want: "`3661` seconds is 1 hour, 1 minute, 1 second.",
		},
		{
			name: "out of range granularity uses default",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{
				opt("seconds", discordgo.ApplicationCommandOptionInteger, float64(3661)),
				opt("granularity", discordgo.ApplicationCommandOptionInteger, float64(0)),
			},
			want: "`3661` seconds is 1 hour, 1 minute.",
		},
		{
			name: "preset",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{opt("preset", discordgo.ApplicationCommandOptionString, "fortnight")},
			want: "`1209600` seconds is 2 weeks.",
		},
		{
			name: "seconds win over preset",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{
				opt("preset", discordgo.ApplicationCommandOptionString, "day"),
				opt("seconds", discordgo.ApplicationCommandOptionInteger, float64(61)),
			},
			want: "`61` seconds is 1 minute, 1 second.",
		},
		{
			name: "zero",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{opt("seconds", discordgo.ApplicationCommandOptionInteger, float64(0))},
			want: "`0` seconds is no time at all.",
		},
		{
			name:          "negative",
			opts:          []*discordgo.ApplicationCommandInteractionDataOption{opt("seconds", discordgo.ApplicationCommandOptionInteger, float64(-5))},
			want:          "Seconds can't be negative.",
			wantEphemeral: true,
		},
		{
			name:          "unknown preset",
			opts:          []*discordgo.ApplicationCommandInteractionDataOption{opt("preset", discordgo.ApplicationCommandOptionString, "eon")},
			want:          "Give me a number of seconds or pick a preset.",
			wantEphemeral: true,
		},
		{
			name:          "nothing given",
			want:          "Give me a number of seconds or pick a preset.",
			wantEphemeral: true,
		},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.dispatch(chatInput("interval", tc.opts...))
			require.Equal(s.T(), tc.want, s.content())
			require.Equal(s.T(), tc.wantEphemeral, s.ephemeral())
		})
	}
}

func (s *HandlersSuite) TestPresetAutocomplete() {
	autocompleteFor := func(focused *discordgo.ApplicationCommandInteractionDataOption) []*discordgo.ApplicationCommandOptionChoice {
		focused.Focused = true
		s.dispatch(&discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommandAutocomplete,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:        "interval",
				CommandType: discordgo.ChatApplicationCommand,
				Options:     []*discordgo.ApplicationCommandInteractionDataOption{focused},
			},
		})
		require.Equal(s.T(), discordgo.InteractionApplicationCommandAutocompleteResult, s.response.Type)
		return s.response.Data.Choices
	}

	choices := autocompleteFor(opt("preset", discordgo.ApplicationCommandOptionString, "h"))
	require.Len(s.T(), choices, 1)
	require.Equal(s.T(), "hour (1 hour)", choices[0].Name)
	require.Equal(s.T(), "hour", choices[0].Value)

	choices = autocompleteFor(opt("preset", discordgo.ApplicationCommandOptionString, " QUARTER"))
	require.Len(s.T(), choices, 1)
	require.Equal(s.T(), "quarter-hour (15 minutes)", choices[0].Name)

	choices = autocompleteFor(opt("preset", discordgo.ApplicationCommandOptionString, ""))
	require.Len(s.T(), choices, len(presets))

	choices = autocompleteFor(opt("seconds", discordgo.ApplicationCommandOptionInteger, float64(1)))
	require.Empty(s.T(), choices)
}

// --- /echo ---

func (s *HandlersSuite) TestEcho() {
	s.dispatch(chatInput("echo", opt("text", discordgo.ApplicationCommandOptionString, "hello there")))
	require.Equal(s.T(), "hello there", s.content())
	require.False(s.T(), s.ephemeral())

	s.dispatch(chatInput("echo",
		opt("text", discordgo.ApplicationCommandOptionString, "psst"),
		opt("ephemeral", discordgo.ApplicationCommandOptionBoolean, true),
	))
	require.Equal(s.T(), "psst", s.content())
	require.True(s.T(), s.ephemeral())

	s.dispatch(chatInput("echo", opt("text", discordgo.ApplicationCommandOptionString, "  ")))
	require.Equal(s.T(), "Nothing to echo.", s.content())
	require.True(s.T(), s.ephemeral())
}

// --- /inspect ---

func entity(kind string, t discordgo.ApplicationCommandOptionType, target any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: "entity",
		Type: discordgo.ApplicationCommandOptionSubCommandGroup,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name:    kind,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{opt("target", t, target)},
			},
		},
	}
}

func (s *HandlersSuite) TestInspectEntities() {
	s.now = exampleCreated.Add(9*24*time.Hour + 4*time.Hour)

	for _, k := range entityKinds {
		s.Run(k.name, func() {
			s.dispatch(chatInput("inspect", entity(k.name, k.kind.Type(), exampleID)))
			require.Equal(s.T(), k.name+" `"+exampleID+"` was created 1 week, 2 days ago.", s.content())
			require.True(s.T(), s.ephemeral())
		})
	}
}

func (s *HandlersSuite) TestInspectEntityInvalidID() {
	s.dispatch(chatInput("inspect", entity("role", discordgo.ApplicationCommandOptionRole, "everyone")))
	require.Equal(s.T(), "role `everyone`", s.content())
}

func (s *HandlersSuite) TestInspectEntityWrongType() {
	s.dispatch(chatInput("inspect", entity("user", discordgo.ApplicationCommandOptionString, exampleID)))
	require.Equal(s.T(), "No user given.", s.content())
}

func (s *HandlersSuite) TestInspectNumber() {
	number := &discordgo.ApplicationCommandInteractionDataOption{
		Name:    "number",
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{opt("value", discordgo.ApplicationCommandOptionNumber, 2.5)},
	}
	s.dispatch(chatInput("inspect", number))
	require.Equal(s.T(), "Number: `2.5`", s.content())

	number.Options = nil
	s.dispatch(chatInput("inspect", number))
	require.Equal(s.T(), "No number given.", s.content())
}

func (s *HandlersSuite) TestInspectNothing() {
	s.dispatch(chatInput("inspect"))
	require.Equal(s.T(), "Nothing to inspect.", s.content())
}

// --- context menus ---

func (s *HandlersSuite) TestAccountAge() {
	s.now = exampleCreated.Add(9*24*time.Hour + 3*time.Hour + 30*time.Second)

	i := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:        "Account Age",
			CommandType: discordgo.UserApplicationCommand,
			TargetID:    exampleID,
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
				Users: map[string]*discordgo.User{exampleID: {ID: exampleID, Username: "nelly"}},
			},
		},
	}
	s.dispatch(i)
	require.Equal(s.T(), "nelly's account is 1 week, 2 days, 3 hours old.", s.content())
	require.True(s.T(), s.ephemeral())

	i.Data = discordgo.ApplicationCommandInteractionData{
		Name:        "Account Age",
		CommandType: discordgo.UserApplicationCommand,
		TargetID:    exampleID,
	}
	s.dispatch(i)
	require.Equal(s.T(), "<@"+exampleID+">'s account is 1 week, 2 days, 3 hours old.", s.content())
}

func (s *HandlersSuite) TestAccountAgeInvalidTarget() {
	s.dispatch(&discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "Account Age", CommandType: discordgo.UserApplicationCommand},
	})
	require.Equal(s.T(), "That user has no valid ID.", s.content())
}

func (s *HandlersSuite) TestMessageAge() {
	s.now = exampleCreated.Add(500 * time.Millisecond)

	s.dispatch(&discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:        "Message Age",
			CommandType: discordgo.MessageApplicationCommand,
			TargetID:    exampleID,
		},
	})
	require.Equal(s.T(), "This message was sent less than a second ago.", s.content())
}

func (s *HandlersSuite) TestMessageAgeInvalidTarget() {
	s.dispatch(&discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "Message Age", CommandType: discordgo.MessageApplicationCommand, TargetID: "x"},
	})
	require.Equal(s.T(), "That message has no valid ID.", s.content())
}

func (s *HandlersSuite) TestRespondErrorPropagates() {
	session := new(MockSession)
	session.On("InteractionRespond", mock.Anything, mock.Anything, mock.Anything).Return(io.ErrClosedPipe)

	err := s.router.Dispatch(context.Background(), session, chatInput("echo", opt("text", discordgo.ApplicationCommandOptionString, "x")))
	require.ErrorIs(s.T(), err, io.ErrClosedPipe)
}

func TestAutocompleteCapsChoices(t *testing.T) {
	session := new(MockSession)
	var resp *discordgo.InteractionResponse
	session.On("InteractionRespond", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { resp = args.Get(1).(*discordgo.InteractionResponse) }).
		Return(nil)

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 30)
	require.NoError(t, autocomplete(session, &discordgo.Interaction{}, choices))
	require.Len(t, resp.Data.Choices, maxChoices)
}
