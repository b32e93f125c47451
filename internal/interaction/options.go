package interaction

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Option is a single command option entry as delivered by Discord.
type Option = discordgo.ApplicationCommandInteractionDataOption

// Snowflake is a Discord entity ID: users, roles, channels, attachments.
type Snowflake string

// Time returns the creation time encoded in the snowflake.
func (s Snowflake) Time() (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := discordgo.SnowflakeTimestamp(string(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Kind ties an option type to the Go type Get returns for it.
type Kind[T any] struct {
	optionType discordgo.ApplicationCommandOptionType
	value      func(*Option) (T, bool)
}

// Type returns the Discord option type the kind matches.
func (k Kind[T]) Type() discordgo.ApplicationCommandOptionType {
	return k.optionType
}

var (
	SubCommand      = Kind[[]*Option]{discordgo.ApplicationCommandOptionSubCommand, children}
	SubCommandGroup = Kind[[]*Option]{discordgo.ApplicationCommandOptionSubCommandGroup, children}
	String          = Kind[string]{discordgo.ApplicationCommandOptionString, stringValue}
	Integer         = Kind[int64]{discordgo.ApplicationCommandOptionInteger, integerValue}
	Number          = Kind[float64]{discordgo.ApplicationCommandOptionNumber, numberValue}
	Boolean         = Kind[bool]{discordgo.ApplicationCommandOptionBoolean, booleanValue}
	User            = Kind[Snowflake]{discordgo.ApplicationCommandOptionUser, snowflakeValue}
	Channel         = Kind[Snowflake]{discordgo.ApplicationCommandOptionChannel, snowflakeValue}
	Role            = Kind[Snowflake]{discordgo.ApplicationCommandOptionRole, snowflakeValue}
	Mentionable     = Kind[Snowflake]{discordgo.ApplicationCommandOptionMentionable, snowflakeValue}
	Attachment      = Kind[Snowflake]{discordgo.ApplicationCommandOptionAttachment, snowflakeValue}
)

// Get returns the value of the first option called name, provided its type
// matches kind. A missing option, a type mismatch and a value that cannot be
// represented as T all report false. Integer and Number options take any Go
// numeric value or a json.Number; an Integer must also be whole and fit in
// an int64.
//
// Subcommand and subcommand group kinds return the nested options slice
// itself, not a copy.
func Get[T any](name string, kind Kind[T], options []*Option) (T, bool) {
	var zero T
	if kind.value == nil {
		return zero, false
	}
	opt := find(name, options)
	if opt == nil || opt.Type != kind.optionType {
		return zero, false
	}
	return kind.value(opt)
}

// Lookup returns the first option called name regardless of its type.
func Lookup(name string, options []*Option) (*Option, bool) {
	opt := find(name, options)
	return opt, opt != nil
}

func find(name string, options []*Option) *Option {
	for _, o := range options {
		if o != nil && o.Name == name {
			return o
		}
	}
	return nil
}

// Focused returns the option flagged as focused, descending into
// subcommands and groups. It returns nil when nothing is focused.
func Focused(options []*Option) *Option {
	for _, o := range options {
		if o == nil {
			continue
		}
		if o.Focused {
			return o
		}
		if isGroup(o.Type) {
			if f := Focused(o.Options); f != nil {
				return f
			}
		}
	}
	return nil
}

// CommandPath resolves subcommand nesting: "name", "name sub" or
// "name group sub", together with the options of the innermost level.
func CommandPath(data discordgo.ApplicationCommandInteractionData) (string, []*Option) {
	path := data.Name
	opts := data.Options
	for len(opts) > 0 && opts[0] != nil && isGroup(opts[0].Type) {
		path += " " + opts[0].Name
		opts = opts[0].Options
	}
	return path, opts
}

func isGroup(t discordgo.ApplicationCommandOptionType) bool {
	return t == discordgo.ApplicationCommandOptionSubCommand ||
		t == discordgo.ApplicationCommandOptionSubCommandGroup
}

func children(o *Option) ([]*Option, bool) {
	return o.Options, true
}

func stringValue(o *Option) (string, bool) {
	v, ok := o.Value.(string)
	return v, ok
}

func booleanValue(o *Option) (bool, bool) {
	v, ok := o.Value.(bool)
	return v, ok
}

func snowflakeValue(o *Option) (Snowflake, bool) {
	switch v := o.Value.(type) {
	case string:
		return Snowflake(v), true
	case Snowflake:
		return v, true
	default:
		return "", false
	}
}

// integerValue and numberValue accept the same Go types: float32, float64,
// every sized and unsized int and uint, and json.Number. Integers also have
// to be whole and fit in an int64.
func integerValue(o *Option) (int64, bool) {
	switch v := o.Value.(type) {
	case float64:
		// JSON decoding yields float64 for every number.
		return wholeInt64(v)
	case float32:
		return wholeInt64(float64(v))
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintInt64(v)
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func wholeInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func uintInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func numberValue(o *Option) (float64, bool) {
	switch v := o.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := strconv.ParseFloat(string(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
