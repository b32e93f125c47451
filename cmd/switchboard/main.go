package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/radutopala/switchboard/internal/config"
	"github.com/radutopala/switchboard/internal/discord"
	"github.com/radutopala/switchboard/internal/readme"
)

func init() {
	cobra.EnablePrefixMatching = true
	version = resolveVersion(version)
}

// resolveVersion uses debug.ReadBuildInfo to replace "dev" with the actual
// module version when installed via `go install`.
var resolveVersion = func(v string) string {
	if v != "dev" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return v
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var osExit = os.Exit

func main() {
	if err := newRootCmd().Execute(); err != nil {
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "switchboard",
		Short:        "Discord interaction router",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newIntervalCmd())
	root.AddCommand(newOnboardCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newReadmeCmd())
	root.SetHelpTemplate(helpTemplate)
	return root
}

const helpTemplate = `switchboard - Discord bot that classifies and routes interactions

Usage:
  switchboard [command]

Available Commands:
  serve                    Start the bot (alias: s)
    --remove-commands      Remove registered commands on shutdown
  classify [file]          Classify an interaction payload from a file or stdin (alias: c)
  interval <seconds>       Format seconds as a readable duration (alias: i)
    --granularity, -g      Number of units to show [default: 2]
  onboard                  Write an example config to ~/.switchboard/ (alias: o)
    --force                Overwrite existing config
    --print                Print the example config instead of writing it
  version                  Print version information (alias: v)
  readme                   Print the README documentation (alias: r)

Use "switchboard [command] --help" for more information about a command.
`

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "switchboard %s\n", version)
			if commit != "none" {
				fmt.Fprintf(out, "  commit: %s\n", commit)
			}
			if date != "unknown" {
				fmt.Fprintf(out, "  built:  %s\n", date)
			}
		},
	}
}

func newReadmeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "readme",
		Aliases: []string{"r"},
		Short:   "Print the README documentation",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), readme.Content)
		},
	}
}

// --- Shared testable vars ---

var (
	osReadFile  = os.ReadFile
	osWriteFile = os.WriteFile
	osMkdirAll  = os.MkdirAll
	osStat      = os.Stat
	userHomeDir = os.UserHomeDir
	configLoad  = config.Load
)

// chatBot is the subset of *discord.DiscordBot used by serve().
type chatBot interface {
	Start(ctx context.Context) error
	Stop() error
	RegisterCommands(ctx context.Context) error
	RemoveCommands(ctx context.Context) error
}

// newDiscordBot is kept in main.go to isolate the discordgo session setup.
var newDiscordBot = func(cfg *config.Config, dispatcher discord.Dispatcher, logger *slog.Logger) (chatBot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	return discord.NewBot(session, cfg.DiscordAppID, cfg.DiscordGuildID, dispatcher, logger), nil
}
