package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/radutopala/switchboard/internal/config"
)

func newOnboardCmd() *cobra.Command {
	var force, printOnly bool
	cmd := &cobra.Command{
		Use:     "onboard",
		Aliases: []string{"o"},
		Short:   "Write an example config to ~/.switchboard/config.json",
		Long:    "Copies the embedded config.example.json to ~/.switchboard/config.json for first-time setup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := cmd.OutOrStdout().Write(config.Example)
				return err
			}
			path, err := onboard(force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nFill in discord_token and discord_app_id, then run: switchboard serve\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the example config instead of writing it")
	return cmd
}

func onboard(force bool) (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	dir := filepath.Join(home, ".switchboard")
	path := filepath.Join(dir, "config.json")

	if _, err := osStat(path); err == nil && !force {
		return "", fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}
	if err := osMkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	// The file will hold the bot token.
	if err := osWriteFile(path, config.Example, 0o600); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}
