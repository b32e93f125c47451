package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/radutopala/switchboard/internal/interaction"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "classify [file]",
		Aliases: []string{"c"},
		Short:   "Classify an interaction payload from a file or stdin",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 && args[0] != "-" {
				data, err = osReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("reading interaction: %w", err)
			}

			var i discordgo.Interaction
			if err := json.Unmarshal(data, &i); err != nil {
				return fmt.Errorf("decoding interaction: %w", err)
			}
			describeInteraction(cmd.OutOrStdout(), &i)
			return nil
		},
	}
}

func describeInteraction(w io.Writer, i *discordgo.Interaction) {
	n := interaction.Narrow(i)
	fmt.Fprintf(w, "variant: %s\n", n.Variant())

	switch v := n.(type) {
	case interaction.AutocompleteInteraction:
		path, opts := interaction.CommandPath(v.Command)
		fmt.Fprintf(w, "command: %s\n", path)
		if f := v.Focused(); f != nil {
			fmt.Fprintf(w, "focused: %s\n", f.Name)
		}
		writeOptions(w, opts)
	case interaction.ChatInputInteraction:
		path, opts := v.Path()
		fmt.Fprintf(w, "command: %s\n", path)
		writeOptions(w, opts)
	case interaction.UserContextInteraction:
		fmt.Fprintf(w, "command: %s\n", v.Command.Name)
		fmt.Fprintf(w, "target: %s\n", v.Target())
	case interaction.MessageContextInteraction:
		fmt.Fprintf(w, "command: %s\n", v.Command.Name)
		fmt.Fprintf(w, "target: %s\n", v.Target())
	case interaction.ButtonInteraction:
		fmt.Fprintf(w, "custom_id: %s\n", v.Component.CustomID)
	case interaction.SelectMenuInteraction:
		fmt.Fprintf(w, "custom_id: %s\n", v.Component.CustomID)
		fmt.Fprintf(w, "values: %s\n", strings.Join(v.Component.Values, ", "))
	default:
		if m, ok := interaction.AsModalSubmit(i); ok {
			fmt.Fprintf(w, "modal_submit: %s\n", m.Modal.CustomID)
		}
	}
}

func writeOptions(w io.Writer, opts []*interaction.Option) {
	for _, o := range opts {
		if o == nil {
			continue
		}
		focused := ""
		if o.Focused {
			focused = " (focused)"
		}
		fmt.Fprintf(w, "  %s = %v%s\n", o.Name, o.Value, focused)
	}
}
