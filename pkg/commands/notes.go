package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/commands/options"
	"tableflip.dev/memories/pkg/runner/notes"
)

func addGoals(topLevel *cobra.Command) {
	addNotes(topLevel, authority.Goals, "goals", "Shared goals: list, add and remove.")
}

func addUnlinked(topLevel *cobra.Command) {
	addNotes(topLevel, authority.Unlinked, "unlinked", "Memories not tied to a week: list, add and remove.")
}

func addNotes(topLevel *cobra.Command, kind authority.Kind, use, short string) {
	run := func(cmd *cobra.Command, n notes.Notes) error {
		cmd.SilenceUsage = true
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()

		n.Service = e.Service
		n.Link = lo.Value()
		n.Kind = kind
		n.JSON = oo.JSON
		n.Out = cmd.OutOrStdout()
		err = n.Do(cmd.Context())
		return oo.HandleError(err)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: fmt.Sprintf(`
memories %[1]s
memories %[1]s add Viajar a Lisboa
memories %[1]s rm 3
`, use),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, notes.Notes{Action: notes.List})
		},
	}
	options.AddOutputArg(cmd, oo)

	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add an entry.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, notes.Notes{Action: notes.Add, Text: strings.Join(args, " ")})
		},
	}
	options.AddOutputArg(add, oo)

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove an entry by id.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return run(cmd, notes.Notes{Action: notes.Remove, ID: id})
		},
	}
	options.AddOutputArg(rm, oo)

	cmd.AddCommand(add, rm)
	topLevel.AddCommand(cmd)
}
