package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/memories/pkg/commands/options"
	"tableflip.dev/memories/pkg/runner/weeks"
)

func addWeeks(topLevel *cobra.Command) {
	calendar := false

	cmd := &cobra.Command{
		Use:     "weeks",
		Aliases: []string{"ls"},
		Short:   "Show this week and the past weeks with their memories.",
		Example: `
memories weeks
memories weeks --calendar
memories weeks --token ABC --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			w := weeks.Weeks{
				Service:  e.Service,
				Link:     lo.Value(),
				JSON:     oo.JSON,
				Calendar: calendar,
				Out:      cmd.OutOrStdout(),
			}
			err = w.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Show the year as a calendar of written weeks.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
