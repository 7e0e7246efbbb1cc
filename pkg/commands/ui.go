package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/memories/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui [link]",
		Short: "Open the full screen weeks view.",
		Example: `
memories ui
memories ui 'https://recuerdos.example/?token=ABC'
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := setup(true)
			if err != nil {
				return err
			}
			defer e.Close()

			link := lo.Value()
			if len(args) == 1 {
				link = args[0]
			}
			i := ui.UI{Service: e.Service, Link: link}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
