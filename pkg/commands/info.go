package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/memories/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the configuration and where tokens are stored.",
		Example: `
memories info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			s := info.Info{
				Config: e.Config,
				Store:  e.Store,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
