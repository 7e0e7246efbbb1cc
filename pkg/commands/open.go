package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/memories/pkg/commands/options"
	"tableflip.dev/memories/pkg/runner/open"
)

func addOpen(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "open [link]",
		Short: "Check an access link and remember its token.",
		Long: base.Wrap80(`Check the token in an access link with the server. A valid token is
saved for later commands; a rejected one is forgotten. Legacy /token/<value>
links are accepted and their shareable form is printed.`),
		Example: `
memories open 'https://recuerdos.example/?token=ABC'
memories open ABC
memories open --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			link := lo.Value()
			if len(args) == 1 {
				link = args[0]
			}
			o := open.Open{
				Service: e.Service,
				Link:    link,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			err = o.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
