package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/memories/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
	lo = &options.LinkOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "memories",
		Short: base.Wrap80("A weekly memory for two, written from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddLinkArgs(cmd, lo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addOpen(topLevel)
	addWeeks(topLevel)
	addWrite(topLevel)
	addGoals(topLevel)
	addUnlinked(topLevel)
	addAdmin(topLevel)
	addUI(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
