package commands

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/memories/pkg/commands/options"
	"tableflip.dev/memories/pkg/runner/write"
)

func addWrite(topLevel *cobra.Command) {
	wk := ""

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "Write this week's memory.",
		Long: base.Wrap80(`Send the memory for the current week. With no arguments the text is
read from standard input. --week opens a past pending week first; the
server still files the text under its current week.`),
		Example: `
memories write Fuimos a la playa y comimos paella
echo "Cena con amigos" | memories write
memories write --week 2025-12-29 Un domingo tranquilo
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if text, err = readStdin(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			w := write.Write{
				Service: e.Service,
				Link:    lo.Value(),
				Text:    text,
				Week:    wk,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			err = w.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	cmd.Flags().StringVar(&wk, "week", "", "Monday of a past pending week to write, as YYYY-MM-DD.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

var errNoText = errors.New("nothing to write: pass the text as arguments or on standard input")

// readStdin reads the memory from in unless in is an interactive terminal.
func readStdin(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", errNoText
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}
