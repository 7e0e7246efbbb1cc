package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/memories/pkg/runner/admin"
)

func addAdmin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	username := ""
	password := ""
	login := &cobra.Command{
		Use:   "login",
		Short: "Exchange admin credentials for a token and save it.",
		Example: `
memories admin login --username ana
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			l := admin.Login{
				Service:  e.Service,
				Username: username,
				Password: password,
				Out:      cmd.OutOrStdout(),
			}
			return l.Do(cmd.Context())
		},
	}
	login.Flags().StringVarP(&username, "username", "u", "", "Admin user name.")
	login.Flags().StringVarP(&password, "password", "p", "", "Admin password. Prompted for when empty.")
	_ = login.MarkFlagRequired("username")

	cmd.AddCommand(login)
	topLevel.AddCommand(cmd)
}
