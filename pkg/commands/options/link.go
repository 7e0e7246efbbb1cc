package options

import (
	"github.com/spf13/cobra"
)

// LinkOptions selects the access token for a command.
type LinkOptions struct {
	Link  string
	Token string
}

// AddLinkArgs registers --link and --token on cmd and its subcommands.
func AddLinkArgs(cmd *cobra.Command, o *LinkOptions) {
	cmd.PersistentFlags().StringVarP(&o.Link, "link", "l", "",
		"Access link from the email, as pasted. Defaults to the saved token.")
	cmd.PersistentFlags().StringVarP(&o.Token, "token", "t", "",
		"Access token. Shorthand for --link '?token=<value>'.")
}

// Value is the link to resolve: --token wins over --link.
func (o *LinkOptions) Value() string {
	if o.Token != "" {
		return o.Token
	}
	return o.Link
}
