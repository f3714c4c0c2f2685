package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hal/mention-go/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "mention",
		Short: "Mention social listening from the command line",
		Long: `A CLI for the Mention API. Manage alerts, browse and curate the
mentions they pick up, and get a quick overview of every alert's
recent activity.

Authentication uses the MENTION_ACCESS_TOKEN environment variable.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Initialize(opts.Verbosity, os.Stderr)
		},
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.Account, "account", "a", "", "Account ID (defaults to MENTION_ACCOUNT_ID or config)")
	pf.StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	pf.IntVar(&opts.TimeoutSeconds, "timeout", 0, "Per-request timeout in seconds")
	pf.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(NewCmdAppData(opts))
	rootCmd.AddCommand(NewCmdAlerts(opts))
	rootCmd.AddCommand(NewCmdMentions(opts))
	rootCmd.AddCommand(NewCmdOverview(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
