package cmd

import (
	"github.com/spf13/cobra"
)

func showHelp(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "accesstat",
		Short: "Traffic statistics for plain six-field web server access logs",
		Long: `Reads a log whose lines look like

  timestamp ip_address http_method url status_code response_size

and reports request counts, top clients and URLs, method and status
distributions and the activity of the last 24 hours.`,
		Args: cobra.NoArgs,
		RunE: showHelp,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	rootCmd.AddCommand(
		analyzeCmd(),
		grepCmd(),
		listCmd(),
	)
	return rootCmd
}
