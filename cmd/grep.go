package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taoky/accesstat/pkg/grep"
)

func grepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grep <filename>...",
		Short: "Print the log lines whose records match the filter",
		Args:  cobra.MinimumNArgs(1),
	}
	config := grep.DefaultConfig()
	config.InstallFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		g, err := grep.New(config, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		for _, filename := range args {
			if err := g.GrepFile(filename); err != nil {
				return err
			}
		}
		return nil
	}
	return cmd
}
