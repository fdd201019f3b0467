package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taoky/accesstat/pkg/analyze"
	"github.com/taoky/accesstat/pkg/util"
)

func runAnalyze(cmd *cobra.Command, filename string, config analyze.AnalyzerConfig) error {
	analyzer, err := analyze.NewAnalyzer(config, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer analyzer.Close()
	outputter, err := analyze.GetOutputter(config.Output)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	report, err := analyzer.AnalyzeFile(filename)
	if err != nil {
		return err
	}
	if report.Empty() && config.Output == analyze.OutputTable {
		fmt.Fprintf(cmd.OutOrStdout(), "No records match the filter criteria (%s); %d records parsed.\n",
			report.Filter, report.ParsedRecords)
		return nil
	}
	return outputter.Print(cmd.OutOrStdout(), report, analyze.OutputContext{
		Truncate: config.Truncate,
		NoColor:  config.NoColor,
	})
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyze <filename>",
		Aliases: []string{"analyse"},
		Short:   "Parse the whole log file and print a traffic report",
		Args:    cobra.ExactArgs(1),
	}
	config := analyze.DefaultConfig()
	config.InstallFlags(cmd.Flags())

	var cpuProfile, memProfile string
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	cmd.Flags().StringVar(&memProfile, "memprofile", "", "Write memory profile to file")
	cmd.Flags().MarkHidden("cpuprofile")
	cmd.Flags().MarkHidden("memprofile")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		run := func() error {
			return runAnalyze(cmd, args[0], config)
		}
		var err error
		if cpuProfile != "" {
			err = util.RunCPUProfile(cpuProfile, run)
		} else {
			err = run()
		}
		if memProfile != "" {
			if merr := util.MemProfile(memProfile); merr != nil && err == nil {
				err = fmt.Errorf("write memory profile: %w", merr)
			}
		}
		return err
	}
	return cmd
}
