package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/taoky/accesstat/pkg/analyze"
	"github.com/taoky/accesstat/pkg/parser"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <item>",
		Short: "List various items",
		Args:  cobra.NoArgs,
		RunE:  showHelp,
	}
	cmd.AddCommand(listMethodsCmd(), listSortKeysCmd())
	return cmd
}

func newListTable(cmd *cobra.Command) *tablewriter.Table {
	return tablewriter.NewTable(
		cmd.OutOrStdout(),
		tablewriter.WithHeaderAutoWrap(tw.WrapNone),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		// Use two-space padding between columns.
		tablewriter.WithPadding(tw.Padding{
			Right:     "  ",
			Overwrite: true,
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
	)
}

func listMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List accepted HTTP methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := newListTable(cmd)
			table.Header("Method")
			for _, m := range parser.Methods {
				if err := table.Append([]string{m}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func listSortKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort-keys",
		Short: "List ranking keys accepted by --sort-by",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := newListTable(cmd)
			table.Header("Key")
			for _, k := range analyze.ListSortFuncs() {
				if err := table.Append([]string{k.String()}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
