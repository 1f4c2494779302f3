package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"EquityScope/internal/reports"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List saved reports",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

func init() {
	reportsCmd.AddCommand(reportsShowCmd)
}

func runReportsList(cmd *cobra.Command, args []string) error {
	list, err := reports.NewStore(cfg.Reports.Dir).List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No saved reports found.")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(out, "%-48s %s  %6d bytes\n", r.Name, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Size)
	}
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	text, err := reports.NewStore(cfg.Reports.Dir).Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
