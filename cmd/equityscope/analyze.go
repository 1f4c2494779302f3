package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"EquityScope/internal/notifier"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Analyze a single stock",
	Long:  `Fetches data for one NSE (.NS) or BSE (.BO) symbol and prints the full report.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var analyzeSave bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the report under the reports directory")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.service.AnalyzeSymbol(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	report := notifier.FormatAnalysisReport(res)
	fmt.Fprint(cmd.OutOrStdout(), report)

	if analyzeSave {
		path, err := a.store.Save(res.Symbol, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved: %s\n", path)
	}
	return nil
}
