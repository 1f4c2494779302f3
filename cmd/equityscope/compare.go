package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/notifier"
)

var compareCmd = &cobra.Command{
	Use:   "compare SYMBOL SYMBOL [SYMBOL...]",
	Short: "Compare 2 to 5 stocks side by side",
	Args:  cobra.RangeArgs(analyzer.MinCompare, analyzer.MaxCompare),
	RunE:  runCompare,
}

var compareRank bool

func init() {
	compareCmd.Flags().BoolVar(&compareRank, "rank", false, "Order columns by score, highest first")
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.service.Compare(cmd.Context(), args)
	if err != nil {
		return err
	}
	if compareRank {
		entries = analyzer.RankByScore(entries)
	}
	fmt.Fprint(cmd.OutOrStdout(), notifier.FormatComparison(entries))
	return nil
}
