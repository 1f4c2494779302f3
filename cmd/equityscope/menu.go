package main

import (
	"os"

	"github.com/spf13/cobra"

	"EquityScope/internal/cli"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return cli.NewMenu(os.Stdin, cmd.OutOrStdout(), a.service, a.store).Run(cmd.Context())
}
