package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"EquityScope/internal/notifier"
	"EquityScope/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the watchlist scheduler and Telegram bot",
	Long: `Runs the cron watchlist job and answers Telegram commands
(/analyze, /compare, /history, /watchlist) until interrupted.`,
	RunE: runServe,
}

var serveRunNow bool

func init() {
	serveCmd.Flags().BoolVar(&serveRunNow, "run-now", false, "Analyze the watchlist once on start (also RUN_ON_START=true)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, a.service, tn, a.store, cfg.Watchlist)
	if err := sched.Register(cfg.Schedule.WatchlistCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	polling := make(chan struct{})
	go func() {
		defer close(polling)
		tn.StartPolling(ctx, sched.HandleCommand)
	}()
	log.Info().Msg("telegram polling started")

	if serveRunNow || os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("running watchlist task now")
		sched.RunWatchlistAsync()
	}

	log.Info().Msg("EquityScope is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
	<-polling
	return nil
}
