package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmarket/internal/app"
	"jobmarket/internal/ingestion"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch every configured source once and store new jobs",
	RunE:  runIngest,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run ingestion on the configured cron schedule until interrupted",
	RunE:  runSchedule,
}

var (
	ingestTimeout time.Duration
	scheduleSpec  string
)

func init() {
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 30*time.Minute, "Abort the run after this long")
	scheduleCmd.Flags().StringVar(&scheduleSpec, "spec", "", "Cron spec overriding INGEST_SCHEDULE")
	scheduleCmd.Flags().DurationVar(&ingestTimeout, "timeout", 30*time.Minute, "Abort each run after this long")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	c, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if ingestTimeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, ingestTimeout)
		defer timeoutCancel()
	}

	reports, err := c.Ingestion.Run(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	c, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	spec := scheduleSpec
	if spec == "" {
		spec = cfg.Ingestion.Schedule
	}
	s, err := ingestion.NewScheduler(spec, c.Ingestion, ingestTimeout)
	if err != nil {
		return err
	}
	s.Start()
	log.WithField("spec", spec).Info("ingestion scheduler started")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()

	log.Info("waiting for running ingestion to finish")
	<-s.Stop().Done()
	return nil
}
