package main

import (
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/internal/scheduler"
	"github.com/AbdulWasayUl/country-explorer/services"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Keep the country and GDP caches fresh until interrupted",
	Long:  "Refetches the country list and the GDP of the most populous countries on a schedule. Entries are written to the state backend, where every other command reads them.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		top, _ := cmd.Flags().GetInt("top")
		once, _ := cmd.Flags().GetBool("once")
		interval, _ := cmd.Flags().GetDuration("interval")
		requestTimeout, _ := cmd.Flags().GetDuration("request-timeout")
		if interval <= 0 {
			interval = cfg.WarmInterval
		}

		jobs := []scheduler.SchedulableService{services.NewCacheWarmer(data, top, requestTimeout)}

		sch, err := scheduler.New()
		if err != nil {
			return eris.Wrap(err, "warm: scheduler")
		}

		if once {
			sch.RunImmediateJob(ctx, jobs)
			return nil
		}

		if err := sch.StartJob(ctx, interval, jobs); err != nil {
			return eris.Wrap(err, "warm: start")
		}
		logger.Info("Refreshing caches every %s. Press Ctrl+C to stop.", interval)

		<-ctx.Done()
		logger.Info("Received interrupt signal. Shutting down gracefully...")
		sch.Stop()
		logger.Info("Shutdown complete.")
		return nil
	},
}

func init() {
	warmCmd.Flags().Int("top", 20, "most populous countries whose GDP is kept warm")
	warmCmd.Flags().Duration("interval", 0, "refresh period (0 = WARM_INTERVAL)")
	warmCmd.Flags().Bool("once", false, "refresh once and exit")
	warmCmd.Flags().Duration("request-timeout", 30*time.Second, "limit for each GDP request (0 = none)")
	rootCmd.AddCommand(warmCmd)
}
