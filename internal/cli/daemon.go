package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/xavierca1/ghostreach/internal/logger"
)

func (a *app) daemonCommand() *cobra.Command {
	flags := &pipelineFlags{}
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the pipeline on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cl := cronLogger{log: a.log}
			c := cron.New(
				cron.WithLogger(cl),
				cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			)

			schedule := a.settings.Schedule
			_, err := c.AddFunc(schedule, func() {
				if err := a.runOnce(ctx, cmd.OutOrStdout(), flags); err != nil {
					return
				}
				a.log.Info("Scheduled run finished")
			})
			if err != nil {
				return fmt.Errorf("invalid schedule %q: %w", schedule, err)
			}

			c.Start()
			a.log.Info("Daemon started", logger.String("schedule", schedule))

			<-ctx.Done()
			a.log.Info("Shutdown signal received, waiting for the current run")
			<-c.Stop().Done()
			return nil
		},
	}
	cmd.Flags().String("schedule", "", `cron expression or descriptor (default "@hourly")`)
	flags.register(cmd)
	return cmd
}
