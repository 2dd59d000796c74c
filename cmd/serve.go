package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/vocabreview/internal/notify"
	"github.com/example/vocabreview/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the due-items reminder job",
		RunE: func(cmd *cobra.Command, args []string) error {
			once, _ := cmd.Flags().GetBool("once")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var notifier scheduler.Notifier
			if a.cfg.Telegram.Token != "" {
				tg, err := notify.NewTelegramNotifier(a.cfg.Telegram.Token, a.log)
				if err != nil {
					return err
				}
				notifier = tg
			} else {
				a.log.Warn("telegram.token is not set, reminders will only be logged")
				notifier = notify.NewLogNotifier(a.log)
			}

			sched := scheduler.New(a.cfg.SchedulerConfig(), a.learners, a.reviews, notifier, a.log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if once {
				sent, err := sched.CheckReminders(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reminders sent: %d\n", sent)
				return nil
			}

			if err := sched.Start(); err != nil {
				return err
			}
			<-ctx.Done()
			a.log.Info("shutdown signal received")
			sched.Stop()
			return nil
		},
	}
	cmd.Flags().Bool("once", false, "run a single reminder check and exit")
	return cmd
}
