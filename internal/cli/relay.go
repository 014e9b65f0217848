package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ghostreach/internal/infra/mail"
	"github.com/xavierca1/ghostreach/internal/infra/queue"
)

func (a *app) relayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Deliver messages queued by the amqp sender over SMTP",
		Long: "Consumes the outreach queue and delivers each message over SMTP. " +
			"Without smtp.host messages are only logged. Failed deliveries go to the dead-letter queue.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rabbit, err := queue.NewRabbitMQ(a.settings.AMQP.URL)
			if err != nil {
				return err
			}
			defer rabbit.Close()

			var deliverer queue.Deliverer = mail.NewLogSender(a.log)
			if a.settings.SMTP.Host != "" {
				deliverer = a.newEmailSender()
			}

			return queue.NewWorker(rabbit.Ch, deliverer, a.log).Start(ctx, queue.QueueName)
		},
	}
}
