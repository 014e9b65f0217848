package mail

import (
	"context"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
)

// LogSender only logs messages. It is the default so a run never mails
// anyone unless a real sender is configured.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg entity.OutreachMessage) error {
	s.log.Info("Outreach message (dry run)",
		logger.String("message_id", msg.ID),
		logger.String("to", msg.To),
		logger.String("subject", msg.Subject),
		logger.String("body", msg.Body),
	)
	return nil
}
