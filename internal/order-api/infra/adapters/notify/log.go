package notify

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

var _ ports.Sender = (*LogSender)(nil)

// LogSender writes messages to the structured log instead of delivering
// them. It never fails.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, msg ports.Message) error {
	s.logger.InfoContext(ctx, "email logged",
		slog.String("message_id", msg.ID),
		slog.String("from", msg.From),
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
