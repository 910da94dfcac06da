package main

import (
	"fmt"
	"log/slog"

	"github.com/jcmexdev/fitforge-orders/internal/config"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/notify"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/rabbitmq"
)

// newNotifier builds the primary and fallback senders. The RabbitMQ
// connection is shared when both use it and is released by the returned
// close function.
func newNotifier(cfg config.NotifyConfig) (*notify.Notifier, func(), error) {
	var mq *rabbitmq.Client
	closeAll := func() {
		if mq != nil {
			mq.Close()
		}
	}

	build := func(name string) (ports.Sender, error) {
		switch name {
		case config.SenderResend:
			return notify.NewResendSender(cfg.ResendAPIKey, cfg.ResendURL), nil
		case config.SenderAMQP:
			if mq == nil {
				client, err := rabbitmq.Dial(cfg.RabbitMQURL, notify.Exchange)
				if err != nil {
					return nil, err
				}
				mq = client
			}
			return notify.NewAMQPSender(mq), nil
		case config.SenderLog:
			return notify.NewLogSender(slog.Default()), nil
		default:
			return nil, fmt.Errorf("unknown sender %q", name)
		}
	}

	primary, err := build(cfg.Primary)
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("primary sender: %w", err)
	}
	fallback, err := build(cfg.Fallback)
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("fallback sender: %w", err)
	}

	slog.Info("notifier ready", "primary", primary.Name(), "fallback", fallback.Name())
	return notify.NewNotifier(primary, fallback, notify.Config{
		From:          cfg.From,
		FallbackFrom:  cfg.FallbackFrom,
		BusinessEmail: cfg.BusinessEmail,
	}, slog.Default()), closeAll, nil
}
