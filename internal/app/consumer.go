package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-hr-portal/internal/config"
	"go-hr-portal/internal/messaging/kafka/consumer"
	"go-hr-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer mails employees about lifecycle and leave events until
// SIGINT/SIGTERM. Without an SMTP relay the mails are only logged.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return errors.New("kafka.broker is required")
	}

	var sender notification.Sender = notification.NewLogSender(logger)
	if cfg.Mail.Enabled() {
		smtp, err := notification.NewSMTPSender(cfg.Mail, logger)
		if err != nil {
			return err
		}
		sender = smtp
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupTopics:    consumer.NotificationTopics,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeNotifications(ctx, reader, sender, logger)

	logger.Info("consumer shut down")
	return nil
}
