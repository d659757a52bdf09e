package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hr-portal/internal/events"
	"go-hr-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NotificationTopics lists the topics ConsumeNotifications understands.
var NotificationTopics = []string{
	events.EmployeeCreatedTopic,
	events.LeaveStatusChangedTopic,
}

// ConsumeNotifications turns lifecycle events into emails. Every message is
// committed once handled, whether or not the mail went out: a failed send
// must not block the partition or be retried into duplicate mail.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	sender notification.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		HandleMessage(ctx, msg, sender, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
		}
	}
}

// HandleMessage decodes one message and sends its email. It reports whether
// an email was delivered.
func HandleMessage(ctx context.Context, msg kafkago.Message, sender notification.Sender, log *zap.Logger) bool {
	mail, err := BuildMessage(msg)
	if err != nil {
		log.Error("decode notification event failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return false
	}

	if mail.To == "" {
		log.Warn("notification event without recipient", zap.String("topic", msg.Topic))
		return false
	}

	if !sender.SendEmail(ctx, mail) {
		log.Warn("notification email not delivered",
			zap.String("topic", msg.Topic),
			zap.String("to", mail.To),
		)
		return false
	}

	log.Info("notification email delivered", zap.String("topic", msg.Topic), zap.String("to", mail.To))
	return true
}

func BuildMessage(msg kafkago.Message) (notification.Message, error) {
	switch msg.Topic {
	case events.EmployeeCreatedTopic:
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notification.Message{}, err
		}
		return notification.EmployeeWelcome(event), nil

	case events.LeaveStatusChangedTopic:
		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notification.Message{}, err
		}
		return notification.LeaveStatusChanged(event), nil

	default:
		return notification.Message{}, fmt.Errorf("unsupported topic %q", msg.Topic)
	}
}
