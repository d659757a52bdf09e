package notification

import (
	"context"
	"fmt"
	"time"

	"go-hr-portal/internal/config"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type smtpSender struct {
	client *mail.Client
	from   string
	log    *zap.Logger
}

func NewSMTPSender(cfg config.MailConfig, logger ...*zap.Logger) (Sender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	log := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0]
	}

	return &smtpSender{client: client, from: cfg.From, log: log.Named("notification.smtp")}, nil
}

func (s *smtpSender) SendEmail(ctx context.Context, msg Message) bool {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		s.log.Error("invalid sender address", zap.String("from", s.from), zap.Error(err))
		return false
	}
	if err := m.To(msg.To); err != nil {
		s.log.Warn("invalid recipient address", zap.String("to", msg.To), zap.Error(err))
		return false
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.log.Error("send email failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return false
	}

	s.log.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return true
}
