// Package notification delivers outbound email. Senders report success as a
// bool and never return errors to callers; failures are logged.
package notification

import "context"

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

//go:generate mockgen -source=notification.go -destination=mock/sender_mock.go -package=mock

type Sender interface {
	SendEmail(ctx context.Context, msg Message) bool
}
