package notification_test

import (
	"context"
	"testing"

	"go-hr-portal/internal/events"
	"go-hr-portal/internal/notification"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEmployeeWelcome(t *testing.T) {
	msg := notification.EmployeeWelcome(events.EmployeeCreatedEvent{
		FullName:       "Ana <Lee>",
		EmployeeNumber: "EMP-000007",
		Email:          "ana@acme.test",
	})

	assert.Equal(t, "ana@acme.test", msg.To)
	assert.Contains(t, msg.Text, "EMP-000007")
	assert.Contains(t, msg.HTML, "Ana &lt;Lee&gt;")
}

func TestLeaveStatusChanged(t *testing.T) {
	msg := notification.LeaveStatusChanged(events.LeaveStatusChangedEvent{
		EmployeeEmail: "bo@acme.test",
		Status:        "REJECTED",
		StartDate:     "2025-01-10",
		EndDate:       "2025-01-12",
		ApproverNotes: "team offsite",
	})

	assert.Equal(t, "bo@acme.test", msg.To)
	assert.Equal(t, "Leave request rejected", msg.Subject)
	assert.Contains(t, msg.Text, "2025-01-10 to 2025-01-12 was rejected")
	assert.Contains(t, msg.Text, "team offsite")
}

func TestLogSender(t *testing.T) {
	s := notification.NewLogSender(zap.NewNop())
	assert.True(t, s.SendEmail(context.Background(), notification.Message{To: "x@acme.test"}))
}
