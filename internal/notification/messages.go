package notification

import (
	"fmt"
	"html"
	"strings"

	"go-hr-portal/internal/events"
)

func EmployeeWelcome(e events.EmployeeCreatedEvent) Message {
	text := fmt.Sprintf("Welcome %s, your employee number is %s. Sign in with %s.", e.FullName, e.EmployeeNumber, e.Email)
	return Message{
		To:      e.Email,
		Subject: "Welcome to the HR portal",
		Text:    text,
		HTML:    "<p>" + html.EscapeString(text) + "</p>",
	}
}

func LeaveStatusChanged(e events.LeaveStatusChangedEvent) Message {
	text := fmt.Sprintf("Your leave request from %s to %s was %s.", e.StartDate, e.EndDate, strings.ToLower(e.Status))
	if e.ApproverNotes != "" {
		text += " Notes: " + e.ApproverNotes
	}
	return Message{
		To:      e.EmployeeEmail,
		Subject: fmt.Sprintf("Leave request %s", strings.ToLower(e.Status)),
		Text:    text,
		HTML:    "<p>" + html.EscapeString(text) + "</p>",
	}
}
