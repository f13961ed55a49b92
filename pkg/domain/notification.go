package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity selects how a notification is styled.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// NotificationState is the lifecycle stage of a notification.
type NotificationState int

const (
	NotificationVisible NotificationState = iota
	NotificationFading
)

// Notification is a transient, auto-dismissing message shown to the operator.
type Notification struct {
	ID        uuid.UUID
	Title     string
	Message   string
	Severity  Severity
	CreatedAt time.Time
	State     NotificationState
}

// NewNotification returns a visible notification stamped with now.
func NewNotification(title, message string, severity Severity, now time.Time) Notification {
	return Notification{
		ID:        uuid.New(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		State:     NotificationVisible,
	}
}
