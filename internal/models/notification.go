package models

import "time"

type NotificationKind int

const (
	Success NotificationKind = iota
	Error
)

func (k NotificationKind) String() string {
	if k == Success {
		return "success"
	}
	return "error"
}

// Notification is a transient status message shown to the user
type Notification struct {
	ID        string
	Kind      NotificationKind
	Text      string
	CreatedAt time.Time
}
