package models

import "time"

type Role int

const (
	User Role = iota
	Assistant
)

func (r Role) String() string {
	switch r {
	case User:
		return "user"
	case Assistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// PendingTurnID marks the placeholder assistant turn of an in-flight question.
const PendingTurnID = "pending"

// Turn is one entry of the conversation transcript
type Turn struct {
	ID        string
	Role      Role
	Text      string
	CreatedAt time.Time
}

// IsPending reports whether the turn is the loading placeholder
func (t Turn) IsPending() bool {
	return t.ID == PendingTurnID
}
