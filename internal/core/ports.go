package core

import (
	"context"

	"github.com/Rorical/missionchat/internal/models"
)

// Mission is the remote ingest/query/reset service.
type Mission interface {
	Ingest(ctx context.Context, doc models.Document) error
	Ask(ctx context.Context, question, sessionID string) (string, error)
	Reset(ctx context.Context, sessionID string) error
}

// Notifier receives user-facing status messages.
type Notifier interface {
	Push(kind models.NotificationKind, text string) models.Notification
}

// IdentityProvider hands out the session identifier every remote call is tagged with.
type IdentityProvider interface {
	GetOrCreate(ctx context.Context) string
}
