package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/Rorical/missionchat/internal/models"
)

// fakeMission records calls. When gate is non-nil every call blocks until it receives a value.
type fakeMission struct {
	mu         sync.Mutex
	ingested   []models.Document
	questions  []string
	sessionIDs []string
	resets     int

	answer    string
	ingestErr error
	askErr    error
	resetErr  error
	gate      chan struct{}
	entered   chan struct{}
}

func (f *fakeMission) wait(ctx context.Context) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
		}
	}
}

func (f *fakeMission) Ingest(ctx context.Context, doc models.Document) error {
	f.mu.Lock()
	f.ingested = append(f.ingested, doc)
	f.mu.Unlock()
	f.wait(ctx)
	return f.ingestErr
}

func (f *fakeMission) Ask(ctx context.Context, question, sessionID string) (string, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.sessionIDs = append(f.sessionIDs, sessionID)
	f.mu.Unlock()
	f.wait(ctx)
	return f.answer, f.askErr
}

func (f *fakeMission) Reset(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	f.resets++
	f.sessionIDs = append(f.sessionIDs, sessionID)
	f.mu.Unlock()
	f.wait(ctx)
	return f.resetErr
}

func (f *fakeMission) calls() (ingests, asks, resets int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ingested), len(f.questions), f.resets
}

type fixedIdentity string

func (f fixedIdentity) GetOrCreate(ctx context.Context) string { return string(f) }

// recordingNotifier keeps every pushed notification.
type recordingNotifier struct {
	mu    sync.Mutex
	items []models.Notification
}

func (r *recordingNotifier) Push(kind models.NotificationKind, text string) models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := models.Notification{ID: text, Kind: kind, Text: text}
	r.items = append(r.items, n)
	return n
}

func (r *recordingNotifier) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.items...)
}

var errBoom = errors.New("connection refused")

func pdfDoc(name string) models.Document {
	return models.Document{Name: name, Path: "/tmp/" + name, Size: 2048, MediaType: models.PDFMediaType}
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}
