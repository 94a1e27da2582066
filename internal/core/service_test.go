package core

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/missionchat/internal/eventbus"
	"github.com/Rorical/missionchat/internal/models"
	"github.com/Rorical/missionchat/internal/notify"
)

// waitForSnapshot drains the UI channel until cond holds for a snapshot or the timeout hits.
func waitForSnapshot(t *testing.T, eb *eventbus.EventBus, cond func(models.Snapshot) bool) models.Snapshot {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			if update, ok := ev.(eventbus.StateUpdateEvent); ok && cond(update.Snapshot) {
				return update.Snapshot
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func TestChatService_AskThroughEventBus(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := &fakeMission{answer: "It is a summary."}
	svc := NewChatService(m, fixedIdentity("sid-1"), WithEventBus(eb))
	svc.Start()
	defer svc.Stop()

	initial := waitForSnapshot(t, eb, func(s models.Snapshot) bool { return true })
	assert.Equal(t, "sid-1", initial.SessionID)
	assert.Empty(t, initial.Turns)

	require.NoError(t, eb.SendToCore(eventbus.AskEvent{Question: "What is the summary?"}))

	final := waitForSnapshot(t, eb, func(s models.Snapshot) bool {
		return !s.Flags.Asking && len(s.Turns) == 2
	})
	assert.Equal(t, "What is the summary?", final.Turns[0].Text)
	assert.Equal(t, "It is a summary.", final.Turns[1].Text)
}

func TestChatService_UploadScenario(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := &fakeMission{}
	svc := NewChatService(m, fixedIdentity("sid-1"), WithEventBus(eb))
	svc.Start()
	defer svc.Stop()

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%%EOF\n"), 0644))

	require.NoError(t, eb.SendToCore(eventbus.SelectFileEvent{Path: path}))
	require.NoError(t, eb.SendToCore(eventbus.UploadEvent{}))

	final := waitForSnapshot(t, eb, func(s models.Snapshot) bool {
		return !s.Flags.Ingesting && len(s.Notifications) == 1
	})
	assert.Equal(t, models.Success, final.Notifications[0].Kind)
	require.NotNil(t, final.Staged)
	assert.Equal(t, "report.pdf", final.Staged.Name)
}

func TestChatService_DismissNotification(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	svc := NewChatService(&fakeMission{}, fixedIdentity("sid-1"), WithEventBus(eb))
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.UploadEvent{}))
	withToast := waitForSnapshot(t, eb, func(s models.Snapshot) bool { return len(s.Notifications) == 1 })

	require.NoError(t, eb.SendToCore(eventbus.DismissNotificationEvent{ID: withToast.Notifications[0].ID}))
	waitForSnapshot(t, eb, func(s models.Snapshot) bool { return len(s.Notifications) == 0 })
}

func TestChatService_NotificationsExpire(t *testing.T) {
	svc := NewChatService(&fakeMission{}, fixedIdentity("sid-1"),
		WithNotifyOptions(notify.WithTTL(20*time.Millisecond)))
	defer svc.Stop()

	assert.Error(t, svc.Upload(context.Background()))
	require.Len(t, svc.Snapshot().Notifications, 1)

	assert.Eventually(t, func() bool { return len(svc.Snapshot().Notifications) == 0 },
		time.Second, 5*time.Millisecond)
}

func TestChatService_ResetWithoutBus(t *testing.T) {
	m := &fakeMission{answer: "a"}
	svc := NewChatService(m, fixedIdentity("sid-1"))
	defer svc.Stop()
	ctx := context.Background()

	require.NoError(t, svc.Ask(ctx, "q"))
	require.Len(t, svc.Snapshot().Turns, 2)

	require.NoError(t, svc.Reset(ctx))
	snap := svc.Snapshot()
	assert.Empty(t, snap.Turns)
	assert.Equal(t, "sid-1", snap.SessionID)
}

// The last snapshot the UI receives must match the settled state even when
// mutations land from many goroutines at once.
func TestChatService_LastSnapshotMatchesState(t *testing.T) {
	for trial := 0; trial < 200; trial++ {
		eb := eventbus.NewEventBus()
		svc := NewChatService(&fakeMission{answer: "It is a summary."}, fixedIdentity("sid-1"),
			WithEventBus(eb), WithNotifyOptions(notify.WithTTL(time.Hour)))

		var (
			mu   sync.Mutex
			last models.Snapshot
		)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for ev := range eb.CoreToUI() {
				if update, ok := ev.(eventbus.StateUpdateEvent); ok {
					mu.Lock()
					last = update.Snapshot
					mu.Unlock()
				}
			}
		}()
		svc.Start()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				svc.notifications.Push(models.Success, "ping")
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Ask(context.Background(), "What is the summary?")
		}()
		wg.Wait()

		want := svc.Snapshot()
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return assert.ObjectsAreEqual(want, last)
		}, time.Second, 5*time.Millisecond, "trial %d: UI left on a stale snapshot", trial)

		svc.Stop()
		eb.Close()
		<-done
	}
}
