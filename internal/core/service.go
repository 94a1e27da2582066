package core

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Rorical/missionchat/internal/eventbus"
	"github.com/Rorical/missionchat/internal/models"
	"github.com/Rorical/missionchat/internal/notify"
)

// ChatService wires the coordinators together and, when attached to an
// EventBus, serves UI events and pushes snapshots back to the UI.
type ChatService struct {
	state         *ChatState
	notifications *notify.Queue
	identity      IdentityProvider
	upload        *UploadCoordinator
	conversation  *ConversationCoordinator
	session       *SessionController
	eventBus      *eventbus.EventBus
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup

	mu      sync.Mutex
	stopped bool

	// sendMu orders snapshots: the one taken last is the one delivered last.
	sendMu sync.Mutex
}

type ServiceOption func(*serviceConfig)

type serviceConfig struct {
	eventBus   *eventbus.EventBus
	logger     *zap.Logger
	notifyOpts []notify.Option
}

// WithEventBus attaches the service to the UI.
func WithEventBus(eb *eventbus.EventBus) ServiceOption {
	return func(c *serviceConfig) { c.eventBus = eb }
}

func WithLogger(l *zap.Logger) ServiceOption {
	return func(c *serviceConfig) { c.logger = l }
}

// WithNotifyOptions is passed through to the notification queue.
func WithNotifyOptions(opts ...notify.Option) ServiceOption {
	return func(c *serviceConfig) { c.notifyOpts = append(c.notifyOpts, opts...) }
}

func NewChatService(mission Mission, identity IdentityProvider, opts ...ServiceOption) *ChatService {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cs := &ChatService{
		state:    NewChatState(),
		identity: identity,
		eventBus: cfg.eventBus,
		logger:   cfg.logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	notifyOpts := append([]notify.Option{notify.WithOnChange(cs.pushStateToUI)}, cfg.notifyOpts...)
	cs.notifications = notify.New(notifyOpts...)
	cs.state.OnChange(cs.pushStateToUI)

	cs.upload = NewUploadCoordinator(cs.state, mission, cs.notifications, cs.logger.Named("upload"))
	cs.conversation = NewConversationCoordinator(cs.state, mission, identity, cs.logger.Named("conversation"))
	cs.session = NewSessionController(cs.state, mission, identity, cs.notifications, cs.logger.Named("session"))

	return cs
}

// Start pushes the initial state and starts serving UI events.
func (cs *ChatService) Start() {
	cs.identity.GetOrCreate(cs.ctx)
	cs.pushStateToUI()
	if cs.eventBus != nil {
		cs.wg.Add(1)
		go cs.eventLoop()
	}
}

// Stop cancels in-flight calls and waits for them to settle.
func (cs *ChatService) Stop() {
	cs.cancel()
	cs.wg.Wait()

	cs.mu.Lock()
	cs.stopped = true
	cs.mu.Unlock()
	cs.notifications.Close()
}

func (cs *ChatService) SelectFile(path string) error {
	return cs.upload.SelectPath(path)
}

func (cs *ChatService) Upload(ctx context.Context) error {
	return cs.upload.Submit(ctx)
}

func (cs *ChatService) Ask(ctx context.Context, question string) error {
	return cs.conversation.Ask(ctx, question)
}

func (cs *ChatService) Reset(ctx context.Context) error {
	return cs.session.Reset(ctx)
}

func (cs *ChatService) Dismiss(id string) bool {
	return cs.notifications.Dismiss(id)
}

// Snapshot returns a consistent copy of the current state.
func (cs *ChatService) Snapshot() models.Snapshot {
	return models.Snapshot{
		SessionID:     cs.identity.GetOrCreate(cs.ctx),
		Turns:         cs.state.Turns(),
		Staged:        cs.state.Staged(),
		Flags:         cs.state.Flags(),
		Notifications: cs.notifications.List(),
	}
}

func (cs *ChatService) eventLoop() {
	defer cs.wg.Done()
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		}
	}
}

func (cs *ChatService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SelectFileEvent:
		_ = cs.SelectFile(e.Path)
	case eventbus.UploadEvent:
		cs.goRun("upload", cs.Upload)
	case eventbus.AskEvent:
		cs.goRun("ask", func(ctx context.Context) error { return cs.Ask(ctx, e.Question) })
	case eventbus.ResetEvent:
		cs.goRun("reset", cs.Reset)
	case eventbus.DismissNotificationEvent:
		cs.Dismiss(e.ID)
	}
}

// goRun runs a remote operation off the event loop so independent operations can overlap.
func (cs *ChatService) goRun(op string, fn func(ctx context.Context) error) {
	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		if err := fn(cs.ctx); err != nil {
			cs.logger.Debug("operation settled with error", zap.String("op", op), zap.Error(err))
		}
	}()
}

func (cs *ChatService) pushStateToUI() {
	if cs.eventBus == nil {
		return
	}
	cs.mu.Lock()
	stopped := cs.stopped
	cs.mu.Unlock()
	if stopped {
		return
	}

	cs.sendMu.Lock()
	defer cs.sendMu.Unlock()
	if err := cs.eventBus.SendToUI(eventbus.StateUpdateEvent{Snapshot: cs.Snapshot()}); err != nil {
		cs.logger.Warn("error sending state to UI", zap.Error(err))
	}
}
