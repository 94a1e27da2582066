package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/missionchat/internal/core"
	"github.com/Rorical/missionchat/internal/dispatcher"
	"github.com/Rorical/missionchat/internal/eventbus"
	"github.com/Rorical/missionchat/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	runtime    *Runtime
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ChatService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

func NewApplication() (*Application, error) {
	rt, err := NewRuntime()
	if err != nil {
		return nil, err
	}

	eb := eventbus.NewEventBus()
	busLogger := rt.Logger.Named("eventbus")
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		busLogger.Warn("event bus failure",
			zap.String("op", e.Operation),
			zap.Error(e.Err),
			zap.String("breaker", eb.GetCircuitBreakerState().String()))
	})
	disp := dispatcher.NewEventDispatcher(eb)
	chatService := rt.NewService(core.WithEventBus(eb))

	return &Application{
		runtime:    rt,
		eventBus:   eb,
		dispatcher: disp,
		service:    chatService,
		model:      NewAppModel(disp),
	}, nil
}

// NewAppModel returns the Bubble Tea model. State arrives from the core as
// snapshots, so it starts empty.
func NewAppModel(disp *dispatcher.EventDispatcher) *AppModel {
	return &AppModel{
		appModel: models.AppModel{
			Status: "Ready",
		},
		dispatcher: disp,
	}
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
	app.runtime.Close()
}
