package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/missionchat/internal/update"
	"github.com/Rorical/missionchat/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Core events re-arm the listener.
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.dispatcher.GetEventBus())
	return m, cmd
}

func (m *AppModel) View() string {
	snap := m.appModel.Snapshot
	var b strings.Builder

	b.WriteString(components.RenderHeader(snap))
	b.WriteString(components.RenderMessages(snap.Turns, m.appModel.LoadingDots))
	b.WriteString(components.RenderNotifications(snap.Notifications))
	b.WriteString(components.RenderInput(m.appModel.Input, snap.Flags.Asking, m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.Busy(), m.appModel.LoadingDots, m.appModel.Width))

	return b.String()
}
