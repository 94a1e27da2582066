package update

import (
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/missionchat/internal/eventbus"
	"github.com/Rorical/missionchat/internal/models"
)

const HelpText = "/open <file.pdf>  /upload  /reset  /dismiss  /quit  - anything else is a question"

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEnter:
		return submitInput(appModel, eb)
	case tea.KeyEsc:
		if n := appModel.Snapshot.Notifications; len(n) > 0 {
			send(appModel, eb, eventbus.DismissNotificationEvent{ID: n[0].ID})
		}
	case tea.KeyBackspace:
		if r := []rune(appModel.Input); len(r) > 0 {
			appModel.Input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		appModel.Input += " "
	case tea.KeyRunes:
		appModel.Input += string(keyMsg.Runes)
	}
	return nil
}

func submitInput(appModel *models.AppModel, eb *eventbus.EventBus) tea.Cmd {
	line := strings.TrimSpace(appModel.Input)
	if line == "" {
		return nil
	}

	if !strings.HasPrefix(line, "/") {
		// The send control is disabled while an answer is pending; keep the draft.
		if appModel.Snapshot.Flags.Asking {
			appModel.Status = "Waiting for the previous answer"
			return nil
		}
		if send(appModel, eb, eventbus.AskEvent{Question: line}) {
			appModel.Input = ""
		}
		return nil
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "/quit", "/exit":
		return tea.Quit
	case "/open", "/file":
		if arg == "" {
			appModel.Status = "Usage: /open <file.pdf>"
			return nil
		}
		send(appModel, eb, eventbus.SelectFileEvent{Path: expandHome(arg)})
	case "/upload":
		switch {
		case appModel.Snapshot.Staged == nil:
			appModel.Status = "Open a PDF first: /open <file.pdf>"
			return nil
		case appModel.Snapshot.Flags.Ingesting:
			appModel.Status = "Upload already in progress"
			return nil
		}
		send(appModel, eb, eventbus.UploadEvent{})
	case "/reset":
		if appModel.Snapshot.Flags.Resetting {
			return nil
		}
		send(appModel, eb, eventbus.ResetEvent{})
	case "/dismiss":
		for _, n := range appModel.Snapshot.Notifications {
			send(appModel, eb, eventbus.DismissNotificationEvent{ID: n.ID})
		}
	case "/help":
		appModel.Status = HelpText
	default:
		appModel.Status = "Unknown command " + command + " (try /help)"
		return nil
	}

	appModel.Input = ""
	return nil
}

func send(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) bool {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error sending event: " + err.Error()
		return false
	}
	return true
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		// Keep command feedback on screen until an operation starts or settles.
		flagsChanged := event.Snapshot.Flags != appModel.Snapshot.Flags
		appModel.Snapshot = event.Snapshot
		if flagsChanged || appModel.Status == "" {
			appModel.Status = statusFor(event.Snapshot.Flags)
		}
	}
	return nil
}

func statusFor(flags models.Flags) string {
	var parts []string
	if flags.Ingesting {
		parts = append(parts, "Uploading")
	}
	if flags.Asking {
		parts = append(parts, "Thinking")
	}
	if flags.Resetting {
		parts = append(parts, "Resetting")
	}
	if len(parts) == 0 {
		return "Ready"
	}
	return strings.Join(parts, " + ")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Busy() {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
