package components

import (
	"strings"

	"github.com/Rorical/missionchat/internal/models"
	"github.com/Rorical/missionchat/ui/styles"
)

const (
	emptyHint   = "Launch a PDF and start your conversation! (/open <file.pdf>, then /upload)"
	pendingText = "Thinking"
)

func RenderMessages(turns []models.Turn, loadingDots int) string {
	var b strings.Builder

	if len(turns) == 0 {
		b.WriteString(styles.HintStyle().Render(emptyHint) + "\n\n")
		return b.String()
	}

	userStyle := styles.UserStyle()
	assistantStyle := styles.AssistantStyle()
	pendingStyle := styles.PendingStyle()
	tsStyle := styles.TimestampStyle()

	for _, turn := range turns {
		if turn.IsPending() {
			b.WriteString(pendingStyle.Render(pendingText+strings.Repeat(".", loadingDots)) + "\n\n")
			continue
		}

		stamp := tsStyle.Render(" " + turn.CreatedAt.Format("15:04"))
		switch turn.Role {
		case models.User:
			b.WriteString(userStyle.Render("You: "+turn.Text) + stamp + "\n\n")
		case models.Assistant:
			b.WriteString(assistantStyle.Render("Assistant: "+RenderMarkdown(turn.Text)) + stamp + "\n\n")
		}
	}

	return b.String()
}
