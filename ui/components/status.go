package components

import (
	"strings"

	"github.com/Rorical/missionchat/internal/models"
	"github.com/Rorical/missionchat/ui/styles"
)

func RenderStatus(status string, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}

	return statusStyle.Render(statusContent)
}

// RenderHeader shows the session and the staged document, if any.
func RenderHeader(snap models.Snapshot) string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle().Render("-- MISSIONCHAT -- session " + shortID(snap.SessionID)))
	b.WriteString("\n")

	if doc := snap.Staged; doc != nil {
		line := "Staged: " + doc.Name + " (" + doc.DisplaySize() + ")"
		if snap.Flags.Ingesting {
			line += " - launching"
		} else {
			line += " - ready, /upload to ingest"
		}
		b.WriteString(styles.StagedStyle().Render(line))
	} else {
		b.WriteString(styles.HintStyle().Render("No document staged"))
	}
	b.WriteString("\n\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
