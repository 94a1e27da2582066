package components

import (
	"strings"

	"github.com/Rorical/missionchat/internal/models"
	"github.com/Rorical/missionchat/ui/styles"
)

func RenderNotifications(notifications []models.Notification) string {
	if len(notifications) == 0 {
		return ""
	}

	var b strings.Builder
	for _, n := range notifications {
		if n.Kind == models.Success {
			b.WriteString(styles.SuccessToastStyle().Render("✓ "+n.Text) + "\n")
		} else {
			b.WriteString(styles.ErrorToastStyle().Render("✗ "+n.Text) + "\n")
		}
	}
	return b.String()
}
