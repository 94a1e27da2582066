package components

import (
	"github.com/Rorical/missionchat/ui/styles"
)

const placeholder = "Ask about your PDF..."

func RenderInput(input string, disabled bool, width int) string {
	if disabled {
		return styles.DisabledInputStyle(width).Render(input)
	}
	if input == "" {
		return styles.InputStyle(width).Render(styles.TimestampStyle().Render(placeholder))
	}
	return styles.InputStyle(width).Render(input)
}
