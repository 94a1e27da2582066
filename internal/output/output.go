package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Rorical/missionchat/internal/models"
)

// UI prints colored, line-oriented output for the one-shot commands.
type UI struct {
	Out    io.Writer
	ErrOut io.Writer
}

// New creates a UI with default stdout/stderr writers.
func New() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	cyan          = color.New(color.FgHiCyan).SprintFunc()
	yellow        = color.New(color.FgHiYellow).SprintFunc()
)

// Cyan returns a cyan-colored string.
func Cyan(s string) string { return cyan(s) }

// Yellow returns a yellow-colored string.
func Yellow(s string) string { return yellow(s) }

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Notifications prints each notification with the prefix for its kind.
func (u *UI) Notifications(ns []models.Notification) {
	for _, n := range ns {
		if n.Kind == models.Success {
			u.Success("%s", n.Text)
		} else {
			u.Error("%s", n.Text)
		}
	}
}

// Transcript renders turns as a table, oldest first.
func (u *UI) Transcript(turns []models.Turn) error {
	table := u.Table([]string{"TIME", "ROLE", "TEXT"})
	for _, turn := range turns {
		role := turn.Role.String()
		if turn.Role == models.User {
			role = Cyan(role)
		} else {
			role = Yellow(role)
		}
		if err := table.Append([]string{turn.CreatedAt.Format("15:04"), role, turn.Text}); err != nil {
			return err
		}
	}
	return table.Render()
}

// Table creates a new tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}
