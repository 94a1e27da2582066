package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/missionchat/internal/app"
	"github.com/Rorical/missionchat/internal/core"
	"github.com/Rorical/missionchat/internal/output"
)

// newUI is swapped in tests to capture output.
var newUI = output.New

var uploadCmd = &cobra.Command{
	Use:          "upload <file.pdf>",
	Short:        "Launch a PDF into the mission service",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *core.ChatService, ui *output.UI) error {
			if err := svc.SelectFile(args[0]); err != nil {
				ui.Notifications(svc.Snapshot().Notifications)
				return err
			}
			if doc := svc.Snapshot().Staged; doc != nil {
				ui.Info("Staged %s (%s)", doc.Name, doc.DisplaySize())
			}
			err := svc.Upload(cmd.Context())
			ui.Notifications(svc.Snapshot().Notifications)
			return err
		})
	},
}

var askCmd = &cobra.Command{
	Use:          "ask <question>",
	Short:        "Ask a question about the ingested document",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		return withService(func(svc *core.ChatService, ui *output.UI) error {
			err := svc.Ask(cmd.Context(), question)
			if renderErr := ui.Transcript(svc.Snapshot().Turns); renderErr != nil {
				return renderErr
			}
			return err
		})
	},
}

var resetCmd = &cobra.Command{
	Use:          "reset",
	Short:        "Clear the conversation on the mission service",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *core.ChatService, ui *output.UI) error {
			err := svc.Reset(cmd.Context())
			ui.Notifications(svc.Snapshot().Notifications)
			return err
		})
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the session identifier and active server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		ui := newUI()
		id := rt.Identity.GetOrCreate(cmd.Context())
		ui.Info("Session: %s", output.Cyan(id))
		if rt.Identity.Degraded() {
			ui.Error("Identity store unavailable, this session id lasts for this run only")
		}
		ui.Info("Profile: %s (%s)", rt.Config.ActiveProfile, rt.Config.GetBaseURL())
		ui.Info("Store: %s", rt.Config.StoreDriver)
		ui.Info("Config: %s", rt.Config.Dir())
		return nil
	},
}

// withService runs fn against a headless ChatService built from the active profile.
func withService(fn func(*core.ChatService, *output.UI) error) error {
	rt, err := app.NewRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if !rt.Config.IsValid() {
		return fmt.Errorf("invalid base URL %q in profile %s", rt.Config.GetBaseURL(), rt.Config.ActiveProfile)
	}

	svc := rt.NewService()
	svc.Start()
	defer svc.Stop()

	return fn(svc, newUI())
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(sessionCmd)
}
