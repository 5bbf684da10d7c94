package cli

import (
	"context"

	"github.com/spf13/cobra"

	"lieferplaner/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	prompter := tui.NewPrompter()
	deps := tui.Deps{
		Records:  app.records,
		Locator:  app.newLocator(prompter),
		Monitor:  app.monitor,
		AppName:  app.cfg.AppName,
		Interval: app.cfg.MonitorInterval,
	}
	return tui.Run(cmd.Context(), deps, prompter, func(ctx context.Context) {
		app.monitor.Start(ctx, app.cfg.MonitorInterval)
	})
}
