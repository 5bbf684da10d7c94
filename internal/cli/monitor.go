package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one due-date pass now and notify newly due items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := app.monitor.RunOnce()
		fmt.Fprintf(cmd.OutOrStdout(), "%d overdue, %d due within 7 days (newly notified)\n", len(res.Overdue), len(res.DueSoon))
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the due-date monitor until interrupted",
	Long: `Run the due-date monitor once immediately and then every monitor
interval until SIGINT or SIGTERM. Each item is notified at most once per day
and condition, no matter how often the monitor runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, cmd)
	},
}

func watch(ctx context.Context, cmd *cobra.Command) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s every %s\n", app.records.Path(), app.cfg.MonitorInterval)
	app.monitor.Start(ctx, app.cfg.MonitorInterval)
	return nil
}

func init() {
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(watchCmd)
}
