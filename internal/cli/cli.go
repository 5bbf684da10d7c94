package cli

import (
	"time"

	"github.com/spf13/cobra"

	"lieferplaner/internal/config"
	"lieferplaner/internal/logs"
)

var (
	Version = "dev"

	flagDataDir  string
	flagRoots    []string
	flagInterval time.Duration

	// skipLogFile keeps log output on stderr; tests set it.
	skipLogFile bool

	app *services
)

// RootCmd starts the interactive record list together with the background
// due-date monitor.
var RootCmd = &cobra.Command{
	Use:     "lieferplaner",
	Version: Version,
	Short:   "Delivery planner: due-date reminders and STEP drawing lookup",
	Long: `lieferplaner watches open work items for due dates and finds the STEP
drawing that belongs to a position text.

Running lieferplaner without a command launches the interactive TUI and the
background monitor.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logs.Close()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&flagDataDir, "data-dir", "", "Directory holding records, notification state and the drawing catalog")
	pf.StringArrayVar(&flagRoots, "root", nil, "Drawing root to probe, in priority order (repeatable)")
	pf.DurationVar(&flagInterval, "interval", 0, "Monitor interval, e.g. 15m")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.CLIFlags{
		DataDir:  flagDataDir,
		Roots:    flagRoots,
		Interval: flagInterval,
	})
	if err != nil {
		return err
	}

	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.Printf("Warning: could not create config file: %v", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}
	if !skipLogFile {
		if err := logs.Initialize(cfg.LogDir); err != nil {
			cmd.PrintErrf("Warning: Could not initialize logger: %v\n", err)
		}
	}

	app = newServices(cfg, cmd.ErrOrStderr())
	return nil
}
