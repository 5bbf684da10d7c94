package cli

import (
	"io"
	"time"

	"lieferplaner/internal/catalog"
	"lieferplaner/internal/config"
	"lieferplaner/internal/desktop"
	"lieferplaner/internal/locator"
	"lieferplaner/internal/logs"
	"lieferplaner/internal/monitor"
	"lieferplaner/internal/notify"
	"lieferplaner/internal/records"
)

// services is the wiring shared by every command.
type services struct {
	cfg      *config.Config
	records  *records.Store
	state    *notify.StateStore
	notifier notify.Multi
	monitor  *monitor.Monitor
	locator  *locator.Locator
}

func buildNotifier(cfg *config.Config) notify.Multi {
	n := notify.Multi{notify.LogNotifier{}}
	if cfg.DesktopNotifications {
		n = append(n, desktop.NewToaster())
	}
	if len(cfg.NotifyURLs) > 0 {
		s, err := notify.NewShoutrrrNotifier(cfg.NotifyURLs, 10*time.Second)
		if err != nil {
			logs.Logger.Printf("Warning: remote notifications disabled: %v", err)
		} else {
			n = append(n, s)
		}
	}
	return n
}

func newServices(cfg *config.Config, promptOut io.Writer) *services {
	s := &services{
		cfg:      cfg,
		records:  records.NewStore(cfg.RecordsPath()),
		state:    notify.NewStateStore(cfg.NotifyStatePath()),
		notifier: buildNotifier(cfg),
	}
	s.monitor = monitor.New(s.records, s.state, s.notifier, monitor.WithAppName(cfg.AppName))
	s.locator = s.newLocator(&desktop.ConsolePrompter{W: promptOut})
	return s
}

// newLocator builds a locator reporting unreachable roots through p.
func (s *services) newLocator(p desktop.Prompter) *locator.Locator {
	return locator.New(s.cfg.DrawingRoots, catalog.NewStore(s.cfg.CatalogPath()),
		locator.WithNotifier(s.notifier),
		locator.WithPrompter(p),
		locator.WithAppName(s.cfg.AppName),
	)
}
