package notify

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"lieferplaner/internal/logs"
)

// ErrNoSender is returned by a ShoutrrrNotifier created without URLs.
var ErrNoSender = errors.New("no notification sender configured")

// Notifier displays or delivers one notification.
type Notifier interface {
	Notify(title, body string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, body string) error

func (f NotifierFunc) Notify(title, body string) error {
	return f(title, body)
}

// Show delivers a notification and swallows any failure after logging it.
func Show(n Notifier, title, body string) {
	if n == nil {
		return
	}
	if err := n.Notify(title, body); err != nil {
		logs.Logger.Printf("notify: %q not shown: %v", title, err)
	}
}

// Multi fans a notification out to several notifiers. Every notifier is tried.
type Multi []Notifier

func (m Multi) Notify(title, body string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(title, body string) error {
	logs.Logger.Printf("notification: %s: %s", title, body)
	return nil
}

// ShoutrrrNotifier pushes notifications to shoutrrr service URLs
// (ntfy, gotify, teams, telegram, smtp, ...).
type ShoutrrrNotifier struct {
	urls   []string
	sender *router.ServiceRouter
}

// NewShoutrrrNotifier builds a sender for urls. An empty list yields a notifier
// whose Notify returns ErrNoSender.
func NewShoutrrrNotifier(urls []string, timeout time.Duration) (*ShoutrrrNotifier, error) {
	n := &ShoutrrrNotifier{urls: slices.Clone(urls)}
	if len(urls) == 0 {
		return n, nil
	}
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("create notification sender: %w", err)
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))
	n.sender = sender
	return n, nil
}

func (s *ShoutrrrNotifier) Notify(title, body string) error {
	if s.sender == nil {
		return ErrNoSender
	}
	params := stypes.Params{}
	if title != "" {
		params.SetTitle(title)
	}
	for _, err := range s.sender.Send(body, &params) {
		if err != nil {
			return fmt.Errorf("send notification: %w", err)
		}
	}
	return nil
}
