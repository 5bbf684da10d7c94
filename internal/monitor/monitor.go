package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"lieferplaner/internal/logs"
	"lieferplaner/internal/notify"
	"lieferplaner/internal/records"
)

// Result is the outcome of one classification pass.
type Result struct {
	Overdue []records.WorkItemRecord
	DueSoon []records.WorkItemRecord
	State   notify.State
}

// Classify selects the records that are newly eligible for a notification today
// and returns the updated state. The input state is not modified.
func Classify(recs []records.WorkItemRecord, state notify.State, today time.Time) Result {
	res := Result{State: state.Clone()}
	todayStr := today.Format(notify.DateLayout)

	for _, r := range recs {
		if !r.Monitored() {
			continue
		}
		urgency, _, ok := records.DueDateUrgency(r.DueDate, today)
		if !ok {
			continue
		}

		var condition string
		switch urgency {
		case records.Overdue:
			condition = notify.ConditionOverdue
		case records.DueSoon:
			condition = notify.ConditionDueSoon
		default:
			continue
		}

		key := notify.Key(r.ItemKey(), condition)
		if res.State[key] == todayStr {
			continue
		}
		res.State[key] = todayStr
		if condition == notify.ConditionOverdue {
			res.Overdue = append(res.Overdue, r)
		} else {
			res.DueSoon = append(res.DueSoon, r)
		}
	}
	return res
}

// Message is one aggregate notification.
type Message struct {
	Title string
	Body  string
}

const previewLimit = 4

// Messages renders the aggregate notifications for res, overdue first.
func Messages(appName string, res Result) []Message {
	var msgs []Message
	if len(res.Overdue) > 0 {
		msgs = append(msgs, Message{
			Title: appName + " – OVERDUE",
			Body:  summary(fmt.Sprintf("%d relevant open item(s) overdue", len(res.Overdue)), res.Overdue),
		})
	}
	if len(res.DueSoon) > 0 {
		msgs = append(msgs, Message{
			Title: fmt.Sprintf("%s – due within %d days", appName, records.DueSoonDays),
			Body:  summary(fmt.Sprintf("%d relevant open item(s) due within %d days", len(res.DueSoon), records.DueSoonDays), res.DueSoon),
		})
	}
	return msgs
}

func summary(head string, recs []records.WorkItemRecord) string {
	var b strings.Builder
	b.WriteString(head)
	for i, r := range recs {
		if i == previewLimit {
			b.WriteString("\n…")
			break
		}
		ref := r.WorkOrderRef
		if ref == "" {
			ref = "-"
		}
		fmt.Fprintf(&b, "\n%s • %s", ref, r.DueDate)
	}
	return b.String()
}

// RecordSource supplies the current records.
type RecordSource interface {
	Load() []records.WorkItemRecord
}

// StateStore persists notification state.
type StateStore interface {
	Load() notify.State
	Save(notify.State) error
}

// Monitor runs classification passes against the record store.
type Monitor struct {
	records  RecordSource
	state    StateStore
	notifier notify.Notifier
	appName  string
	now      func() time.Time

	// held for a whole pass so concurrent passes see each other's state
	mu sync.Mutex
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithAppName sets the prefix of notification titles.
func WithAppName(name string) Option {
	return func(m *Monitor) { m.appName = name }
}

func New(src RecordSource, state StateStore, notifier notify.Notifier, opts ...Option) *Monitor {
	m := &Monitor{
		records:  src,
		state:    state,
		notifier: notifier,
		appName:  "Lieferplaner",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunOnce performs one pass: load, classify, notify, persist.
// State is saved even when nothing fired. Passes never overlap.
func (m *Monitor) RunOnce() Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.records.Load()
	state := m.state.Load()

	res := Classify(recs, state, m.now())

	for _, msg := range Messages(m.appName, res) {
		notify.Show(m.notifier, msg.Title, msg.Body)
	}

	if err := m.state.Save(res.State); err != nil {
		logs.Logger.Printf("monitor: could not save notification state: %v", err)
	}

	logs.Logger.Printf("monitor: %d records, %d overdue, %d due soon newly notified",
		len(recs), len(res.Overdue), len(res.DueSoon))
	return res
}

// Start runs a pass immediately and then every interval until ctx is done.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	m.RunOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RunOnce()
		}
	}
}
