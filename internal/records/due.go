package records

import (
	"regexp"
	"strconv"
	"time"
)

// Urgency classifies a due date relative to today.
type Urgency int

const (
	NotDue Urgency = iota
	DueSoon
	Overdue
)

func (u Urgency) String() string {
	switch u {
	case Overdue:
		return "overdue"
	case DueSoon:
		return "dueSoon"
	default:
		return "notDue"
	}
}

// DueSoonDays is the inclusive window, in days from today, that counts as due soon.
const DueSoonDays = 7

var (
	shortDatePattern = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{2})$`)
	longDatePattern  = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})$`)
)

// ParseDueDate accepts DD.MM.YY (year 2000+YY) or DD.MM.YYYY at the very end
// of s. Out-of-range days and months roll over, so 31.06.24 is 01.07.24.
func ParseDueDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	var day, month, year int
	if m := shortDatePattern.FindStringSubmatch(s); m != nil {
		day, month, year = atoi(m[1]), atoi(m[2]), 2000+atoi(m[3])
	} else if m := longDatePattern.FindStringSubmatch(s); m != nil {
		day, month, year = atoi(m[1]), atoi(m[2]), atoi(m[3])
	} else {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// DaysUntil counts calendar days from today to due; time of day is ignored.
func DaysUntil(due, today time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(t).Hours() / 24)
}

// Classify maps a day distance onto an Urgency.
func Classify(daysUntil int) Urgency {
	switch {
	case daysUntil < 0:
		return Overdue
	case daysUntil <= DueSoonDays:
		return DueSoon
	default:
		return NotDue
	}
}

// DueDateUrgency parses dueDate and classifies it against today.
// ok is false when the date cannot be parsed; such records are not monitored.
func DueDateUrgency(dueDate string, today time.Time) (u Urgency, days int, ok bool) {
	due, ok := ParseDueDate(dueDate)
	if !ok {
		return NotDue, 0, false
	}
	days = DaysUntil(due, today)
	return Classify(days), days, true
}
