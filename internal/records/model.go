package records

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// WorkItemRecord is one delivery line as the planner UI stores it.
// JSON names follow the on-disk document the UI writes.
type WorkItemRecord struct {
	DocumentRef    string     `json:"Beleg"`
	WorkOrderRef   string     `json:"BA"`
	ArticleRef     string     `json:"Artikel"`
	PositionText   string     `json:"Position"`
	OpenStatusCode StatusCode `json:"Offene"`
	DueDate        string     `json:"Liefertermin"`
	Done           Flag       `json:"Done"`
	Arrived        Flag       `json:"Arrived"`
}

// StatusCode is the "/"-separated list of open workflow stages.
// The UI writes it either as a string or as a bare number.
type StatusCode string

func (s *StatusCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StatusCode(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// any other shape carries no stage information
		*s = ""
		return nil
	}
	*s = StatusCode(n.String())
	return nil
}

// Flag is true only when the document holds the literal true.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	*f = Flag(bytes.Equal(bytes.TrimSpace(b), []byte("true")))
	return nil
}

const (
	relevantMin = 600
	relevantMax = 699
	// 640 is a sub-stage that never needs follow-up.
	relevantExcluded = 640
)

// IsRelevant reports whether any stage in code lies in [600, 699] other than 640.
// Non-numeric tokens are ignored.
func IsRelevant(code string) bool {
	if code == "" {
		return false
	}
	for _, tok := range strings.Split(code, "/") {
		n, ok := leadingInt(tok)
		if !ok {
			continue
		}
		if n >= relevantMin && n <= relevantMax && n != relevantExcluded {
			return true
		}
	}
	return false
}

var leadingIntPattern = regexp.MustCompile(`^\s*[+-]?\d+`)

// leadingInt parses the integer prefix of tok, so "605 " and "605a" both yield 605.
func leadingInt(tok string) (int, bool) {
	m := leadingIntPattern.FindString(tok)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0, false
	}
	return n, true
}

const positionKeyLimit = 120

// whitespaceRun also covers \v, no-break and other Unicode spaces.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// ItemKey identifies a record for notification dedup. It is never stored on the record.
func (r WorkItemRecord) ItemKey() string {
	pos := []rune(r.PositionText)
	if len(pos) > positionKeyLimit {
		pos = pos[:positionKeyLimit]
	}
	posKey := whitespaceRun.ReplaceAllString(string(pos), " ")
	return strings.Join([]string{r.WorkOrderRef, r.DocumentRef, r.ArticleRef, posKey}, "::")
}

// Monitored reports whether the monitor should look at the record at all.
func (r WorkItemRecord) Monitored() bool {
	if r.Done || r.Arrived {
		return false
	}
	return IsRelevant(string(r.OpenStatusCode))
}
