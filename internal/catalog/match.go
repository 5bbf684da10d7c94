package catalog

import (
	"regexp"
	"strings"
)

var (
	tmNumberPattern   = regexp.MustCompile(`(?i)\bTM\d{5,}\b`)
	longNumberPattern = regexp.MustCompile(`\b\d{7,}\b`)
)

// ExtractSearchKey picks the token of a position text that identifies its drawing:
// a TM number, else a run of 7+ digits, else the first word. It returns "" when
// the text is blank.
func ExtractSearchKey(positionText string) string {
	txt := strings.TrimSpace(positionText)

	if m := tmNumberPattern.FindString(txt); m != "" {
		return strings.ToUpper(m)
	}
	if m := longNumberPattern.FindString(txt); m != "" {
		return m
	}
	if words := strings.Fields(txt); len(words) > 0 {
		return words[0]
	}
	return ""
}

// Query holds the normalized forms of a search key.
type Query struct {
	Lower string
	Alpha string
}

// NewQuery normalizes key once for all matchers.
func NewQuery(key string) Query {
	return Query{Lower: strings.ToLower(key), Alpha: NormalizeAlphaNum(key)}
}

// Matcher decides whether an entry satisfies a query.
type Matcher struct {
	Name  string
	Match func(q Query, e Entry) bool
}

// Matchers are tried in order and the first one with any hit decides the result.
// Exact file-name hits come before path and alphanumeric hits so that loose
// matches never shadow a precise one.
var Matchers = []Matcher{
	{
		Name: "name",
		Match: func(q Query, e Entry) bool {
			return q.Lower != "" && strings.Contains(e.NameLower, q.Lower)
		},
	},
	{
		Name: "path",
		Match: func(q Query, e Entry) bool {
			return q.Lower != "" && strings.Contains(e.PathLower, q.Lower) && hasDrawingExt(e.NameLower)
		},
	},
	{
		Name: "alnum-name",
		Match: func(q Query, e Entry) bool {
			return q.Alpha != "" && strings.Contains(e.AlphaNumericKey, q.Alpha)
		},
	},
	{
		Name: "alnum-path",
		Match: func(q Query, e Entry) bool {
			return q.Alpha != "" && strings.Contains(NormalizeAlphaNum(e.PathLower), q.Alpha)
		},
	},
}

func hasDrawingExt(nameLower string) bool {
	return strings.HasSuffix(nameLower, ".stp") || strings.HasSuffix(nameLower, ".step")
}

// Match is the winning entry and the matcher that found it.
type Match struct {
	Entry   Entry
	Matcher string
}

// Resolve scans the catalog once per matcher and returns the first hit in
// catalog order for the first matcher that has one.
func Resolve(key string, c *Catalog) (Match, bool) {
	if key == "" || c == nil {
		return Match{}, false
	}
	q := NewQuery(key)
	for _, m := range Matchers {
		for _, e := range c.Files {
			if m.Match(q, e) {
				return Match{Entry: e, Matcher: m.Name}, true
			}
		}
	}
	return Match{}, false
}
