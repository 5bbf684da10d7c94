package records

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestIsRelevant(t *testing.T) {
	cases := map[string]bool{
		"640":         false,
		"605/640":     true,
		"abc":         false,
		"":            false,
		"600":         true,
		"699":         true,
		"599/700":     false,
		"abc/ 612":    true,
		"640/640/641": true,
		"6O5":         false,
	}
	for code, want := range cases {
		if got := IsRelevant(code); got != want {
			t.Errorf("IsRelevant(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestDueDateUrgency(t *testing.T) {
	today := time.Date(2024, 6, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		due      string
		urgency  Urgency
		days     int
		parsable bool
	}{
		{"03.06.24", Overdue, -7, true},
		{"17.06.2024", DueSoon, 7, true},
		{"18.06.2024", NotDue, 8, true},
		{"10.06.24", DueSoon, 0, true},
		{"KW24 09.06.24", Overdue, -1, true},
		{"", NotDue, 0, false},
		{"2024-06-17", NotDue, 0, false},
		{"31.05.24", Overdue, -10, true},
		{"31.06.24", NotDue, 21, true},
		{"10.06.24 ", NotDue, 0, false},
	}

	for _, tt := range tests {
		u, days, ok := DueDateUrgency(tt.due, today)
		if ok != tt.parsable {
			t.Errorf("%q: parsable = %v, want %v", tt.due, ok, tt.parsable)
			continue
		}
		if !ok {
			continue
		}
		if u != tt.urgency || days != tt.days {
			t.Errorf("%q: got (%v, %d), want (%v, %d)", tt.due, u, days, tt.urgency, tt.days)
		}
	}
}

func TestParseDueDate_RollsOver(t *testing.T) {
	d, ok := ParseDueDate("31.02.2024")
	if !ok {
		t.Fatal("expected date to parse")
	}
	if want := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Errorf("expected %v, got %v", want, d)
	}
}

func TestParseDueDate_TwoDigitYearIsThisCentury(t *testing.T) {
	d, ok := ParseDueDate("01.01.99")
	if !ok {
		t.Fatal("expected date to parse")
	}
	if d.Year() != 2099 {
		t.Errorf("expected 2099, got %d", d.Year())
	}
}

func TestItemKey_UnicodeSpaces(t *testing.T) {
	a := WorkItemRecord{WorkOrderRef: "BA-7", PositionText: "Pos\u00a0TM000195055\u2009Hauptteil"}
	b := WorkItemRecord{WorkOrderRef: "BA-7", PositionText: "Pos TM000195055 Hauptteil"}
	if a.ItemKey() != b.ItemKey() {
		t.Errorf("expected equal keys, got %q and %q", a.ItemKey(), b.ItemKey())
	}
}

func TestItemKey(t *testing.T) {
	r := WorkItemRecord{
		DocumentRef:  "B-1",
		WorkOrderRef: "BA-7",
		ArticleRef:   "A-3",
		PositionText: "Pos  TM000195055\n\tHauptteil",
	}
	want := "BA-7::B-1::A-3::Pos TM000195055 Hauptteil"
	if got := r.ItemKey(); got != want {
		t.Errorf("ItemKey() = %q, want %q", got, want)
	}

	r.PositionText = strings.Repeat("x", 200)
	key := r.ItemKey()
	if !strings.HasSuffix(key, "::"+strings.Repeat("x", 120)) {
		t.Errorf("expected position prefix of 120 chars, got %q", key)
	}
}

func TestRecordDecoding_Tolerant(t *testing.T) {
	raw := []byte(`[
		{"Beleg":"B1","BA":"BA1","Offene":605,"Liefertermin":"03.06.24","Done":true},
		{"Beleg":"B2","BA":"BA2","Offene":"605/640","Arrived":"yes"},
		"not a record",
		{"Beleg":"B3","Offene":{"nested":1}}
	]`)

	recs, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].OpenStatusCode != "605" || !bool(recs[0].Done) {
		t.Errorf("unexpected first record: %+v", recs[0])
	}
	if bool(recs[1].Arrived) {
		t.Error("non-boolean Arrived should count as false")
	}
	if recs[2].OpenStatusCode != "" {
		t.Errorf("expected empty status for object value, got %q", recs[2].OpenStatusCode)
	}
}

func TestStore_LoadMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()

	s := NewStore(filepath.Join(dir, "missing.json"))
	if recs := s.Load(); len(recs) != 0 {
		t.Errorf("expected empty list for missing file, got %d", len(recs))
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if recs := NewStore(bad).Load(); len(recs) != 0 {
		t.Errorf("expected empty list for malformed file, got %d", len(recs))
	}

	obj := filepath.Join(dir, "obj.json")
	os.WriteFile(obj, []byte(`{"Beleg":"B1"}`), 0644)
	if recs := NewStore(obj).Load(); len(recs) != 0 {
		t.Errorf("expected empty list for non-array document, got %d", len(recs))
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rows.json")
	s := NewStore(path)

	in := []WorkItemRecord{
		{DocumentRef: "B1", WorkOrderRef: "BA1", OpenStatusCode: "605", DueDate: "03.06.24"},
		{DocumentRef: "B2", WorkOrderRef: "BA2", Done: true},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save error: %v", err)
	}

	raw, _ := os.ReadFile(path)
	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("saved document is not a JSON array: %v", err)
	}
	if generic[0]["BA"] != "BA1" {
		t.Errorf("expected BA field name on disk, got %v", generic[0])
	}

	out := s.Load()
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[1].Done != true {
		t.Error("expected Done to round-trip")
	}
}
