package expense

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

func TestParseListQuery_Defaults(t *testing.T) {
	f, err := ParseListQuery(map[string]string{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Page != 1 || f.Limit != 10 {
		t.Errorf("defaults = page %d, limit %d, want 1, 10", f.Page, f.Limit)
	}
	if f.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", f.Offset())
	}
	if f.Category != "" || !f.WindowStart.IsZero() || !f.From.IsZero() || !f.To.IsZero() {
		t.Error("no clauses should be set for an empty query")
	}
}

func TestParseListQuery_Weeks(t *testing.T) {
	tests := []struct {
		name    string
		weeks   string
		wantErr bool
	}{
		{"lower bound", "1", false},
		{"upper bound", "12", false},
		{"zero", "0", true},
		{"negative", "-3", true},
		{"too large", "15", true},
		{"not a number", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseListQuery(map[string]string{"weeks": tt.weeks}, testNow)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Error() != "Weeks must be between 1 and 12" {
					t.Errorf("error = %q, want weeks range message", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.WindowStart.IsZero() {
				t.Fatal("WindowStart should be set")
			}
		})
	}
}

func TestParseListQuery_WeeksWindow(t *testing.T) {
	f, err := ParseListQuery(map[string]string{"weeks": "2"}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := testNow.AddDate(0, 0, -14)
	if !f.WindowStart.Equal(want) {
		t.Errorf("WindowStart = %v, want %v", f.WindowStart, want)
	}
	if !f.Now.Equal(testNow) {
		t.Errorf("Now = %v, want %v", f.Now, testNow)
	}
}

func TestParseListQuery_DateBounds(t *testing.T) {
	f, err := ParseListQuery(map[string]string{"from": "2026-08-01", "to": "2026-08-15"}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !f.From.Equal(wantFrom) {
		t.Errorf("From = %v, want start of day %v", f.From, wantFrom)
	}

	wantTo := time.Date(2026, 8, 15, 23, 59, 59, 999000000, time.UTC)
	if !f.To.Equal(wantTo) {
		t.Errorf("To = %v, want end of day %v", f.To, wantTo)
	}
}

func TestParseListQuery_BadDates(t *testing.T) {
	for _, q := range []map[string]string{
		{"from": "15-08-2026"},
		{"to": "notadate"},
	} {
		if _, err := ParseListQuery(q, testNow); err == nil {
			t.Errorf("ParseListQuery(%v) should fail", q)
		}
	}
}

func TestParseListQuery_Pagination(t *testing.T) {
	f, err := ParseListQuery(map[string]string{"page": "3", "limit": "20"}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Offset() != 40 {
		t.Errorf("Offset() = %d, want 40", f.Offset())
	}

	// limit=0 would break the page-count arithmetic, so it is rejected.
	for _, q := range []map[string]string{
		{"limit": "0"},
		{"limit": "-5"},
		{"page": "0"},
		{"page": "x"},
	} {
		if _, err := ParseListQuery(q, testNow); err == nil {
			t.Errorf("ParseListQuery(%v) should fail", q)
		}
	}
}

func TestParseListQuery_WeeksAndDatesCombine(t *testing.T) {
	f, err := ParseListQuery(map[string]string{"weeks": "4", "from": "2026-01-01"}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.WindowStart.IsZero() || f.From.IsZero() {
		t.Error("weeks and from should both be compiled when both are supplied")
	}
}

func TestWhereClause(t *testing.T) {
	f, err := ParseListQuery(map[string]string{
		"category": "food",
		"weeks":    "1",
		"from":     "2026-08-01",
		"to":       "2026-08-20",
	}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.UserID = "user-1"

	where, args := f.whereClause()

	if !strings.HasPrefix(where, "user_id = $1") {
		t.Errorf("owner scope must be the first clause, got %q", where)
	}
	if got := strings.Count(where, " AND "); got != 5 {
		t.Errorf("clause count = %d, want 6 conjuncts", got+1)
	}
	if len(args) != 6 {
		t.Fatalf("args = %d, want 6", len(args))
	}
	if args[0] != "user-1" {
		t.Errorf("args[0] = %v, want owner id", args[0])
	}
	if !strings.Contains(where, "category ILIKE") {
		t.Errorf("missing category clause in %q", where)
	}
}

func TestWhereClause_OwnerOnly(t *testing.T) {
	f, _ := ParseListQuery(map[string]string{}, testNow)
	f.UserID = "user-1"

	where, args := f.whereClause()
	if where != "user_id = $1" || len(args) != 1 {
		t.Errorf("where = %q args = %v, want owner scope only", where, args)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{3, 1, 3},
	}
	for _, tt := range tests {
		if got := pageCount(tt.total, tt.limit); got != tt.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
