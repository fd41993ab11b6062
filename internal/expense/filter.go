package expense

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	minWeeks = 1
	maxWeeks = 12
)

// ListFilter is the compiled read-path predicate set. All clauses are
// optional except the owner scope and compose by logical AND; weeks and
// from/to are independent and intersect when both are present (kept from
// the historical behavior on purpose).
type ListFilter struct {
	UserID   string
	Category string

	// WindowStart is non-zero when a weeks clause was supplied; the window
	// is [WindowStart, Now].
	WindowStart time.Time
	Now         time.Time

	// From/To are inclusive day bounds, already normalized to start/end of
	// day in UTC. Zero means unset.
	From time.Time
	To   time.Time

	Page  int
	Limit int
}

// Offset is the number of records skipped before the current page.
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

var ErrWeeksOutOfRange = errors.New("Weeks must be between 1 and 12")

// ParseListQuery compiles raw query parameters into a ListFilter. The owner
// scope is attached by the caller after resolution. Out-of-range and
// unparseable inputs are validation errors, never silently clamped.
func ParseListQuery(q map[string]string, now time.Time) (*ListFilter, error) {
	now = now.UTC()
	f := &ListFilter{
		Category: strings.TrimSpace(q["category"]),
		Now:      now,
		Page:     defaultPage,
		Limit:    defaultLimit,
	}

	if raw, ok := nonEmpty(q, "weeks"); ok {
		weeks, err := strconv.Atoi(raw)
		if err != nil || weeks < minWeeks || weeks > maxWeeks {
			return nil, ErrWeeksOutOfRange
		}
		f.WindowStart = now.AddDate(0, 0, -7*weeks)
	}

	if raw, ok := nonEmpty(q, "from"); ok {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("Invalid from date, expected YYYY-MM-DD")
		}
		f.From = startOfDay(day)
	}

	if raw, ok := nonEmpty(q, "to"); ok {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("Invalid to date, expected YYYY-MM-DD")
		}
		f.To = endOfDay(day)
	}

	if raw, ok := nonEmpty(q, "page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, errors.New("Page must be a positive integer")
		}
		f.Page = page
	}

	if raw, ok := nonEmpty(q, "limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, errors.New("Limit must be a positive integer")
		}
		f.Limit = limit
	}

	return f, nil
}

// whereClause renders the filter as a parameterized SQL predicate. Argument
// numbering starts at 1.
func (f *ListFilter) whereClause() (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{f.UserID}

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("category ILIKE '%%' || $%d || '%%'", f.Category)
	}
	if !f.WindowStart.IsZero() {
		add("transaction_date >= $%d", f.WindowStart)
		add("transaction_date <= $%d", f.Now)
	}
	if !f.From.IsZero() {
		add("transaction_date >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("transaction_date <= $%d", f.To)
	}

	return strings.Join(conds, " AND "), args
}

func nonEmpty(q map[string]string, key string) (string, bool) {
	v := strings.TrimSpace(q[key])
	return v, v != ""
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)
}
