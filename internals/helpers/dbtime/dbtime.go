package dbtime

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location is the institute's local zone (APP_TIMEZONE, default Asia/Colombo).
// Month keys for payment schedules are computed in this zone.
func Location() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = "Asia/Colombo"
		}
		l, err := time.LoadLocation(name)
		if err != nil {
			l = time.UTC
		}
		loc = l
	})
	return loc
}

func Now() time.Time { return time.Now().In(Location()) }

// ParseDate accepts "YYYY-MM-DD" or a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.ParseInLocation(DateLayout, s, Location()); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format(DateLayout)
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

func MonthKey(t time.Time) string {
	return t.In(Location()).Format(MonthLayout)
}

// MonthSequence returns n consecutive YYYY-MM keys starting at from's month.
func MonthSequence(from time.Time, n int) []string {
	from = from.In(Location())
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, Location())
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, first.AddDate(0, i, 0).Format(MonthLayout))
	}
	return out
}
