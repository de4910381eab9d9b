// Package dateutils provides date parsing and window arithmetic for
// transaction queries.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts used by the bank export and the CLI.
const (
	LayoutOperation      = "02.01.2006 15:04:05"
	LayoutOperationShort = "02.01.2006 15:04"
	LayoutDay            = "02.01.2006"
	LayoutISO            = "2006-01-02"
	LayoutISOFull        = "2006-01-02 15:04:05"
	LayoutMonth          = "2006-01"
)

var whitespace = regexp.MustCompile(`\s+`)

// operationLayouts are tried in order by ParseOperationDate.
var operationLayouts = []string{
	LayoutOperation,
	LayoutOperationShort,
	LayoutDay,
	LayoutISOFull,
}

// dayLayouts are tried in order by ParseDay.
var dayLayouts = []string{
	LayoutDay,
	LayoutISO,
}

// CleanDateString trims and collapses runs of whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseOperationDate parses an operation timestamp in local time.
func ParseOperationDate(value string) (time.Time, error) {
	return parseWith(value, operationLayouts)
}

// ParseDay parses a user-supplied day (DD.MM.YYYY or YYYY-MM-DD).
func ParseDay(value string) (time.Time, error) {
	return parseWith(value, dayLayouts)
}

func parseWith(value string, layouts []string) (time.Time, error) {
	clean := CleanDateString(value)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, clean, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

// StartOfDay returns midnight of date's day.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfDay returns the last nanosecond of date's day.
func EndOfDay(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Monday of date's week.
func StartOfWeek(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return StartOfDay(date).AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// StartOfYear returns January 1st of date's year.
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}

// NormalizeMonthSelector turns "YYYY.MM" or "YYYY-MM" into "YYYY-MM".
func NormalizeMonthSelector(month string) (string, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(month), ".", "-")
	if _, err := time.Parse(LayoutMonth, clean); err != nil {
		return "", fmt.Errorf("invalid month selector %q, expected YYYY-MM", month)
	}
	return clean, nil
}

// DateRange is an inclusive time window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within [Start, End].
func (dr DateRange) Contains(t time.Time) bool {
	return !t.Before(dr.Start) && !t.After(dr.End)
}

// String returns the range as "DD.MM.YYYY-DD.MM.YYYY".
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s-%s", dr.Start.Format(LayoutDay), dr.End.Format(LayoutDay))
}

// TrailingDays returns [StartOfDay(ref) - days, EndOfDay(ref)].
func TrailingDays(ref time.Time, days int) DateRange {
	return DateRange{
		Start: StartOfDay(ref).AddDate(0, 0, -days),
		End:   EndOfDay(ref),
	}
}
