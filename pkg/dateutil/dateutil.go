// Package dateutil provides date and time helpers: parsing, arithmetic,
// and human-readable formatting.
package dateutil

import (
	"fmt"
	"time"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// DefaultDateLayout is the layout used when callers pass an empty one.
const DefaultDateLayout = "2006-01-02"

// DefaultTimeLayout formats clock times.
const DefaultTimeLayout = "15:04:05"

// Timestamp returns the current Unix time in seconds.
func Timestamp() int64 {
	return time.Now().Unix()
}

// CurrentDate formats today's date. An empty layout selects
// DefaultDateLayout.
func CurrentDate(layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return time.Now().Format(layout)
}

// CurrentTime formats the current clock time. An empty layout selects
// DefaultTimeLayout.
func CurrentTime(layout string) string {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return time.Now().Format(layout)
}

// Parse parses value with the given layout, defaulting to
// DefaultDateLayout.
func Parse(value, layout string) (time.Time, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, pberrors.Wrap(pberrors.ErrCodeInvalidInput, err, "parsing %q", value)
	}
	return t, nil
}

// Format formats t with the given layout, defaulting to DefaultDateLayout.
func Format(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// AddDays returns t shifted by days, which may be negative.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// AddHours returns t shifted by hours, which may be negative.
func AddHours(t time.Time, hours int) time.Time {
	return t.Add(time.Duration(hours) * time.Hour)
}

// Age returns full years elapsed since birth, as of now.
func Age(birth time.Time) int {
	return ageAt(birth, time.Now())
}

func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DayName returns the English weekday name of t.
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// MonthName returns the English month name of t.
func MonthName(t time.Time) string {
	return t.Month().String()
}

// TimeAgo renders how long ago past was, e.g. "3 hours ago". Future times
// come back as "in the future".
func TimeAgo(past time.Time) string {
	return timeAgoAt(past, time.Now())
}

func timeAgoAt(past, now time.Time) string {
	d := now.Sub(past)
	switch {
	case d < 0:
		return "in the future"
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/(24*30)), "month")
	}
	return plural(int(d.Hours()/(24*365)), "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
