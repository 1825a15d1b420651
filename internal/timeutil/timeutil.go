package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used across the clinic. All timestamps are stored as strings in
// these fixed formats; nothing in the system deals with time zones.
const (
	DateLayout            = "02-01-2006"
	TimeLayout            = "15:04"
	TimeSecondsLayout     = "15:04:05"
	DateTimeLayout        = "02-01-2006 15:04"
	DateTimeSecondsLayout = "02-01-2006 15:04:05"
)

// replacer maps unicode lookalikes (non-breaking spaces, typographic dashes,
// colon variants, zero-width characters) onto their ASCII equivalents so that
// pasted input still parses.
var replacer = strings.NewReplacer(
	" ", " ", // NBSP
	" ", " ", // narrow NBSP
	" ", " ", // figure space
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"：", ":", // full-width colon
	"∶", ":", // ratio colon
	"꞉", ":", // modifier colon
	"\uFEFF", "", // BOM
	"\u200B", "", // zero-width space
	"\u200C", "", // zero-width non-joiner
	"\u200D", "", // zero-width joiner
	"\u2060", "", // word joiner
	"\u200E", "", // LTR mark
	"\u200F", "", // RTL mark
)

// sanitize normalizes unicode variants, then rebuilds the string from the
// characters a date/time value may contain: digits, '-', ':' and spaces.
// Runs of spaces collapse to one.
func sanitize(s string) string {
	t := replacer.Replace(s)
	var b strings.Builder
	b.Grow(len(t))
	lastSpace := false
	for _, r := range t {
		switch {
		case r >= '0' && r <= '9', r == '-', r == ':':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ':
			if !lastSpace {
				b.WriteRune(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func hasSeconds(s string) bool {
	return strings.Count(s, ":") >= 2
}

// ParseDate parses a date string in format "dd-MM-yyyy".
func ParseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty, expected format %s", DateLayout)
	}
	t, err := time.Parse(DateLayout, sanitize(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected format %s", s, DateLayout)
	}
	return t, nil
}

// FormatDate formats a time value as "dd-MM-yyyy".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTime parses a time string in format "HH:mm" or "HH:mm:ss".
func ParseTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("time cannot be empty, expected format %s or %s", TimeLayout, TimeSecondsLayout)
	}
	trimmed := sanitize(s)
	layout := TimeLayout
	if hasSeconds(trimmed) {
		layout = TimeSecondsLayout
	}
	t, err := time.Parse(layout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected format %s or %s", s, TimeLayout, TimeSecondsLayout)
	}
	return t, nil
}

// FormatTime formats a time value as "HH:mm".
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatTimeSeconds formats a time value as "HH:mm:ss".
func FormatTimeSeconds(t time.Time) string {
	return t.Format(TimeSecondsLayout)
}

// ParseDateTime parses a datetime string in format "dd-MM-yyyy HH:mm" or
// "dd-MM-yyyy HH:mm:ss".
func ParseDateTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("datetime cannot be empty, expected format %s or %s", DateTimeLayout, DateTimeSecondsLayout)
	}
	trimmed := sanitize(s)
	layout := DateTimeLayout
	if hasSeconds(trimmed) {
		layout = DateTimeSecondsLayout
	}
	t, err := time.Parse(layout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q, expected format %s or %s", s, DateTimeLayout, DateTimeSecondsLayout)
	}
	return t, nil
}

// FormatDateTime formats a time value as "dd-MM-yyyy HH:mm".
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatDateTimeSeconds formats a time value as "dd-MM-yyyy HH:mm:ss".
func FormatDateTimeSeconds(t time.Time) string {
	return t.Format(DateTimeSecondsLayout)
}

// Now returns the current local time.
func Now() time.Time {
	return time.Now()
}

// NowString returns the current time formatted as "dd-MM-yyyy HH:mm:ss".
// This is the canonical form for audit timestamps.
func NowString() string {
	return FormatDateTimeSeconds(Now())
}

// Combine joins a date string and a time string into a single time value.
func Combine(date, tm string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTime(tm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
}

// NormalizeDate reparses and reformats a date string into canonical form.
func NormalizeDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(d), nil
}

// NormalizeTime reparses and reformats a time string, preserving a seconds
// component when the input carried one.
func NormalizeTime(s string) (string, error) {
	t, err := ParseTime(s)
	if err != nil {
		return "", err
	}
	if hasSeconds(strings.TrimSpace(s)) {
		return FormatTimeSeconds(t), nil
	}
	return FormatTime(t), nil
}

// NormalizeDateTime reparses and reformats a datetime string, preserving a
// seconds component when the input carried one.
func NormalizeDateTime(s string) (string, error) {
	t, err := ParseDateTime(s)
	if err != nil {
		return "", err
	}
	if hasSeconds(strings.TrimSpace(s)) {
		return FormatDateTimeSeconds(t), nil
	}
	return FormatDateTime(t), nil
}

// ParseDurationToMinutes converts a duration string in format "HH:mm" to
// total minutes. A seconds component is rejected.
func ParseDurationToMinutes(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}
	if hasSeconds(trimmed) {
		return 0, fmt.Errorf("duration format must be %q without seconds, got %q", TimeLayout, s)
	}
	t, err := time.Parse(TimeLayout, trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q, expected format %s", s, TimeLayout)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatDurationFromMinutes renders a minute count as "HH:mm".
func FormatDurationFromMinutes(minutes int) (string, error) {
	if minutes < 0 {
		return "", fmt.Errorf("duration minutes cannot be negative, got %d", minutes)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// ComputeEnd adds a positive duration in minutes to a start time.
func ComputeEnd(start time.Time, durationMinutes int) (time.Time, error) {
	if durationMinutes <= 0 {
		return time.Time{}, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	return start.Add(time.Duration(durationMinutes) * time.Minute), nil
}

// DurationMinutes returns the whole minutes between start and end.
func DurationMinutes(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("end time must be after start time")
	}
	return int(end.Sub(start).Minutes()), nil
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) (bool, error) {
	if !aEnd.After(aStart) {
		return false, fmt.Errorf("end time must be after start time for first interval")
	}
	if !bEnd.After(bStart) {
		return false, fmt.Errorf("end time must be after start time for second interval")
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd), nil
}
