package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CalendarDay drops the clock part of t, keeping t's own calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isAfter reports whether date is a valid date strictly after today.
// Unparseable dates report false; the format rule owns those.
func isAfter(date string, today time.Time) bool {
	d, ok := ParseDate(date)
	return ok && d.After(CalendarDay(today))
}

// isBefore reports whether date is a valid date strictly before today.
func isBefore(date string, today time.Time) bool {
	d, ok := ParseDate(date)
	return ok && d.Before(CalendarDay(today))
}

// endsBefore reports whether both dates parse and end is before start.
func endsBefore(start, end string) bool {
	s, ok1 := ParseDate(start)
	e, ok2 := ParseDate(end)
	return ok1 && ok2 && e.Before(s)
}

// amountPattern is a plain non-negative amount with at most two decimals.
// Exponent forms such as 1e9 are not accepted.
var amountPattern = regexp.MustCompile(`^\d{1,15}(\.\d{1,2})?$`)

// parseAmount reads an optional monetary value; empty means zero.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func mustAmount(s string) decimal.Decimal {
	d, _ := parseAmount(s)
	return d
}

// atoiOr parses a validated whole number, returning def when s is empty.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// anyMatch reports whether any record yields key equal to value, ignoring case.
// An empty value never matches.
func anyMatch[T any](records []T, value string, key func(T) string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, r := range records {
		if strings.EqualFold(strings.TrimSpace(key(r)), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func defaultIfEmpty(f Fields, key, def string) {
	if f[key] == "" {
		f[key] = def
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
