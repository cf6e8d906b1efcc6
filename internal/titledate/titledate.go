// Package titledate extracts the calendar date a journal title starts with.
//
// Titles conventionally begin with a date written as 2025年6月14日, usually
// followed by the weekday (星期六). Sorting depends on this text, so the
// matching rules here are deliberately strict: four-digit year, one or two
// digit month and day, each followed by its unit character.
package titledate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	datePrefix = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日`)

	// Sentinel is returned for titles without a usable date
	Sentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.Local)
)

// Match reports the numerals of a date expression at the start of s.
// The numerals are not checked against the calendar.
func Match(s string) (year, month, day int, ok bool) {
	m := datePrefix.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	// The pattern guarantees ASCII digits of bounded length
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])
	return year, month, day, true
}

// ParseOK returns the date a title starts with and whether it was valid.
// Dates that do not exist (2月30日, 13月1日) are rejected rather than
// rolled over into the next month.
func ParseOK(title string) (time.Time, bool) {
	year, month, day, ok := Match(title)
	if !ok {
		return Sentinel, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Sentinel, false
	}
	return t, true
}

// Parse returns the date a title starts with, or Sentinel.
func Parse(title string) time.Time {
	t, _ := ParseOK(title)
	return t
}

// Format renders a date the way titles spell it, without the weekday.
func Format(year, month, day int) string {
	return fmt.Sprintf("%d年%d月%d日", year, month, day)
}

var weekdays = [...]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// Title renders the conventional title for t, e.g. 2025年6月14日星期六.
func Title(t time.Time) string {
	return Format(t.Year(), int(t.Month()), t.Day()) + weekdays[t.Weekday()]
}
