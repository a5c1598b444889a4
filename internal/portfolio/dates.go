package portfolio

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UndatedKey is the year bucket for projects whose date has no 4-digit year.
const UndatedKey = "Undated"

var (
	rangeSeparator = regexp.MustCompile(`[-–]`)
	monthYear      = regexp.MustCompile(`([A-Za-z]+)\s+(\d{4})`)
	yearOnly       = regexp.MustCompile(`(\d{4})`)

	months = map[string]time.Month{
		"Jan": time.January, "Feb": time.February, "Mar": time.March,
		"Apr": time.April, "May": time.May, "Jun": time.June,
		"Jul": time.July, "Aug": time.August, "Sep": time.September,
		"Oct": time.October, "Nov": time.November, "Dec": time.December,
	}
)

// endSegment returns the part of a date range after the first hyphen or
// en-dash, or the whole string when there is no range.
func endSegment(date string) string {
	parts := rangeSeparator.Split(date, -1)
	if len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(parts[0])
}

// monthFromName maps "jan", "JANUARY", "Sept" and friends to a month. Unknown
// names fall back to January.
func monthFromName(name string) time.Month {
	titled := cases.Title(language.English).String(name)
	if len(titled) >= 3 {
		if m, ok := months[titled[:3]]; ok {
			return m
		}
	}
	return time.January
}

// ParseEndDate returns the end of a free-text range such as
// "Aug 2024 – Dec 2024". "<Month> <Year>" resolves to the first of that
// month, a bare year to December 31st, and anything else to the Unix epoch.
func ParseEndDate(date string) time.Time {
	end := endSegment(date)

	if m := monthYear.FindStringSubmatch(end); m != nil {
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, monthFromName(m[1]), 1, 0, 0, 0, 0, time.UTC)
	}
	if m := yearOnly.FindStringSubmatch(end); m != nil {
		year, _ := strconv.Atoi(m[1])
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return time.Unix(0, 0).UTC()
}

// YearKey is the timeline bucket a date belongs to.
func YearKey(date string) string {
	if m := yearOnly.FindStringSubmatch(endSegment(date)); m != nil {
		return m[1]
	}
	return UndatedKey
}
