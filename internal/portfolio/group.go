package portfolio

import (
	"slices"
	"strconv"
	"strings"
)

// AllTag selects every project.
const AllTag = "All"

// Filter returns the projects labelled with tag. AllTag and "" return the
// full list; an unknown tag yields an empty slice.
func Filter(projects []Project, tag string) []Project {
	if tag == "" || tag == AllTag {
		return slices.Clone(projects)
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// SortByEndDate returns a copy of projects, most recent end date first.
// Projects ending at the same time keep their relative order.
func SortByEndDate(projects []Project) []Project {
	sorted := slices.Clone(projects)
	slices.SortStableFunc(sorted, func(a, b Project) int {
		return ParseEndDate(b.Date).Compare(ParseEndDate(a.Date))
	})
	return sorted
}

// GroupByYear buckets projects by the year of their end date. Each bucket is
// ordered by SortByEndDate.
func GroupByYear(projects []Project) map[string][]Project {
	groups := make(map[string][]Project)
	for _, p := range SortByEndDate(projects) {
		key := YearKey(p.Date)
		groups[key] = append(groups[key], p)
	}
	return groups
}

// SortedYears orders the keys of groups for display: numeric years newest
// first, then any non-numeric buckets in descending string order.
func SortedYears(groups map[string][]Project) []string {
	years := make([]string, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	slices.SortFunc(years, func(a, b string) int {
		ya, errA := strconv.Atoi(a)
		yb, errB := strconv.Atoi(b)
		switch {
		case errA == nil && errB == nil:
			return yb - ya
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return strings.Compare(b, a)
		}
	})
	return years
}

// Card is one project placed on the timeline.
type Card struct {
	Project
	Left bool
}

// YearSection is a year heading followed by its cards.
type YearSection struct {
	Year  string
	Cards []Card
}

// Timeline lays out the grouped projects. Cards alternate sides across the
// whole timeline, starting on the left.
func Timeline(groups map[string][]Project, years []string) []YearSection {
	sections := make([]YearSection, 0, len(years))
	i := 0
	for _, year := range years {
		section := YearSection{Year: year}
		for _, p := range groups[year] {
			section.Cards = append(section.Cards, Card{Project: p, Left: i%2 == 0})
			i++
		}
		sections = append(sections, section)
	}
	return sections
}
