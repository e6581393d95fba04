package catalog

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ViewQuery is the filter, sort and search state applied by ComputeView.
// Collection is matched exactly unless it is AllCollections; any Sort other
// than SortDate orders by title.
type ViewQuery struct {
	Search     string
	Collection string
	Sort       string
	Locale     language.Tag
}

// ComputeView selects and orders entries for display. It never modifies
// entries; the result is a new slice.
func ComputeView(entries []Entry, q ViewQuery) []Entry {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !matchesSearch(e, term) {
			continue
		}
		if !matchesCollection(e, q.Collection) {
			continue
		}
		out = append(out, e)
	}

	switch q.Sort {
	case SortDate:
		sortByDateDesc(out)
	default:
		sortByTitle(out, q.Locale)
	}
	return out
}

func matchesSearch(e Entry, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Author), term)
}

func matchesCollection(e Entry, collection string) bool {
	return collection == AllCollections || e.Collection == collection
}

// sortByDateDesc orders newest first. Entries without a usable date go last
// and keep their relative order.
func sortByDateDesc(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		ta, okA := ParsePublishDate(a.PublishDate)
		tb, okB := ParsePublishDate(b.PublishDate)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

func sortByTitle(entries []Entry, locale language.Tag) {
	c := collate.New(locale)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return c.CompareString(a.Title, b.Title)
	})
}

var publishDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParsePublishDate parses a publish date as a calendar date in UTC.
func ParsePublishDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Collections returns the distinct non-empty collection names, ordered for
// display.
func Collections(entries []Entry, locale language.Tag) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if e.Collection == "" || seen[e.Collection] {
			continue
		}
		seen[e.Collection] = true
		out = append(out, e.Collection)
	}
	c := collate.New(locale)
	c.SortStrings(out)
	return out
}
