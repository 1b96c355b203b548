package period

import "time"

// Range is a closed [Start, End] interval. End is always the last
// representable instant of its day (23:59:59.999).
type Range struct {
	Start time.Time
	End   time.Time
}

// EndOfDay returns t's calendar day at 23:59:59.999 in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Month is the calendar month containing now.
func Month(now time.Time) Range {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return Range{Start: start, End: EndOfDay(start.AddDate(0, 1, -1))}
}

// Week is the calendar week containing now, beginning on weekStartsOn.
func Week(now time.Time, weekStartsOn time.Weekday) Range {
	back := (int(now.Weekday()) - int(weekStartsOn) + 7) % 7
	y, m, d := now.AddDate(0, 0, -back).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return Range{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
}

// Year is the calendar year containing now.
func Year(now time.Time) Range {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return Range{Start: start, End: EndOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()))}
}

// Resolve fills omitted bounds from fallback. Each bound defaults
// independently; a supplied end is widened to the end of its day.
func Resolve(start, end *time.Time, fallback Range) Range {
	r := fallback
	if start != nil {
		r.Start = *start
	}
	if end != nil {
		r.End = EndOfDay(*end)
	}
	return r
}
