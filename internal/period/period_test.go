package period_test

import (
	"testing"
	"time"

	"github.com/habitflow-dev/habitflow/internal/period"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestMonth_CoversWholeCalendarMonth(t *testing.T) {
	r := period.Month(date(2024, time.February, 14, 10, 30))

	if want := date(2024, time.February, 1, 0, 0); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	// 2024 is a leap year.
	want := time.Date(2024, time.February, 29, 23, 59, 59, 999000000, time.UTC)
	if !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}

func TestWeek_SundayStart(t *testing.T) {
	// 2024-06-12 is a Wednesday.
	r := period.Week(date(2024, time.June, 12, 9, 0), time.Sunday)

	if want := date(2024, time.June, 9, 0, 0); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	want := time.Date(2024, time.June, 15, 23, 59, 59, 999000000, time.UTC)
	if !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}

func TestWeek_MondayStart(t *testing.T) {
	r := period.Week(date(2024, time.June, 12, 9, 0), time.Monday)

	if want := date(2024, time.June, 10, 0, 0); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
}

func TestWeek_NowOnStartDay(t *testing.T) {
	// Monday with a Monday start: the week begins today, not a week ago.
	r := period.Week(date(2024, time.June, 10, 0, 5), time.Monday)

	if want := date(2024, time.June, 10, 0, 0); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
}

func TestYear_CoversWholeCalendarYear(t *testing.T) {
	r := period.Year(date(2024, time.June, 12, 9, 0))

	if want := date(2024, time.January, 1, 0, 0); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	want := time.Date(2024, time.December, 31, 23, 59, 59, 999000000, time.UTC)
	if !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}

func TestResolve_BothOmitted_UsesFallback(t *testing.T) {
	fallback := period.Month(date(2024, time.March, 3, 0, 0))
	r := period.Resolve(nil, nil, fallback)

	if !r.Start.Equal(fallback.Start) || !r.End.Equal(fallback.End) {
		t.Errorf("range = %v, want fallback %v", r, fallback)
	}
}

func TestResolve_BoundsDefaultIndependently(t *testing.T) {
	fallback := period.Month(date(2024, time.March, 3, 0, 0))

	start := date(2024, time.March, 10, 0, 0)
	r := period.Resolve(&start, nil, fallback)
	if !r.Start.Equal(start) {
		t.Errorf("start = %v, want %v", r.Start, start)
	}
	if !r.End.Equal(fallback.End) {
		t.Errorf("end = %v, want fallback end %v", r.End, fallback.End)
	}

	end := date(2024, time.March, 20, 0, 0)
	r = period.Resolve(nil, &end, fallback)
	if !r.Start.Equal(fallback.Start) {
		t.Errorf("start = %v, want fallback start %v", r.Start, fallback.Start)
	}
}

func TestResolve_SuppliedEndWidensToEndOfDay(t *testing.T) {
	fallback := period.Month(date(2024, time.March, 3, 0, 0))
	end := date(2024, time.March, 20, 14, 15)

	r := period.Resolve(nil, &end, fallback)

	want := time.Date(2024, time.March, 20, 23, 59, 59, 999000000, time.UTC)
	if !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}
