// Package official holds the authoritative Hijri month-length table and the
// resolver logic built on top of it. The table stores relative month lengths
// recorded from local religious-authority observation, keyed by Hijri year;
// it has no epoch of its own and is anchored onto the absolute day count by
// the tabular engine's JDN for its first covered year.
//
// Absence of data is a first-class, expected outcome here, communicated via
// (value, ok) results. The resolver never returns an error for a missing
// year or month; only the loader rejects malformed input.
package official

import (
	"sort"

	"github.com/tartampluch/go-hijri/internal/tabular"
)

// Date is a Hijri calendar date resolved from observed data.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Range describes the span of Hijri years the table covers. Coverage inside
// the span may still have gaps; queries degrade gracefully per year.
type Range struct {
	MinYear int
	MaxYear int
}

// Table is the immutable resolver over the observed month lengths. It is
// constructed once at load time and safe for arbitrarily many concurrent
// readers without synchronization.
type Table struct {
	months  map[int][]int
	minYear int
	maxYear int

	// anchor is tabular.ToJDN(minYear, 1, 1): the deliberate bridge between
	// the two systems, since the table stores relative lengths only.
	anchor int
}

// New builds a Table from a year -> month-length mapping. The mapping is
// copied; callers may not rely on mutating it afterwards. New assumes the
// input was validated by the loader (values in {29,30}, at most 12 months,
// years within the tabular domain).
func New(months map[int][]int) *Table {
	if len(months) == 0 {
		return &Table{}
	}

	copied := make(map[int][]int, len(months))
	years := make([]int, 0, len(months))
	for y, seq := range months {
		copied[y] = append([]int(nil), seq...)
		years = append(years, y)
	}
	sort.Ints(years)

	minYear := years[0]
	anchor, err := tabular.ToJDN(minYear, 1, 1)
	if err != nil {
		// Loader validation guarantees the year domain; an empty table is
		// the only defensible fallback if that contract is broken.
		return &Table{}
	}

	return &Table{
		months:  copied,
		minYear: minYear,
		maxYear: years[len(years)-1],
		anchor:  anchor,
	}
}

// HasData reports whether the table records a length for the given year and
// month. A year's sequence may be shorter than 12 while data collection for
// it is still in progress; months beyond the sequence report false, never
// panic.
func (t *Table) HasData(year, month int) bool {
	_, ok := t.MonthLength(year, month)
	return ok
}

// MonthLength returns the observed length of the given month, if recorded.
func (t *Table) MonthLength(year, month int) (int, bool) {
	seq, ok := t.months[year]
	if !ok || month < 1 || month > len(seq) {
		return 0, false
	}
	return seq[month-1], true
}

// YearLength returns the observed length of the year. It is only defined
// for years with all 12 months recorded; a partial sequence cannot anchor
// forward accumulation and reports no result.
func (t *Table) YearLength(year int) (int, bool) {
	seq, ok := t.months[year]
	if !ok || len(seq) < 12 {
		return 0, false
	}
	total := 0
	for _, ml := range seq {
		total += ml
	}
	return total, true
}

// CoveredRange returns the first and last Hijri years present in the table.
func (t *Table) CoveredRange() (Range, bool) {
	if len(t.months) == 0 {
		return Range{}, false
	}
	return Range{MinYear: t.minYear, MaxYear: t.maxYear}, true
}

// ToJDN resolves a Hijri date against the observed data: the tabular anchor
// for minYear, plus whole observed year lengths for every year strictly
// between minYear and year, plus whole month lengths within the target year,
// plus day-1. A missing intervening year invalidates the forward
// accumulation and yields no result rather than silently skipping the gap.
func (t *Table) ToJDN(year, month, day int) (int, bool) {
	if len(t.months) == 0 || year < t.minYear {
		return 0, false
	}
	if !t.HasData(year, month) {
		return 0, false
	}

	days := 0
	for y := t.minYear; y < year; y++ {
		yl, ok := t.YearLength(y)
		if !ok {
			return 0, false
		}
		days += yl
	}
	for m := 1; m < month; m++ {
		// Recorded sequences are prefixes, so every month below a recorded
		// month is recorded too.
		ml, _ := t.MonthLength(year, m)
		days += ml
	}

	return t.anchor + days + day - 1, true
}

// FromJDNNear attempts to resolve a Julian Day Number inside one candidate
// year only. The conversion façade probes estimate-1, estimate and
// estimate+1 in order with this method, because the tabular estimate and the
// observed data can disagree near year boundaries by a few days, enough to
// misplace the JDN into a neighboring tabular year while it still belongs to
// the table's coverage. No result if the JDN does not land on a recorded
// month of the candidate year.
func (t *Table) FromJDNNear(j, year int) (Date, bool) {
	start, ok := t.ToJDN(year, 1, 1)
	if !ok {
		return Date{}, false
	}
	days := j - start
	if days < 0 {
		return Date{}, false
	}

	for month := 1; month <= 12; month++ {
		ml, ok := t.MonthLength(year, month)
		if !ok {
			return Date{}, false
		}
		if days < ml {
			return Date{Year: year, Month: month, Day: days + 1}, true
		}
		days -= ml
	}
	// The JDN lies past the candidate year; a later candidate owns it.
	return Date{}, false
}

// FromJDN resolves a Julian Day Number against the observed data by the
// same anchor-and-accumulate walk in reverse: scan forward year by year from
// minYear while whole observed years fit, then walk the months of the
// containing year. No result if the JDN precedes the anchor or the table is
// exhausted (or gapped) before convergence.
func (t *Table) FromJDN(j int) (Date, bool) {
	if len(t.months) == 0 {
		return Date{}, false
	}
	days := j - t.anchor
	if days < 0 {
		return Date{}, false
	}

	year := t.minYear
	for {
		yl, ok := t.YearLength(year)
		if !ok {
			// Missing or partial year: the month walk below decides whether
			// the remaining days still land on recorded months.
			break
		}
		if days < yl {
			break
		}
		days -= yl
		year++
	}

	month := 1
	for {
		ml, ok := t.MonthLength(year, month)
		if !ok {
			return Date{}, false
		}
		if days < ml {
			return Date{Year: year, Month: month, Day: days + 1}, true
		}
		days -= ml
		month++
	}
}
