// Package tabular implements the arithmetic (30-year cycle) Hijri calendar.
// It is the estimator the system falls back on whenever authoritative
// observed month lengths are unavailable: 11 leap years per 30-year cycle,
// 10631 days per cycle, months alternating 30/29 with a leap day appended
// to the twelfth month.
//
// The epoch constant pins 1 Muharram 1 AH to the Iranian-convention JDN,
// which differs from the Umm al-Qura epoch used by some other libraries.
// That offset is why this engine and generic Hijri converters can disagree
// by a day even before any official-data override.
package tabular

import (
	"errors"

	"github.com/tartampluch/go-hijri/internal/config"
)

// Date is a Hijri calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ErrYearOutOfRange is returned for Hijri years outside [MinHijriYear,
// MaxHijriYear]. The engine refuses rather than producing silently wrong
// results far from its calibrated domain.
var ErrYearOutOfRange = errors.New(config.ErrYearOutOfRange)

const (
	// epoch is the JDN of 1 Muharram 1 AH under the Iranian convention.
	epoch = 1948440

	// daysPerCycle is 19 common years of 354 days plus 11 leap years of 355.
	daysPerCycle = 10631

	yearsPerCycle = 30
)

// leapPositions marks the 1-indexed leap years within each 30-year cycle.
var leapPositions = [yearsPerCycle + 1]bool{
	2: true, 5: true, 7: true, 10: true, 13: true, 16: true,
	18: true, 21: true, 24: true, 26: true, 29: true,
}

// cyclePosition returns the year's 1-indexed position within its cycle.
func cyclePosition(year int) int {
	return (year-1)%yearsPerCycle + 1
}

// IsLeapYear reports whether the Hijri year is a tabular leap year (355 days).
func IsLeapYear(year int) bool {
	return leapPositions[cyclePosition(year)]
}

// MonthLength returns the tabular length of the given month: odd months have
// 30 days, even months 29, and the twelfth gains a day in leap years.
func MonthLength(year, month int) int {
	if month == 12 && IsLeapYear(year) {
		return 30
	}
	if month%2 == 1 {
		return 30
	}
	return 29
}

// YearLength returns 354 days for common years and 355 for leap years.
func YearLength(year int) int {
	if IsLeapYear(year) {
		return 355
	}
	return 354
}

// ToJDN converts a tabular Hijri date to its Julian Day Number. Whole
// 30-year cycles are skipped in O(1); the partial cycle and partial year are
// accumulated linearly. Years outside the supported domain are refused.
func ToJDN(year, month, day int) (int, error) {
	if year < config.MinHijriYear || year > config.MaxHijriYear {
		return 0, ErrYearOutOfRange
	}

	days := daysPerCycle * ((year - 1) / yearsPerCycle)
	for pos := 1; pos <= (year-1)%yearsPerCycle; pos++ {
		if leapPositions[pos] {
			days += 355
		} else {
			days += 354
		}
	}
	for m := 1; m < month; m++ {
		days += MonthLength(year, m)
	}

	return epoch + days + day - 1, nil
}

// FromJDN converts a Julian Day Number to its tabular Hijri date by
// subtracting cycle, year and month lengths until the containing month is
// found. JDNs before the epoch or past the supported year domain are refused.
func FromJDN(j int) (Date, error) {
	days := j - epoch
	if days < 0 {
		return Date{}, ErrYearOutOfRange
	}

	year := days/daysPerCycle*yearsPerCycle + 1
	days %= daysPerCycle
	for days >= YearLength(year) {
		days -= YearLength(year)
		year++
	}
	if year > config.MaxHijriYear {
		return Date{}, ErrYearOutOfRange
	}

	month := 1
	for days >= MonthLength(year, month) {
		days -= MonthLength(year, month)
		month++
	}

	return Date{Year: year, Month: month, Day: days + 1}, nil
}

// Epoch exposes the engine's anchor JDN. The authoritative resolver bridges
// its relative month lengths onto the absolute day count through ToJDN, so
// both tiers ultimately share this anchor.
func Epoch() int {
	return epoch
}
