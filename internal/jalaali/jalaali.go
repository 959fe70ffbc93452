// Package jalaali implements the Jalaali (Persian solar-hijri) intercalation
// engine. Leap years come from a break-point table approximating the true
// astronomical equinox timing; this is the de facto reference algorithm in
// wide use, not an observation-based one, so it can legitimately disagree
// with authoritative lunar data during periods that data does not cover.
package jalaali

import "github.com/tartampluch/go-hijri/internal/jdn"

// Date is a Jalaali calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// MinYear and MaxYear bound the break table's coverage. The intercalation
// rule is undefined outside the first and last break years.
const (
	MinYear = -61
	MaxYear = 3177
)

// breaks holds the break-year boundaries of the variable-length leap cycles.
// Consumed read-only; the first and last entries delimit the valid domain.
var breaks = [20]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181,
	1210, 1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// cycle is the outcome of locating a year inside the break table: whether it
// is a leap year (leap == 0), the Gregorian year its Farvardin 1 falls in,
// and the March day of that Farvardin 1.
type cycle struct {
	leap  int
	gy    int
	march int
}

// calc scans the break table for the cycle enclosing jy, accumulates the
// leap-day surplus of all preceding cycles, and derives the March alignment
// of the year's first day. The residue test on n+1 against base 33 decides
// leap-ness; when the remaining span of the current cycle is shorter than 6
// years, n is realigned into the start of the next cycle first.
func calc(jy int) cycle {
	gy := jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0

	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jm
	}

	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap := ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}

	return cycle{leap: leap, gy: gy, march: march}
}

// IsLeapYear reports whether the Jalaali year has 366 days (Esfand = 30).
func IsLeapYear(jy int) bool {
	return calc(jy).leap == 0
}

// MonthLength returns the number of days in the given Jalaali month.
// Months 1-6 have 31 days, 7-11 have 30, and Esfand has 29 or 30.
func MonthLength(jy, jm int) int {
	switch {
	case jm <= 6:
		return 31
	case jm <= 11:
		return 30
	case IsLeapYear(jy):
		return 30
	default:
		return 29
	}
}

// ToJDN converts a Jalaali date to its Julian Day Number. The caller must
// have validated day <= MonthLength upstream; the engine itself does not
// re-validate, staying a pure transform.
func ToJDN(jy, jm, jd int) int {
	c := calc(jy)
	return jdn.FromGregorian(c.gy, 3, c.march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

// FromJDN converts a Julian Day Number to its Jalaali date.
func FromJDN(j int) Date {
	gy := jdn.ToGregorian(j).Year
	jy := gy - 621
	c := calc(jy)
	k := j - jdn.FromGregorian(gy, 3, c.march)

	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}
		}
		k -= 186
	} else {
		jy--
		k += 179
		if c.leap == 1 {
			k++
		}
	}

	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}
}
