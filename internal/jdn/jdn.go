// Package jdn implements the Julian Day Number codec shared by all three
// calendar engines. The JDN is the system's canonical time axis: a plain
// integer day count with no calendar-specific semantics attached, strictly
// increasing as any calendar date advances.
package jdn

// Date is the generic {year, month, day} shape produced and consumed by the
// codecs. This one is Gregorian; the calendar packages declare their own
// concrete variants and never interchange them without explicit conversion.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromGregorian converts a proleptic Gregorian date to its Julian Day Number.
// The algorithm is defined for all integer years, including zero and
// negative ones, so no validation is performed here beyond what the formula
// itself requires. Callers validate month/day ranges upstream.
func FromGregorian(year, month, day int) int {
	d := div((year+div(month-8, 6)+100100)*1461, 4) +
		div(153*mod(month+9, 12)+2, 5) + day - 34840408
	return d - div(div(year+100100+div(month-8, 6), 100)*3, 4) + 752
}

// ToGregorian converts a Julian Day Number back to a proleptic Gregorian
// date. It is the exact inverse of FromGregorian for every integer in the
// supported range.
func ToGregorian(j int) Date {
	a := 4*j + 139361631
	a = a + div(div(4*j+183187720, 146097)*3, 4)*4 - 3908
	i := div(mod(a, 1461), 4)*5 + 308

	day := div(mod(i, 153), 5) + 1
	month := mod(div(i, 153), 12) + 1
	year := div(a, 1461) - 100100 + div(8-month, 6)

	return Date{Year: year, Month: month, Day: day}
}

// gregorianMonthDays holds common-year month lengths; February is adjusted
// by GregorianMonthLength in leap years.
var gregorianMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GregorianLeap reports whether the proleptic Gregorian year is a leap year.
func GregorianLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// GregorianMonthLength returns the number of days in the given Gregorian
// month, leap-aware for February. The month must be in [1,12].
func GregorianMonthLength(year, month int) int {
	if month == 2 && GregorianLeap(year) {
		return 29
	}
	return gregorianMonthDays[month-1]
}

// div and mod mirror the truncated integer division the conversion formulas
// are written against. Go's native operators already truncate toward zero;
// the helpers keep the formulas readable next to their published forms.
func div(a, b int) int {
	return a / b
}

func mod(a, b int) int {
	return a % b
}
