// Package engine composes the three calendar codecs into the public
// conversion surface: Jalaali <-> Hijri, Gregorian <-> Hijri and the two
// solar-to-solar pairs, deciding per call whether the authoritative table or
// the tabular fallback governs the result and attaching weekday metadata.
//
// Every operation is a synchronous pure function over immutable inputs; a
// Converter may be shared across arbitrarily many concurrent callers.
package engine

import (
	"errors"
	"log/slog"

	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/jalaali"
	"github.com/tartampluch/go-hijri/internal/jdn"
	"github.com/tartampluch/go-hijri/internal/official"
	"github.com/tartampluch/go-hijri/internal/tabular"
)

// Sentinel errors for the façade boundary. Invalid input raises immediately,
// before any computation; missing official data never does, callers fall
// back transparently.
var (
	ErrInvalidDate     = errors.New(config.ErrInvalidDate)
	ErrUnknownCalendar = errors.New(config.ErrUnknownCalendar)
	ErrSameCalendar    = errors.New(config.ErrSameCalendar)

	// ErrJalaaliOutOfRange is returned when a conversion lands outside the
	// break table's domain. The intercalation rule is undefined there, so
	// refusing beats emitting a plausible-looking wrong date.
	ErrJalaaliOutOfRange = errors.New(config.ErrJalaaliRange)
)

// ConversionResult is the date produced by a conversion, the engine tier
// that produced its final day count, and the weekday derived from the JDN.
// Source is empty for solar-to-solar conversions, where neither Hijri
// engine participates.
type ConversionResult struct {
	Year    int         `json:"year"`
	Month   int         `json:"month"`
	Day     int         `json:"day"`
	Source  string      `json:"source,omitempty"`
	Weekday jdn.Weekday `json:"weekday"`
}

// SourceInfo reports which engine tier would govern a given Hijri year and
// month, plus the overall span of observed data.
type SourceInfo struct {
	HasOfficialData bool            `json:"has_official_data"`
	Source          string          `json:"source"`
	OfficialRange   *official.Range `json:"official_range,omitempty"`
}

// HijriMonthNames holds the fixed English transliterations used for the
// occasions feed summaries; index 0 = Muharram.
var HijriMonthNames = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhu al-Qidah", "Dhu al-Hijjah",
}

// Converter is the conversion façade. The table is read-only after
// construction; Clock exists for deterministic testing and for centering
// the occasions feed.
type Converter struct {
	Clock Clock
	Table *official.Table

	// FormatSummary allows the CLI to inject localized occasion summaries.
	FormatSummary func(monthName string, year int) string
}

// New returns a Converter over the given authoritative table.
func New(table *official.Table) *Converter {
	return &Converter{
		Clock: RealClock{},
		Table: table,
	}
}

// -----------------------------------------------------------------------------
// Public conversion operations
// -----------------------------------------------------------------------------

// JalaaliToHijri converts a Jalaali date into Hijri, preferring the
// authoritative table near the tabular estimate.
func (c *Converter) JalaaliToHijri(y, m, d int) (ConversionResult, error) {
	if !IsValidJalaaliDate(y, m, d) {
		return ConversionResult{}, ErrInvalidDate
	}
	return c.resolveHijri(jalaali.ToJDN(y, m, d))
}

// GregorianToHijri converts a Gregorian date into Hijri, preferring the
// authoritative table near the tabular estimate.
func (c *Converter) GregorianToHijri(y, m, d int) (ConversionResult, error) {
	if !IsValidGregorianDate(y, m, d) {
		return ConversionResult{}, ErrInvalidDate
	}
	return c.resolveHijri(jdn.FromGregorian(y, m, d))
}

// HijriToJalaali converts a Hijri date into Jalaali. The resolver is
// consulted directly for the named year and month, no windowing needed.
// Late Hijri years map past the Jalaali break table and are refused.
func (c *Converter) HijriToJalaali(y, m, d int) (ConversionResult, error) {
	j, src, err := c.hijriToJDN(y, m, d)
	if err != nil {
		return ConversionResult{}, err
	}
	t := jalaali.FromJDN(j)
	if t.Year < jalaali.MinYear || t.Year > jalaali.MaxYear {
		return ConversionResult{}, ErrJalaaliOutOfRange
	}
	return newResult(t.Year, t.Month, t.Day, src, j), nil
}

// HijriToGregorian converts a Hijri date into Gregorian.
func (c *Converter) HijriToGregorian(y, m, d int) (ConversionResult, error) {
	j, src, err := c.hijriToJDN(y, m, d)
	if err != nil {
		return ConversionResult{}, err
	}
	t := jdn.ToGregorian(j)
	return newResult(t.Year, t.Month, t.Day, src, j), nil
}

// JalaaliToGregorian converts between the two solar calendars. No Hijri
// engine participates, so the result carries no source tier.
func (c *Converter) JalaaliToGregorian(y, m, d int) (ConversionResult, error) {
	if !IsValidJalaaliDate(y, m, d) {
		return ConversionResult{}, ErrInvalidDate
	}
	j := jalaali.ToJDN(y, m, d)
	t := jdn.ToGregorian(j)
	return newResult(t.Year, t.Month, t.Day, "", j), nil
}

// GregorianToJalaali converts between the two solar calendars.
func (c *Converter) GregorianToJalaali(y, m, d int) (ConversionResult, error) {
	if !IsValidGregorianDate(y, m, d) {
		return ConversionResult{}, ErrInvalidDate
	}
	j := jdn.FromGregorian(y, m, d)
	t := jalaali.FromJDN(j)
	if t.Year < jalaali.MinYear || t.Year > jalaali.MaxYear {
		return ConversionResult{}, ErrJalaaliOutOfRange
	}
	return newResult(t.Year, t.Month, t.Day, "", j), nil
}

// Convert dispatches on calendar identifiers, for the CLI and the HTTP API.
func (c *Converter) Convert(from, to string, y, m, d int) (ConversionResult, error) {
	if from == to {
		return ConversionResult{}, ErrSameCalendar
	}
	switch {
	case from == config.CalJalaali && to == config.CalHijri:
		return c.JalaaliToHijri(y, m, d)
	case from == config.CalGregorian && to == config.CalHijri:
		return c.GregorianToHijri(y, m, d)
	case from == config.CalHijri && to == config.CalJalaali:
		return c.HijriToJalaali(y, m, d)
	case from == config.CalHijri && to == config.CalGregorian:
		return c.HijriToGregorian(y, m, d)
	case from == config.CalJalaali && to == config.CalGregorian:
		return c.JalaaliToGregorian(y, m, d)
	case from == config.CalGregorian && to == config.CalJalaali:
		return c.GregorianToJalaali(y, m, d)
	default:
		return ConversionResult{}, ErrUnknownCalendar
	}
}

// GetSourceInfo reports whether observed data governs the given Hijri year
// and month (month <= 0 defaults to Muharram) and the table's covered span.
func (c *Converter) GetSourceInfo(year, month int) SourceInfo {
	if month <= 0 {
		month = 1
	}
	info := SourceInfo{
		HasOfficialData: c.Table.HasData(year, month),
		Source:          config.SourceTabular,
	}
	if info.HasOfficialData {
		info.Source = config.SourceOfficial
	}
	if r, ok := c.Table.CoveredRange(); ok {
		info.OfficialRange = &r
	}
	return info
}

// -----------------------------------------------------------------------------
// Resolution internals
// -----------------------------------------------------------------------------

// resolveHijri turns a JDN into a Hijri date: tabular estimate first, then
// the ordered three-candidate probe against the observed data. The window
// exists because the two approximations can disagree near year boundaries
// by up to a few days. If no candidate succeeds, the tabular estimate is
// used verbatim.
func (c *Converter) resolveHijri(j int) (ConversionResult, error) {
	est, err := tabular.FromJDN(j)
	if err != nil {
		return ConversionResult{}, err
	}

	for _, candidate := range [3]int{est.Year - 1, est.Year, est.Year + 1} {
		if d, ok := c.Table.FromJDNNear(j, candidate); ok {
			return newResult(d.Year, d.Month, d.Day, config.SourceOfficial, j), nil
		}
	}

	slog.Debug(config.MsgProbeMiss,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyJDN, j,
		config.LogKeyYear, est.Year,
	)
	return newResult(est.Year, est.Month, est.Day, config.SourceTabular, j), nil
}

// hijriToJDN maps a Hijri date to its day count, reporting which tier made
// the call. Malformed input raises here, before any accumulation.
func (c *Converter) hijriToJDN(y, m, d int) (int, string, error) {
	if y < config.MinHijriYear || y > config.MaxHijriYear {
		return 0, "", tabular.ErrYearOutOfRange
	}
	if !IsValidHijriDate(c.Table, y, m, d) {
		return 0, "", ErrInvalidDate
	}
	if c.Table.HasData(y, m) {
		if j, ok := c.Table.ToJDN(y, m, d); ok {
			return j, config.SourceOfficial, nil
		}
		// A gap below y invalidated the official walk; the tabular
		// estimate still yields a usable day count.
	}
	j, err := tabular.ToJDN(y, m, d)
	return j, config.SourceTabular, err
}

func newResult(y, m, d int, source string, j int) ConversionResult {
	return ConversionResult{
		Year:    y,
		Month:   m,
		Day:     d,
		Source:  source,
		Weekday: jdn.WeekdayOf(j),
	}
}

// -----------------------------------------------------------------------------
// Validators
// -----------------------------------------------------------------------------

// IsValidGregorianDate reports whether the date exists in the proleptic
// Gregorian calendar, leap-aware for February.
func IsValidGregorianDate(y, m, d int) bool {
	return m >= 1 && m <= 12 && d >= 1 && d <= jdn.GregorianMonthLength(y, m)
}

// IsValidJalaaliDate reports whether the date exists in the Jalaali
// calendar, leap-aware for Esfand, within the break table's domain.
func IsValidJalaaliDate(y, m, d int) bool {
	if y < jalaali.MinYear || y > jalaali.MaxYear {
		return false
	}
	return m >= 1 && m <= 12 && d >= 1 && d <= jalaali.MonthLength(y, m)
}

// HijriMonthLength returns the governing length of a Hijri month: the
// observed value when the table records it, the tabular length otherwise.
func HijriMonthLength(table *official.Table, y, m int) int {
	if ml, ok := table.MonthLength(y, m); ok {
		return ml
	}
	return tabular.MonthLength(y, m)
}

// HijriMonthLength on the converter uses its own table.
func (c *Converter) HijriMonthLength(y, m int) int {
	return HijriMonthLength(c.Table, y, m)
}

// IsValidHijriDate reports whether the date exists in the Hijri calendar,
// judged against the observed month length when data exists for the month
// and the tabular length otherwise.
func IsValidHijriDate(table *official.Table, y, m, d int) bool {
	if y < config.MinHijriYear || y > config.MaxHijriYear || m < 1 || m > 12 || d < 1 {
		return false
	}
	return d <= HijriMonthLength(table, y, m)
}

// IsValidHijriDate on the converter uses its own table.
func (c *Converter) IsValidHijriDate(y, m, d int) bool {
	return IsValidHijriDate(c.Table, y, m, d)
}
