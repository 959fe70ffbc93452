package engine_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/official"
	"github.com/tartampluch/go-hijri/internal/tabular"
)

// -----------------------------------------------------------------------------
// Mocks and fixtures
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// shippedConverter resolves against the embedded observed table (1442-1447).
func shippedConverter(t *testing.T) *engine.Converter {
	t.Helper()
	tbl, err := official.Load()
	require.NoError(t, err)
	return engine.New(tbl)
}

// sparseConverter only covers 1442, leaving later years to the fallback tier.
func sparseConverter() *engine.Converter {
	return engine.New(official.New(map[int][]int{
		1442: {29, 30, 29, 30, 29, 30, 30, 29, 30, 29, 30, 29},
	}))
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestJalaaliToHijri_ObservedData(t *testing.T) {
	// Scenario: 15 Azar 1403 falls inside the observed coverage, so the
	// authoritative tier governs the result.
	conv := shippedConverter(t)

	res, err := conv.JalaaliToHijri(1403, 9, 15)
	require.NoError(t, err)

	assert.Equal(t, 1446, res.Year)
	assert.Equal(t, 6, res.Month)
	assert.Equal(t, 3, res.Day)
	assert.Equal(t, config.SourceOfficial, res.Source)
	assert.Equal(t, "Thursday", res.Weekday.English)
	assert.Equal(t, 4, res.Weekday.Number)
}

func TestGregorianToHijri_TabularFallback(t *testing.T) {
	// Scenario: the same civil day, but the table stops at 1442, so the
	// arithmetic estimate governs and the source says so.
	conv := sparseConverter()

	res, err := conv.GregorianToHijri(2024, 12, 5)
	require.NoError(t, err)

	assert.Equal(t, 1446, res.Year)
	assert.Equal(t, 6, res.Month)
	assert.Equal(t, 3, res.Day)
	assert.Equal(t, config.SourceTabular, res.Source)
	assert.Equal(t, "Thursday", res.Weekday.English)
}

func TestGregorianToHijri_EmptyTable(t *testing.T) {
	conv := engine.New(official.New(nil))

	res, err := conv.GregorianToHijri(2024, 12, 5)
	require.NoError(t, err)
	assert.Equal(t, config.SourceTabular, res.Source)
	assert.Equal(t, 1446, res.Year)
}

func TestHijriToGregorian_ObservedData(t *testing.T) {
	conv := shippedConverter(t)

	res, err := conv.HijriToGregorian(1446, 6, 3)
	require.NoError(t, err)

	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, 12, res.Month)
	assert.Equal(t, 5, res.Day)
	assert.Equal(t, config.SourceOfficial, res.Source)
}

func TestHijriToJalaali_ObservedData(t *testing.T) {
	conv := shippedConverter(t)

	res, err := conv.HijriToJalaali(1446, 6, 3)
	require.NoError(t, err)

	assert.Equal(t, 1403, res.Year)
	assert.Equal(t, 9, res.Month)
	assert.Equal(t, 15, res.Day)
	assert.Equal(t, config.SourceOfficial, res.Source)
}

func TestHijriToGregorian_GapFallsBackToTabular(t *testing.T) {
	// Scenario: 1444 is recorded but 1443 is missing, so the observed walk
	// from the anchor cannot reach it and the arithmetic tier answers.
	conv := engine.New(official.New(map[int][]int{
		1442: {29, 30, 29, 30, 29, 30, 30, 29, 30, 29, 30, 29},
		1444: {29, 30, 30, 30, 29, 30, 29, 30, 29, 30, 29, 29},
	}))

	res, err := conv.HijriToGregorian(1444, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, config.SourceTabular, res.Source)
}

func TestSolarToSolar_NoSourceTier(t *testing.T) {
	conv := shippedConverter(t)

	res, err := conv.JalaaliToGregorian(1403, 9, 15)
	require.NoError(t, err)
	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, 12, res.Month)
	assert.Equal(t, 5, res.Day)
	assert.Empty(t, res.Source, "no Hijri engine participates in solar-to-solar")

	res, err = conv.GregorianToJalaali(2024, 12, 5)
	require.NoError(t, err)
	assert.Equal(t, 1403, res.Year)
	assert.Equal(t, 9, res.Month)
	assert.Equal(t, 15, res.Day)
	assert.Empty(t, res.Source)
}

func TestHijriRoundTrip(t *testing.T) {
	conv := shippedConverter(t)

	res, err := conv.GregorianToHijri(2024, 12, 5)
	require.NoError(t, err)
	back, err := conv.HijriToGregorian(res.Year, res.Month, res.Day)
	require.NoError(t, err)

	assert.Equal(t, 2024, back.Year)
	assert.Equal(t, 12, back.Month)
	assert.Equal(t, 5, back.Day)
}

func TestInvalidInput(t *testing.T) {
	conv := shippedConverter(t)

	_, err := conv.GregorianToHijri(2024, 2, 30)
	assert.ErrorIs(t, err, engine.ErrInvalidDate)

	_, err = conv.JalaaliToHijri(1404, 12, 30)
	assert.ErrorIs(t, err, engine.ErrInvalidDate, "1404 has no 30th of Esfand")

	_, err = conv.HijriToGregorian(1445, 13, 1)
	assert.ErrorIs(t, err, engine.ErrInvalidDate)

	_, err = conv.HijriToGregorian(6000, 1, 1)
	assert.ErrorIs(t, err, tabular.ErrYearOutOfRange)

	_, err = conv.HijriToGregorian(0, 1, 1)
	assert.ErrorIs(t, err, tabular.ErrYearOutOfRange)
}

// TestJalaaliDomainGuard checks that conversions landing past the break
// table's last year are refused instead of reporting undefined dates.
func TestJalaaliDomainGuard(t *testing.T) {
	conv := shippedConverter(t)

	_, err := conv.HijriToJalaali(5000, 1, 1)
	assert.ErrorIs(t, err, engine.ErrJalaaliOutOfRange)

	_, err = conv.GregorianToJalaali(9999, 1, 1)
	assert.ErrorIs(t, err, engine.ErrJalaaliOutOfRange)

	// Dates inside the domain stay unaffected.
	res, err := conv.GregorianToJalaali(2024, 12, 5)
	require.NoError(t, err)
	assert.Equal(t, 1403, res.Year)
}

func TestHijriMonthLength(t *testing.T) {
	conv := shippedConverter(t)

	// Observed 1446 records Muharram at 29 days where the arithmetic
	// calendar gives 30; outside coverage the tabular lengths govern.
	assert.Equal(t, 29, conv.HijriMonthLength(1446, 1))
	assert.Equal(t, 30, conv.HijriMonthLength(1500, 1))
	assert.Equal(t, 29, conv.HijriMonthLength(1500, 2))
}

func TestConvert_Dispatch(t *testing.T) {
	conv := shippedConverter(t)

	res, err := conv.Convert(config.CalGregorian, config.CalHijri, 2024, 12, 5)
	require.NoError(t, err)
	assert.Equal(t, 1446, res.Year)

	res, err = conv.Convert(config.CalHijri, config.CalJalaali, 1446, 6, 3)
	require.NoError(t, err)
	assert.Equal(t, 1403, res.Year)

	_, err = conv.Convert(config.CalHijri, config.CalHijri, 1446, 6, 3)
	assert.ErrorIs(t, err, engine.ErrSameCalendar)

	_, err = conv.Convert("julian", config.CalHijri, 2024, 12, 5)
	assert.ErrorIs(t, err, engine.ErrUnknownCalendar)
}

func TestValidators(t *testing.T) {
	conv := shippedConverter(t)

	assert.True(t, engine.IsValidGregorianDate(2024, 2, 29))
	assert.False(t, engine.IsValidGregorianDate(2023, 2, 29))
	assert.False(t, engine.IsValidGregorianDate(2024, 2, 30))
	assert.False(t, engine.IsValidGregorianDate(2024, 0, 1))

	assert.True(t, engine.IsValidJalaaliDate(1403, 12, 30))
	assert.False(t, engine.IsValidJalaaliDate(1404, 12, 30))
	assert.False(t, engine.IsValidJalaaliDate(9000, 1, 1))

	// The shipped table records Muharram 1446 as 29 days while the
	// arithmetic calendar gives it 30; observed data wins.
	assert.False(t, conv.IsValidHijriDate(1446, 1, 30))
	assert.True(t, conv.IsValidHijriDate(1446, 1, 29))

	// Outside coverage the tabular length governs.
	assert.True(t, conv.IsValidHijriDate(1500, 1, 30))
	assert.False(t, conv.IsValidHijriDate(1500, 2, 30))
	assert.False(t, conv.IsValidHijriDate(1446, 13, 1))
	assert.False(t, conv.IsValidHijriDate(1446, 1, 0))
}

func TestGetSourceInfo(t *testing.T) {
	conv := shippedConverter(t)

	info := conv.GetSourceInfo(1446, 6)
	assert.True(t, info.HasOfficialData)
	assert.Equal(t, config.SourceOfficial, info.Source)
	require.NotNil(t, info.OfficialRange)
	assert.Equal(t, 1442, info.OfficialRange.MinYear)
	assert.Equal(t, 1447, info.OfficialRange.MaxYear)

	// 1447 is partial; months past the recorded prefix fall back.
	info = conv.GetSourceInfo(1447, 12)
	assert.False(t, info.HasOfficialData)
	assert.Equal(t, config.SourceTabular, info.Source)

	info = conv.GetSourceInfo(1500, 0)
	assert.False(t, info.HasOfficialData)
	assert.Equal(t, config.SourceTabular, info.Source)
	assert.NotNil(t, info.OfficialRange, "the covered span is reported regardless")
}

func TestBuildOccasions(t *testing.T) {
	conv := shippedConverter(t)
	conv.Clock = MockClock{CurrentTime: time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)}

	data, err := conv.BuildOccasions()
	require.NoError(t, err)
	ics := string(data)

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "END:VCALENDAR")
	assert.Contains(t, ics, config.ICalCalName)
	// Today is in 1446, so the window spans 1445..1447 at twelve months each.
	assert.Equal(t, 36, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "Muharram 1446 AH")
	assert.Contains(t, ics, "Ramadan 1445 AH")
	assert.Contains(t, ics, "Dhu al-Hijjah 1447 AH")
}

func TestBuildOccasions_LocalizedSummaries(t *testing.T) {
	conv := shippedConverter(t)
	conv.Clock = MockClock{CurrentTime: time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)}
	conv.FormatSummary = func(monthName string, year int) string {
		return fmt.Sprintf("Start of %s (%d)", monthName, year)
	}

	data, err := conv.BuildOccasions()
	require.NoError(t, err)

	assert.Contains(t, string(data), "Start of Muharram (1446)")
	assert.NotContains(t, string(data), "AH")
}

func TestBuildOccasions_DeterministicUIDs(t *testing.T) {
	conv := shippedConverter(t)
	conv.Clock = MockClock{CurrentTime: time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)}

	first, err := conv.BuildOccasions()
	require.NoError(t, err)
	second, err := conv.BuildOccasions()
	require.NoError(t, err)

	assert.Equal(t, first, second, "feed content must be stable across rebuilds")
}
