// Package cli renders conversion results for the terminal, with labels
// localized through go-i18n bundles embedded in the binary. The weekday
// names themselves are fixed trilingual data attached by the engine; only
// the surrounding labels translate.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/jalaali"
	"github.com/tartampluch/go-hijri/internal/jdn"
	"github.com/tartampluch/go-hijri/internal/server"
)

// CLI drives terminal interactions around a Converter.
type CLI struct {
	Converter          *engine.Converter
	Out                io.Writer
	Bundle             *i18n.Bundle
	Localizer          *i18n.Localizer
	SupportedLanguages []string
}

// New wires a CLI over the converter, loading locales and selecting the
// output language.
func New(conv *engine.Converter, out io.Writer, lang string) *CLI {
	c := &CLI{
		Converter: conv,
		Out:       out,
	}
	c.SetupI18n(lang)

	// Let the engine localize ICS summaries through the same bundle.
	conv.FormatSummary = func(monthName string, year int) string {
		return c.GetMsgData(config.TKeyEvtSummary, map[string]any{
			"Month": monthName,
			"Year":  year,
		})
	}
	return c
}

// calendarLabel maps a calendar identifier to its localized display name.
func (c *CLI) calendarLabel(calendar string) string {
	switch calendar {
	case config.CalJalaali:
		return c.GetMsg(config.TKeyCalJalaali)
	case config.CalGregorian:
		return c.GetMsg(config.TKeyCalGreg)
	case config.CalHijri:
		return c.GetMsg(config.TKeyCalHijri)
	default:
		return calendar
	}
}

// sourceLabel maps a source tier to its localized display name; empty for
// solar-to-solar conversions.
func (c *CLI) sourceLabel(source string) string {
	switch source {
	case config.SourceOfficial:
		return c.GetMsg(config.TKeySrcOfficial)
	case config.SourceTabular:
		return c.GetMsg(config.TKeySrcTabular)
	default:
		return ""
	}
}

// RunConvert parses the date string, performs the conversion and prints a
// localized report.
func (c *CLI) RunConvert(dateStr, from, to string) error {
	start := time.Now()
	y, m, d, err := server.ParseDate(dateStr)
	if err != nil {
		return err
	}

	result, err := c.Converter.Convert(from, to, y, m, d)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Out, "%s (%s): %s\n",
		c.GetMsg(config.TKeyLblInput),
		c.calendarLabel(from),
		fmt.Sprintf(config.FormatDateSlash, y, m, d),
	)
	fmt.Fprintf(c.Out, "%s (%s): %s\n",
		c.GetMsg(config.TKeyLblOutput),
		c.calendarLabel(to),
		fmt.Sprintf(config.FormatDateSlash, result.Year, result.Month, result.Day),
	)
	if label := c.sourceLabel(result.Source); label != "" {
		fmt.Fprintf(c.Out, "%s: %s\n", c.GetMsg(config.TKeyLblSource), label)
	}
	fmt.Fprintf(c.Out, "%s: %s / %s / %s\n",
		c.GetMsg(config.TKeyLblWeekday),
		result.Weekday.English,
		result.Weekday.Persian,
		result.Weekday.Arabic,
	)

	slog.Debug(config.MsgConvDone,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyFrom, from,
		config.LogKeyTo, to,
		config.LogKeyDate, dateStr,
		config.LogKeySource, result.Source,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return nil
}

// RunMonth renders one month of the given calendar as a weekday-aligned
// grid: a title line, a localized header of abbreviated weekday names
// (Monday first, matching the day-count parity), and the day numbers in
// 4-column cells wrapping every seven. Hijri grids carry a source line.
func (c *CLI) RunMonth(monthStr, calendar string) error {
	y, m, err := server.ParseYearMonth(monthStr)
	if err != nil {
		return err
	}

	length, first, src, err := c.monthShape(calendar, y, m)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Out, "%s %s\n",
		c.calendarLabel(calendar),
		fmt.Sprintf(config.FormatYearMonth, y, m),
	)
	if label := c.sourceLabel(src); label != "" {
		fmt.Fprintf(c.Out, "%s: %s\n", c.GetMsg(config.TKeyLblSource), label)
	}
	fmt.Fprintln(c.Out, c.GetMsg(config.TKeyWdHeader))

	col := first.Number - 1
	var row strings.Builder
	row.WriteString(strings.Repeat(config.GridEmptyCell, col))
	for day := 1; day <= length; day++ {
		cell := fmt.Sprintf(config.FormatGridDay, day)
		row.WriteString(fmt.Sprintf(config.FormatGridCell, cell))
		col++
		if col == config.GridWeekDays {
			fmt.Fprintln(c.Out, strings.TrimRight(row.String(), " "))
			row.Reset()
			col = 0
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(c.Out, strings.TrimRight(row.String(), " "))
	}

	slog.Debug(config.MsgGridDone,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeySource, src,
		config.LogKeyYear, y,
		config.LogKeyMonth, m,
	)
	return nil
}

// monthShape resolves what the grid needs: the month length, the weekday of
// day 1, and the source tier when a Hijri engine participates.
func (c *CLI) monthShape(calendar string, y, m int) (int, jdn.Weekday, string, error) {
	switch calendar {
	case config.CalGregorian:
		if !engine.IsValidGregorianDate(y, m, 1) {
			return 0, jdn.Weekday{}, "", engine.ErrInvalidDate
		}
		return jdn.GregorianMonthLength(y, m), jdn.WeekdayOf(jdn.FromGregorian(y, m, 1)), "", nil
	case config.CalJalaali:
		if !engine.IsValidJalaaliDate(y, m, 1) {
			return 0, jdn.Weekday{}, "", engine.ErrInvalidDate
		}
		return jalaali.MonthLength(y, m), jdn.WeekdayOf(jalaali.ToJDN(y, m, 1)), "", nil
	case config.CalHijri:
		res, err := c.Converter.HijriToGregorian(y, m, 1)
		if err != nil {
			return 0, jdn.Weekday{}, "", err
		}
		return c.Converter.HijriMonthLength(y, m), res.Weekday, res.Source, nil
	default:
		return 0, jdn.Weekday{}, "", engine.ErrUnknownCalendar
	}
}

// RunToday prints today's date in all three calendars, with the official
// data coverage for the Hijri result.
func (c *CLI) RunToday() error {
	now := c.Converter.Clock.Now()
	gy, gm, gd := now.Date()

	jal, err := c.Converter.GregorianToJalaali(gy, int(gm), gd)
	if err != nil {
		return err
	}
	hij, err := c.Converter.GregorianToHijri(gy, int(gm), gd)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Out, "%s:\n", c.GetMsg(config.TKeyLblToday))
	fmt.Fprintf(c.Out, "  %s: %s\n",
		c.calendarLabel(config.CalGregorian),
		fmt.Sprintf(config.FormatDateSlash, gy, int(gm), gd),
	)
	fmt.Fprintf(c.Out, "  %s: %s\n",
		c.calendarLabel(config.CalJalaali),
		fmt.Sprintf(config.FormatDateSlash, jal.Year, jal.Month, jal.Day),
	)
	fmt.Fprintf(c.Out, "  %s: %s (%s)\n",
		c.calendarLabel(config.CalHijri),
		fmt.Sprintf(config.FormatDateSlash, hij.Year, hij.Month, hij.Day),
		c.sourceLabel(hij.Source),
	)
	fmt.Fprintf(c.Out, "  %s: %s / %s / %s\n",
		c.GetMsg(config.TKeyLblWeekday),
		hij.Weekday.English,
		hij.Weekday.Persian,
		hij.Weekday.Arabic,
	)

	info := c.Converter.GetSourceInfo(hij.Year, hij.Month)
	if info.OfficialRange != nil {
		fmt.Fprintf(c.Out, "  %s: %s\n",
			c.GetMsg(config.TKeyLblCoverage),
			fmt.Sprintf(config.FormatRangeSpan, info.OfficialRange.MinYear, info.OfficialRange.MaxYear),
		)
	} else {
		fmt.Fprintf(c.Out, "  %s\n", c.GetMsg(config.TKeyNoCoverage))
	}
	return nil
}
