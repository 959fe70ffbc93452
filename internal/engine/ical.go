package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/jdn"
)

// BuildOccasions renders an iCalendar feed with one all-day event per Hijri
// month start, covering the Hijri year containing "today" plus its two
// neighbors. The three-year window keeps events present when a calendar
// client scrolls back or forward without an immediate refresh.
//
// Each month start is resolved the same way a conversion is: observed data
// when the resolver covers the month, tabular estimate otherwise.
func (c *Converter) BuildOccasions() ([]byte, error) {
	now := c.Clock.Now()
	gy, gm, gd := now.Date()
	today, err := c.resolveHijri(jdn.FromGregorian(gy, int(gm), gd))
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	count := 0
	for year := today.Year - 1; year <= today.Year+1; year++ {
		for month := 1; month <= 12; month++ {
			start, ok := c.monthStartJDN(year, month)
			if !ok {
				continue
			}
			e := c.newOccasionEvent(year, month, start)
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
			count++
		}
	}

	// A window entirely outside the tabular domain yields no events; serve
	// the minimal valid VCALENDAR so clients do not flag the feed.
	if count == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYear, today.Year,
		config.LogKeyEvents, count,
	)
	return buf.Bytes(), nil
}

// monthStartJDN finds day 1 of the given Hijri month via the resolution
// tiers; false only when the year escapes the tabular domain.
func (c *Converter) monthStartJDN(year, month int) (int, bool) {
	j, _, err := c.hijriToJDN(year, month, 1)
	if err != nil {
		return 0, false
	}
	return j, true
}

// newOccasionEvent builds one all-day VEVENT for a Hijri month start.
// UIDs are deterministic so event identity stays stable across refreshes.
func (c *Converter) newOccasionEvent(year, month, start int) *ical.Event {
	input := fmt.Sprintf(config.FormatHashInput, year, month, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID,
		fmt.Sprintf(config.FormatUID, uidBase, year, month, config.ICalDomain))

	summary := fmt.Sprintf(config.FallbackEvtSummary, HijriMonthNames[month-1], year)
	if c.FormatSummary != nil {
		summary = c.FormatSummary(HijriMonthNames[month-1], year)
	}
	event.Props.SetText(config.PropSummary, summary)

	g := jdn.ToGregorian(start)
	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(time.Date(g.Year, time.Month(g.Month), g.Day, 0, 0, 0, 0, time.UTC))
	event.Props.Set(dtStartProp)

	return event
}
