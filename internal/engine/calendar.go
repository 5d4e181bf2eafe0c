package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/circle-squared/internal/config"
)

// CalendarBuilder renders milestones as an iCalendar feed.
type CalendarBuilder struct {
	// FormatSummary allows the UI to inject localized strings.
	// showYears is false when the year of the milestone is unknown.
	FormatSummary func(label string, years int, showYears bool) string
}

// Build returns an iCalendar document with one all-day event per milestone for
// the previous, current and next year. Events never predate the milestone
// itself. A non-empty reminderTrigger (ISO 8601 duration, e.g. "-P1D") adds a
// display alarm to every event.
func (b CalendarBuilder) Build(now time.Time, events []Event, reminderTrigger string) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Milestones follow the local calendar; only the stamp is UTC.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, e := range events {
		for _, ev := range b.createEvents(e, reminderTrigger, now) {
			ev.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, ev.Component)
		}
	}

	if len(cal.Children) == 0 {
		b.logSuccess(len(events), 0)
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	b.logSuccess(len(events), len(cal.Children))
	return buf.Bytes(), nil
}

func (b CalendarBuilder) logSuccess(milestones, entries int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyEvents, milestones),
			slog.Int(config.LogKeyCount, entries),
		),
	)
}

func (b CalendarBuilder) createEvents(e Event, reminderTrigger string, now time.Time) []*ical.Event {
	currentYear := now.Year()
	loc := now.Location()
	uidBase := eventUID(e)

	var out []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if e.YearKnown && y < e.Date.Year() {
			continue
		}

		years := 0
		if e.YearKnown {
			years = y - e.Date.Year()
		}

		summary := e.Label
		switch {
		case b.FormatSummary != nil:
			summary = b.FormatSummary(e.Label, years, e.YearKnown && years > 0)
		case e.YearKnown && years > 0:
			summary = fmt.Sprintf(config.FallbackSummaryAge, e.Label, years)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropCategories, string(e.Type))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, loc))
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}
		out = append(out, event)
	}
	return out
}

// eventUID is stable across refreshes as long as the milestone is unchanged.
func eventUID(e Event) string {
	input := fmt.Sprintf(config.FormatHashInput, e.FriendID, e.Type, e.Label, e.Raw, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set directly to avoid a VALUE=TEXT parameter.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
