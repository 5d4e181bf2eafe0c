package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
)

// EventType tags the kind of milestone.
type EventType string

const (
	EventBirthday        EventType = "birthday"
	EventPartnerBirthday EventType = "partner_birthday"
	EventAnniversary     EventType = "anniversary"
	EventKidBirthday     EventType = "kid_birthday"
)

// Event is a recurring annual milestone of a friend or their family.
type Event struct {
	FriendID   string    `json:"friendId"`
	FriendName string    `json:"friendName"`
	Type       EventType `json:"type"`
	// Date is the parsed date. Its year is meaningless when YearKnown is false.
	Date      time.Time `json:"date"`
	Raw       string    `json:"raw"`
	YearKnown bool      `json:"yearKnown"`
	Label     string    `json:"label"`
}

// LabelFormatter builds the human label of a milestone.
// name is the person the milestone belongs to (empty for an unnamed partner
// or kid), friendName is the friend the record hangs off.
type LabelFormatter func(kind EventType, name, friendName string) string

// DefaultLabel is the English LabelFormatter.
func DefaultLabel(kind EventType, name, friendName string) string {
	switch kind {
	case EventPartnerBirthday:
		if name == "" {
			return fmt.Sprintf(config.FallbackLabelPartnerUnnamed, friendName)
		}
	case EventKidBirthday:
		if name == "" {
			return fmt.Sprintf(config.FallbackLabelKidUnnamed, friendName)
		}
	case EventAnniversary:
		return fmt.Sprintf(config.FallbackLabelAnniversary, name)
	}
	return fmt.Sprintf(config.FallbackLabelBirthday, name)
}

// UpcomingEvents collects the milestones of every friend with English labels.
// See UpcomingEventsWith.
func UpcomingEvents(friends []Friend) ([]Event, error) {
	return UpcomingEventsWith(friends, nil)
}

// UpcomingEventsWith collects the birthday, partner birthday, anniversary and
// kids' birthdays of every friend, one event per present date, and orders
// them by month then day. The year is ignored, so the list reads as an
// annual calendar starting in January rather than as "soonest first";
// ties keep collection order.
//
// Absent dates are skipped. A present date that cannot be parsed aborts the
// whole aggregation with a *DateError.
func UpcomingEventsWith(friends []Friend, format LabelFormatter) ([]Event, error) {
	events, bad := collectEvents(friends, format, true)
	if len(bad) > 0 {
		return nil, &bad[0]
	}
	return events, nil
}

// UsableEventsWith is UpcomingEventsWith for display: a date that cannot be
// parsed drops only its own event and is reported in unavailable, in
// collection order.
func UsableEventsWith(friends []Friend, format LabelFormatter) (events []Event, unavailable []DateError) {
	return collectEvents(friends, format, false)
}

// milestoneSource is one milestone date field of a friend.
type milestoneSource struct {
	kind  EventType
	field string
	name  string
	raw   string
}

func milestoneSources(f Friend) []milestoneSource {
	sources := []milestoneSource{
		{EventBirthday, config.FieldBirthday, f.Name, f.Birthday},
		{EventPartnerBirthday, config.FieldPartnerBirthday, f.PartnerName, f.PartnerBirthday},
		{EventAnniversary, config.FieldAnniversary, f.Name, f.Anniversary},
	}
	for i, kid := range f.Kids {
		sources = append(sources, milestoneSource{EventKidBirthday, fmt.Sprintf(config.FieldKidBirthday, i), kid.Name, kid.Birthday})
	}
	return sources
}

// checkDates returns a *DateError for the first present date of f that cannot be parsed.
func checkDates(f Friend) error {
	for _, s := range milestoneSources(f) {
		raw := strings.TrimSpace(s.raw)
		if raw == "" {
			continue
		}
		if _, _, err := ParseDate(raw); err != nil {
			return &DateError{FriendID: f.ID, Field: s.field, Value: raw}
		}
	}
	return nil
}

func collectEvents(friends []Friend, format LabelFormatter, failFast bool) ([]Event, []DateError) {
	if format == nil {
		format = DefaultLabel
	}

	events := make([]Event, 0)
	var bad []DateError
	for _, f := range friends {
		for _, s := range milestoneSources(f) {
			raw := strings.TrimSpace(s.raw)
			if raw == "" {
				continue
			}
			date, yearKnown, err := ParseDate(raw)
			if err != nil {
				bad = append(bad, DateError{FriendID: f.ID, Field: s.field, Value: raw})
				if failFast {
					return nil, bad
				}
				continue
			}
			events = append(events, Event{
				FriendID:   f.ID,
				FriendName: f.Name,
				Type:       s.kind,
				Date:       date,
				Raw:        raw,
				YearKnown:  yearKnown,
				Label:      format(s.kind, strings.TrimSpace(s.name), f.Name),
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].Date, events[j].Date
		if a.Month() != b.Month() {
			return a.Month() < b.Month()
		}
		return a.Day() < b.Day()
	})
	return events, bad
}

// TopEvents returns a copy of the first n events. The month/day order makes
// this only approximately "the next n": a milestone that already passed this
// year still sorts by its month and day.
func TopEvents(events []Event, n int) []Event {
	n = min(max(n, 0), len(events))
	return append([]Event(nil), events[:n]...)
}

// ScheduledEvent is an event pinned to its next occurrence.
type ScheduledEvent struct {
	Event
	NextOccurrence time.Time `json:"nextOccurrence"`
	DaysUntil      int       `json:"daysUntil"`
	// YearsNext is the age or the years of marriage at NextOccurrence.
	// Only meaningful when YearKnown is true.
	YearsNext int `json:"yearsNext,omitempty"`
}

// ByNextOccurrence orders events by their next occurrence relative to now,
// rolling a month/day that already passed this year into next year.
//
// This is an opt-in alternative to the month/day order of UpcomingEvents and
// changes the observable order around the year boundary.
func ByNextOccurrence(now time.Time, events []Event) []ScheduledEvent {
	out := make([]ScheduledEvent, 0, len(events))
	for _, e := range events {
		next, years := calculateNextOccurrence(now, e.Date, e.YearKnown)
		out = append(out, ScheduledEvent{
			Event:          e,
			NextOccurrence: next,
			DaysUntil:      calendarDaysBetween(now, next),
			YearsNext:      years,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextOccurrence.Before(out[j].NextOccurrence)
	})
	return out
}

// NextEvents returns the n events that come soonest after now, in that order.
// n <= 0 keeps them all.
func NextEvents(now time.Time, events []Event, n int) []ScheduledEvent {
	out := ByNextOccurrence(now, events)
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// calculateNextOccurrence determines the next occurrence of date's month/day
// relative to now, today included.
func calculateNextOccurrence(now time.Time, date time.Time, yearKnown bool) (time.Time, int) {
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st in non-leap years.
	candidate := time.Date(now.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, loc)
	}

	years := 0
	if yearKnown {
		years = candidate.Year() - date.Year()
	}
	return candidate, years
}
