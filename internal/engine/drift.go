package engine

import (
	"math"
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
)

// DaysNever is the DaysSince value of a friend who was never contacted.
// It plays the role of +infinity: it compares greater than every real count.
const DaysNever = math.MaxInt

// Drift describes how far a friend has drifted from their check-in cadence.
type Drift struct {
	IsDrifting   bool    `json:"isDrifting"`
	DaysSince    int     `json:"daysSince"`
	PercentDrift float64 `json:"percentDrift"`
}

// Never reports whether the friend has never been contacted.
func (d Drift) Never() bool {
	return d.DaysSince == DaysNever
}

// CalculateDrift computes the drift of a friend last seen at `last` (nil when
// never contacted) against a cadence of cadenceDays, as of now.
//
// A cadence below one day is coerced to one day. A last interaction in the
// future (clock skew, bad import) counts as today.
func CalculateDrift(now time.Time, last *time.Time, cadenceDays int) Drift {
	if last == nil {
		return Drift{IsDrifting: true, DaysSince: DaysNever, PercentDrift: config.MaxPercent}
	}

	cadence := max(cadenceDays, config.MinCadence)
	days := max(calendarDaysBetween(*last, now), 0)

	return Drift{
		IsDrifting:   days > cadence,
		DaysSince:    days,
		PercentDrift: math.Min(config.MaxPercent, float64(days)/float64(cadence)*config.MaxPercent),
	}
}

// DriftOf is CalculateDrift for a friend, using the friend's effective cadence.
func DriftOf(now time.Time, f Friend) Drift {
	return CalculateDrift(now, f.LastInteraction, f.EffectiveCadence())
}
