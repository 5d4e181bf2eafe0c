package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
)

// FriendView is a friend together with everything derived from it.
type FriendView struct {
	Friend         Friend `json:"friend"`
	Drift          Drift  `json:"drift"`
	Tier           Tier   `json:"tier"`
	NeverContacted bool   `json:"neverContacted"`
	Initials       string `json:"initials"`
}

// Dashboard is the complete view state of one derivation pass.
type Dashboard struct {
	GeneratedAt   time.Time    `json:"generatedAt"`
	HealthScore   int          `json:"healthScore"`
	DriftingCount int          `json:"driftingCount"`
	Friends       []FriendView `json:"friends"`
	Tiers         TierBuckets  `json:"tiers"`
	Events        []Event      `json:"events"`
	// UnavailableDates lists milestone dates that could not be parsed.
	// Their events are missing from Events; everything else is complete.
	UnavailableDates []DateError `json:"unavailableDates,omitempty"`
}

// FriendName returns the name of friend id, or id when it is not in the dashboard.
func (d Dashboard) FriendName(id string) string {
	for _, v := range d.Friends {
		if v.Friend.ID == id {
			return v.Friend.Name
		}
	}
	return id
}

// Derive computes the dashboard of a collection as of now with English
// milestone labels. It never modifies friends.
func Derive(now time.Time, friends []Friend) Dashboard {
	return derive(now, friends, nil)
}

// Deriver derives dashboards from the injected clock.
type Deriver struct {
	Clock Clock

	// FormatLabel allows the UI to inject localized milestone labels.
	FormatLabel LabelFormatter
}

// Snapshot reads the clock once and derives the dashboard of friends.
func (d Deriver) Snapshot(friends []Friend) Dashboard {
	start := time.Now()
	dash := derive(d.Clock.Now(), friends, d.FormatLabel)

	for _, bad := range dash.UnavailableDates {
		slog.Warn(config.MsgDateInvalid,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyFriendID, bad.FriendID,
			config.LogKeyField, bad.Field,
			config.LogKeyValue, bad.Value,
		)
	}

	slog.Debug(config.MsgRefreshDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(dash.Friends),
		config.LogKeyScore, dash.HealthScore,
		config.LogKeyDrifting, dash.DriftingCount,
		config.LogKeyEvents, len(dash.Events),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return dash
}

func derive(now time.Time, friends []Friend, format LabelFormatter) Dashboard {
	events, unavailable := UsableEventsWith(friends, format)

	views := make([]FriendView, 0, len(friends))
	drifting := 0
	for _, f := range friends {
		d := DriftOf(now, f)
		if d.IsDrifting {
			drifting++
		}
		views = append(views, FriendView{
			Friend:         f,
			Drift:          d,
			Tier:           TierForDays(d.DaysSince),
			NeverContacted: d.Never(),
			Initials:       Initials(f.Name),
		})
	}

	return Dashboard{
		GeneratedAt:   now,
		HealthScore:   SocialHealthScore(now, friends),
		DriftingCount: drifting,
		Friends:       views,
		Tiers:         GroupByTier(now, friends),
		Events:        events,

		UnavailableDates: unavailable,
	}
}
