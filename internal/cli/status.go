package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
	"github.com/tartampluch/circle-squared/internal/store"
)

type statusOptions struct {
	rolling bool
	top     int
	json    bool
}

func newStatusCmd(opts *options) *cobra.Command {
	var so statusOptions

	cmd := &cobra.Command{
		Use:   config.CmdStatus,
		Short: config.CmdDescStatus,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed(config.FlagTop) {
				so.top = opts.env.TopEvents
			}
			return opts.withStore(func(db *store.DB) error {
				return runStatus(cmd, db, opts.clock, so)
			})
		},
	}

	cmd.Flags().BoolVar(&so.rolling, config.FlagRolling, false, config.FlagDescRolling)
	cmd.Flags().IntVar(&so.top, config.FlagTop, config.DefaultTopEvents, config.FlagDescTop)
	cmd.Flags().BoolVar(&so.json, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

// statusReport is the --json document: the dashboard plus, with --rolling,
// the events pinned to their next occurrence.
type statusReport struct {
	engine.Dashboard
	Upcoming []engine.ScheduledEvent `json:"upcoming,omitempty"`
}

func runStatus(cmd *cobra.Command, db *store.DB, clock engine.Clock, so statusOptions) error {
	friends, err := db.LoadFriends(cmd.Context())
	if err != nil {
		return err
	}

	report := statusReport{Dashboard: engine.Deriver{Clock: clock}.Snapshot(friends)}
	dash := &report.Dashboard
	if so.rolling {
		// Truncate after ordering so that --top keeps the soonest events.
		report.Upcoming = engine.NextEvents(dash.GeneratedAt, dash.Events, so.top)
		dash.Events = make([]engine.Event, 0, len(report.Upcoming))
		for _, e := range report.Upcoming {
			dash.Events = append(dash.Events, e.Event)
		}
	} else if so.top > 0 {
		dash.Events = engine.TopEvents(dash.Events, so.top)
	}

	out := cmd.OutOrStdout()
	if so.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", config.BackupJSONIndent)
		return enc.Encode(report)
	}

	printDashboard(out, report)
	return nil
}

func printDashboard(out io.Writer, report statusReport) {
	dash := report.Dashboard
	if len(dash.Friends) == 0 {
		fmt.Fprint(out, config.StatusEmpty)
		return
	}
	fmt.Fprintf(out, config.StatusHeader, dash.HealthScore, dash.DriftingCount, len(dash.Friends))

	tw := tabwriter.NewWriter(out, 0, 0, config.TabPadding, ' ', 0)
	for _, tier := range engine.Tiers {
		fmt.Fprintf(tw, config.StatusTierHeader, tier.Label())
		for _, v := range dash.Friends {
			if v.Tier != tier {
				continue
			}
			fmt.Fprintf(tw, config.StatusFriendRow,
				v.Friend.Name,
				daysLabel(v.Drift),
				v.Drift.PercentDrift,
				lastSeen(dash.GeneratedAt, v.Friend.LastInteraction),
				driftTag(v.Drift),
			)
		}
	}

	fmt.Fprint(tw, config.StatusUpcoming)
	switch {
	case len(dash.Events) == 0:
		fmt.Fprint(tw, config.StatusNoEvents)
	case report.Upcoming != nil:
		for _, e := range report.Upcoming {
			fmt.Fprintf(tw, config.StatusEventRowIn, e.NextOccurrence.Format(config.DateFormatDisplay), e.Label, e.DaysUntil)
		}
	default:
		for _, e := range dash.Events {
			fmt.Fprintf(tw, config.StatusEventRow, e.Date.Format(config.DateFormatDisplay), e.Label)
		}
	}
	for _, bad := range dash.UnavailableDates {
		fmt.Fprintf(tw, config.StatusDateUnavailable, dash.FriendName(bad.FriendID), bad.Field, bad.Value)
	}
	_ = tw.Flush()
}

func daysLabel(d engine.Drift) string {
	if d.Never() {
		return config.StatusNever
	}
	return fmt.Sprintf(config.StatusDaysFormat, d.DaysSince)
}

func lastSeen(now time.Time, last *time.Time) string {
	if last == nil {
		return ""
	}
	return humanize.RelTime(*last, now, config.StatusRelAgo, config.StatusRelFromNow)
}

func driftTag(d engine.Drift) string {
	if d.IsDrifting {
		return config.StatusDriftingTag
	}
	return ""
}
