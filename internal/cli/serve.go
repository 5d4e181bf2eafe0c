package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
	"github.com/tartampluch/circle-squared/internal/scheduler"
	"github.com/tartampluch/circle-squared/internal/server"
	"github.com/tartampluch/circle-squared/internal/store"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		port    string
		refresh int
	)

	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed(config.FlagPort) && opts.env.Port != "" {
				port = opts.env.Port
			}
			logStartupInfo()
			return opts.withStore(func(db *store.DB) error {
				return runServe(cmd.Context(), db, opts, port, time.Duration(refresh)*time.Minute)
			})
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	cmd.Flags().IntVar(&refresh, config.FlagRefresh, config.DefaultRefreshMin, config.FlagDescRefresh)
	return cmd
}

// runServe publishes the stored collection until ctx is cancelled.
// The store is re-read on every refresh so that changes made by other
// invocations show up.
func runServe(ctx context.Context, db *store.DB, opts *options, port string, interval time.Duration) error {
	srv := server.New(port)
	publish := newPublisher(db, srv, opts.clock, opts.env.TopEvents)

	sched := scheduler.New(time.Local, publish)
	if err := sched.Trigger(); err != nil {
		return err
	}
	if err := sched.Start(interval); err != nil {
		return err
	}
	defer sched.Stop()

	return srv.Start(ctx)
}

// newPublisher returns a refresh that derives the stored collection and
// swaps the result into srv.
func newPublisher(db *store.DB, srv *server.Server, clock engine.Clock, top int) scheduler.RefreshFunc {
	return func(ctx context.Context) error {
		friends, err := db.LoadFriends(ctx)
		if err != nil {
			return err
		}
		dash := engine.Deriver{Clock: clock}.Snapshot(friends)

		ics, err := engine.CalendarBuilder{}.Build(dash.GeneratedAt, dash.Events, config.DefaultReminderTrigger)
		if err != nil {
			return err
		}
		srv.UpdateCalendar(ics)

		if top > 0 {
			dash.Events = engine.TopEvents(dash.Events, top)
		}
		return srv.UpdateDashboard(dash)
	}
}
