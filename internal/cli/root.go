// Package cli wires the command line surface of Circle Squared.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
	"github.com/tartampluch/circle-squared/internal/store"
)

// GUIFunc starts the desktop dashboard and blocks until it exits.
type GUIFunc func(ctx context.Context, db *store.DB, env config.Env) error

// options holds the state shared by every command of one invocation.
type options struct {
	debug  bool
	dbPath string

	env       config.Env
	clock     engine.Clock
	logCloser io.Closer
}

// Execute runs the command line and returns the process exit code.
// The root command without a subcommand runs gui.
func Execute(gui GUIFunc) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd(gui).ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// NewRootCmd builds the command tree.
func NewRootCmd(gui GUIFunc) *cobra.Command {
	return newRootCmd(gui, engine.RealClock{})
}

func newRootCmd(gui GUIFunc, clock engine.Clock) *cobra.Command {
	opts := &options{clock: clock}

	cmd := &cobra.Command{
		Use:          config.CmdRoot,
		Short:        config.CmdDescRoot,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logStartupInfo()
			db, err := opts.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := gui(cmd.Context(), db, opts.env); err != nil {
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompCLI)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	cmd.PersistentFlags().StringVar(&opts.dbPath, config.FlagDB, "", config.FlagDescDB)

	cmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newLogCmd(opts),
		newResetCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// init reads the environment and configures logging.
// Flags win over environment variables.
func (o *options) init() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	o.env = env
	if o.dbPath == "" {
		o.dbPath = env.DBPath
	}
	o.debug = o.debug || env.Debug
	o.logCloser = setupLogging(o.debug)
	return nil
}

func (o *options) close() {
	if o.logCloser != nil {
		_ = o.logCloser.Close()
		o.logCloser = nil
	}
}

// openStore opens the database selected by --db, CIRCLE_DB_PATH or the default path.
func (o *options) openStore() (*store.DB, error) {
	path := o.dbPath
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrOpenDB, err)
	}
	return db, nil
}

// withStore opens the store for the duration of fn.
func (o *options) withStore(fn func(db *store.DB) error) error {
	db, err := o.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}
