package ui

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/circle-squared/internal/backup"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
	"github.com/tartampluch/circle-squared/internal/scheduler"
	"github.com/tartampluch/circle-squared/internal/server"
	"github.com/tartampluch/circle-squared/internal/store"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// CircleApp encapsulates the UI state, preferences, and background logic.
type CircleApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store     *store.DB
	Server    *server.Server
	Fetcher   engine.VCardFetcher
	Clock     engine.Clock // Injected clock for testability (e.g. mocking time travel)
	Scheduler *scheduler.Scheduler

	// TopEvents bounds the milestones panel and the published dashboard. Zero shows all.
	TopEvents int
	// LangOverride wins over the language preference when set (CIRCLE_LANG).
	LangOverride string

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem    *fyne.MenuItem
	TrayDashboardItem *fyne.MenuItem
	TrayRefreshItem   *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem

	SupportedLanguages []string

	// writeMu serializes load-modify-save cycles on the store.
	writeMu sync.Mutex
	// refreshMu serializes Refresh from load to publish, so the last
	// published dashboard is always derived from the latest save.
	refreshMu sync.Mutex

	viewMu    sync.RWMutex
	dashboard engine.Dashboard

	settingsWindow  fyne.Window
	dashboardWindow fyne.Window
	friendWindow    fyne.Window
	profileWindow   fyne.Window

	// friendForm is the open add-friend form, nil when friendWindow is.
	friendForm *friendFormWidgets
	// profileID is the friend shown by profileWindow.
	profileID  string
}

// NewCircleApp constructs the application and wires dependencies.
func NewCircleApp(a fyne.App, ctx context.Context, db *store.DB, srv *server.Server, fetcher engine.VCardFetcher) *CircleApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &CircleApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              db,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{}, // Default to real clock in production
		TopEvents:          config.DefaultTopEvents,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Launch runs the desktop dashboard on db until the window system quits or
// ctx is cancelled.
func Launch(ctx context.Context, db *store.DB, env config.Env) error {
	a := fyneapp.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	if env.Port != "" {
		port = env.Port
	}

	gui := NewCircleApp(a, ctx, db, server.New(port), engine.NewHTTPFetcher())
	gui.TopEvents = env.TopEvents
	gui.LangOverride = env.Language

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(a.Quit)
	}()

	gui.Run()
	return nil
}

// Run launches the application services and the main UI loop.
func (app *CircleApp) Run() {
	app.SetupI18n()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.Scheduler = scheduler.New(time.Local, app.Refresh)
	// Failures are logged and shown in the tray by Refresh.
	_ = app.Scheduler.Trigger()
	if err := app.Scheduler.Start(app.refreshInterval()); err != nil {
		slog.Error(config.ErrSchedule, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	}
	defer app.Scheduler.Stop()
	app.watchPreferences()

	app.ShowDashboardWindow()
	app.App.Run()
}

// watchPreferences reschedules the periodic refresh when the interval changes.
func (app *CircleApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		if app.Scheduler == nil {
			return
		}
		interval := app.refreshInterval()
		old := app.Scheduler.Interval()
		if interval == old {
			return
		}
		slog.Info(config.MsgUpdateInterval,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyOld, old,
			config.LogKeyNew, interval)
		if err := app.Scheduler.SetInterval(interval); err != nil {
			slog.Error(config.ErrSchedule, config.LogKeyError, err, config.LogKeyComponent, config.CompWorker)
		}
	})
}

// refreshInterval reads the interval preference. Zero or less disables the
// periodic refresh; the midnight refresh always runs.
func (app *CircleApp) refreshInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val <= config.DisabledInterval {
		return 0
	}
	return time.Duration(val) * time.Minute
}

// setupTrayMenu constructs the system tray menu.
func (app *CircleApp) setupTrayMenu() {
	// The status line opens the dashboard as well.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowDashboardWindow()
	})

	app.TrayDashboardItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuDashboard), func() {
		app.ShowDashboardWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.refreshNow()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayDashboardItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *CircleApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayDashboardItem.Label = app.GetMsg(config.TKeyMenuDashboard)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)

	app.viewMu.RLock()
	dash := app.dashboard
	app.viewMu.RUnlock()
	app.updateTrayStatus(dash.HealthScore, dash.DriftingCount, len(dash.Friends))
}

// refreshNow runs a manual refresh, through the scheduler when it is running
// so that manual and scheduled refreshes share one code path.
func (app *CircleApp) refreshNow() {
	slog.Info(config.MsgRefreshReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, true)

	var err error
	if app.Scheduler != nil {
		err = app.Scheduler.Trigger()
	} else {
		err = app.Refresh(app.Ctx)
	}
	if err != nil {
		app.App.SendNotification(fyne.NewNotification(config.TitleError, err.Error()))
	}
}

// Refresh re-derives the view state from the store and publishes it to the
// HTTP server, the tray and the dashboard window.
func (app *CircleApp) Refresh(ctx context.Context) error {
	app.refreshMu.Lock()
	defer app.refreshMu.Unlock()

	friends, err := app.Store.LoadFriends(ctx)
	if err != nil {
		app.refreshFailed(err)
		return err
	}

	deriver := engine.Deriver{Clock: app.Clock, FormatLabel: app.buildLabelFormatter()}
	dash := deriver.Snapshot(friends)

	builder := engine.CalendarBuilder{FormatSummary: app.buildSummaryFormatter()}
	ics, err := builder.Build(dash.GeneratedAt, dash.Events, config.DefaultReminderTrigger)
	if err != nil {
		app.refreshFailed(err)
		return err
	}
	app.Server.UpdateCalendar(ics)

	published := dash
	if app.TopEvents > 0 {
		published.Events = engine.TopEvents(dash.Events, app.TopEvents)
	}
	if err := app.Server.UpdateDashboard(published); err != nil {
		app.refreshFailed(err)
		return err
	}

	app.viewMu.Lock()
	app.dashboard = dash
	app.viewMu.Unlock()

	fyne.Do(func() {
		app.updateTrayStatus(dash.HealthScore, dash.DriftingCount, len(dash.Friends))
		app.refreshDashboardWindow()
		app.refreshProfileWindow()
	})
	return nil
}

func (app *CircleApp) refreshFailed(err error) {
	slog.Error(config.ErrRefresh, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	fyne.Do(func() {
		if app.Menu == nil || app.TrayStatusItem == nil {
			return
		}
		app.TrayStatusItem.Label = config.FallbackTrayError
		app.Menu.Refresh()
	})
}

// Dashboard returns the view state of the last successful refresh.
func (app *CircleApp) Dashboard() engine.Dashboard {
	app.viewMu.RLock()
	defer app.viewMu.RUnlock()
	return app.dashboard
}

// updateTrayStatus shows the social health summary in the tray menu.
func (app *CircleApp) updateTrayStatus(score, drifting, total int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = app.trayStatusLabel(score, drifting, total)
	app.Menu.Refresh()
}

func (app *CircleApp) trayStatusLabel(score, drifting, total int) string {
	if total == 0 {
		return app.localize(config.TKeyTrayStatusEmpty, nil, nil, config.FallbackTrayEmpty)
	}
	return app.localize(config.TKeyTrayStatus,
		map[string]interface{}{"Score": score, "Count": drifting},
		drifting,
		fmt.Sprintf(config.FallbackTrayDefault, score, drifting))
}

// -----------------------------------------------------------------------------
// Collection changes
// -----------------------------------------------------------------------------

// mutate loads the collection, applies op, persists the result and refreshes.
func (app *CircleApp) mutate(op func(now time.Time, friends []engine.Friend) ([]engine.Friend, error)) error {
	app.writeMu.Lock()
	defer app.writeMu.Unlock()

	friends, err := app.Store.LoadFriends(app.Ctx)
	if err != nil {
		return err
	}
	next, err := op(app.Clock.Now(), friends)
	if err != nil {
		return err
	}
	if err := app.Store.SaveFriends(app.Ctx, next); err != nil {
		return err
	}
	return app.Refresh(app.Ctx)
}

// AddFriend completes draft into a new friend and appends it to the circle.
func (app *CircleApp) AddFriend(draft engine.Friend) (engine.Friend, error) {
	var added engine.Friend
	err := app.mutate(func(now time.Time, friends []engine.Friend) ([]engine.Friend, error) {
		f, err := engine.NewFriend(now, draft)
		if err != nil {
			return nil, err
		}
		added = f
		return engine.AddFriend(friends, f)
	})
	if err != nil {
		return engine.Friend{}, err
	}

	slog.Info(config.MsgFriendAdded,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFriendID, added.ID)
	return added, nil
}

// LogInteraction records that the user was in touch with the friend id today.
func (app *CircleApp) LogInteraction(id string) error {
	err := app.mutate(func(now time.Time, friends []engine.Friend) ([]engine.Friend, error) {
		return engine.LogInteraction(friends, id, now)
	})
	if err != nil {
		return err
	}
	slog.Info(config.MsgInteraction,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFriendID, id)
	return nil
}

// ExportBackup writes the current collection as a JSON backup.
func (app *CircleApp) ExportBackup(w io.Writer) (int, error) {
	friends, err := app.Store.LoadFriends(app.Ctx)
	if err != nil {
		return 0, err
	}
	if err := backup.Export(w, friends, app.Clock.Now()); err != nil {
		return 0, err
	}
	return len(friends), nil
}

// RestoreBackup replaces the whole collection with the backup read from r.
// The current collection is untouched when the backup is invalid.
func (app *CircleApp) RestoreBackup(r io.Reader) (int, error) {
	restored, err := backup.Import(r)
	if err != nil {
		return 0, err
	}
	if err := app.ReplaceFriends(restored); err != nil {
		return 0, err
	}
	return len(restored), nil
}

// ReplaceFriends swaps the collection for friends, which must be a valid collection.
func (app *CircleApp) ReplaceFriends(friends []engine.Friend) error {
	err := app.mutate(func(time.Time, []engine.Friend) ([]engine.Friend, error) {
		return friends, nil
	})
	if err != nil {
		return err
	}
	slog.Info(config.MsgCollectionSet,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(friends))
	return nil
}

// ImportVCards appends the friends found in the configured vCard source.
func (app *CircleApp) ImportVCards(ctx context.Context) (int, error) {
	importer := &engine.Importer{Clock: app.Clock, Fetcher: app.Fetcher}
	imported, err := importer.Run(ctx, app.loadSourceConfig())
	if err != nil {
		return 0, err
	}

	err = app.mutate(func(_ time.Time, friends []engine.Friend) ([]engine.Friend, error) {
		for _, f := range imported {
			next, err := engine.AddFriend(friends, f)
			if err != nil {
				return nil, err
			}
			friends = next
		}
		return friends, nil
	})
	if err != nil {
		return 0, err
	}
	return len(imported), nil
}

// ClearAll erases every friend and the onboarding flag.
func (app *CircleApp) ClearAll() error {
	app.writeMu.Lock()
	err := app.Store.ClearAll(app.Ctx)
	app.writeMu.Unlock()
	if err != nil {
		return err
	}
	slog.Info(config.MsgDataCleared, config.LogKeyComponent, config.CompUI)
	return app.Refresh(app.Ctx)
}

// loadSourceConfig assembles the vCard source from UI preferences and Keyring.
func (app *CircleApp) loadSourceConfig() engine.SourceConfig {
	cfg := engine.SourceConfig{
		Mode:      app.Preferences.String(config.PrefSourceMode),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}
