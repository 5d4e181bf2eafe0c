package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

// ShowDashboardWindow displays the circle of friends.
// It implements a singleton pattern: if the window is already open, it requests focus.
func (app *CircleApp) ShowDashboardWindow() {
	if app.dashboardWindow != nil {
		slog.Debug(config.MsgFocusWindow, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WinDashboard)
		app.dashboardWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WinDashboard)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinDashboard))
	app.dashboardWindow = w
	w.Resize(fyne.NewSize(config.DashboardWinWidth, config.DashboardWinHeight))
	w.SetContent(app.buildDashboardContent())
	w.SetOnClosed(func() { app.dashboardWindow = nil })
	w.Show()
}

// refreshDashboardWindow rebuilds the open dashboard from the last derived state.
func (app *CircleApp) refreshDashboardWindow() {
	if app.dashboardWindow == nil {
		return
	}
	app.dashboardWindow.SetTitle(app.GetMsg(config.TKeyWinDashboard))
	app.dashboardWindow.SetContent(app.buildDashboardContent())
}

func (app *CircleApp) buildDashboardContent() fyne.CanvasObject {
	onboarded, err := app.Store.Onboarded(app.Ctx)
	if err != nil {
		slog.Error(config.ErrStoreLoad, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	}
	if !onboarded {
		return app.buildWelcome()
	}

	dash := app.Dashboard()
	if len(dash.Friends) == 0 {
		return app.buildEmptyState()
	}

	btnAdd := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), app.ShowAddFriendWindow)
	btnAdd.Importance = widget.HighImportance

	title := widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblYourCircle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	header := container.NewHBox(title, layout.NewSpacer(), app.buildHealthBadge(dash.HealthScore), btnAdd)

	side := container.NewBorder(nil, app.buildMilestonesCard(dash), nil, nil, app.buildFriendList(dash))
	split := container.NewHSplit(app.newCircleView(dash), side)

	return container.NewBorder(header, nil, nil, nil, split)
}

// buildHealthBadge renders the social health score, teal when healthy.
func (app *CircleApp) buildHealthBadge(score int) fyne.CanvasObject {
	text := app.localize(config.TKeyHealthBadge,
		map[string]interface{}{"Score": score}, nil,
		fmt.Sprintf(config.FallbackBadge, score))

	badgeColor := config.ColorHealthWarning
	if score > config.HealthGoodThreshold {
		badgeColor = config.ColorHealthGood
	}

	t := canvas.NewText(text, mustParseHexColor(badgeColor))
	t.TextSize = config.BadgeTextSize
	t.TextStyle = fyne.TextStyle{Bold: true}
	return t
}

// buildFriendList lists every friend with their recency, a Profile and a Log
// button. Selecting a row also opens the profile.
func (app *CircleApp) buildFriendList(dash engine.Dashboard) fyne.CanvasObject {
	views := dash.Friends

	list := widget.NewList(
		func() int { return len(views) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel(config.FallbackTrayLabel),
				layout.NewSpacer(),
				widget.NewLabel(config.FallbackNeverSeen),
				widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnProfile), theme.AccountIcon(), nil),
				widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnLog), theme.ConfirmIcon(), nil),
			)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(views) {
				return
			}
			v := views[id]
			row := o.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(v.Friend.Name)
			row.Objects[2].(*widget.Label).SetText(app.recencyText(v))

			btnProfile := row.Objects[3].(*widget.Button)
			btnProfile.SetText(app.GetMsg(config.TKeyBtnProfile))
			btnProfile.OnTapped = func() { app.ShowFriendProfileWindow(v.Friend.ID) }

			btnLog := row.Objects[4].(*widget.Button)
			btnLog.SetText(app.GetMsg(config.TKeyBtnLog))
			btnLog.OnTapped = func() { app.logFromUI(v.Friend.ID) }
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		list.Unselect(id)
		if id < len(views) {
			app.ShowFriendProfileWindow(views[id].Friend.ID)
		}
	}

	scroll := container.NewVScroll(list)
	scroll.SetMinSize(fyne.NewSize(0, config.FriendListHeight))
	return scroll
}

// recencyText describes how long ago the friend was seen.
func (app *CircleApp) recencyText(v engine.FriendView) string {
	var text string
	if v.NeverContacted {
		text = app.localize(config.TKeyLblNeverSeen, nil, nil, config.FallbackNeverSeen)
	} else {
		text = app.localize(config.TKeyLblDaysSince,
			map[string]interface{}{"Days": v.Drift.DaysSince}, nil,
			fmt.Sprintf(config.FallbackDaysSince, v.Drift.DaysSince))
	}
	if v.Drift.IsDrifting {
		text += " · " + app.localize(config.TKeyLblDrifting, nil, nil, config.StatusDriftingTag)
	}
	return text
}

func (app *CircleApp) logFromUI(id string) {
	if err := app.LogInteraction(id); err != nil {
		slog.Error(config.MsgDialogFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		switch {
		case app.profileWindow != nil:
			dialog.ShowError(err, app.profileWindow)
		case app.dashboardWindow != nil:
			dialog.ShowError(err, app.dashboardWindow)
		}
	}
}

// buildMilestonesCard shows the first milestones of the calendar year.
func (app *CircleApp) buildMilestonesCard(dash engine.Dashboard) fyne.CanvasObject {
	events := dash.Events
	if app.TopEvents > 0 {
		events = engine.TopEvents(events, app.TopEvents)
	}

	rows := container.NewVBox()
	if len(events) == 0 && len(dash.UnavailableDates) == 0 {
		rows.Add(widget.NewLabel(app.GetMsg(config.TKeyLblNoEvents)))
	}
	for _, e := range events {
		rows.Add(container.NewHBox(
			widget.NewLabel(e.Label),
			layout.NewSpacer(),
			widget.NewLabel(app.formatEventDate(e)),
		))
	}
	for _, bad := range dash.UnavailableDates {
		name := dash.FriendName(bad.FriendID)
		l := widget.NewLabel(app.localize(config.TKeyLblNoDate,
			map[string]interface{}{"Name": name, "Value": bad.Value}, nil,
			fmt.Sprintf(config.FallbackNoDate, name, bad.Value)))
		l.Importance = widget.WarningImportance
		rows.Add(l)
	}
	return widget.NewCard(app.GetMsg(config.TKeyLblUpcoming), "", rows)
}

// formatEventDate formats the month and day of a milestone with the localized layout.
func (app *CircleApp) formatEventDate(e engine.Event) string {
	return e.Date.Format(app.dateLayout())
}

// dateLayout is the localized month-day time layout.
func (app *CircleApp) dateLayout() string {
	format := app.GetMsg(config.TKeyFormatDate)
	if format == config.TKeyFormatDate {
		return config.FallbackDateFormat
	}
	return format
}

// buildEmptyState invites the user to add a first friend.
func (app *CircleApp) buildEmptyState() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblEmptyTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	hint := widget.NewLabel(app.GetMsg(config.TKeyLblEmptyHint))
	hint.Alignment = fyne.TextAlignCenter
	hint.Wrapping = fyne.TextWrapWord

	btnAdd := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), app.ShowAddFriendWindow)
	btnAdd.Importance = widget.HighImportance

	return container.NewCenter(container.NewVBox(title, hint, btnAdd))
}

// buildWelcome is shown until the user completes onboarding.
func (app *CircleApp) buildWelcome() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblWelcome), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	tagline := widget.NewLabel(app.GetMsg(config.TKeyLblTagline))
	tagline.Alignment = fyne.TextAlignCenter
	tagline.Wrapping = fyne.TextWrapWord

	btnStart := widget.NewButton(app.GetMsg(config.TKeyBtnGetStarted), func() {
		if err := app.CompleteOnboarding(app.Ctx); err != nil {
			slog.Error(config.MsgDialogFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
			return
		}
		app.refreshDashboardWindow()
	})
	btnStart.Importance = widget.HighImportance

	return container.NewCenter(container.NewVBox(title, tagline, btnStart))
}

// CompleteOnboarding records that the welcome screen was dismissed.
func (app *CircleApp) CompleteOnboarding(ctx context.Context) error {
	if err := app.Store.SetOnboarded(ctx, true); err != nil {
		return err
	}
	slog.Info(config.MsgOnboarded, config.LogKeyComponent, config.CompUI)
	return nil
}
