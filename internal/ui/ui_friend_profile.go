package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

// ShowFriendProfileWindow displays everything known about the friend id.
// A single profile window is kept: opening another friend replaces its content.
func (app *CircleApp) ShowFriendProfileWindow(id string) {
	view, ok := app.friendView(id)
	if !ok {
		slog.Warn(config.MsgFriendMissing, config.LogKeyComponent, config.CompUI, config.LogKeyFriendID, id)
		return
	}
	app.profileID = id

	if app.profileWindow != nil {
		slog.Debug(config.MsgFocusWindow, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WinProfile)
		app.showProfile(view)
		app.profileWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WinProfile)
	w := app.App.NewWindow(view.Friend.Name)
	app.profileWindow = w
	app.showProfile(view)
	w.Resize(fyne.NewSize(config.ProfileWinWidth, config.ProfileWinHeight))
	w.SetOnClosed(func() {
		app.profileWindow = nil
		app.profileID = ""
	})
	w.Show()
}

// refreshProfileWindow redraws the open profile, closing it when the friend is gone.
func (app *CircleApp) refreshProfileWindow() {
	if app.profileWindow == nil {
		return
	}
	view, ok := app.friendView(app.profileID)
	if !ok {
		app.profileWindow.Close()
		return
	}
	app.showProfile(view)
}

func (app *CircleApp) showProfile(view engine.FriendView) {
	app.profileWindow.SetTitle(app.localize(config.TKeyWinProfile,
		map[string]interface{}{"Name": view.Friend.Name}, nil, view.Friend.Name))
	app.profileWindow.SetContent(app.buildProfileContent(view))
}

// friendView looks id up in the last derived dashboard.
func (app *CircleApp) friendView(id string) (engine.FriendView, bool) {
	for _, v := range app.Dashboard().Friends {
		if v.Friend.ID == id {
			return v, true
		}
	}
	return engine.FriendView{}, false
}

func (app *CircleApp) buildProfileContent(view engine.FriendView) fyne.CanvasObject {
	f := view.Friend

	name := widget.NewLabelWithStyle(f.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabel(app.tierCaption(view.Tier) + " · " + app.recencyText(view))
	if f.Category != "" {
		subtitle.SetText(f.Category + " · " + subtitle.Text)
	}

	btnLog := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnLog), theme.ConfirmIcon(), func() { app.logFromUI(f.ID) })
	btnLog.Importance = widget.HighImportance
	header := container.NewHBox(container.NewVBox(name, subtitle), layout.NewSpacer(), btnLog)

	notRecorded := app.GetMsg(config.TKeyLblNotRecorded)
	none := app.GetMsg(config.TKeyLblNone)

	contextItems := []*widget.FormItem{
		app.profileItem(config.TKeyLblNickname, orDefault(f.Nickname, none)),
		app.profileItem(config.TKeyLblHowMet, orDefault(f.HowMet, notRecorded)),
	}
	if f.Tags != "" {
		contextItems = append(contextItems, app.profileItem(config.TKeyLblTags, f.Tags))
	}

	family := container.NewVBox(widget.NewForm(
		app.profileItem(config.TKeyLblPartner, orDefault(f.PartnerName, none)),
		app.profileItem(config.TKeyLblAnniversary, app.profileDate(f.Anniversary)),
	))
	if len(f.Kids) > 0 {
		family.Add(profileList(app, config.TKeyLblKids, f.Kids, func(k engine.Kid) string {
			return fmt.Sprintf(config.ProfileDetail, k.Name, app.profileDate(k.Birthday))
		}))
	}
	if len(f.Pets) > 0 {
		family.Add(profileList(app, config.TKeyLblPets, f.Pets, func(p engine.Pet) string {
			if p.Type == "" {
				return p.Name
			}
			return fmt.Sprintf(config.ProfileDetail, p.Name, p.Type)
		}))
	}

	food := app.GetMsg(config.TKeyLblNoDiet)
	if len(f.FoodPrefs) > 0 {
		food = strings.Join(f.FoodPrefs, config.ListSeparator+" ")
	}

	sections := container.NewVBox(
		widget.NewCard(app.GetMsg(config.TKeyLblContext), "", widget.NewForm(contextItems...)),
		widget.NewCard(app.GetMsg(config.TKeyLblFamily), "", family),
		widget.NewCard(app.GetMsg(config.TKeyLblLifestyle), "", widget.NewForm(
			app.profileItem(config.TKeyLblFood, food),
			app.profileItem(config.TKeyLblDrinks, orDefault(f.DrinkPrefs, notRecorded)),
			app.profileItem(config.TKeyLblBudget, orDefault(f.Budget, notRecorded)),
			app.profileItem(config.TKeyLblActivities, orDefault(f.ActivityPrefs, notRecorded)),
		)),
		widget.NewCard(app.GetMsg(config.TKeyLblKeyDates), "", widget.NewForm(
			app.profileItem(config.TKeyLblBirthday, app.profileDate(f.Birthday)),
			app.profileItem(config.TKeyLblPartnerBday, app.profileDate(f.PartnerBirthday)),
		)),
	)
	if strings.TrimSpace(f.Notes) != "" {
		notes := widget.NewLabel(f.Notes)
		notes.Wrapping = fyne.TextWrapWord
		sections.Add(widget.NewCard(app.GetMsg(config.TKeyLblNotes), "", notes))
	}

	return container.NewBorder(container.NewPadded(header), nil, nil, nil, container.NewVScroll(sections))
}

func (app *CircleApp) profileItem(labelKey, value string) *widget.FormItem {
	l := widget.NewLabel(value)
	l.Wrapping = fyne.TextWrapWord
	return widget.NewFormItem(app.GetMsg(labelKey), l)
}

// profileList renders one label per item under a bold heading.
func profileList[T any](app *CircleApp, labelKey string, items []T, text func(T) string) fyne.CanvasObject {
	box := container.NewVBox(widget.NewLabelWithStyle(app.GetMsg(labelKey), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, it := range items {
		box.Add(widget.NewLabel(text(it)))
	}
	return box
}

// profileDate formats a stored milestone date with the localized month-day
// layout. Unparseable values are shown as entered.
func (app *CircleApp) profileDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return app.GetMsg(config.TKeyLblNotSet)
	}
	t, _, err := engine.ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format(app.dateLayout())
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
