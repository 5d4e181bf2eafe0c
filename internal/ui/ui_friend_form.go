package ui

import (
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

// cadenceOption is one entry of the check-in cadence select.
type cadenceOption struct {
	key  string
	days int
}

var cadenceOptions = []cadenceOption{
	{config.TKeyCadenceWeekly, engine.CadenceWeekly},
	{config.TKeyCadenceBiweek, engine.CadenceBiweekly},
	{config.TKeyCadenceMonthly, engine.CadenceMonthly},
	{config.TKeyCadenceQuarter, engine.CadenceQuarterly},
}

var levelKeys = map[engine.Level]string{
	engine.LevelInner:  config.TKeyLevelInner,
	engine.LevelMiddle: config.TKeyLevelMiddle,
	engine.LevelOuter:  config.TKeyLevelOuter,
}

// friendFormWidgets holds references to the add-friend inputs.
type friendFormWidgets struct {
	name        *widget.Entry
	nickname    *widget.Entry
	level       *widget.RadioGroup
	cadence     *widget.Select
	category    *widget.Entry
	howMet      *widget.Entry
	birthday    *widget.Entry
	partner     *widget.Entry
	partnerBday *widget.Entry
	anniversary *widget.Entry
	kids        *entryRows
	pets        *entryRows
	food        *widget.Entry
	drinks      *widget.Entry
	budget      *widget.Entry
	activities  *widget.Entry
	tags        *widget.Entry
	notes       *widget.Entry
}

// entryRow is one name/detail pair of a repeatable section.
type entryRow struct {
	name   *widget.Entry
	detail *widget.Entry
	remove *widget.Button
}

// entryRows is a repeatable list of name/detail inputs, used for kids and pets.
type entryRows struct {
	rows []*entryRow
	box  *fyne.Container
	add  *widget.Button

	namePlaceholder string
	newDetail       func() *widget.Entry
}

func newEntryRows(addLabel, namePlaceholder string, newDetail func() *widget.Entry) *entryRows {
	r := &entryRows{
		box:             container.NewVBox(),
		namePlaceholder: namePlaceholder,
		newDetail:       newDetail,
	}
	r.add = widget.NewButtonWithIcon(addLabel, theme.ContentAddIcon(), func() { r.addRow() })
	return r
}

func (r *entryRows) addRow() *entryRow {
	row := &entryRow{name: widget.NewEntry(), detail: r.newDetail()}
	row.name.PlaceHolder = r.namePlaceholder

	var obj fyne.CanvasObject
	row.remove = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { r.removeRow(row, obj) })
	obj = container.NewBorder(nil, nil, nil, row.remove,
		container.NewGridWithColumns(config.LayoutColumnsDouble, row.name, row.detail))

	r.rows = append(r.rows, row)
	r.box.Add(obj)
	return row
}

func (r *entryRows) removeRow(row *entryRow, obj fyne.CanvasObject) {
	for i, x := range r.rows {
		if x == row {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			break
		}
	}
	r.box.Remove(obj)
}

// content is the rows followed by their add button.
func (r *entryRows) content() fyne.CanvasObject {
	return container.NewVBox(r.box, r.add)
}

// validate runs the detail validators, which widget.Form does not reach.
func (r *entryRows) validate() error {
	for _, row := range r.rows {
		if err := row.detail.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ShowAddFriendWindow displays the add-friend form.
func (app *CircleApp) ShowAddFriendWindow() {
	if app.friendWindow != nil {
		app.friendWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WinAddFriend)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinAddFriend))
	app.friendWindow = w

	fw := app.newFriendFormWidgets()
	app.friendForm = fw

	withHint := func(label string, o fyne.CanvasObject, hintKey string) *widget.FormItem {
		item := widget.NewFormItem(app.GetMsg(label), o)
		item.HintText = app.GetMsg(hintKey)
		return item
	}

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblName), fw.name),
		widget.NewFormItem(app.GetMsg(config.TKeyLblNickname), fw.nickname),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLevel), fw.level),
		widget.NewFormItem(app.GetMsg(config.TKeyLblCadence), fw.cadence),
		widget.NewFormItem(app.GetMsg(config.TKeyLblCategory), fw.category),
		widget.NewFormItem(app.GetMsg(config.TKeyLblHowMet), fw.howMet),
		withHint(config.TKeyLblBirthday, fw.birthday, config.TKeyHelpDate),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPartner), fw.partner),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPartnerBday), fw.partnerBday),
		widget.NewFormItem(app.GetMsg(config.TKeyLblAnniversary), fw.anniversary),
		widget.NewFormItem(app.GetMsg(config.TKeyLblKids), fw.kids.content()),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPets), fw.pets.content()),
		withHint(config.TKeyLblFood, fw.food, config.TKeyHelpList),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDrinks), fw.drinks),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBudget), fw.budget),
		widget.NewFormItem(app.GetMsg(config.TKeyLblActivities), fw.activities),
		withHint(config.TKeyLblTags, fw.tags, config.TKeyHelpList),
		widget.NewFormItem(app.GetMsg(config.TKeyLblNotes), fw.notes),
	)

	btnAdd := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		if err := fw.validate(form); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if _, err := app.AddFriend(app.draftFromForm(fw)); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	})
	btnAdd.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	content := container.NewBorder(nil,
		container.NewPadded(container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnAdd)),
		nil, nil,
		container.NewVScroll(container.NewPadded(form)))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.FriendFormWidth, config.FriendFormHeight))
	w.SetOnClosed(func() {
		app.friendWindow = nil
		app.friendForm = nil
	})
	w.Show()
}

func (app *CircleApp) newFriendFormWidgets() *friendFormWidgets {
	fw := &friendFormWidgets{
		name:        widget.NewEntry(),
		nickname:    widget.NewEntry(),
		category:    widget.NewEntry(),
		howMet:      widget.NewEntry(),
		birthday:    app.newDateEntry(),
		partner:     widget.NewEntry(),
		partnerBday: app.newDateEntry(),
		anniversary: app.newDateEntry(),
		food:        widget.NewEntry(),
		drinks:      widget.NewEntry(),
		budget:      widget.NewEntry(),
		activities:  widget.NewEntry(),
		tags:        widget.NewEntry(),
		notes:       widget.NewMultiLineEntry(),
	}
	fw.name.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return engine.ErrNameRequired
		}
		return nil
	}

	fw.kids = newEntryRows(app.GetMsg(config.TKeyBtnAddKid), app.GetMsg(config.TKeyLblKidName), app.newDateEntry)
	fw.pets = newEntryRows(app.GetMsg(config.TKeyBtnAddPet), app.GetMsg(config.TKeyLblPetName), func() *widget.Entry {
		e := widget.NewEntry()
		e.PlaceHolder = app.GetMsg(config.TKeyLblPetType)
		return e
	})

	var levels []string
	for _, l := range engine.Levels {
		levels = append(levels, app.GetMsg(levelKeys[l]))
	}
	fw.level = widget.NewRadioGroup(levels, nil)
	fw.level.Horizontal = true
	fw.level.Required = true
	fw.level.SetSelected(app.GetMsg(levelKeys[config.DefaultLevel]))

	var cadences []string
	for _, c := range cadenceOptions {
		cadences = append(cadences, app.GetMsg(c.key))
	}
	fw.cadence = widget.NewSelect(cadences, nil)
	fw.cadence.SetSelected(app.GetMsg(config.TKeyCadenceMonthly))
	return fw
}

// validate checks the form items and the kid birthdays.
func (fw *friendFormWidgets) validate(form *widget.Form) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return fw.kids.validate()
}

// newDateEntry returns an optional milestone date input.
func (app *CircleApp) newDateEntry() *widget.Entry {
	e := widget.NewEntry()
	e.PlaceHolder = config.PlaceholderDate
	e.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, _, err := engine.ParseDate(s)
		return err
	}
	return e
}

// draftFromForm maps the form back to a friend draft for engine.NewFriend.
func (app *CircleApp) draftFromForm(fw *friendFormWidgets) engine.Friend {
	draft := engine.Friend{
		Name:            fw.name.Text,
		Nickname:        strings.TrimSpace(fw.nickname.Text),
		Category:        strings.TrimSpace(fw.category.Text),
		HowMet:          strings.TrimSpace(fw.howMet.Text),
		Birthday:        strings.TrimSpace(fw.birthday.Text),
		PartnerName:     strings.TrimSpace(fw.partner.Text),
		PartnerBirthday: strings.TrimSpace(fw.partnerBday.Text),
		Anniversary:     strings.TrimSpace(fw.anniversary.Text),
		FoodPrefs:       splitList(fw.food.Text),
		DrinkPrefs:      strings.TrimSpace(fw.drinks.Text),
		Budget:          strings.TrimSpace(fw.budget.Text),
		ActivityPrefs:   strings.TrimSpace(fw.activities.Text),
		Tags:            strings.Join(splitList(fw.tags.Text), config.ListSeparator+" "),
		Notes:           fw.notes.Text,
	}

	// A kid row needs a name or a birthday; a pet row needs a name.
	for _, row := range fw.kids.rows {
		kid := engine.Kid{Name: strings.TrimSpace(row.name.Text), Birthday: strings.TrimSpace(row.detail.Text)}
		if kid.Name != "" || kid.Birthday != "" {
			draft.Kids = append(draft.Kids, kid)
		}
	}
	for _, row := range fw.pets.rows {
		pet := engine.Pet{Name: strings.TrimSpace(row.name.Text), Type: strings.TrimSpace(row.detail.Text)}
		if pet.Name != "" {
			draft.Pets = append(draft.Pets, pet)
		}
	}

	for level, key := range levelKeys {
		if fw.level.Selected == app.GetMsg(key) {
			draft.Level = level
		}
	}
	for _, c := range cadenceOptions {
		if fw.cadence.Selected == app.GetMsg(c.key) {
			draft.Cadence = c.days
		}
	}
	return draft
}

// splitList splits a comma-separated entry, dropping blank items.
func splitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, config.ListSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
