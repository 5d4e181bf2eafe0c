package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/circle-squared/internal/backup"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *CircleApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgFocusWindow, config.LogKeyComponent, config.CompUISet, config.LogKeyWindow, config.WinSettings)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUISet, config.LogKeyWindow, config.WinSettings)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	// Construct the General Form
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemInterval, itemPort))

	dataCard := app.buildDataCard(w)

	// --- Actions ---
	saveAction := func() {
		// Only the Port field has a strict requirement that blocks saving if invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		sourceCard,
		dataCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the inputs pre-filled from preferences and the keyring.
func (app *CircleApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	// Interval: empty or 0 disables the periodic refresh in save logic.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort
	return sw
}

func (app *CircleApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard constructs the vCard source selection UI.
func (app *CircleApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyMode := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	}
	applyMode(sw.modeSelect.Selected)

	sw.modeSelect.OnChanged = func(mode string) {
		applyMode(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	btnImport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImportVCF), theme.DownloadIcon(), func() {
		// The import reads the source from preferences, so the form is saved first.
		app.saveSettings(sw)
		go app.importVCardsFromUI(w)
	})

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm, btnImport))
}

func (app *CircleApp) importVCardsFromUI(w fyne.Window) {
	n, err := app.ImportVCards(app.Ctx)
	fyne.Do(func() {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		dialog.ShowInformation(config.AppName, app.localize(config.TKeyMsgImported,
			map[string]interface{}{"Count": n}, n,
			fmt.Sprintf(config.FallbackImported, n)), w)
	})
}

// buildDataCard offers backup export/import and the factory reset.
func (app *CircleApp) buildDataCard(w fyne.Window) *widget.Card {
	btnExport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer func() { _ = wc.Close() }()
			if _, err := app.ExportBackup(wc); err != nil {
				dialog.ShowError(err, w)
			}
		}, w)
		d.SetFileName(backup.FileName(app.Clock.Now()))
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtJSON}))
		d.Show()
	})

	btnImport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.FolderOpenIcon(), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			defer func() { _ = r.Close() }()

			restored, err := backup.Import(r)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			app.confirmReplace(w, len(restored), func() {
				if err := app.ReplaceFriends(restored); err != nil {
					dialog.ShowError(err, w)
				}
			})
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtJSON}))
		d.Show()
	})

	btnReset := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnReset), theme.DeleteIcon(), func() {
		dialog.ShowConfirm(app.GetMsg(config.TKeyLblDanger), app.GetMsg(config.TKeyConfirmReset), func(ok bool) {
			if !ok {
				return
			}
			if err := app.ClearAll(); err != nil {
				dialog.ShowError(err, w)
			}
		}, w)
	})
	btnReset.Importance = widget.DangerImportance

	return widget.NewCard(app.GetMsg(config.TKeyLblData), "", container.NewVBox(
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnExport, btnImport),
		btnReset,
	))
}

func (app *CircleApp) confirmReplace(w fyne.Window, count int, replace func()) {
	msg := app.localize(config.TKeyConfirmLoad, map[string]interface{}{"Count": count}, count,
		fmt.Sprintf(config.FallbackConfirmLoad, count))
	dialog.ShowConfirm(app.GetMsg(config.TKeyBtnImport), msg, func(ok bool) {
		if ok {
			replace()
		}
	}, w)
}

// saveSettings persists the preferences and refreshes the views that depend on them.
func (app *CircleApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSavingPrefs, config.LogKeyComponent, config.CompUISet)

	modeMap := map[string]string{
		app.GetMsg(config.TKeyModeCardDAV): config.SourceModeWeb,
		app.GetMsg(config.TKeyModeLocal):   config.SourceModeLocal,
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, modeMap[sw.modeSelect.Selected])
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	// Save password to Keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgKeyringSaveFail, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// Empty or 0 disables the periodic refresh.
	if v, ok := sw.entryInterval.Value(); ok && v > config.DisabledInterval {
		app.Preferences.SetInt(config.PrefInterval, v)
	} else {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		slog.Info(config.MsgIntervalOff, config.LogKeyComponent, config.CompUISet)
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.refreshNow()
}
