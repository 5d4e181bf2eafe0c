package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *CircleApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *CircleApp) UpdateLocalizer() {
	lang := app.LangOverride
	if lang == "" {
		lang = app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg is a helper to translate a key safely.
func (app *CircleApp) GetMsg(key string) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// localize translates key with template data, returning fallback when the
// localizer is not ready or the key is missing. pluralCount may be nil.
func (app *CircleApp) localize(key string, data map[string]interface{}, pluralCount interface{}, fallback string) string {
	if app.Localizer == nil {
		return fallback
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
		PluralCount:  pluralCount,
	})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}

// buildLabelFormatter returns a milestone label formatter in the UI language.
func (app *CircleApp) buildLabelFormatter() engine.LabelFormatter {
	return func(kind engine.EventType, name, friendName string) string {
		fallback := engine.DefaultLabel(kind, name, friendName)

		var key string
		switch kind {
		case engine.EventPartnerBirthday:
			key = config.TKeyEvtPartnerBirthday
			if name == "" {
				key, name = config.TKeyEvtPartnerUnnamed, friendName
			}
		case engine.EventKidBirthday:
			key = config.TKeyEvtKidBirthday
			if name == "" {
				key, name = config.TKeyEvtKidUnnamed, friendName
			}
		case engine.EventAnniversary:
			key = config.TKeyEvtAnniversary
		default:
			key = config.TKeyEvtBirthday
		}

		return app.localize(key, map[string]interface{}{"Name": name}, nil, fallback)
	}
}

// buildSummaryFormatter returns a closure that localizes the calendar event summary.
func (app *CircleApp) buildSummaryFormatter() func(label string, years int, showYears bool) string {
	return func(label string, years int, showYears bool) string {
		if !showYears {
			return label
		}
		return app.localize(config.TKeyEvtSummaryAge,
			map[string]interface{}{"Label": label, "Age": years},
			nil,
			fmt.Sprintf(config.FallbackSummaryAge, label, years))
	}
}
