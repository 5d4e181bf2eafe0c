package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/circle-squared/internal/config"
)

// translationKeys lists every key the UI asks the localizer for.
var translationKeys = []string{
	config.TKeyWinDashboard,
	config.TKeyWinSettings,
	config.TKeyWinAddFriend,
	config.TKeyMenuDashboard,
	config.TKeyMenuRefresh,
	config.TKeyMenuSettings,
	config.TKeyTrayStatus,
	config.TKeyTrayStatusEmpty,
	config.TKeyHealthBadge,
	config.TKeyLblYourCircle,
	config.TKeyLblUpcoming,
	config.TKeyLblNoEvents,
	config.TKeyLblEmptyTitle,
	config.TKeyLblEmptyHint,
	config.TKeyLblWelcome,
	config.TKeyLblTagline,
	config.TKeyBtnGetStarted,
	config.TKeyBtnAdd,
	config.TKeyBtnLog,
	config.TKeyLblDaysSince,
	config.TKeyLblNeverSeen,
	config.TKeyLblDrifting,
	config.TKeyLblNoDate,
	// Friend form
	config.TKeyLblName,
	config.TKeyLblLevel,
	config.TKeyLblCadence,
	config.TKeyLblCategory,
	config.TKeyLblBirthday,
	config.TKeyLblPartner,
	config.TKeyLblPartnerBday,
	config.TKeyLblAnniversary,
	config.TKeyLblNotes,
	config.TKeyHelpDate,
	config.TKeyLevelInner,
	config.TKeyLevelMiddle,
	config.TKeyLevelOuter,
	config.TKeyCadenceWeekly,
	config.TKeyCadenceBiweek,
	config.TKeyCadenceMonthly,
	config.TKeyCadenceQuarter,
	config.TKeyLblNickname,
	config.TKeyLblHowMet,
	config.TKeyLblKids,
	config.TKeyLblKidName,
	config.TKeyLblPets,
	config.TKeyLblPetName,
	config.TKeyLblPetType,
	config.TKeyLblFood,
	config.TKeyLblDrinks,
	config.TKeyLblBudget,
	config.TKeyLblActivities,
	config.TKeyLblTags,
	config.TKeyHelpList,
	config.TKeyBtnAddKid,
	config.TKeyBtnAddPet,
	config.TKeyBtnRemove,
	// Friend profile
	config.TKeyWinProfile,
	config.TKeyBtnProfile,
	config.TKeyLblContext,
	config.TKeyLblFamily,
	config.TKeyLblLifestyle,
	config.TKeyLblKeyDates,
	config.TKeyLblNotSet,
	config.TKeyLblNone,
	config.TKeyLblNotRecorded,
	config.TKeyLblNoDiet,
	// Circle view
	config.TKeyTierPrimary,
	config.TKeyTierSecondary,
	config.TKeyTierPeripheral,
	config.TKeyLblYou,
	// Settings
	config.TKeyModeCardDAV,
	config.TKeyModeLocal,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblMinutes,
	config.TKeyLblRefresh,
	config.TKeyHelpInterval,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblGeneral,
	config.TKeyLblData,
	config.TKeyLblDanger,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyBtnExport,
	config.TKeyBtnImport,
	config.TKeyBtnImportVCF,
	config.TKeyBtnReset,
	config.TKeyLblFooter,
	config.TKeyBtnBrowse,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblSource,
	config.TKeyConfirmReset,
	config.TKeyConfirmLoad,
	config.TKeyMsgImported,
	// Milestones
	config.TKeyEvtBirthday,
	config.TKeyEvtPartnerBirthday,
	config.TKeyEvtPartnerUnnamed,
	config.TKeyEvtAnniversary,
	config.TKeyEvtKidBirthday,
	config.TKeyEvtKidUnnamed,
	config.TKeyEvtSummaryAge,
	config.TKeyFormatDate,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
}

func loadLocale(t *testing.T, name string) map[string]interface{} {
	t.Helper()

	// Adjust path if running test from internal/ui or root
	path := filepath.Join("locales", name)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		path = filepath.Join("..", "..", "internal", "ui", "locales", name)
		content, err = os.ReadFile(path)
	}
	require.NoErrorf(t, err, "Must load %s", name)

	var jsonMap map[string]interface{}
	require.NoErrorf(t, json.Unmarshal(content, &jsonMap), "%s must be valid JSON", name)
	return jsonMap
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in each shipped locale.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		definedKeys[k] = true
	}

	for _, locale := range []string{"active.en.json", "active.fr.json"} {
		t.Run(locale, func(t *testing.T) {
			jsonMap := loadLocale(t, locale)

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, locale)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !definedKeys[jsonKey] {
					t.Logf("Warning: Key '%s' exists in %s but is not checked in the test suite (might be unused)", jsonKey, locale)
				}
			}
		})
	}
}

// TestI18nPluralForms checks that plural messages carry both forms in every locale.
func TestI18nPluralForms(t *testing.T) {
	for _, locale := range []string{"active.en.json", "active.fr.json"} {
		jsonMap := loadLocale(t, locale)

		msg, ok := jsonMap[config.TKeyTrayStatus].(map[string]interface{})
		require.Truef(t, ok, "%s: %s must be a plural message", locale, config.TKeyTrayStatus)
		assert.Contains(t, msg, "one", locale)
		assert.Contains(t, msg, "other", locale)
	}
}
