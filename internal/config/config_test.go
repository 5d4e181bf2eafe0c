package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/circle-squared/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"StoreKeyFriends", config.StoreKeyFriends},
		{"BackupVersion", config.BackupVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Greater(t, config.DefaultCadence, 0, "Default cadence must be positive")
	assert.Equal(t, 1, config.MinCadence, "Cadence guard must clamp to one day")
	assert.Equal(t, 2000, config.DefaultLeapYear, "Default leap year must be 2000 for consistency")
	assert.Less(t, config.TierPrimaryMaxDays, config.TierSecondaryMaxDays)

	// Rings are concentric: outer > middle > inner, and all fit in the view.
	assert.Less(t, config.RadiusPrimary, config.RadiusSecondary)
	assert.Less(t, config.RadiusSecondary, config.RadiusPeripheral)
	assert.Less(t, config.RadiusPeripheral+config.RadiusJitterUnits+config.NodeRadius, config.VizHalfExtent)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Circle-Squared/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
}

// -----------------------------------------------------------------------------
// Environment Overrides
// -----------------------------------------------------------------------------

// unsetEnv removes variables for the duration of the test.
// t.Setenv registers the restore, os.Unsetenv makes the variable truly absent.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	unsetEnv(t, "CIRCLE_DB_PATH", "CIRCLE_PORT", "CIRCLE_LANG", "CIRCLE_DEBUG", "CIRCLE_TOP_EVENTS")

	e, err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err, "A missing dotenv file must not be an error")

	assert.Empty(t, e.DBPath)
	assert.False(t, e.Debug)
	assert.Equal(t, config.DefaultTopEvents, e.TopEvents)
}

func TestLoadEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("CIRCLE_DB_PATH", "/tmp/circle-test.db")
	t.Setenv("CIRCLE_PORT", "19999")
	t.Setenv("CIRCLE_DEBUG", "true")
	t.Setenv("CIRCLE_TOP_EVENTS", "5")

	e, err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/circle-test.db", e.DBPath)
	assert.Equal(t, "19999", e.Port)
	assert.True(t, e.Debug)
	assert.Equal(t, 5, e.TopEvents)
}

func TestLoadEnv_DotEnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set, so make sure
	// the variable is absent rather than empty.
	unsetEnv(t, "CIRCLE_LANG")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CIRCLE_LANG=fr\n"), config.FilePermUserRW))

	e, err := config.LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", e.Language)
}

func TestLoadEnv_InvalidValue(t *testing.T) {
	t.Setenv("CIRCLE_TOP_EVENTS", "three")

	_, err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrEnvParse)
}
