package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
	"github.com/tartampluch/circle-squared/internal/server"
	"github.com/tartampluch/circle-squared/internal/store"
)

type mockClock struct{ now time.Time }

func (m mockClock) Now() time.Time { return m.now }

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

const contactsVCF = `BEGIN:VCARD
VERSION:3.0
FN:Ana Lima
BDAY:1990-01-20
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Bo Chen
BDAY:--03-05
END:VCARD`

// harness isolates a CLI invocation: its own database, cache dir and environment.
type harness struct {
	t      *testing.T
	dbPath string
	clock  engine.Clock
	guiRan bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{"CIRCLE_DB_PATH", "CIRCLE_PORT", "CIRCLE_LANG", "CIRCLE_DEBUG", "CIRCLE_TOP_EVENTS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return &harness{t: t, dbPath: filepath.Join(dir, "circle.db"), clock: mockClock{testNow}}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	gui := func(ctx context.Context, db *store.DB, env config.Env) error {
		h.guiRan = db != nil
		return nil
	}
	cmd := newRootCmd(gui, h.clock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--" + config.FlagDB, h.dbPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(filepath.Dir(h.dbPath), name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

func TestVersion(t *testing.T) {
	out, err := newHarness(t).run(config.CmdVersion)
	require.NoError(t, err)
	assert.Contains(t, out, config.AppName)
	assert.Contains(t, out, config.Version)
}

func TestRoot_RunsGUI(t *testing.T) {
	h := newHarness(t)
	_, err := h.run()
	require.NoError(t, err)
	assert.True(t, h.guiRan)
}

func TestStatus_Empty(t *testing.T) {
	out, err := newHarness(t).run(config.CmdStatus)
	require.NoError(t, err)
	assert.Equal(t, config.StatusEmpty, out)
}

func TestImportVCard_ThenStatus(t *testing.T) {
	h := newHarness(t)
	vcf := h.writeFile("contacts.vcf", contactsVCF)

	out, err := h.run("import", vcf)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 friends")

	out, err = h.run(config.CmdStatus)
	require.NoError(t, err)
	assert.Contains(t, out, "Social health 100% · 0 drifting · 2 friends")
	assert.Contains(t, out, "Ana Lima")
	assert.Contains(t, out, config.LabelPrimary)
	assert.Contains(t, out, "Jan 20")
	assert.Contains(t, out, "Ana Lima's Birthday")

	// Importing again appends.
	_, err = h.run("import", vcf)
	require.NoError(t, err)
	out, err = h.run(config.CmdStatus, "--"+config.FlagJSON)
	require.NoError(t, err)

	var dash engine.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Len(t, dash.Friends, 4)
	assert.Len(t, dash.Events, config.DefaultTopEvents)
}

func TestStatus_TopAndRolling(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", h.writeFile("contacts.vcf", contactsVCF))
	require.NoError(t, err)

	out, err := h.run(config.CmdStatus, "--"+config.FlagJSON, "--"+config.FlagTop, "1")
	require.NoError(t, err)
	var dash engine.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Len(t, dash.Events, 1)

	out, err = h.run(config.CmdStatus, "--"+config.FlagRolling)
	require.NoError(t, err)
	// Both milestones already passed on Jun 15 and roll into next year.
	assert.Contains(t, out, "in 219 days")
	assert.Less(t, strings.Index(out, "Ana Lima's Birthday"), strings.Index(out, "Bo Chen's Birthday"))
}

const seasonsVCF = `BEGIN:VCARD
VERSION:3.0
FN:Jan
BDAY:--01-05
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Feb
BDAY:--02-05
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Mar
BDAY:--03-05
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Jun
BDAY:--06-20
END:VCARD`

func TestStatus_RollingTopKeepsSoonest(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", h.writeFile("seasons.vcf", seasonsVCF))
	require.NoError(t, err)

	out, err := h.run(config.CmdStatus, "--"+config.FlagRolling, "--"+config.FlagTop, "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Jun's Birthday")
	assert.Contains(t, out, "in 5 days")
	assert.Contains(t, out, "Jan's Birthday")
	assert.Contains(t, out, "Feb's Birthday")
	assert.NotContains(t, out, "Mar's Birthday")
	assert.Less(t, strings.Index(out, "Jun's Birthday"), strings.Index(out, "Jan's Birthday"))

	out, err = h.run(config.CmdStatus, "--"+config.FlagRolling, "--"+config.FlagJSON, "--"+config.FlagTop, "1")
	require.NoError(t, err)
	var report struct {
		Events   []engine.Event          `json:"events"`
		Upcoming []engine.ScheduledEvent `json:"upcoming"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Upcoming, 1)
	assert.Equal(t, "Jun's Birthday", report.Upcoming[0].Label)
	assert.Equal(t, 5, report.Upcoming[0].DaysUntil)
	require.Len(t, report.Events, 1)
	assert.Equal(t, "Jun's Birthday", report.Events[0].Label)
}

func TestStatus_ListsUnavailableDates(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", h.writeFile("contacts.vcf", contactsVCF))
	require.NoError(t, err)

	// A slot written before dates were validated.
	db, err := store.Open(h.dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Put(context.Background(), config.StoreKeyFriends,
		`[{"id":"b","name":"Bob","cadence":30,"birthday":"March 5th","interactions":[]}]`))
	require.NoError(t, db.Close())

	out, err := h.run(config.CmdStatus)
	require.NoError(t, err)
	assert.Contains(t, out, "1 friends")
	assert.Contains(t, out, `birthday date unavailable ("March 5th")`)
}

func TestLog(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", h.writeFile("contacts.vcf", contactsVCF))
	require.NoError(t, err)

	h.clock = mockClock{testNow.AddDate(0, 0, 40)}
	out, err := h.run(config.CmdStatus)
	require.NoError(t, err)
	assert.Contains(t, out, "2 drifting")

	out, err = h.run("log", "ana lima")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Lima")

	out, err = h.run(config.CmdStatus)
	require.NoError(t, err)
	assert.Contains(t, out, "1 drifting")

	_, err = h.run("log", "nobody")
	assert.ErrorIs(t, err, engine.ErrFriendNotFound)
}

func TestMatchFriend(t *testing.T) {
	friends := []engine.Friend{
		{ID: "1", Name: "Ana"},
		{ID: "2", Name: "Sam"},
		{ID: "3", Name: "sam"},
	}

	f, err := matchFriend(friends, "2")
	require.NoError(t, err)
	assert.Equal(t, "Sam", f.Name)

	f, err = matchFriend(friends, " ANA ")
	require.NoError(t, err)
	assert.Equal(t, "1", f.ID)

	_, err = matchFriend(friends, "Sam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrAmbiguousFriend)
}

func TestExportImportJSON(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", h.writeFile("contacts.vcf", contactsVCF))
	require.NoError(t, err)

	dir := t.TempDir()
	out, err := h.run("export", dir)
	require.NoError(t, err)
	path := filepath.Join(dir, "circle-squared-backup-2025-06-15.json")
	assert.Contains(t, out, path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())

	_, err = h.run(config.CmdReset, "--"+config.FlagYes)
	require.NoError(t, err)

	out, err = h.run("import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "collection replaced")

	out, err = h.run(config.CmdStatus)
	require.NoError(t, err)
	assert.Contains(t, out, "2 friends")
}

func TestImport_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("import", h.writeFile("notes.txt", "hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrUnknownExt)

	_, err = h.run("import", h.writeFile("bad.json", `{"friends": 3}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidBackup)
}

func TestReset_RequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("import", h.writeFile("contacts.vcf", contactsVCF))
	require.NoError(t, err)

	_, err = h.run(config.CmdReset)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrResetNotConfirm)

	out, err := h.run(config.CmdReset, "--"+config.FlagYes)
	require.NoError(t, err)
	assert.Equal(t, config.MsgReset, out)

	out, err = h.run(config.CmdStatus)
	require.NoError(t, err)
	assert.Equal(t, config.StatusEmpty, out)
}

func TestPublisher(t *testing.T) {
	db, err := store.OpenMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	last := testNow.AddDate(0, 0, -2)
	require.NoError(t, db.SaveFriends(context.Background(), []engine.Friend{
		{ID: "a", Name: "Ana", LastInteraction: &last, Birthday: "1990-01-20", Anniversary: "2015-09-12"},
	}))

	srv := server.New("0")
	publish := newPublisher(db, srv, mockClock{testNow}, 1)
	require.NoError(t, publish(context.Background()))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteAPI+config.RouteDashboard, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var dash engine.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.Equal(t, 93, dash.HealthScore)
	assert.Len(t, dash.Events, 1)

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana's Anniversary")
}
