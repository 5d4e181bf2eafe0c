package ui

import (
	"context"
	"testing"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/circle-squared/internal/engine"
)

func detailedFriends() []engine.Friend {
	friends := twoFriends()
	ana := &friends[0]
	ana.Category = "University"
	ana.Nickname = "Nana"
	ana.HowMet = "Climbing gym"
	ana.PartnerName = "Rui"
	ana.Anniversary = "2015-06-20"
	ana.Kids = []engine.Kid{{Name: "Leo", Birthday: "2018-09-02"}}
	ana.Pets = []engine.Pet{{Name: "Miso", Type: "cat"}, {Name: "Pip"}}
	ana.FoodPrefs = []string{"vegetarian", "spicy"}
	ana.DrinkPrefs = "Green tea"
	ana.Budget = "Medium"
	ana.ActivityPrefs = "Bouldering"
	ana.Tags = "climbing, book club"
	ana.Notes = "Moving to Lisbon in the fall"
	return friends
}

func openProfile(t *testing.T, app *CircleApp, id string) {
	t.Helper()
	app.ShowFriendProfileWindow(id)
	require.NotNil(t, app.profileWindow)
	t.Cleanup(func() {
		if app.profileWindow != nil {
			app.profileWindow.Close()
		}
	})
}

func TestShowFriendProfileWindow_ShowsEveryField(t *testing.T) {
	app, _, _ := setupTestApp(t)
	seed(t, app, detailedFriends()...)
	require.NoError(t, app.Refresh(context.Background()))

	openProfile(t, app, "ana")
	assert.Equal(t, "Ana Lima", app.profileWindow.Title())

	content := app.profileWindow.Content()
	for _, want := range []string{
		"University · PRIMARY (0-30d) · 10d ago",
		"Nana",
		"Climbing gym",
		"climbing, book club",
		"Rui",
		"Jun 20",
		"Leo (Sep 2)",
		"Miso (cat)",
		"Pip",
		"vegetarian, spicy",
		"Green tea",
		"Medium",
		"Bouldering",
		"Mar 14",
		"Not set",
		"Moving to Lisbon in the fall",
	} {
		assert.Truef(t, containsLabel(content, want), "missing %q", want)
	}
	assert.True(t, containsButton(content, "Log"))
}

func TestShowFriendProfileWindow_Placeholders(t *testing.T) {
	app, _, _ := setupTestApp(t)
	seed(t, app, twoFriends()...)
	require.NoError(t, app.Refresh(context.Background()))

	openProfile(t, app, "ben")
	content := app.profileWindow.Content()

	tests := []struct {
		name string
		want string
	}{
		{"nickname and partner", "None"},
		{"how met and drinks", "Not recorded"},
		{"food", "No dietary notes"},
		{"birthday", "Not set"},
		{"partner birthday without year", "Jan 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, containsLabel(content, tt.want))
		})
	}
	assert.False(t, containsLabel(content, "Kids"), "empty sections are hidden")
}

func TestShowFriendProfileWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)
	seed(t, app, twoFriends()...)
	require.NoError(t, app.Refresh(context.Background()))

	openProfile(t, app, "ana")
	w := app.profileWindow

	app.ShowFriendProfileWindow("ben")
	assert.Same(t, w, app.profileWindow, "another friend reuses the open window")
	assert.Equal(t, "Ben Okafor", w.Title())

	app.ShowFriendProfileWindow("nobody")
	assert.Equal(t, "ben", app.profileID, "unknown ids leave the window alone")

	w.Close()
	assert.Nil(t, app.profileWindow)
	assert.Empty(t, app.profileID)
}

func TestShowFriendProfileWindow_LogInteraction(t *testing.T) {
	app, _, _ := setupTestApp(t)
	seed(t, app, twoFriends()...)
	require.NoError(t, app.Refresh(context.Background()))

	openProfile(t, app, "ben")
	require.True(t, containsLabel(app.profileWindow.Content(), "SECONDARY (31-90d) · 45d ago · drifting"))

	btn := findButton(app.profileWindow.Content(), "Log")
	require.NotNil(t, btn)
	test.Tap(btn)

	stored, err := app.Store.LoadFriends(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored[1].Interactions, 1)
	assert.True(t, containsLabel(app.profileWindow.Content(), "PRIMARY (0-30d) · 0d ago"), "the profile redraws after logging")
}

func TestRefreshProfileWindow_ClosesWhenFriendRemoved(t *testing.T) {
	app, _, _ := setupTestApp(t)
	seed(t, app, twoFriends()...)
	require.NoError(t, app.Refresh(context.Background()))

	openProfile(t, app, "ana")
	require.NoError(t, app.ClearAll())

	assert.Nil(t, app.profileWindow)
}

func TestFriendList_OpensProfile(t *testing.T) {
	app, _, _ := setupTestApp(t)
	seed(t, app, twoFriends()...)
	require.NoError(t, app.Refresh(context.Background()))
	t.Cleanup(func() {
		if app.profileWindow != nil {
			app.profileWindow.Close()
		}
	})

	dash := app.Dashboard()
	scroll, ok := app.buildFriendList(dash).(*container.Scroll)
	require.True(t, ok)
	list, ok := scroll.Content.(*widget.List)
	require.True(t, ok)
	w := test.NewWindow(scroll)
	defer w.Close()

	row := list.CreateItem()
	list.UpdateItem(1, row)
	btn := findButton(row, "Profile")
	require.NotNil(t, btn)
	test.Tap(btn)
	require.NotNil(t, app.profileWindow)
	assert.Equal(t, dash.Friends[1].Friend.Name, app.profileWindow.Title())

	list.Select(0)
	assert.Equal(t, dash.Friends[0].Friend.Name, app.profileWindow.Title(), "selecting a row opens its profile")
}
