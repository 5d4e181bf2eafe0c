package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

func sampleFriends() []engine.Friend {
	return []engine.Friend{
		{ID: "a", Name: "Ana Lima", Cadence: 30, LastInteraction: daysAgo(15), Birthday: "1990-03-05"},
		{ID: "b", Name: "Bo", Cadence: 7, LastInteraction: daysAgo(40), Birthday: "--01-20"},
		{ID: "c", Name: "Cy", Cadence: 90},
	}
}

func TestDerive(t *testing.T) {
	friends := sampleFriends()

	dash := engine.Derive(refNow, friends)

	assert.Equal(t, refNow, dash.GeneratedAt)
	// Fresh: 50, 0, 0 -> 17
	assert.Equal(t, 17, dash.HealthScore)
	assert.Equal(t, 2, dash.DriftingCount)
	require.Len(t, dash.Friends, 3)

	ana := dash.Friends[0]
	assert.Equal(t, "AL", ana.Initials)
	assert.Equal(t, engine.TierPrimary, ana.Tier)
	assert.False(t, ana.NeverContacted)
	assert.InDelta(t, 50, ana.Drift.PercentDrift, 1e-9)

	assert.Equal(t, engine.TierSecondary, dash.Friends[1].Tier)
	assert.True(t, dash.Friends[2].NeverContacted)
	assert.Equal(t, engine.TierPeripheral, dash.Friends[2].Tier)

	assert.Equal(t, 3, dash.Tiers.Len())
	require.Len(t, dash.Events, 2)
	assert.Equal(t, "Bo's Birthday", dash.Events[0].Label)
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	friends := sampleFriends()
	snapshot := append([]engine.Friend(nil), friends...)

	engine.Derive(refNow, friends)
	assert.Equal(t, snapshot, friends)
}

func TestDerive_Empty(t *testing.T) {
	dash := engine.Derive(refNow, nil)
	assert.Zero(t, dash.HealthScore)
	assert.NotNil(t, dash.Friends)
	assert.NotNil(t, dash.Events)
	assert.Zero(t, dash.Tiers.Len())
	assert.Empty(t, dash.UnavailableDates)
}

// One unparseable date must not cost the rest of the dashboard.
func TestDerive_UnavailableDate(t *testing.T) {
	friends := []engine.Friend{
		{ID: "1", Name: "Ann", Cadence: 30, LastInteraction: daysAgo(10), Birthday: "1990-03-05"},
		{ID: "2", Name: "Bob", Cadence: 30, LastInteraction: daysAgo(45), Birthday: "March 5th", Anniversary: "2012-09-01"},
	}

	dash := engine.Derive(refNow, friends)

	require.Len(t, dash.Friends, 2)
	assert.Equal(t, 33, dash.HealthScore)
	assert.Equal(t, 1, dash.DriftingCount)
	assert.Equal(t, engine.TierSecondary, dash.Friends[1].Tier)

	require.Len(t, dash.Events, 2, "Bob's anniversary survives his bad birthday")
	assert.Equal(t, "Ann's Birthday", dash.Events[0].Label)
	assert.Equal(t, "Bob's Anniversary", dash.Events[1].Label)

	assert.Equal(t, []engine.DateError{
		{FriendID: "2", Field: config.FieldBirthday, Value: "March 5th"},
	}, dash.UnavailableDates)
	assert.ErrorIs(t, &dash.UnavailableDates[0], engine.ErrInvalidDate)
}

func TestDeriver_Snapshot(t *testing.T) {
	d := engine.Deriver{
		Clock: MockClock{CurrentTime: refNow},
		FormatLabel: func(kind engine.EventType, name, friendName string) string {
			return "Anniv. " + name
		},
	}

	dash := d.Snapshot([]engine.Friend{{ID: "a", Name: "Ana", LastInteraction: daysAgo(1), Anniversary: "2010-06-20"}})
	assert.Equal(t, refNow, dash.GeneratedAt)
	assert.Equal(t, "Anniv. Ana", dash.Events[0].Label)

	later := engine.Deriver{Clock: MockClock{CurrentTime: refNow.Add(60 * 24 * time.Hour)}}
	dash = later.Snapshot([]engine.Friend{{ID: "a", Name: "Ana", LastInteraction: daysAgo(1)}})
	assert.Equal(t, engine.TierSecondary, dash.Friends[0].Tier, "tiers move with the clock")
}
