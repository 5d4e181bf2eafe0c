package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/circle-squared/internal/engine"
)

var refNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := refNow.AddDate(0, 0, -n)
	return &t
}

func TestCalculateDrift(t *testing.T) {
	tests := []struct {
		name    string
		last    *time.Time
		cadence int
		want    engine.Drift
	}{
		{
			name:    "Never contacted",
			last:    nil,
			cadence: 30,
			want:    engine.Drift{IsDrifting: true, DaysSince: engine.DaysNever, PercentDrift: 100},
		},
		{
			name:    "Seen today",
			last:    daysAgo(0),
			cadence: 30,
			want:    engine.Drift{IsDrifting: false, DaysSince: 0, PercentDrift: 0},
		},
		{
			name:    "Half way",
			last:    daysAgo(15),
			cadence: 30,
			want:    engine.Drift{IsDrifting: false, DaysSince: 15, PercentDrift: 50},
		},
		{
			name:    "Exactly on cadence is not drifting",
			last:    daysAgo(30),
			cadence: 30,
			want:    engine.Drift{IsDrifting: false, DaysSince: 30, PercentDrift: 100},
		},
		{
			name:    "One day past cadence",
			last:    daysAgo(31),
			cadence: 30,
			want:    engine.Drift{IsDrifting: true, DaysSince: 31, PercentDrift: 100},
		},
		{
			name:    "Percent is clamped",
			last:    daysAgo(45),
			cadence: 30,
			want:    engine.Drift{IsDrifting: true, DaysSince: 45, PercentDrift: 100},
		},
		{
			name:    "Weekly cadence",
			last:    daysAgo(7),
			cadence: 14,
			want:    engine.Drift{IsDrifting: false, DaysSince: 7, PercentDrift: 50},
		},
		{
			name:    "Future interaction counts as today",
			last:    daysAgo(-3),
			cadence: 30,
			want:    engine.Drift{IsDrifting: false, DaysSince: 0, PercentDrift: 0},
		},
		{
			name:    "Zero cadence is coerced to one day",
			last:    daysAgo(1),
			cadence: 0,
			want:    engine.Drift{IsDrifting: false, DaysSince: 1, PercentDrift: 100},
		},
		{
			name:    "Negative cadence is coerced to one day",
			last:    daysAgo(2),
			cadence: -5,
			want:    engine.Drift{IsDrifting: true, DaysSince: 2, PercentDrift: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CalculateDrift(refNow, tt.last, tt.cadence)
			assert.Equal(t, tt.want.IsDrifting, got.IsDrifting)
			assert.Equal(t, tt.want.DaysSince, got.DaysSince)
			assert.InDelta(t, tt.want.PercentDrift, got.PercentDrift, 1e-9)
		})
	}
}

func TestCalculateDrift_Invariants(t *testing.T) {
	for days := 0; days <= 200; days += 7 {
		for _, cadence := range []int{1, 7, 14, 30, 90} {
			d := engine.CalculateDrift(refNow, daysAgo(days), cadence)
			assert.GreaterOrEqual(t, d.PercentDrift, 0.0)
			assert.LessOrEqual(t, d.PercentDrift, 100.0)
			assert.Equal(t, d.DaysSince > cadence, d.IsDrifting)
			assert.False(t, d.Never())
		}
	}
}

func TestCalculateDrift_Idempotent(t *testing.T) {
	last := daysAgo(12)
	a := engine.CalculateDrift(refNow, last, 30)
	b := engine.CalculateDrift(refNow, last, 30)
	assert.Equal(t, a, b)
}

func TestDriftOf_UsesDefaultCadence(t *testing.T) {
	f := engine.Friend{ID: "1", Name: "Ana", LastInteraction: daysAgo(31)}
	d := engine.DriftOf(refNow, f)
	assert.True(t, d.IsDrifting, "an unset cadence falls back to 30 days")
}

func TestSocialHealthScore(t *testing.T) {
	tests := []struct {
		name    string
		friends []engine.Friend
		want    int
	}{
		{"Empty collection", nil, 0},
		{
			name:    "All fresh",
			friends: []engine.Friend{{ID: "a", LastInteraction: daysAgo(0), Cadence: 30}},
			want:    100,
		},
		{
			name:    "Never contacted",
			friends: []engine.Friend{{ID: "a", Cadence: 30}},
			want:    0,
		},
		{
			name: "Mean of fresh and gone",
			friends: []engine.Friend{
				{ID: "a", LastInteraction: daysAgo(0), Cadence: 30},
				{ID: "b", Cadence: 30},
			},
			want: 50,
		},
		{
			name: "Rounded to nearest",
			friends: []engine.Friend{
				{ID: "a", LastInteraction: daysAgo(10), Cadence: 30}, // 66.67 fresh
				{ID: "b", LastInteraction: daysAgo(0), Cadence: 30},  // 100
				{ID: "c", LastInteraction: daysAgo(0), Cadence: 30},  // 100
			},
			want: 89,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.SocialHealthScore(refNow, tt.friends))
		})
	}
}

func TestTierForDays(t *testing.T) {
	tests := []struct {
		days int
		want engine.Tier
	}{
		{0, engine.TierPrimary},
		{30, engine.TierPrimary},
		{31, engine.TierSecondary},
		{90, engine.TierSecondary},
		{91, engine.TierPeripheral},
		{engine.DaysNever, engine.TierPeripheral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.TierForDays(tt.days), "days=%d", tt.days)
	}
}

func TestClassifyTier_IgnoresCadenceAndLevel(t *testing.T) {
	weekly := engine.Friend{ID: "w", Name: "W", Cadence: 7, Level: engine.LevelInner, LastInteraction: daysAgo(40)}

	assert.True(t, engine.DriftOf(refNow, weekly).IsDrifting)
	assert.Equal(t, engine.TierSecondary, engine.ClassifyTier(refNow, weekly))

	never := engine.Friend{ID: "n", Name: "N", Level: engine.LevelInner}
	assert.Equal(t, engine.TierPeripheral, engine.ClassifyTier(refNow, never))
}

func TestGroupByTier(t *testing.T) {
	friends := []engine.Friend{
		{ID: "a", LastInteraction: daysAgo(5)},
		{ID: "b", LastInteraction: daysAgo(60)},
		{ID: "c"},
		{ID: "d", LastInteraction: daysAgo(30)},
		{ID: "e", LastInteraction: daysAgo(91)},
	}

	b := engine.GroupByTier(refNow, friends)

	ids := func(fs []engine.Friend) []string {
		out := []string{}
		for _, f := range fs {
			out = append(out, f.ID)
		}
		return out
	}
	assert.Equal(t, []string{"a", "d"}, ids(b.Primary))
	assert.Equal(t, []string{"b"}, ids(b.Secondary))
	assert.Equal(t, []string{"c", "e"}, ids(b.Peripheral))
	assert.Equal(t, len(friends), b.Len())
	assert.Equal(t, b.Secondary, b.Get(engine.TierSecondary))
}

func TestGroupByTier_Empty(t *testing.T) {
	b := engine.GroupByTier(refNow, nil)
	assert.NotNil(t, b.Primary)
	assert.NotNil(t, b.Secondary)
	assert.NotNil(t, b.Peripheral)
	assert.Zero(t, b.Len())
}

func TestTier_Presentation(t *testing.T) {
	assert.Less(t, engine.TierPrimary.Radius(), engine.TierSecondary.Radius())
	assert.Less(t, engine.TierSecondary.Radius(), engine.TierPeripheral.Radius())
	for _, tier := range engine.Tiers {
		assert.NotEmpty(t, tier.Color())
		assert.NotEmpty(t, tier.Label())
	}
}
