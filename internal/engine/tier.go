package engine

import (
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
)

// Tier is one of the three concentric bands of the circle view.
// It reflects absolute recency, independent of the friend's cadence:
// a weekly friend last seen 40 days ago is drifting and Secondary at once.
type Tier string

const (
	TierPrimary    Tier = "primary"
	TierSecondary  Tier = "secondary"
	TierPeripheral Tier = "peripheral"
)

// Tiers lists the tiers from the innermost ring outwards.
var Tiers = []Tier{TierPrimary, TierSecondary, TierPeripheral}

// TierForDays buckets a days-since-last-interaction count.
// Both bounds are inclusive on the lower tier: 30 is Primary, 90 is Secondary.
func TierForDays(days int) Tier {
	switch {
	case days <= config.TierPrimaryMaxDays:
		return TierPrimary
	case days <= config.TierSecondaryMaxDays:
		return TierSecondary
	default:
		return TierPeripheral
	}
}

// ClassifyTier places a friend in a tier as of now.
// A friend who was never contacted is Peripheral.
func ClassifyTier(now time.Time, f Friend) Tier {
	return TierForDays(DriftOf(now, f).DaysSince)
}

// Radius returns the ring radius in view units.
func (t Tier) Radius() float32 {
	switch t {
	case TierPrimary:
		return config.RadiusPrimary
	case TierSecondary:
		return config.RadiusSecondary
	default:
		return config.RadiusPeripheral
	}
}

// Color returns the ring accent color as a #RRGGBB string.
func (t Tier) Color() string {
	switch t {
	case TierPrimary:
		return config.ColorPrimary
	case TierSecondary:
		return config.ColorSecondary
	default:
		return config.ColorPeripheral
	}
}

// Label returns the ring caption.
func (t Tier) Label() string {
	switch t {
	case TierPrimary:
		return config.LabelPrimary
	case TierSecondary:
		return config.LabelSecondary
	default:
		return config.LabelPeripheral
	}
}

// TierBuckets holds the friends of each tier, in collection order.
type TierBuckets struct {
	Primary    []Friend `json:"primary"`
	Secondary  []Friend `json:"secondary"`
	Peripheral []Friend `json:"peripheral"`
}

// Get returns the bucket of tier t.
func (b TierBuckets) Get(t Tier) []Friend {
	switch t {
	case TierPrimary:
		return b.Primary
	case TierSecondary:
		return b.Secondary
	default:
		return b.Peripheral
	}
}

// Len returns the number of friends across all buckets.
func (b TierBuckets) Len() int {
	return len(b.Primary) + len(b.Secondary) + len(b.Peripheral)
}

// GroupByTier splits the collection into tier buckets as of now.
// Buckets are never nil, so an empty collection yields three empty lists.
func GroupByTier(now time.Time, friends []Friend) TierBuckets {
	b := TierBuckets{
		Primary:    []Friend{},
		Secondary:  []Friend{},
		Peripheral: []Friend{},
	}
	for _, f := range friends {
		switch ClassifyTier(now, f) {
		case TierPrimary:
			b.Primary = append(b.Primary, f)
		case TierSecondary:
			b.Secondary = append(b.Secondary, f)
		default:
			b.Peripheral = append(b.Peripheral, f)
		}
	}
	return b
}
