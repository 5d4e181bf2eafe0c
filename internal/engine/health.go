package engine

import (
	"math"
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
)

// SocialHealthScore is the mean freshness (100 - percent drift) across the
// collection, rounded to the nearest integer. Every friend weighs the same
// whatever their cadence. An empty collection scores 0.
func SocialHealthScore(now time.Time, friends []Friend) int {
	if len(friends) == 0 {
		return 0
	}

	var total float64
	for _, f := range friends {
		total += config.MaxPercent - DriftOf(now, f).PercentDrift
	}
	return int(math.Round(total / float64(len(friends))))
}
