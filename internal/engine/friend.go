package engine

import (
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
)

// Level is the static, user-assigned relationship level.
// It is descriptive metadata only: placement in the circle view is derived
// from recency (see Tier), never from Level.
type Level string

const (
	LevelInner  Level = "inner"
	LevelMiddle Level = "middle"
	LevelOuter  Level = "outer"
)

// Levels lists the accepted static levels, innermost first.
var Levels = []Level{LevelInner, LevelMiddle, LevelOuter}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// Cadence presets offered by the add-friend form, in days.
const (
	CadenceWeekly    = config.CadenceWeekly
	CadenceBiweekly  = config.CadenceBiweekly
	CadenceMonthly   = config.CadenceMonthly
	CadenceQuarterly = config.CadenceQuarterly
)

// Kid is a child of a friend. Each kid with a birthday yields a milestone.
type Kid struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday,omitempty"`
}

// Pet is a friend's pet. Pets are kept for context and never produce milestones.
type Pet struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Birthday string `json:"birthday,omitempty"`
}

// Friend is the only persisted entity.
// JSON names follow the backup format so exported files stay interchangeable.
//
// Milestone dates (Birthday, PartnerBirthday, Anniversary, Kid.Birthday) are
// kept as the raw strings the user entered; they are parsed only when
// milestones are aggregated, which is where an invalid date is reported.
type Friend struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Level Level `json:"level,omitempty"`
	// Cadence is the target number of days between interactions. Zero means unset.
	Cadence int `json:"cadence,omitempty"`

	// LastInteraction is nil when the friend has never been contacted.
	LastInteraction *time.Time `json:"lastInteraction,omitempty"`
	// Interactions is append-only, in logging order.
	Interactions []time.Time `json:"interactions"`

	Category        string   `json:"category,omitempty"`
	Nickname        string   `json:"nickname,omitempty"`
	HowMet          string   `json:"howMet,omitempty"`
	Birthday        string   `json:"birthday,omitempty"`
	PartnerName     string   `json:"partnerName,omitempty"`
	PartnerBirthday string   `json:"partnerBirthday,omitempty"`
	Anniversary     string   `json:"anniversary,omitempty"`
	Kids            []Kid    `json:"kids,omitempty"`
	Pets            []Pet    `json:"pets,omitempty"`
	FoodPrefs       []string `json:"foodPrefs,omitempty"`
	DrinkPrefs      string   `json:"drinkPrefs,omitempty"`
	Budget          string   `json:"budget,omitempty"`
	ActivityPrefs   string   `json:"activityPrefs,omitempty"`
	Tags            string   `json:"tags,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// EffectiveCadence returns the cadence used for drift and tiering,
// falling back to the default when none is configured.
func (f Friend) EffectiveCadence() int {
	if f.Cadence == 0 {
		return config.DefaultCadence
	}
	return f.Cadence
}
