package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tartampluch/circle-squared/internal/config"
)

// The roster functions are the only way the collection changes. None of them
// modify their input: each returns a fresh snapshot that the caller persists
// and then derives view state from.

// NewFriend completes a draft entered by the user into a new Friend.
// It assigns a fresh id, starts the relationship at now and validates the
// user-entered fields.
func NewFriend(now time.Time, draft Friend) (Friend, error) {
	f := draft
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return Friend{}, ErrNameRequired
	}

	switch {
	case f.Cadence == 0:
		f.Cadence = config.DefaultCadence
	case f.Cadence < 0:
		return Friend{}, fmt.Errorf("%w: %d", ErrInvalidCadence, f.Cadence)
	}

	if f.Level == "" {
		f.Level = config.DefaultLevel
	}
	if !f.Level.Valid() {
		return Friend{}, fmt.Errorf("%w: %q", ErrInvalidLevel, f.Level)
	}

	f.ID = uuid.NewString()
	created := now
	f.LastInteraction = &created
	f.Interactions = []time.Time{}
	f.FoodPrefs = uniqueTags(f.FoodPrefs)
	f.Kids = slices.Clone(f.Kids)
	f.Pets = slices.Clone(f.Pets)
	return f, nil
}

// AddFriend returns a new collection with f appended.
func AddFriend(friends []Friend, f Friend) ([]Friend, error) {
	if indexOf(friends, f.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, f.ID)
	}
	out := make([]Friend, 0, len(friends)+1)
	out = append(out, friends...)
	return append(out, f), nil
}

// LogInteraction returns a new collection in which the friend with the given
// id has one more interaction at now, and now as its last interaction.
func LogInteraction(friends []Friend, id string, now time.Time) ([]Friend, error) {
	i := indexOf(friends, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrFriendNotFound, id)
	}

	out := slices.Clone(friends)
	target := out[i]
	// Fresh backing array so the previous snapshot keeps its own history.
	history := make([]time.Time, 0, len(target.Interactions)+1)
	history = append(history, target.Interactions...)
	target.Interactions = append(history, now)
	at := now
	target.LastInteraction = &at
	out[i] = target
	return out, nil
}

// FindFriend returns the friend with the given id.
func FindFriend(friends []Friend, id string) (Friend, bool) {
	i := indexOf(friends, id)
	if i < 0 {
		return Friend{}, false
	}
	return friends[i], true
}

// ValidateCollection checks the invariants a stored or imported collection
// must hold before it may replace the current one: unique ids, names,
// non-negative cadences and milestone dates that parse.
func ValidateCollection(friends []Friend) error {
	seen := make(map[string]struct{}, len(friends))
	for i, f := range friends {
		if f.ID == "" {
			return fmt.Errorf("friend #%d: %w", i, ErrMissingID)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, f.ID)
		}
		seen[f.ID] = struct{}{}
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("friend %s: %w", f.ID, ErrNameRequired)
		}
		if f.Cadence < 0 {
			return fmt.Errorf("friend %s: %w: %d", f.ID, ErrInvalidCadence, f.Cadence)
		}
		if err := checkDates(f); err != nil {
			return err
		}
	}
	return nil
}

// Initials returns up to two upper-case initials for a node label.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		if n == config.MaxInitials {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	return b.String()
}

func indexOf(friends []Friend, id string) int {
	return slices.IndexFunc(friends, func(f Friend) bool { return f.ID == id })
}

// uniqueTags trims tags and drops empties and duplicates, keeping first-seen order.
func uniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
