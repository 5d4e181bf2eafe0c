package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/circle-squared/internal/config"
)

// Sentinel errors returned by the engine. Match them with errors.Is.
var (
	ErrInvalidDate    = errors.New(config.ErrDateParse)
	ErrNameRequired   = errors.New(config.ErrNameRequired)
	ErrInvalidCadence = errors.New(config.ErrInvalidCadence)
	ErrInvalidLevel   = errors.New(config.ErrInvalidLevel)
	ErrFriendNotFound = errors.New(config.ErrFriendNotFound)
	ErrDuplicateID    = errors.New(config.ErrDuplicateID)
	ErrMissingID      = errors.New(config.ErrMissingID)
)

// DateError reports a milestone date that is present but cannot be parsed.
// It unwraps to ErrInvalidDate. An absent date is never an error.
type DateError struct {
	FriendID string `json:"friendId"`
	Field    string `json:"field"`
	Value    string `json:"value"`
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %s=%q (friend %s)", config.ErrDateParse, e.Field, e.Value, e.FriendID)
}

func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}
