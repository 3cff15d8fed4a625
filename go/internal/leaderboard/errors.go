package leaderboard

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventAlreadyExists  = errors.New("event already exists")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidEventName    = errors.New("event name is required")
	ErrInvalidRank         = errors.New("rank must be positive")
)
