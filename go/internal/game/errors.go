package game

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrNotGameParticipant = errors.New("caller is not a participant of this game")
	ErrGameNotWaiting     = errors.New("game has already started")
	ErrGameAlreadyStarted = errors.New("game was started by another request")
	ErrGameNotInProgress  = errors.New("game is not in progress")
	ErrGameNotFinished    = errors.New("game is not finished")
	ErrInvalidTapCount    = errors.New("tap count must not be negative")
)
