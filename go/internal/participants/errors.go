package participants

import "errors"

var ErrParticipantNotFound = errors.New("participant not found")
