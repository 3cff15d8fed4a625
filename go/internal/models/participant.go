package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a registered competitor in the olympics.
type Participant struct {
	ID         uuid.UUID  `json:"id"`
	AuthUserID *uuid.UUID `json:"auth_user_id,omitempty"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	AvatarKey  *string    `json:"avatar_key,omitempty"`
	IsAdmin    bool       `json:"is_admin"`
	CreatedAt  time.Time  `json:"created_at"`
}
