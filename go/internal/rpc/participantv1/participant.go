// Package participantv1 defines the request and response messages of the participant service.
package participantv1

type Participant struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarKey string `json:"avatarKey,omitempty"`
	AvatarUrl string `json:"avatarUrl,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	Participant *Participant `json:"participant"`
}

type ListParticipantsRequest struct{}

type ListParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}
