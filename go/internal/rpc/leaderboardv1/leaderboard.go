// Package leaderboardv1 defines the request and response messages of the leaderboard service.
package leaderboardv1

import "time"

type Event struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder *int32 `json:"displayOrder,omitempty"`
}

type Score struct {
	Id            string    `json:"id"`
	ParticipantId string    `json:"participantId"`
	EventId       string    `json:"eventId"`
	Rank          *int32    `json:"rank,omitempty"`
	Points        int32     `json:"points"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Standing struct {
	ParticipantId string `json:"participantId"`
	Name          string `json:"name"`
	AvatarUrl     string `json:"avatarUrl,omitempty"`
	Points        int32  `json:"points"`
	Rank          int32  `json:"rank"`
	BestRank      *int32 `json:"bestRank,omitempty"`
}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

type CreateEventRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder *int32 `json:"displayOrder,omitempty"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
}

type RecordScoreRequest struct {
	ParticipantId string `json:"participantId"`
	EventId       string `json:"eventId"`
	Rank          int32  `json:"rank"`
	Points        int32  `json:"points"`
}

type RecordScoreResponse struct {
	Score *Score `json:"score"`
}

type GetEventStandingsRequest struct {
	EventId string `json:"eventId"`
}

type GetEventStandingsResponse struct {
	Event     *Event      `json:"event"`
	Standings []*Standing `json:"standings"`
}

type GetOverallStandingsRequest struct{}

type GetOverallStandingsResponse struct {
	Standings []*Standing `json:"standings"`
}
