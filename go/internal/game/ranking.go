package game

import (
	"sort"

	"github.com/scotty-olympics/olympics/go/internal/models"
	"github.com/scotty-olympics/olympics/go/internal/ranking"
)

// RankParticipants orders participants by tap count (earliest joiner first among
// equals), assigns competition ranks and computes the bonus each one earns.
func RankParticipants(participants []models.GameParticipant, policy AwardPolicy) []Placement {
	sorted := make([]models.GameParticipant, len(participants))
	copy(sorted, participants)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TapCount != sorted[j].TapCount {
			return sorted[i].TapCount > sorted[j].TapCount
		}
		return sorted[i].JoinedAt.Before(sorted[j].JoinedAt)
	})

	ranks := ranking.Competition(len(sorted), func(i, j int) bool {
		return sorted[i].TapCount == sorted[j].TapCount
	})

	winners := 0
	for _, r := range ranks {
		if r == 1 {
			winners++
		}
	}
	bonusEligible := len(sorted) > 1 && (policy != AwardOutright || winners == 1)

	placements := make([]Placement, len(sorted))
	for i, p := range sorted {
		award := 0
		if bonusEligible && ranks[i] == 1 {
			award = WinnerBonusPoints
		}
		placements[i] = Placement{
			ParticipantID: p.ParticipantID,
			Name:          p.Name,
			TapCount:      p.TapCount,
			Rank:          ranks[i],
			ScoreAwarded:  award,
		}
	}
	return placements
}
