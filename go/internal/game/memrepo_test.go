package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/game/events"
	"github.com/scotty-olympics/olympics/go/internal/models"
)

type scoreKey struct {
	participantID uuid.UUID
	eventID       uuid.UUID
}

// memRepo is an in-memory GameRepository with the same compare-and-swap and
// ledger semantics as the SQL queries.
type memRepo struct {
	mu      sync.Mutex
	names   map[uuid.UUID]string
	games   map[uuid.UUID]*models.Game
	members map[uuid.UUID][]*models.GameParticipant
	events  map[string]uuid.UUID
	scores  map[scoreKey]*models.Score

	// beforeTransition runs inside TransitionStatus before the swap is attempted.
	beforeTransition func(g *models.Game)
	// beforeAdd runs at the start of AddParticipant, outside the lock.
	beforeAdd func()
	applied          int
}

func newMemRepo() *memRepo {
	return &memRepo{
		names:   make(map[uuid.UUID]string),
		games:   make(map[uuid.UUID]*models.Game),
		members: make(map[uuid.UUID][]*models.GameParticipant),
		events:  make(map[string]uuid.UUID),
		scores:  make(map[scoreKey]*models.Score),
	}
}

func (r *memRepo) addParticipant(name string) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	r.names[id] = name
	return id
}

func (r *memRepo) score(participantID uuid.UUID, eventName string) *models.Score {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scores[scoreKey{participantID, r.events[eventName]}]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

func (r *memRepo) CreateGame(_ context.Context, creatorID uuid.UUID, now time.Time) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g := &models.Game{
		ID:        uuid.New(),
		Status:    models.GameStatusWaiting,
		CreatedBy: creatorID,
		CreatedAt: now,
	}
	r.games[g.ID] = g
	r.members[g.ID] = []*models.GameParticipant{r.newMember(g.ID, creatorID, now)}
	cp := *g
	return &cp, nil
}

func (r *memRepo) newMember(gameID, participantID uuid.UUID, now time.Time) *models.GameParticipant {
	return &models.GameParticipant{
		ID:            uuid.New(),
		GameID:        gameID,
		ParticipantID: participantID,
		JoinedAt:      now,
		Name:          r.names[participantID],
		Email:         r.names[participantID] + "@example.com",
	}
}

func (r *memRepo) AddParticipant(_ context.Context, gameID, participantID uuid.UUID, now time.Time) (bool, error) {
	if r.beforeAdd != nil {
		r.beforeAdd()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.games[gameID]; !ok || g.Status != models.GameStatusWaiting {
		return false, nil
	}
	for _, m := range r.members[gameID] {
		if m.ParticipantID == participantID {
			return false, nil
		}
	}
	r.members[gameID] = append(r.members[gameID], r.newMember(gameID, participantID, now))
	return true, nil
}

func (r *memRepo) GetGame(_ context.Context, id uuid.UUID) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *memRepo) ListParticipants(_ context.Context, gameID uuid.UUID) ([]models.GameParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.GameParticipant, 0, len(r.members[gameID]))
	for _, m := range r.members[gameID] {
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		if (ri == nil) != (rj == nil) {
			return ri != nil
		}
		if ri != nil && *ri != *rj {
			return *ri < *rj
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (r *memRepo) ListGamesByStatus(_ context.Context, statuses ...models.GameStatus) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Game
	for _, g := range r.games {
		for _, s := range statuses {
			if g.Status == s {
				cp := *g
				out = append(out, &cp)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) TransitionStatus(_ context.Context, req TransitionRequest) (*models.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[req.GameID]
	if !ok {
		return nil, false, nil
	}
	if r.beforeTransition != nil {
		r.beforeTransition(g)
	}
	if g.Status != req.From {
		return nil, false, nil
	}
	g.Status = req.To
	if req.StartedAt != nil {
		g.StartedAt = req.StartedAt
	}
	if req.FinishedAt != nil {
		g.FinishedAt = req.FinishedAt
	}
	g.NextTransitionAt = req.NextTransitionAt
	g.Version++
	cp := *g
	return &cp, true, nil
}

func (r *memRepo) UpdateTapCount(_ context.Context, gameID, participantID uuid.UUID, tapCount int) (*models.GameParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[gameID]
	if !ok || g.Status != models.GameStatusInProgress {
		return nil, nil
	}
	for _, m := range r.members[gameID] {
		if m.ParticipantID == participantID {
			m.TapCount = tapCount
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) ApplyGameResults(_ context.Context, params ApplyResultsParams) (ApplyResultsOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[params.GameID]
	if !ok {
		return ApplyResultsOutcome{}, ErrGameNotFound
	}
	if g.Status != models.GameStatusFinished {
		return ApplyResultsOutcome{}, ErrGameNotFinished
	}
	if g.ReconciledAt != nil {
		return ApplyResultsOutcome{}, nil
	}

	eventID, ok := r.events[params.EventName]
	if !ok {
		eventID = uuid.New()
		r.events[params.EventName] = eventID
	}

	results := make([]models.GameResult, len(params.Placements))
	for i, p := range params.Placements {
		rank, award := p.Rank, p.ScoreAwarded
		for _, m := range r.members[params.GameID] {
			if m.ParticipantID == p.ParticipantID {
				m.Rank = &rank
				m.ScoreAwarded = &award
			}
		}

		key := scoreKey{p.ParticipantID, eventID}
		if s, ok := r.scores[key]; ok {
			s.Points += award
			if s.Rank == nil || rank < *s.Rank {
				s.Rank = &rank
			}
		} else {
			r.scores[key] = &models.Score{
				ID:            uuid.New(),
				ParticipantID: p.ParticipantID,
				EventID:       eventID,
				Rank:          &rank,
				Points:        award,
			}
		}
		results[i] = models.GameResult{
			ParticipantID: p.ParticipantID,
			Name:          p.Name,
			TapCount:      p.TapCount,
			Rank:          p.Rank,
			ScoreAwarded:  p.ScoreAwarded,
		}
	}

	reconciledAt := params.ReconciledAt
	g.ReconciledAt = &reconciledAt
	g.NextTransitionAt = nil
	g.Results = results
	g.Version++
	r.applied++
	return ApplyResultsOutcome{Applied: true, EventID: eventID}, nil
}

func (r *memRepo) FetchNextTransition(_ context.Context) (*NextTransition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var next *NextTransition
	for _, g := range r.games {
		if g.NextTransitionAt == nil {
			continue
		}
		if next == nil || g.NextTransitionAt.Before(next.DueAt) {
			next = &NextTransition{GameID: g.ID, DueAt: *g.NextTransitionAt}
		}
	}
	return next, nil
}

func (r *memRepo) FetchGamesDueForTransition(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*models.Game
	for _, g := range r.games {
		if g.NextTransitionAt != nil && !g.NextTransitionAt.After(now) {
			due = append(due, g)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextTransitionAt.Before(*due[j].NextTransitionAt) })
	ids := make([]uuid.UUID, 0, limit)
	for i := 0; i < len(due) && i < limit; i++ {
		ids = append(ids, due[i].ID)
	}
	return ids, nil
}

// recordingOutbox collects emitted events in order.
type recordingOutbox struct {
	mu     sync.Mutex
	events []events.EventType
}

func (o *recordingOutbox) InsertEvent(_ context.Context, _ uuid.UUID, eventType events.EventType, _ []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, eventType)
	return nil
}

func (o *recordingOutbox) count(eventType events.EventType) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, e := range o.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type recordingScheduler struct {
	mu    sync.Mutex
	calls map[uuid.UUID]time.Time
}

func (s *recordingScheduler) Schedule(gameID uuid.UUID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[uuid.UUID]time.Time)
	}
	s.calls[gameID] = at
}

func (s *recordingScheduler) scheduled(gameID uuid.UUID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.calls[gameID]
	return at, ok
}
