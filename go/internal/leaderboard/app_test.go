package leaderboard

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scotty-olympics/olympics/go/internal/models"
)

// memRepo is an in-memory LeaderboardRepository with the same upsert semantics as the SQL.
type memRepo struct {
	mu           sync.Mutex
	events       map[uuid.UUID]*models.Event
	scores       map[[2]uuid.UUID]*models.Score
	participants map[uuid.UUID]string
}

func newMemRepo() *memRepo {
	return &memRepo{
		events:       make(map[uuid.UUID]*models.Event),
		scores:       make(map[[2]uuid.UUID]*models.Score),
		participants: make(map[uuid.UUID]string),
	}
}

func (m *memRepo) addParticipant(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.participants[id] = name
	return id
}

func (m *memRepo) ListEvents(context.Context) ([]*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) GetEvent(_ context.Context, id uuid.UUID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (m *memRepo) findEvent(name string) *models.Event {
	for _, e := range m.events {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (m *memRepo) CreateEvent(_ context.Context, name string, description *string, displayOrder *int) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findEvent(name) != nil {
		return nil, ErrEventAlreadyExists
	}
	e := &models.Event{ID: uuid.New(), Name: name, Description: description, DisplayOrder: displayOrder, CreatedAt: time.Now()}
	m.events[e.ID] = e
	return e, nil
}

func (m *memRepo) EnsureEvent(_ context.Context, name string, description *string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.findEvent(name); e != nil {
		return e, nil
	}
	e := &models.Event{ID: uuid.New(), Name: name, Description: description, CreatedAt: time.Now()}
	m.events[e.ID] = e
	return e, nil
}

func (m *memRepo) UpsertScore(_ context.Context, participantID, eventID uuid.UUID, rank *int, points int) (*models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.participants[participantID]; !ok {
		return nil, ErrParticipantNotFound
	}
	key := [2]uuid.UUID{participantID, eventID}
	s, ok := m.scores[key]
	if !ok {
		s = &models.Score{ID: uuid.New(), ParticipantID: participantID, EventID: eventID}
		m.scores[key] = s
	}
	s.Points += points
	if rank != nil && (s.Rank == nil || *rank < *s.Rank) {
		r := *rank
		s.Rank = &r
	}
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (m *memRepo) ListEventStandings(_ context.Context, eventID uuid.UUID) ([]models.Standing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Standing
	for key, s := range m.scores {
		if key[1] != eventID {
			continue
		}
		out = append(out, models.Standing{ParticipantID: key[0], Name: m.participants[key[0]], Points: s.Points, BestRank: s.Rank})
	}
	sortStandings(out)
	return out, nil
}

func (m *memRepo) ListOverallStandings(context.Context) ([]models.Standing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := make(map[uuid.UUID]int)
	for key, s := range m.scores {
		totals[key[0]] += s.Points
	}
	out := make([]models.Standing, 0, len(m.participants))
	for id, name := range m.participants {
		out = append(out, models.Standing{ParticipantID: id, Name: name, Points: totals[id]})
	}
	sortStandings(out)
	return out, nil
}

func sortStandings(s []models.Standing) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Points != s[j].Points {
			return s[i].Points > s[j].Points
		}
		return strings.Compare(s[i].Name, s[j].Name) < 0
	})
}

func intPtr(i int) *int { return &i }

func TestApp_CreateEvent(t *testing.T) {
	app := NewApp(newMemRepo())

	event, err := app.CreateEvent(t.Context(), CreateEventRequest{Name: "  Tug of War  ", DisplayOrder: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Tug of War", event.Name)

	_, err = app.CreateEvent(t.Context(), CreateEventRequest{Name: "Tug of War"})
	assert.ErrorIs(t, err, ErrEventAlreadyExists)

	_, err = app.CreateEvent(t.Context(), CreateEventRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidEventName)
}

func TestApp_EnsureEventIsIdempotent(t *testing.T) {
	app := NewApp(newMemRepo())

	first, err := app.EnsureEvent(t.Context(), "Row Harder!", "tap race")
	require.NoError(t, err)
	second, err := app.EnsureEvent(t.Context(), "Row Harder!", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	events, err := app.ListEvents(t.Context())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestApp_RecordScoreAccumulatesAndKeepsBestRank(t *testing.T) {
	repo := newMemRepo()
	app := NewApp(repo)
	ada := repo.addParticipant("Ada")

	event, err := app.CreateEvent(t.Context(), CreateEventRequest{Name: "Egg Toss"})
	require.NoError(t, err)

	score, err := app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: ada, EventID: event.ID, Rank: intPtr(3), Points: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, score.Points)

	score, err = app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: ada, EventID: event.ID, Rank: intPtr(1), Points: 5})
	require.NoError(t, err)
	assert.Equal(t, 7, score.Points)
	require.NotNil(t, score.Rank)
	assert.Equal(t, 1, *score.Rank)

	score, err = app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: ada, EventID: event.ID, Rank: intPtr(4), Points: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, *score.Rank, "a worse rank never replaces the best one")

	score, err = app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: ada, EventID: event.ID, Points: 1})
	require.NoError(t, err)
	assert.Equal(t, 8, score.Points)
	assert.Equal(t, 1, *score.Rank)
}

func TestApp_RecordScoreValidation(t *testing.T) {
	repo := newMemRepo()
	app := NewApp(repo)
	ada := repo.addParticipant("Ada")
	event, err := app.CreateEvent(t.Context(), CreateEventRequest{Name: "Egg Toss"})
	require.NoError(t, err)

	_, err = app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: ada, EventID: event.ID, Rank: intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidRank)

	_, err = app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: ada, EventID: uuid.New(), Points: 1})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: uuid.New(), EventID: event.ID, Points: 1})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestApp_StandingsUseCompetitionRanking(t *testing.T) {
	repo := newMemRepo()
	app := NewApp(repo)
	ada, bo, cy, di := repo.addParticipant("Ada"), repo.addParticipant("Bo"), repo.addParticipant("Cy"), repo.addParticipant("Di")

	race, err := app.CreateEvent(t.Context(), CreateEventRequest{Name: "Sack Race"})
	require.NoError(t, err)
	toss, err := app.CreateEvent(t.Context(), CreateEventRequest{Name: "Egg Toss"})
	require.NoError(t, err)

	record := func(p, e uuid.UUID, points int) {
		_, err := app.RecordScore(t.Context(), RecordScoreRequest{ParticipantID: p, EventID: e, Points: points})
		require.NoError(t, err)
	}
	record(ada, race.ID, 10)
	record(bo, race.ID, 10)
	record(cy, race.ID, 7)
	record(cy, toss.ID, 5)

	ranksOf := func(s []models.Standing) []int {
		ranks := make([]int, len(s))
		for i := range s {
			ranks[i] = s[i].Rank
		}
		return ranks
	}

	eventStandings, err := app.GetEventStandings(t.Context(), race.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sack Race", eventStandings.Event.Name)
	assert.Equal(t, []int{1, 1, 3}, ranksOf(eventStandings.Standings))

	overall, err := app.GetOverallStandings(t.Context())
	require.NoError(t, err)
	require.Len(t, overall, 4)
	assert.Equal(t, cy, overall[0].ParticipantID)
	assert.Equal(t, 12, overall[0].Points)
	assert.Equal(t, []int{1, 2, 2, 4}, ranksOf(overall))
	assert.Equal(t, di, overall[3].ParticipantID)

	_, err = app.GetEventStandings(t.Context(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}
