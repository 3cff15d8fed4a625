package game

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scotty-olympics/olympics/go/internal/game/events"
	"github.com/scotty-olympics/olympics/go/internal/models"
)

type appFixture struct {
	app       *App
	repo      *memRepo
	outbox    *recordingOutbox
	scheduler *recordingScheduler
	clock     *clockwork.FakeClock
	cfg       Config
}

func newAppFixture(t *testing.T, mutate ...func(*Config)) *appFixture {
	t.Helper()

	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	repo := newMemRepo()
	outbox := &recordingOutbox{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 2, 15, 0, 0, 0, time.UTC))

	app, err := NewApp(repo, outbox, clock, cfg)
	require.NoError(t, err)
	scheduler := &recordingScheduler{}
	app.SetScheduler(scheduler)

	return &appFixture{
		app:       app,
		repo:      repo,
		outbox:    outbox,
		scheduler: scheduler,
		clock:     clock,
		cfg:       cfg,
	}
}

// lobby creates a game owned by the first name and joins the rest, one second apart.
func (f *appFixture) lobby(t *testing.T, names ...string) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	ids := make([]uuid.UUID, len(names))
	for i, n := range names {
		ids[i] = f.repo.addParticipant(n)
	}
	game, err := f.app.CreateGame(ctx, ids[0])
	require.NoError(t, err)
	for _, id := range ids[1:] {
		f.clock.Advance(time.Second)
		_, err := f.app.JoinGame(ctx, id, game.ID)
		require.NoError(t, err)
	}
	return game.ID, ids
}

// play starts the game, runs the countdown and submits taps in participant order.
func (f *appFixture) play(t *testing.T, gameID uuid.UUID, ids []uuid.UUID, taps ...int) {
	t.Helper()
	ctx := context.Background()

	_, err := f.app.StartGame(ctx, ids[0], gameID)
	require.NoError(t, err)
	f.clock.Advance(f.cfg.Countdown)
	require.NoError(t, f.app.AdvanceGame(ctx, gameID))

	for i, n := range taps {
		_, err := f.app.UpdateTapCount(ctx, ids[i], gameID, n)
		require.NoError(t, err)
	}
}

func (f *appFixture) expire(t *testing.T, gameID uuid.UUID) {
	t.Helper()
	f.clock.Advance(f.cfg.PlayDuration)
	require.NoError(t, f.app.AdvanceGame(context.Background(), gameID))
}

func TestNewApp_RejectsUnknownAwardPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AwardPolicy = "winner-takes-all"
	_, err := NewApp(newMemRepo(), nil, nil, cfg)
	assert.Error(t, err)
}

func TestApp_CreateGame(t *testing.T) {
	f := newAppFixture(t)
	creator := f.repo.addParticipant("Scotty")

	game, err := f.app.CreateGame(context.Background(), creator)
	require.NoError(t, err)

	assert.Equal(t, models.GameStatusWaiting, game.Status)
	assert.Equal(t, creator, game.CreatedBy)
	require.Len(t, game.Participants, 1)
	assert.Equal(t, creator, game.Participants[0].ParticipantID)
	assert.Equal(t, "Scotty", game.Participants[0].Name)
	assert.Zero(t, game.Participants[0].TapCount)
	assert.Equal(t, 1, f.outbox.count(events.GameCreated))
}

func TestApp_JoinGame(t *testing.T) {
	ctx := context.Background()

	t.Run("joining twice is a no-op", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty", "Ada")

		game, err := f.app.JoinGame(ctx, ids[1], gameID)
		require.NoError(t, err)
		assert.Len(t, game.Participants, 2)
		assert.Equal(t, 1, f.outbox.count(events.ParticipantJoined))

		game, err = f.app.JoinGame(ctx, ids[0], gameID)
		require.NoError(t, err)
		assert.Len(t, game.Participants, 2)
	})

	t.Run("unknown game", func(t *testing.T) {
		f := newAppFixture(t)
		_, err := f.app.JoinGame(ctx, f.repo.addParticipant("Ada"), uuid.New())
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("game already started", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty")
		_, err := f.app.StartGame(ctx, ids[0], gameID)
		require.NoError(t, err)

		_, err = f.app.JoinGame(ctx, f.repo.addParticipant("Late"), gameID)
		assert.ErrorIs(t, err, ErrGameNotWaiting)
	})

	t.Run("start commits between check and insert", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty")
		late := f.repo.addParticipant("Late")
		f.repo.beforeAdd = func() {
			f.repo.beforeAdd = nil
			_, err := f.app.StartGame(ctx, ids[0], gameID)
			require.NoError(t, err)
		}

		_, err := f.app.JoinGame(ctx, late, gameID)
		assert.ErrorIs(t, err, ErrGameNotWaiting)
		assert.Zero(t, f.outbox.count(events.ParticipantJoined))

		game, err := f.app.GetGame(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, models.GameStatusStarting, game.Status)
		assert.Len(t, game.Participants, 1)
	})
}

func TestApp_GetActiveGames(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)

	waitingID, _ := f.lobby(t, "Scotty")
	f.clock.Advance(time.Second)
	runningID, runningIDs := f.lobby(t, "Ada", "Grace")
	_, err := f.app.StartGame(ctx, runningIDs[0], runningID)
	require.NoError(t, err)

	games, err := f.app.GetActiveGames(ctx, false)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, waitingID, games[0].ID)
	assert.Len(t, games[0].Participants, 1)

	games, err = f.app.GetActiveGames(ctx, true)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, runningID, games[0].ID)
}

func TestApp_StartGame(t *testing.T) {
	ctx := context.Background()

	t.Run("starts the countdown", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty", "Ada")
		startsAt := f.clock.Now().Add(f.cfg.Countdown)

		game, err := f.app.StartGame(ctx, ids[1], gameID)
		require.NoError(t, err)

		assert.Equal(t, models.GameStatusStarting, game.Status)
		require.NotNil(t, game.StartedAt)
		assert.Equal(t, startsAt, *game.StartedAt)
		require.NotNil(t, game.NextTransitionAt)
		assert.Equal(t, startsAt, *game.NextTransitionAt)
		assert.Equal(t, 1, game.Version)
		assert.Equal(t, 1, f.outbox.count(events.GameStarting))

		at, ok := f.scheduler.scheduled(gameID)
		require.True(t, ok)
		assert.Equal(t, startsAt, at)
	})

	t.Run("second start is rejected", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty", "Ada")
		_, err := f.app.StartGame(ctx, ids[0], gameID)
		require.NoError(t, err)

		_, err = f.app.StartGame(ctx, ids[1], gameID)
		assert.ErrorIs(t, err, ErrGameNotWaiting)
		assert.Equal(t, 1, f.outbox.count(events.GameStarting))
	})

	t.Run("concurrent start loses the swap", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty", "Ada")
		f.repo.beforeTransition = func(g *models.Game) {
			g.Status = models.GameStatusStarting
		}

		_, err := f.app.StartGame(ctx, ids[0], gameID)
		assert.ErrorIs(t, err, ErrGameAlreadyStarted)
		assert.Zero(t, f.outbox.count(events.GameStarting))
	})

	t.Run("non member", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, _ := f.lobby(t, "Scotty")
		_, err := f.app.StartGame(ctx, f.repo.addParticipant("Mallory"), gameID)
		assert.ErrorIs(t, err, ErrNotGameParticipant)
	})

	t.Run("unknown game", func(t *testing.T) {
		f := newAppFixture(t)
		_, err := f.app.StartGame(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestApp_AdvanceGame(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty", "Ada")

	_, err := f.app.StartGame(ctx, ids[0], gameID)
	require.NoError(t, err)

	// Countdown still running.
	f.clock.Advance(f.cfg.Countdown - time.Millisecond)
	require.NoError(t, f.app.AdvanceGame(ctx, gameID))
	game, err := f.app.GetGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusStarting, game.Status)

	f.clock.Advance(time.Millisecond)
	require.NoError(t, f.app.AdvanceGame(ctx, gameID))
	game, err = f.app.GetGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusInProgress, game.Status)
	require.NotNil(t, game.NextTransitionAt)
	assert.Equal(t, game.StartedAt.Add(f.cfg.PlayDuration), *game.NextTransitionAt)
	assert.Equal(t, 1, f.outbox.count(events.GameStarted))

	at, ok := f.scheduler.scheduled(gameID)
	require.True(t, ok)
	assert.Equal(t, *game.NextTransitionAt, at)

	f.clock.Advance(f.cfg.PlayDuration)
	require.NoError(t, f.app.AdvanceGame(ctx, gameID))
	game, err = f.app.GetGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusFinished, game.Status)
	assert.True(t, game.IsReconciled())
	assert.Nil(t, game.NextTransitionAt)
	assert.Equal(t, 1, f.outbox.count(events.GameFinished))
	assert.Equal(t, 1, f.outbox.count(events.GameReconciled))

	// Nothing left to do.
	require.NoError(t, f.app.AdvanceGame(ctx, gameID))
	assert.Equal(t, 1, f.repo.applied)
}

func TestApp_AdvanceGame_LostSwapIsNotAnError(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty", "Ada")
	_, err := f.app.StartGame(ctx, ids[0], gameID)
	require.NoError(t, err)
	f.clock.Advance(f.cfg.Countdown)

	// Another writer moves the game to in_progress first, with a later deadline.
	endsAt := f.clock.Now().Add(f.cfg.PlayDuration)
	f.repo.beforeTransition = func(g *models.Game) {
		if g.Status == models.GameStatusStarting {
			g.Status = models.GameStatusInProgress
			g.NextTransitionAt = &endsAt
		}
	}

	require.NoError(t, f.app.AdvanceGame(ctx, gameID))
	game, err := f.app.GetGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusInProgress, game.Status)
	assert.Zero(t, f.outbox.count(events.GameStarted))
}

func TestApp_UpdateTapCount(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty", "Ada")

	_, err := f.app.UpdateTapCount(ctx, ids[0], gameID, 3)
	assert.ErrorIs(t, err, ErrGameNotInProgress)

	f.play(t, gameID, ids)

	_, err = f.app.UpdateTapCount(ctx, ids[0], gameID, -1)
	assert.ErrorIs(t, err, ErrInvalidTapCount)

	_, err = f.app.UpdateTapCount(ctx, f.repo.addParticipant("Mallory"), gameID, 5)
	assert.ErrorIs(t, err, ErrNotGameParticipant)

	_, err = f.app.UpdateTapCount(ctx, ids[0], uuid.New(), 5)
	assert.ErrorIs(t, err, ErrGameNotFound)

	p, err := f.app.UpdateTapCount(ctx, ids[0], gameID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, p.TapCount)

	// Overwrite, last write wins even when lower.
	p, err = f.app.UpdateTapCount(ctx, ids[0], gameID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, p.TapCount)

	f.expire(t, gameID)
	_, err = f.app.UpdateTapCount(ctx, ids[0], gameID, 40)
	assert.ErrorIs(t, err, ErrGameNotInProgress)
}

func TestApp_FinishGame_TiedWinnersShareTheBonus(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty", "Ada", "Grace")
	f.play(t, gameID, ids, 42, 42, 10)
	f.expire(t, gameID)

	game, err := f.app.FinishGame(ctx, ids[2], gameID)
	require.NoError(t, err)
	require.Len(t, game.Participants, 3)

	want := []struct {
		id    uuid.UUID
		rank  int
		award int
	}{
		{ids[0], 1, 1},
		{ids[1], 1, 1},
		{ids[2], 3, 0},
	}
	for i, w := range want {
		p := game.Participants[i]
		assert.Equal(t, w.id, p.ParticipantID)
		require.NotNil(t, p.Rank)
		assert.Equal(t, w.rank, *p.Rank)
		require.NotNil(t, p.ScoreAwarded)
		assert.Equal(t, w.award, *p.ScoreAwarded)

		s := f.repo.score(w.id, f.cfg.EventName)
		require.NotNil(t, s)
		assert.Equal(t, w.award, s.Points)
		assert.Equal(t, w.rank, *s.Rank)
	}
	require.Len(t, game.Results, 3)
	assert.Equal(t, 42, game.Results[0].TapCount)
}

func TestApp_FinishGame_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty", "Ada")
	f.play(t, gameID, ids, 20, 5)
	f.expire(t, gameID)

	for i := 0; i < 3; i++ {
		game, err := f.app.FinishGame(ctx, ids[i%2], gameID)
		require.NoError(t, err)
		assert.True(t, game.IsReconciled())
	}

	assert.Equal(t, 1, f.repo.applied)
	assert.Equal(t, 1, f.outbox.count(events.GameReconciled))
	assert.Equal(t, 1, f.repo.score(ids[0], f.cfg.EventName).Points)
	assert.Equal(t, 0, f.repo.score(ids[1], f.cfg.EventName).Points)
}

func TestApp_FinishGame_SinglePlayerEarnsNothing(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty")
	f.play(t, gameID, ids, 77)
	f.expire(t, gameID)

	game, err := f.app.FinishGame(ctx, ids[0], gameID)
	require.NoError(t, err)
	require.Len(t, game.Participants, 1)
	assert.Equal(t, 1, *game.Participants[0].Rank)
	assert.Equal(t, 0, *game.Participants[0].ScoreAwarded)

	s := f.repo.score(ids[0], f.cfg.EventName)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Points)
	assert.Equal(t, 1, *s.Rank)
}

func TestApp_FinishGame_ScoresAccumulateAndKeepBestRank(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty", "Ada")
	f.play(t, gameID, ids, 30, 10)
	f.expire(t, gameID)
	_, err := f.app.FinishGame(ctx, ids[0], gameID)
	require.NoError(t, err)

	// Rematch with the same players; Scotty loses this time.
	f.clock.Advance(time.Minute)
	game, err := f.app.CreateGame(ctx, ids[1])
	require.NoError(t, err)
	_, err = f.app.JoinGame(ctx, ids[0], game.ID)
	require.NoError(t, err)
	f.play(t, game.ID, []uuid.UUID{ids[1], ids[0]}, 50, 10)
	f.expire(t, game.ID)
	_, err = f.app.FinishGame(ctx, ids[0], game.ID)
	require.NoError(t, err)

	scotty := f.repo.score(ids[0], f.cfg.EventName)
	assert.Equal(t, 1, scotty.Points)
	assert.Equal(t, 1, *scotty.Rank)

	ada := f.repo.score(ids[1], f.cfg.EventName)
	assert.Equal(t, 1, ada.Points)
	assert.Equal(t, 1, *ada.Rank)
}

func TestApp_FinishGame_OutrightPolicy(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t, func(c *Config) { c.AwardPolicy = AwardOutright })
	gameID, ids := f.lobby(t, "Scotty", "Ada", "Grace")
	f.play(t, gameID, ids, 42, 42, 10)
	f.expire(t, gameID)

	game, err := f.app.FinishGame(ctx, ids[0], gameID)
	require.NoError(t, err)
	for _, p := range game.Participants {
		assert.Equal(t, 0, *p.ScoreAwarded)
	}
	assert.Equal(t, 1, *game.Participants[1].Rank)
}

func TestApp_FinishGame_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("not finished yet", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty", "Ada")

		_, err := f.app.FinishGame(ctx, ids[0], gameID)
		assert.ErrorIs(t, err, ErrGameNotFinished)

		f.play(t, gameID, ids, 1, 2)
		_, err = f.app.FinishGame(ctx, ids[0], gameID)
		assert.ErrorIs(t, err, ErrGameNotFinished)
		assert.Zero(t, f.repo.applied)
	})

	t.Run("non member", func(t *testing.T) {
		f := newAppFixture(t)
		gameID, ids := f.lobby(t, "Scotty", "Ada")
		f.play(t, gameID, ids, 1, 2)
		f.expire(t, gameID)

		_, err := f.app.FinishGame(ctx, f.repo.addParticipant("Mallory"), gameID)
		assert.ErrorIs(t, err, ErrNotGameParticipant)
	})

	t.Run("unknown game", func(t *testing.T) {
		f := newAppFixture(t)
		_, err := f.app.FinishGame(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestApp_FinishGame_RecoversExpiredGame(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)
	gameID, ids := f.lobby(t, "Scotty", "Ada")
	f.play(t, gameID, ids, 8, 13)

	// No orchestrator ran: the deadline passed while the game sat in progress.
	f.clock.Advance(f.cfg.PlayDuration + time.Minute)

	game, err := f.app.FinishGame(ctx, ids[0], gameID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusFinished, game.Status)
	assert.True(t, game.IsReconciled())
	assert.Equal(t, ids[1], game.Participants[0].ParticipantID)
	assert.Equal(t, 1, *game.Participants[0].ScoreAwarded)
}

func TestApp_TransitionQueries(t *testing.T) {
	ctx := context.Background()
	f := newAppFixture(t)

	next, err := f.app.FetchNextTransition(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)

	gameID, ids := f.lobby(t, "Scotty", "Ada")
	_, err = f.app.StartGame(ctx, ids[0], gameID)
	require.NoError(t, err)

	next, err = f.app.FetchNextTransition(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, gameID, next.GameID)

	due, err := f.app.FetchGamesDueForTransition(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	f.clock.Advance(f.cfg.Countdown)
	due, err = f.app.FetchGamesDueForTransition(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{gameID}, due)

	_, err = f.app.FetchGamesDueForTransition(ctx, 0)
	assert.Error(t, err)
}
