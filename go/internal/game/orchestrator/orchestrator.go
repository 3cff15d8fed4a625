package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/game"
)

// GameApp defines what the orchestrator needs from the game app
type GameApp interface {
	AdvanceGame(ctx context.Context, gameID uuid.UUID) error
	FetchNextTransition(ctx context.Context) (*game.NextTransition, error)
	FetchGamesDueForTransition(ctx context.Context, limit int) ([]uuid.UUID, error)
}

type Config struct {
	SweepInterval time.Duration
	BatchSize     int
	Workers       int
}

// Orchestrator drives persisted game deadlines. One-shot timers fire at each
// next_transition_at it is told about, and a periodic sweep picks up anything
// the timers missed, such as games stranded by a restart.
type Orchestrator struct {
	app        GameApp
	clock      clockwork.Clock
	cfg        Config
	instanceID string

	workCh chan uuid.UUID

	timersMu sync.Mutex
	timers   map[uuid.UUID]scheduledTimer

	inFlightMu sync.Mutex
	inFlight   map[uuid.UUID]bool
}

type scheduledTimer struct {
	at    time.Time
	timer clockwork.Timer
}

var _ game.Scheduler = (*Orchestrator)(nil)

// NewOrchestrator creates an orchestrator. Call Run to start it.
func NewOrchestrator(app GameApp, clock clockwork.Clock, cfg Config) *Orchestrator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Second
	}
	return &Orchestrator{
		app:        app,
		clock:      clock,
		cfg:        cfg,
		instanceID: uuid.New().String()[:8],
		workCh:     make(chan uuid.UUID, cfg.BatchSize+cfg.Workers*2),
		timers:     make(map[uuid.UUID]scheduledTimer),
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// Schedule arms a one-shot timer that advances gameID at the given time,
// replacing any timer already armed for the game. Past deadlines are
// enqueued immediately.
func (o *Orchestrator) Schedule(gameID uuid.UUID, at time.Time) {
	d := at.Sub(o.clock.Now())
	if d <= 0 {
		o.cancelTimer(gameID)
		o.enqueue(gameID)
		return
	}

	o.timersMu.Lock()
	defer o.timersMu.Unlock()

	if existing, ok := o.timers[gameID]; ok {
		if existing.at.Equal(at) {
			return
		}
		existing.timer.Stop()
	}

	var t clockwork.Timer
	t = o.clock.AfterFunc(d, func() {
		o.timersMu.Lock()
		if cur, ok := o.timers[gameID]; ok && cur.timer == t {
			delete(o.timers, gameID)
		}
		o.timersMu.Unlock()
		o.enqueue(gameID)
	})
	o.timers[gameID] = scheduledTimer{at: at, timer: t}

	log.Debug().
		Str("game_id", gameID.String()).
		Time("deadline", at).
		Dur("duration", d).
		Msg("scheduled one-shot timer")
}

func (o *Orchestrator) cancelTimer(gameID uuid.UUID) {
	o.timersMu.Lock()
	defer o.timersMu.Unlock()
	if existing, ok := o.timers[gameID]; ok {
		existing.timer.Stop()
		delete(o.timers, gameID)
	}
}

// enqueue hands gameID to the worker pool unless it is already queued or
// being worked on. A full queue drops the game; the next sweep retries it.
func (o *Orchestrator) enqueue(gameID uuid.UUID) {
	o.inFlightMu.Lock()
	if o.inFlight[gameID] {
		o.inFlightMu.Unlock()
		return
	}
	o.inFlight[gameID] = true
	o.inFlightMu.Unlock()

	select {
	case o.workCh <- gameID:
		log.Debug().Str("game_id", gameID.String()).Msg("enqueued game for transition")
	default:
		o.done(gameID)
		log.Warn().Str("game_id", gameID.String()).Msg("work channel full, deferring to next sweep")
	}
}

func (o *Orchestrator) done(gameID uuid.UUID) {
	o.inFlightMu.Lock()
	delete(o.inFlight, gameID)
	o.inFlightMu.Unlock()
}

// Run starts the worker pool and the sweep loop and blocks until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	log.Info().
		Str("instance", o.instanceID).
		Int("workers", o.cfg.Workers).
		Dur("sweep_interval", o.cfg.SweepInterval).
		Msg("game orchestrator started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	for i := 0; i < o.cfg.Workers; i++ {
		wg.Add(1)
		go o.worker(workerCtx, &wg, i)
	}

	ticker := o.clock.NewTicker(o.cfg.SweepInterval)
	defer ticker.Stop()

	o.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("instance", o.instanceID).Msg("orchestrator shutdown requested")
			o.stopTimers()
			cancelWorkers()
			wg.Wait()
			log.Info().Str("instance", o.instanceID).Msg("all workers shut down")
			return nil
		case <-ticker.Chan():
			o.sweep(ctx)
		}
	}
}

// sweep enqueues every game whose deadline has passed and arms a timer for
// the earliest one still pending.
func (o *Orchestrator) sweep(ctx context.Context) {
	due, err := o.app.FetchGamesDueForTransition(ctx, o.cfg.BatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch due games")
	}
	for _, id := range due {
		o.enqueue(id)
	}
	if len(due) > 0 {
		log.Info().Int("count", len(due)).Msg("sweep found due games")
	}

	next, err := o.app.FetchNextTransition(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch next transition")
		return
	}
	if next != nil {
		o.Schedule(next.GameID, next.DueAt)
	}
}

func (o *Orchestrator) stopTimers() {
	o.timersMu.Lock()
	defer o.timersMu.Unlock()
	for id, st := range o.timers {
		st.timer.Stop()
		log.Debug().Str("game_id", id.String()).Msg("cancelled timer on shutdown")
	}
	o.timers = make(map[uuid.UUID]scheduledTimer)
}

// worker advances games from the work channel
func (o *Orchestrator) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			log.Debug().
				Str("instance", o.instanceID).
				Int("worker_id", workerID).
				Msg("worker shutting down")
			return
		case gameID := <-o.workCh:
			if err := o.app.AdvanceGame(ctx, gameID); err != nil {
				log.Error().
					Err(err).
					Str("game_id", gameID.String()).
					Str("instance", o.instanceID).
					Int("worker_id", workerID).
					Msg("failed to advance game")
			}
			o.done(gameID)
		}
	}
}
