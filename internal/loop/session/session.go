// Package session runs one shoot-em-up game: the simulation tick, the enemy
// spawner, the shooter and the difficulty curve, each on its own schedule,
// all sharing a copy-on-write entity registry.
package session

import (
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/physics"
	"github.com/tomz197/skyraid/internal/registry"
	"github.com/tomz197/skyraid/internal/schedule"
)

// Options configures the collaborators of a session.
type Options struct {
	Logger *log.Logger      // Defaults to a discarding logger
	Now    func() time.Time // Clock for the fire cooldown; defaults to time.Now
}

// Session is the state of one game plus the three actors that drive it.
//
// Player position and lives, score bookkeeping and the broad-phase grid belong
// to the tick goroutine. Input handlers only flip atomic flags. The spawner and
// shooter only append to the registry.
type Session struct {
	cfg        config.Config
	board      object.Board
	difficulty Difficulty
	logger     *log.Logger
	now        func() time.Time
	rng        *rand.Rand // Spawner goroutine only

	player *object.Player
	reg    *registry.Registry
	grid   *physics.SpatialGrid
	hitBuf []bool

	state         atomic.Int32
	score         atomic.Int64
	level         atomic.Int64
	spawnInterval atomic.Int64
	ticks         uint64

	snapshot atomic.Pointer[Snapshot]

	lifecycle sync.Mutex // Serializes StartGame, StopGame and Restart
	tickJob   *schedule.Periodic
	spawner   *Spawner
	shooter   *Shooter
}

// New validates cfg and creates a stopped session.
func New(cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		cfg:        cfg,
		board:      object.Board{Width: cfg.Width, Height: cfg.Height},
		difficulty: NewDifficulty(cfg),
		logger:     logger,
		now:        now,
		rng:        rand.New(rand.NewSource(seed)),
		reg:        registry.New(),
		grid:       physics.NewSpatialGrid(cfg.Width, cfg.Height, object.MaxExtent()),
	}
	x, y := cfg.PlayerStart(object.PlayerWidth)
	s.player = object.NewPlayer(x, y, cfg.PlayerSpeed, cfg.Lives)

	s.tickJob = schedule.New("tick", s.Tick, logger)
	s.spawner = &Spawner{job: schedule.New("spawner", s.spawnEnemy, logger)}
	s.shooter = &Shooter{job: schedule.New("shooter", s.shoot, logger)}

	s.reset()
	s.state.Store(int32(GameStateStopped))
	s.publish()
	return s, nil
}

// StartGame resets the session and starts the tick, spawner and shooter.
// Calling it again restarts from the same initial state.
func (s *Session) StartGame() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.stopActors()
	s.reset()
	s.state.Store(int32(GameStateRunning))
	s.publish()

	if err := s.tickJob.Start(s.cfg.TickInterval, s.cfg.TickInterval); err != nil {
		return err
	}
	if err := s.spawner.Start(s.cfg.SpawnInitialDelay, s.SpawnInterval()); err != nil {
		s.stopActors()
		return err
	}
	if err := s.shooter.Start(s.cfg.ShooterPoll); err != nil {
		s.stopActors()
		return err
	}
	s.logger.Info("game started", "interval", s.SpawnInterval())
	return nil
}

// StopGame cancels every schedule and freezes the session as it is.
// Work in flight when StopGame is called is finished, nothing is resumed.
func (s *Session) StopGame() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.stopActors()
	s.state.Store(int32(GameStateStopped))
	s.logger.Info("game stopped", "score", s.Score(), "level", s.Level())
}

// Restart starts a new game. It is honoured only after game over and
// reports whether a new game was started.
func (s *Session) Restart() (bool, error) {
	if s.State() != GameStateGameOver {
		return false, nil
	}
	return true, s.StartGame()
}

// TogglePause switches between running and paused and returns the new state.
// Other states are left alone.
func (s *Session) TogglePause() GameState {
	for {
		cur := GameState(s.state.Load())
		var next GameState
		switch cur {
		case GameStateRunning:
			next = GameStatePaused
		case GameStatePaused:
			next = GameStateRunning
		default:
			return cur
		}
		if s.state.CompareAndSwap(int32(cur), int32(next)) {
			s.logger.Debug("pause toggled", "state", next)
			return next
		}
	}
}

// SetMoveLeft sets the move-left intent.
func (s *Session) SetMoveLeft(on bool) { s.player.SetMoveLeft(on) }

// SetMoveRight sets the move-right intent.
func (s *Session) SetMoveRight(on bool) { s.player.SetMoveRight(on) }

// SetFiring sets the fire intent.
func (s *Session) SetFiring(on bool) { s.player.SetFiring(on) }

// State returns the current game state.
func (s *Session) State() GameState { return GameState(s.state.Load()) }

// Score returns the current score.
func (s *Session) Score() int { return int(s.score.Load()) }

// Level returns the current level.
func (s *Session) Level() int { return int(s.level.Load()) }

// SpawnInterval returns the current enemy spawn interval.
func (s *Session) SpawnInterval() time.Duration { return time.Duration(s.spawnInterval.Load()) }

// Spawner returns the enemy spawner.
func (s *Session) Spawner() *Spawner { return s.spawner }

// Shooter returns the bullet shooter.
func (s *Session) Shooter() *Shooter { return s.shooter }

// Board returns the playfield dimensions.
func (s *Session) Board() object.Board { return s.board }

// reset restores the initial state. Actors must be stopped.
func (s *Session) reset() {
	s.score.Store(0)
	s.level.Store(1)
	s.spawnInterval.Store(int64(s.difficulty.SpawnInterval(1)))
	s.ticks = 0
	s.reg.Clear()
	x, y := s.cfg.PlayerStart(s.player.W)
	s.player.Reset(x, y, s.cfg.Lives)
}

// stopActors cancels all three schedules and waits for them.
func (s *Session) stopActors() {
	s.tickJob.Stop()
	s.spawner.Stop()
	s.shooter.Stop()
}

// running reports whether actors may act: started, not paused, not over.
func (s *Session) running() bool {
	return s.State() == GameStateRunning
}
