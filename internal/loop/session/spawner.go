package session

import (
	"time"

	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/schedule"
)

// Spawner creates enemies on its own schedule, independent of the tick rate.
type Spawner struct {
	job *schedule.Periodic
}

// Start begins spawning after initialDelay and then every period.
func (sp *Spawner) Start(initialDelay, period time.Duration) error {
	return sp.job.Start(initialDelay, period)
}

// Reschedule replaces the spawn period of the running schedule.
func (sp *Spawner) Reschedule(period time.Duration) error {
	return sp.job.Reschedule(period)
}

// Stop cancels spawning.
func (sp *Spawner) Stop() { sp.job.Stop() }

// Period returns the current spawn period.
func (sp *Spawner) Period() time.Duration { return sp.job.Period() }

// Running reports whether the spawner is scheduled.
func (sp *Spawner) Running() bool { return sp.job.Running() }

// spawnEnemy adds one enemy at a random column with level-derived stats.
// It is a no-op unless the game is running.
func (s *Session) spawnEnemy() {
	if !s.running() {
		return
	}
	level := s.Level()
	x := s.rng.Float64() * max(0, s.board.Width-object.EnemyWidth)
	hp := s.difficulty.EnemyHP(level)
	speed := s.difficulty.EnemySpeed(level, s.rng.Intn(2))
	s.reg.Enemies.Add(object.NewEnemy(x, config.EnemySpawnY, hp, speed))
}
