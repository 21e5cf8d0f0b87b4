package session

import "github.com/tomz197/skyraid/internal/object"

// Tick advances the simulation by one step. It does nothing unless the game
// is running. The steps run in a fixed order so an entity removed by one step
// is never seen by a later one:
//
//  1. move the player
//  2. move bullets, drop those past the top
//  3. move enemies, drop those past the bottom (one life each)
//  4. bullet-enemy hits
//  5. enemy-player hits
//  6. count down explosions
//  7. publish a snapshot
//
// If the last life is lost in steps 3-5 the remaining hit steps are skipped.
func (s *Session) Tick() {
	if !s.running() {
		return
	}

	s.player.ApplyMovement(s.board.Width)
	s.advanceBullets()

	if !s.advanceEnemies() {
		s.resolveBulletHits()
		s.resolvePlayerHits()
	}

	s.advanceExplosions()
	s.ticks++
	s.publish()
}

// advanceBullets moves every bullet up and removes the ones past the top edge.
func (s *Session) advanceBullets() {
	for _, b := range s.reg.Bullets.Snapshot() {
		b.Advance()
		if s.board.PastTop(b.Bounds()) {
			s.reg.Bullets.Remove(b)
		}
	}
}

// advanceEnemies moves every enemy down. Each enemy past the bottom edge is
// removed and costs a life. Returns true if that ended the game.
func (s *Session) advanceEnemies() bool {
	for _, e := range s.reg.Enemies.Snapshot() {
		e.Advance()
		if !s.board.PastBottom(e.Bounds()) {
			continue
		}
		s.reg.Enemies.Remove(e)
		if s.loseLife("enemy escaped") {
			return true
		}
	}
	return false
}

// advanceExplosions counts every explosion down and removes finished ones.
func (s *Session) advanceExplosions() {
	for _, ex := range s.reg.Explosions.Snapshot() {
		ex.Advance()
		if !ex.Active {
			s.reg.Explosions.Remove(ex)
		}
	}
}

// explode adds an explosion centred on (x, y).
func (s *Session) explode(x, y float64) {
	s.reg.Explosions.Add(object.NewExplosion(x, y, s.cfg.ExplosionTicks))
}

// loseLife takes one life from the player and ends the game when none are
// left. Returns true if the game is over.
func (s *Session) loseLife(cause string) bool {
	lives := s.player.LoseLife()
	s.logger.Debug("life lost", "cause", cause, "lives", lives)
	if lives > 0 {
		return false
	}
	s.state.Store(int32(GameStateGameOver))
	s.logger.Info("game over", "score", s.Score(), "level", s.Level())
	return true
}

// addKill scores a destroyed enemy and applies a level-up if one is due.
func (s *Session) addKill() {
	score := s.score.Add(int64(s.cfg.ScorePerKill))
	level, interval, up := s.difficulty.OnKill(int(score), s.Level())
	if !up {
		return
	}
	s.level.Store(int64(level))
	s.spawnInterval.Store(int64(interval))
	if err := s.spawner.Reschedule(interval); err != nil {
		s.logger.Error("reschedule spawner", "err", err)
	}
	s.logger.Info("level up", "level", level, "score", score, "interval", interval)
}
