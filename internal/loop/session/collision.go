package session

import "github.com/tomz197/skyraid/internal/object"

// resolveBulletHits lets each bullet hit at most one enemy: the earliest
// inserted enemy whose box intersects the bullet's. The hit removes the
// bullet, subtracts its damage and leaves an explosion at the enemy centre.
// An enemy at zero hit points is removed and scored.
func (s *Session) resolveBulletHits() {
	bullets := s.reg.Bullets.Snapshot()
	enemies := s.reg.Enemies.Snapshot()
	if len(bullets) == 0 || len(enemies) == 0 {
		return
	}

	// Broad phase keyed by index into this tick's enemy snapshot.
	s.grid.Clear()
	for i, e := range enemies {
		s.grid.Insert(e.X, e.Y, i)
	}
	if cap(s.hitBuf) < len(enemies) {
		s.hitBuf = make([]bool, len(enemies))
	}
	destroyed := s.hitBuf[:len(enemies)]
	clear(destroyed)

	for _, b := range bullets {
		bb := b.Bounds()
		idx := s.grid.FirstAround(bb.X, bb.Y, func(i int) bool {
			return !destroyed[i] && bb.Intersects(enemies[i].Bounds())
		})
		if idx < 0 {
			continue
		}

		e := enemies[idx]
		s.reg.Bullets.Remove(b)
		s.explode(e.Center())
		if e.Hit(b.Damage) {
			destroyed[idx] = true
			s.reg.Enemies.Remove(e)
			s.addKill()
		}
	}
}

// resolvePlayerHits removes every enemy touching the player; each costs a
// life and leaves an explosion at the player centre. Returns true if the
// game ended.
func (s *Session) resolvePlayerHits() bool {
	pb := s.player.Bounds()
	over := false
	s.reg.Enemies.Each(func(e *object.Enemy) bool {
		if !pb.Intersects(e.Bounds()) {
			return true
		}
		s.reg.Enemies.Remove(e)
		s.explode(s.player.Center())
		over = s.loseLife("enemy collision")
		return !over
	})
	return over
}
