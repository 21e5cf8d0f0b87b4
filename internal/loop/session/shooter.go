package session

import (
	"time"

	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/schedule"
)

// Shooter polls the fire intent on its own schedule and fires bullets while
// it is held. The fire cooldown is the only rate limit.
type Shooter struct {
	job *schedule.Periodic
}

// Start begins polling every period.
func (sh *Shooter) Start(period time.Duration) error {
	return sh.job.Start(period, period)
}

// Stop cancels polling.
func (sh *Shooter) Stop() { sh.job.Stop() }

// Running reports whether the shooter is scheduled.
func (sh *Shooter) Running() bool { return sh.job.Running() }

// shoot fires one bullet from the top centre of the ship if the game is
// running, fire is held and the cooldown has passed. The ship position comes
// from the latest snapshot, at most one tick old.
func (s *Session) shoot() {
	if !s.running() || !s.player.Firing() {
		return
	}
	if !s.player.TryFire(s.now(), s.cfg.FireCooldown) {
		return
	}
	x, y := s.snapshot.Load().Player.Muzzle()
	s.reg.Bullets.Add(object.NewBullet(x, y, s.cfg.BulletSpeed, s.cfg.BulletDamage))
}
