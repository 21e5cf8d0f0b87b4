package session

import (
	"time"

	"github.com/tomz197/skyraid/internal/object"
)

// PlayerView is the renderable state of the ship.
type PlayerView struct {
	X, Y, W, H float64
	Lives      int
}

// Muzzle returns the centre of the ship's top edge.
func (p PlayerView) Muzzle() (x, y float64) {
	return p.X + p.W/2, p.Y
}

// BulletView is the renderable state of a bullet.
type BulletView struct {
	X, Y, W, H float64
}

// EnemyView is the renderable state of an enemy.
type EnemyView struct {
	X, Y, W, H float64
	HP, MaxHP  int
	Tint       object.Tint
	Bar        float64 // Health bar fill in [0, 1]
}

// ExplosionView is the renderable state of an explosion.
type ExplosionView struct {
	X, Y      float64
	Remaining int
	Lifetime  int
	Progress  float64 // 0 = just started, 1 = finished
}

// Snapshot is an immutable copy of a session, published after every tick.
// Renderers may keep it as long as they like.
type Snapshot struct {
	Tick          uint64
	State         GameState
	Score         int
	Level         int
	Lives         int
	SpawnInterval time.Duration
	Board         object.Board

	Player     PlayerView
	Bullets    []BulletView
	Enemies    []EnemyView
	Explosions []ExplosionView
}

// buildSnapshot copies the live entities. Only the tick goroutine (or a
// caller holding the lifecycle with actors stopped) may call it.
func (s *Session) buildSnapshot() *Snapshot {
	bullets := s.reg.Bullets.Snapshot()
	enemies := s.reg.Enemies.Snapshot()
	explosions := s.reg.Explosions.Snapshot()

	snap := &Snapshot{
		Tick:          s.ticks,
		State:         s.State(),
		Score:         s.Score(),
		Level:         s.Level(),
		Lives:         s.player.Lives,
		SpawnInterval: s.SpawnInterval(),
		Board:         s.board,
		Player: PlayerView{
			X:     s.player.X,
			Y:     s.player.Y,
			W:     s.player.W,
			H:     s.player.H,
			Lives: s.player.Lives,
		},
		Bullets:    make([]BulletView, 0, len(bullets)),
		Enemies:    make([]EnemyView, 0, len(enemies)),
		Explosions: make([]ExplosionView, 0, len(explosions)),
	}

	for _, b := range bullets {
		snap.Bullets = append(snap.Bullets, BulletView{X: b.X, Y: b.Y, W: b.W, H: b.H})
	}
	for _, e := range enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{
			X: e.X, Y: e.Y, W: e.W, H: e.H,
			HP:    e.HP,
			MaxHP: e.MaxHP,
			Tint:  e.Tint(),
			Bar:   e.HealthBar(),
		})
	}
	for _, ex := range explosions {
		snap.Explosions = append(snap.Explosions, ExplosionView{
			X: ex.X, Y: ex.Y,
			Remaining: ex.Remaining,
			Lifetime:  ex.Lifetime,
			Progress:  ex.Progress(),
		})
	}
	return snap
}

// publish stores a fresh snapshot for renderers and the shooter.
func (s *Session) publish() {
	s.snapshot.Store(s.buildSnapshot())
}

// Snapshot returns the latest published snapshot with the current game state.
// While paused or after game over no ticks run, so the state is taken live.
func (s *Session) Snapshot() *Snapshot {
	snap := *s.snapshot.Load()
	snap.State = s.State()
	return &snap
}
