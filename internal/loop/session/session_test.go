package session

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/object"
)

// newTestSession returns a running session whose actors are not scheduled,
// so tests drive Tick, spawnEnemy and shoot by hand.
func newTestSession(t *testing.T, opts Options, mutate ...func(*config.Config)) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 1
	for _, m := range mutate {
		m(&cfg)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.reset()
	s.state.Store(int32(GameStateRunning))
	s.publish()
	t.Cleanup(s.StopGame)
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SpawnBaseInterval = -time.Second
	if _, err := New(cfg, Options{}); err == nil {
		t.Fatalf("New accepted a negative spawn interval")
	}
}

func TestStartGameIsIdempotent(t *testing.T) {
	s, err := New(config.Default(), Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	defer s.StopGame()

	if err := s.StartGame(); err != nil {
		t.Fatal(err)
	}
	s.StopGame()

	// Dirty the session, then start twice.
	s.score.Store(70)
	s.level.Store(4)
	s.player.LoseLife()
	s.reg.Enemies.Add(object.NewEnemy(0, 0, 3, 1))
	s.reg.Bullets.Add(object.NewBullet(0, 0, 10, 1))

	for i := 0; i < 2; i++ {
		if err := s.StartGame(); err != nil {
			t.Fatal(err)
		}
		if s.State() != GameStateRunning {
			t.Fatalf("start %d: state = %v", i, s.State())
		}
		if s.Score() != 0 || s.Level() != 1 {
			t.Fatalf("start %d: score=%d level=%d", i, s.Score(), s.Level())
		}
		if s.player.Lives != 3 {
			t.Fatalf("start %d: lives = %d", i, s.player.Lives)
		}
		if !s.reg.Empty() {
			t.Fatalf("start %d: registry not empty", i)
		}
		if s.SpawnInterval() != 1200*time.Millisecond {
			t.Fatalf("start %d: spawn interval = %v", i, s.SpawnInterval())
		}
		if !s.tickJob.Running() || !s.spawner.Running() || !s.shooter.Running() {
			t.Fatalf("start %d: actors not all running", i)
		}
	}
}

func TestEnemyReachesPlayer(t *testing.T) {
	s := newTestSession(t, Options{})
	if s.player.X != 220 || s.player.Y != 620 {
		t.Fatalf("player starts at (%v, %v)", s.player.X, s.player.Y)
	}
	s.reg.Enemies.Add(object.NewEnemy(0, -40, 3, 2))
	s.SetMoveLeft(true) // Slide under the enemy's column.

	for i := 0; i < 400 && s.reg.Enemies.Len() > 0; i++ {
		s.Tick()
	}

	if s.reg.Enemies.Len() != 0 {
		t.Fatalf("enemy never reached the player")
	}
	if s.player.Lives != 2 {
		t.Fatalf("lives = %d, want 2", s.player.Lives)
	}
	if s.State() != GameStateRunning {
		t.Fatalf("state = %v, want running", s.State())
	}
	explosions := s.reg.Explosions.Snapshot()
	if len(explosions) != 1 {
		t.Fatalf("explosions = %d, want 1", len(explosions))
	}
	cx, cy := s.player.Center()
	if explosions[0].X != cx || explosions[0].Y != cy {
		t.Fatalf("explosion at (%v, %v), want player centre (%v, %v)",
			explosions[0].X, explosions[0].Y, cx, cy)
	}
}

func TestEnemyBottomBoundaryIsStrict(t *testing.T) {
	s := newTestSession(t, Options{})
	e := object.NewEnemy(400, 718, 3, 2)
	s.reg.Enemies.Add(e)

	s.Tick()
	if e.Y != 720 {
		t.Fatalf("enemy Y = %v, want 720", e.Y)
	}
	if s.reg.Enemies.Len() != 1 || s.player.Lives != 3 {
		t.Fatalf("enemy touching the bottom edge counted as crossed")
	}

	s.Tick()
	if s.reg.Enemies.Len() != 0 {
		t.Fatalf("enemy past the bottom edge was not removed")
	}
	if s.player.Lives != 2 {
		t.Fatalf("lives = %d, want 2", s.player.Lives)
	}
}

func TestBulletsLeaveThroughTop(t *testing.T) {
	s := newTestSession(t, Options{})
	b := object.NewBullet(100, 0, 10, 1) // Bottom edge at 12
	s.reg.Bullets.Add(b)

	s.Tick() // Y = -10, bottom at 2
	if s.reg.Bullets.Len() != 1 {
		t.Fatalf("bullet removed while still on the board")
	}
	s.Tick() // Y = -20, bottom at -8
	if s.reg.Bullets.Len() != 0 {
		t.Fatalf("bullet past the top was not removed")
	}
}

func TestBulletHitsFirstInsertedEnemy(t *testing.T) {
	s := newTestSession(t, Options{})
	first := object.NewEnemy(100, 100, 3, 0)
	second := object.NewEnemy(110, 100, 3, 0)
	s.reg.Enemies.Add(first)
	s.reg.Enemies.Add(second)
	s.reg.Bullets.Add(object.NewBullet(120, 120, 10, 1))

	s.Tick()

	if first.HP != 2 || second.HP != 3 {
		t.Fatalf("hp after hit: first=%d second=%d, want 2 and 3", first.HP, second.HP)
	}
	if s.reg.Bullets.Len() != 0 {
		t.Fatalf("bullet not removed after hit")
	}
	ex := s.reg.Explosions.Snapshot()
	if len(ex) != 1 || ex[0].X != 118 || ex[0].Y != 118 {
		t.Fatalf("explosions = %+v, want one at enemy centre (118, 118)", ex)
	}
	if s.Score() != 0 {
		t.Fatalf("score = %d after a non-lethal hit", s.Score())
	}
}

func TestDestroyedEnemyIsNotHitAgain(t *testing.T) {
	s := newTestSession(t, Options{})
	weak := object.NewEnemy(100, 100, 1, 0)
	tough := object.NewEnemy(110, 100, 3, 0)
	s.reg.Enemies.Add(weak)
	s.reg.Enemies.Add(tough)
	s.reg.Bullets.Add(object.NewBullet(120, 120, 10, 1))
	s.reg.Bullets.Add(object.NewBullet(121, 121, 10, 1))

	s.Tick()

	if weak.HP != 0 {
		t.Fatalf("weak enemy hp = %d, want 0", weak.HP)
	}
	if tough.HP != 2 {
		t.Fatalf("second bullet should hit the surviving enemy: hp = %d", tough.HP)
	}
	enemies := s.reg.Enemies.Snapshot()
	if len(enemies) != 1 || enemies[0] != tough {
		t.Fatalf("enemies after tick = %v", enemies)
	}
	if s.reg.Bullets.Len() != 0 {
		t.Fatalf("both bullets should be spent")
	}
	if s.Score() != 10 {
		t.Fatalf("score = %d, want 10", s.Score())
	}
}

func TestMissedBulletsSurvive(t *testing.T) {
	s := newTestSession(t, Options{})
	e := object.NewEnemy(100, 100, 3, 0)
	s.reg.Enemies.Add(e)
	s.reg.Bullets.Add(object.NewBullet(300, 300, 10, 1))

	s.Tick()
	if e.HP != 3 || s.reg.Bullets.Len() != 1 {
		t.Fatalf("far bullet interacted with the enemy")
	}
}

func TestLevelUpAtScore100(t *testing.T) {
	s := newTestSession(t, Options{})

	for kill := 1; kill <= 10; kill++ {
		s.reg.Enemies.Add(object.NewEnemy(100, 100, 1, 0))
		s.reg.Bullets.Add(object.NewBullet(118, 120, 10, 1))
		s.Tick()

		if s.Score() != kill*10 {
			t.Fatalf("kill %d: score = %d", kill, s.Score())
		}
		if kill < 10 {
			if s.Level() != 1 || s.SpawnInterval() != 1200*time.Millisecond {
				t.Fatalf("score %d: level=%d interval=%v, want 1 and 1200ms",
					s.Score(), s.Level(), s.SpawnInterval())
			}
			if s.spawner.Period() == 1050*time.Millisecond {
				t.Fatalf("spawner rescheduled early at score %d", s.Score())
			}
		}
	}

	if s.Level() != 2 {
		t.Fatalf("level at score 100 = %d, want 2", s.Level())
	}
	if s.SpawnInterval() != 1050*time.Millisecond {
		t.Fatalf("interval at level 2 = %v, want 1050ms", s.SpawnInterval())
	}
	if s.spawner.Period() != 1050*time.Millisecond {
		t.Fatalf("spawner period = %v, want 1050ms", s.spawner.Period())
	}
	if snap := s.Snapshot(); snap.Level != 2 || snap.Score != 100 {
		t.Fatalf("snapshot HUD = level %d score %d", snap.Level, snap.Score)
	}
}

func TestGameOverFreezesActors(t *testing.T) {
	s := newTestSession(t, Options{}, func(c *config.Config) { c.Lives = 1 })
	s.reg.Enemies.Add(object.NewEnemy(s.player.X, s.player.Y, 3, 0))

	s.Tick()
	if s.State() != GameStateGameOver {
		t.Fatalf("state = %v, want game over", s.State())
	}
	if s.player.Lives != 0 {
		t.Fatalf("lives = %d, want 0", s.player.Lives)
	}

	before := s.Snapshot()
	s.SetFiring(true)
	s.shoot()
	s.spawnEnemy()
	s.Tick()

	if s.reg.Bullets.Len() != 0 || s.reg.Enemies.Len() != 0 {
		t.Fatalf("actors acted after game over")
	}
	if after := s.Snapshot(); after.Tick != before.Tick {
		t.Fatalf("tick ran after game over")
	}
	if s.TogglePause() != GameStateGameOver {
		t.Fatalf("pause toggled during game over")
	}

	started, err := s.Restart()
	if err != nil || !started {
		t.Fatalf("Restart = %v, %v", started, err)
	}
	if s.State() != GameStateRunning || s.player.Lives != 1 || s.Score() != 0 {
		t.Fatalf("after restart: state=%v lives=%d score=%d", s.State(), s.player.Lives, s.Score())
	}
}

func TestLastLifeSkipsRemainingHits(t *testing.T) {
	s := newTestSession(t, Options{}, func(c *config.Config) { c.Lives = 1 })
	s.reg.Enemies.Add(object.NewEnemy(400, 720, 3, 2)) // Escapes this tick
	target := object.NewEnemy(100, 100, 1, 0)
	s.reg.Enemies.Add(target)
	s.reg.Bullets.Add(object.NewBullet(118, 120, 10, 1))

	s.Tick()
	if s.State() != GameStateGameOver {
		t.Fatalf("state = %v, want game over", s.State())
	}
	if target.HP != 1 || s.Score() != 0 {
		t.Fatalf("hits resolved after the last life was lost")
	}
	if s.player.Lives != 0 {
		t.Fatalf("lives = %d", s.player.Lives)
	}
}

func TestRestartIgnoredUnlessGameOver(t *testing.T) {
	s := newTestSession(t, Options{})
	s.score.Store(40)
	started, err := s.Restart()
	if err != nil || started {
		t.Fatalf("Restart while running = %v, %v", started, err)
	}
	if s.Score() != 40 {
		t.Fatalf("Restart while running reset the score")
	}
}

func TestPauseMakesActorsNoOps(t *testing.T) {
	now := time.Unix(100, 0)
	s := newTestSession(t, Options{Now: func() time.Time { return now }})
	e := object.NewEnemy(100, 100, 3, 2)
	s.reg.Enemies.Add(e)

	if got := s.TogglePause(); got != GameStatePaused {
		t.Fatalf("TogglePause = %v, want paused", got)
	}
	if s.Snapshot().State != GameStatePaused {
		t.Fatalf("snapshot state does not show pause")
	}
	s.SetFiring(true)
	s.Tick()
	s.spawnEnemy()
	s.shoot()
	if e.Y != 100 || s.reg.Enemies.Len() != 1 || s.reg.Bullets.Len() != 0 {
		t.Fatalf("actors acted while paused")
	}

	if got := s.TogglePause(); got != GameStateRunning {
		t.Fatalf("TogglePause = %v, want running", got)
	}
	s.Tick()
	if e.Y != 102 {
		t.Fatalf("enemy Y after resume = %v, want 102", e.Y)
	}
}

func TestStoppedSessionIgnoresPause(t *testing.T) {
	s, err := New(config.Default(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s.TogglePause() != GameStateStopped {
		t.Fatalf("pause toggled on a stopped session")
	}
}

func TestShooterCooldownAndMuzzle(t *testing.T) {
	now := time.Unix(100, 0)
	s := newTestSession(t, Options{Now: func() time.Time { return now }})

	s.shoot()
	if s.reg.Bullets.Len() != 0 {
		t.Fatalf("fired without the fire intent")
	}

	s.SetFiring(true)
	s.shoot()
	bullets := s.reg.Bullets.Snapshot()
	if len(bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(bullets))
	}
	if bullets[0].X != 237 || bullets[0].Y != 620 {
		t.Fatalf("bullet at (%v, %v), want (237, 620)", bullets[0].X, bullets[0].Y)
	}

	s.shoot()
	now = now.Add(100 * time.Millisecond)
	s.shoot()
	if s.reg.Bullets.Len() != 1 {
		t.Fatalf("cooldown ignored: bullets = %d", s.reg.Bullets.Len())
	}

	now = now.Add(150 * time.Millisecond)
	s.shoot()
	if s.reg.Bullets.Len() != 2 {
		t.Fatalf("shot after cooldown refused: bullets = %d", s.reg.Bullets.Len())
	}

	s.SetFiring(false)
	now = now.Add(time.Second)
	s.shoot()
	if s.reg.Bullets.Len() != 2 {
		t.Fatalf("fired after releasing fire")
	}
}

func TestShooterFollowsPublishedPosition(t *testing.T) {
	now := time.Unix(100, 0)
	s := newTestSession(t, Options{Now: func() time.Time { return now }})
	s.SetMoveRight(true)
	s.Tick()
	s.SetMoveRight(false)

	s.SetFiring(true)
	s.shoot()
	b := s.reg.Bullets.Snapshot()[0]
	if b.X != 243 {
		t.Fatalf("bullet X = %v, want 243 after one step right", b.X)
	}
}

func TestSpawnEnemyStats(t *testing.T) {
	s := newTestSession(t, Options{})
	tests := []struct {
		level    int
		hp       int
		minSpeed float64
		maxSpeed float64
	}{
		{level: 1, hp: 3, minSpeed: 1, maxSpeed: 2},
		{level: 3, hp: 4, minSpeed: 2, maxSpeed: 3},
		{level: 12, hp: 6, minSpeed: 6, maxSpeed: 6},
	}
	for _, tt := range tests {
		s.reg.Clear()
		s.level.Store(int64(tt.level))
		for i := 0; i < 50; i++ {
			s.spawnEnemy()
		}
		for _, e := range s.reg.Enemies.Snapshot() {
			if e.X < 0 || e.X > 480-object.EnemyWidth {
				t.Fatalf("level %d: x = %v out of range", tt.level, e.X)
			}
			if e.Y != config.EnemySpawnY {
				t.Fatalf("level %d: y = %v", tt.level, e.Y)
			}
			if e.HP != tt.hp {
				t.Fatalf("level %d: hp = %d, want %d", tt.level, e.HP, tt.hp)
			}
			if e.Speed < tt.minSpeed || e.Speed > tt.maxSpeed {
				t.Fatalf("level %d: speed = %v, want [%v, %v]", tt.level, e.Speed, tt.minSpeed, tt.maxSpeed)
			}
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestSession(t, Options{})
	e := object.NewEnemy(100, 100, 3, 1)
	s.reg.Enemies.Add(e)
	s.Tick()

	snap := s.Snapshot()
	if len(snap.Enemies) != 1 || snap.Enemies[0].Y != 101 {
		t.Fatalf("snapshot enemies = %+v", snap.Enemies)
	}
	if snap.Enemies[0].Tint != object.TintHealthy || snap.Enemies[0].Bar != 0.75 {
		t.Fatalf("snapshot enemy visuals = %+v", snap.Enemies[0])
	}
	s.Tick()
	if snap.Enemies[0].Y != 101 {
		t.Fatalf("snapshot changed after a later tick")
	}
}

// TestRunningSessionUnderLoad runs all three actors at high rates while the
// fire input is held and checks that no firing panics.
func TestRunningSessionUnderLoad(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.Lives = 1000
	cfg.TickInterval = 2 * time.Millisecond
	cfg.SpawnInitialDelay = 0
	cfg.SpawnBaseInterval = 3 * time.Millisecond
	cfg.SpawnDecrement = time.Millisecond
	cfg.SpawnFloor = time.Millisecond
	cfg.ShooterPoll = time.Millisecond
	cfg.FireCooldown = time.Millisecond

	s, err := New(cfg, Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.StartGame(); err != nil {
		t.Fatal(err)
	}
	s.SetFiring(true)
	for i := 0; i < 30; i++ {
		s.SetMoveLeft(i%2 == 0)
		s.SetMoveRight(i%2 == 1)
		if i == 15 {
			s.TogglePause()
			s.TogglePause()
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.StopGame()

	if s.State() != GameStateStopped {
		t.Fatalf("state = %v, want stopped", s.State())
	}
	for _, job := range []interface{ Panics() uint64 }{s.tickJob, s.spawner.job, s.shooter.job} {
		if job.Panics() != 0 {
			t.Fatalf("a scheduled job panicked")
		}
	}
	if s.tickJob.Fired() == 0 || s.spawner.job.Fired() == 0 {
		t.Fatalf("actors never fired")
	}
}
