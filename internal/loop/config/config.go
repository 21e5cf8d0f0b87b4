// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	envconfig "github.com/tomz197/skyraid/internal/config"
)

// Board dimensions in logical pixels.
const (
	BoardWidth  = 480
	BoardHeight = 720
)

// Player
const (
	InitialLives   = 3
	PlayerSpeed    = 6.0 // Pixels per tick
	PlayerOffsetY  = 100 // Start distance from the bottom edge
	FireCooldown   = 250 * time.Millisecond
	ShooterPeriod  = 100 * time.Millisecond
	BulletSpeed    = 10.0 // Pixels per tick, upward
	BulletDamage   = 1
	ExplosionTicks = 12
)

// Scoring
const (
	ScorePerKill  = 10
	ScorePerLevel = 100
)

// Spawning
const (
	SpawnInitialDelay  = 500 * time.Millisecond
	SpawnBaseInterval  = 1200 * time.Millisecond
	SpawnDecrement     = 150 * time.Millisecond
	SpawnFloorInterval = 300 * time.Millisecond
	EnemySpawnY        = -40.0
	EnemyBaseHP        = 3
	EnemyMaxHP         = 6
	EnemyBaseSpeed     = 1.0
	EnemyMaxSpeed      = 6.0
)

// Simulation tick rate
const (
	TickRate     = 60
	TickInterval = 16 * time.Millisecond
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 90 // Columns
	MaxTermHeight         = 60 // Rows
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// ErrInvalid is wrapped by every validation failure returned from Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds the per-session tunables. The zero value is not usable;
// start from Default or FromEnv.
type Config struct {
	Width  float64
	Height float64

	Lives        int
	PlayerSpeed  float64
	FireCooldown time.Duration
	ShooterPoll  time.Duration

	BulletSpeed  float64
	BulletDamage int

	ExplosionTicks int

	ScorePerKill  int
	ScorePerLevel int

	SpawnInitialDelay time.Duration
	SpawnBaseInterval time.Duration
	SpawnDecrement    time.Duration
	SpawnFloor        time.Duration

	TickInterval time.Duration

	// Seed for the spawn RNG. Zero picks a time-based seed.
	Seed int64
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Width:             BoardWidth,
		Height:            BoardHeight,
		Lives:             InitialLives,
		PlayerSpeed:       PlayerSpeed,
		FireCooldown:      FireCooldown,
		ShooterPoll:       ShooterPeriod,
		BulletSpeed:       BulletSpeed,
		BulletDamage:      BulletDamage,
		ExplosionTicks:    ExplosionTicks,
		ScorePerKill:      ScorePerKill,
		ScorePerLevel:     ScorePerLevel,
		SpawnInitialDelay: SpawnInitialDelay,
		SpawnBaseInterval: SpawnBaseInterval,
		SpawnDecrement:    SpawnDecrement,
		SpawnFloor:        SpawnFloorInterval,
		TickInterval:      TickInterval,
	}
}

// FromEnv returns Default overridden by SKYRAID_* environment variables and
// validates the result.
func FromEnv() (Config, error) {
	cfg := Default()

	var errs []error
	intVar := func(key string, dst *int) {
		v, err := envconfig.GetEnvInt(key, *dst)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = v
	}
	durVar := func(key string, dst *time.Duration) {
		v, err := envconfig.GetEnvDuration(key, *dst)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = v
	}

	intVar("SKYRAID_LIVES", &cfg.Lives)
	intVar("SKYRAID_BULLET_DAMAGE", &cfg.BulletDamage)
	intVar("SKYRAID_EXPLOSION_TICKS", &cfg.ExplosionTicks)
	durVar("SKYRAID_FIRE_COOLDOWN", &cfg.FireCooldown)
	durVar("SKYRAID_SHOOTER_POLL", &cfg.ShooterPoll)
	durVar("SKYRAID_SPAWN_DELAY", &cfg.SpawnInitialDelay)
	durVar("SKYRAID_SPAWN_INTERVAL", &cfg.SpawnBaseInterval)
	durVar("SKYRAID_SPAWN_DECREMENT", &cfg.SpawnDecrement)
	durVar("SKYRAID_SPAWN_FLOOR", &cfg.SpawnFloor)
	durVar("SKYRAID_TICK", &cfg.TickInterval)

	seed, err := envconfig.GetEnvInt("SKYRAID_SEED", 0)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Seed = int64(seed)

	if len(errs) > 0 {
		return cfg, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return cfg, cfg.Validate()
}

// Validate reports every out-of-range field. The returned error wraps
// ErrInvalid once per violation.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Width > 0, "board width must be positive, got %v", c.Width)
	check(c.Height > 0, "board height must be positive, got %v", c.Height)
	check(c.Lives > 0, "lives must be positive, got %d", c.Lives)
	check(c.PlayerSpeed > 0, "player speed must be positive, got %v", c.PlayerSpeed)
	check(c.BulletSpeed > 0, "bullet speed must be positive, got %v", c.BulletSpeed)
	check(c.BulletDamage > 0, "bullet damage must be positive, got %d", c.BulletDamage)
	check(c.ExplosionTicks > 0, "explosion lifetime must be positive, got %d", c.ExplosionTicks)
	check(c.ScorePerKill > 0, "score per kill must be positive, got %d", c.ScorePerKill)
	check(c.ScorePerLevel > 0, "score per level must be positive, got %d", c.ScorePerLevel)
	check(c.TickInterval > 0, "tick interval must be positive, got %v", c.TickInterval)
	check(c.FireCooldown > 0, "fire cooldown must be positive, got %v", c.FireCooldown)
	check(c.ShooterPoll > 0, "shooter poll period must be positive, got %v", c.ShooterPoll)
	check(c.ShooterPoll <= c.FireCooldown,
		"shooter poll period %v exceeds fire cooldown %v", c.ShooterPoll, c.FireCooldown)
	check(c.SpawnInitialDelay >= 0, "spawn delay must not be negative, got %v", c.SpawnInitialDelay)
	check(c.SpawnBaseInterval > 0, "spawn interval must be positive, got %v", c.SpawnBaseInterval)
	check(c.SpawnDecrement >= 0, "spawn decrement must not be negative, got %v", c.SpawnDecrement)
	check(c.SpawnFloor > 0, "spawn floor must be positive, got %v", c.SpawnFloor)
	check(c.SpawnFloor <= c.SpawnBaseInterval,
		"spawn floor %v exceeds base interval %v", c.SpawnFloor, c.SpawnBaseInterval)

	return errors.Join(errs...)
}

// PlayerStart returns the player's starting top-left corner for the board.
func (c Config) PlayerStart(playerW float64) (x, y float64) {
	return c.Width/2 - playerW/2, c.Height - PlayerOffsetY
}
