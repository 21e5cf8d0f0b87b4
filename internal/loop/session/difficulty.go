package session

import (
	"time"

	"github.com/tomz197/skyraid/internal/loop/config"
)

// Difficulty derives level, spawn interval and enemy stats from the score.
// All methods are pure.
type Difficulty struct {
	scorePerLevel int
	base          time.Duration
	decrement     time.Duration
	floor         time.Duration
}

// NewDifficulty creates a controller from the session config.
func NewDifficulty(cfg config.Config) Difficulty {
	return Difficulty{
		scorePerLevel: cfg.ScorePerLevel,
		base:          cfg.SpawnBaseInterval,
		decrement:     cfg.SpawnDecrement,
		floor:         cfg.SpawnFloor,
	}
}

// Level returns 1 + score/scorePerLevel.
func (d Difficulty) Level(score int) int {
	if score < 0 {
		score = 0
	}
	return 1 + score/d.scorePerLevel
}

// SpawnInterval returns max(floor, base - decrement*(level-1)).
func (d Difficulty) SpawnInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	steps := time.Duration(level - 1)
	// Past this many steps the floor is reached anyway; avoids overflow.
	if d.decrement > 0 && steps > (d.base-d.floor)/d.decrement+1 {
		return d.floor
	}
	return max(d.floor, d.base-d.decrement*steps)
}

// EnemyHP returns the hit points of enemies spawned at level.
func (d Difficulty) EnemyHP(level int) int {
	return min(config.EnemyBaseHP+level/2, config.EnemyMaxHP)
}

// EnemySpeed returns the speed of enemies spawned at level. jitter is the
// random 0 or 1 added per enemy.
func (d Difficulty) EnemySpeed(level, jitter int) float64 {
	return min(config.EnemyBaseSpeed+float64(level/2)+float64(jitter), config.EnemyMaxSpeed)
}

// OnKill recomputes the level for the new score. leveledUp is true only when
// the level rose above current, in which case interval is the new spawn interval.
func (d Difficulty) OnKill(score, current int) (level int, interval time.Duration, leveledUp bool) {
	level = d.Level(score)
	if level <= current {
		return current, d.SpawnInterval(current), false
	}
	return level, d.SpawnInterval(level), true
}
