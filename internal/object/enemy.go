package object

import "github.com/tomz197/skyraid/internal/physics"

// Enemy dimensions.
const (
	EnemyWidth  = 36.0
	EnemyHeight = 36.0
)

// healthBarScale is the hit-point count that fills the health bar.
const healthBarScale = 4.0

// Tint is the display colour class derived from an enemy's hit points.
type Tint int

const (
	TintCritical Tint = iota // 1 hp left
	TintDamaged              // 2 hp
	TintHealthy              // 3 or more
)

// String returns the tint name.
func (t Tint) String() string {
	switch t {
	case TintHealthy:
		return "healthy"
	case TintDamaged:
		return "damaged"
	default:
		return "critical"
	}
}

// Enemy descends from the top of the board.
type Enemy struct {
	X, Y  float64 // Top-left corner
	W, H  float64
	Speed float64 // Downward pixels per tick
	HP    int
	MaxHP int
}

// NewEnemy creates an enemy at the given top-left corner.
func NewEnemy(x, y float64, hp int, speed float64) *Enemy {
	return &Enemy{
		X:     x,
		Y:     y,
		W:     EnemyWidth,
		H:     EnemyHeight,
		Speed: speed,
		HP:    hp,
		MaxHP: hp,
	}
}

// Advance moves the enemy one tick downward.
func (e *Enemy) Advance() {
	e.Y += e.Speed
}

// Hit subtracts damage from the enemy's hit points and reports whether it is destroyed.
// Non-positive damage is ignored so hit points never increase.
func (e *Enemy) Hit(damage int) (destroyed bool) {
	if damage > 0 {
		e.HP -= damage
	}
	return e.HP <= 0
}

// Tint maps the remaining hit points to a display colour class.
func (e *Enemy) Tint() Tint {
	switch {
	case e.HP >= 3:
		return TintHealthy
	case e.HP == 2:
		return TintDamaged
	default:
		return TintCritical
	}
}

// HealthBar returns the health bar fill in [0, 1].
func (e *Enemy) HealthBar() float64 {
	return physics.Clamp(float64(e.HP)/healthBarScale, 0, 1)
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Center returns the centre of the enemy.
func (e *Enemy) Center() (x, y float64) {
	return e.Bounds().Center()
}
