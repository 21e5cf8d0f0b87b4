package object

import (
	"sync/atomic"
	"time"

	"github.com/tomz197/skyraid/internal/physics"
)

// Player ship dimensions.
const (
	PlayerWidth  = 40.0
	PlayerHeight = 40.0
)

// Player is the ship at the bottom of the board.
//
// Position and lives belong to the simulation tick. The intent flags and the
// last-shot timestamp are atomics so input handlers and the shooter can touch
// them from their own goroutines.
type Player struct {
	X, Y  float64 // Top-left corner
	W, H  float64
	Speed float64 // Horizontal pixels per tick
	Lives int

	moveLeft  atomic.Bool
	moveRight atomic.Bool
	firing    atomic.Bool
	lastShot  atomic.Int64 // Unix nanos; 0 = never fired
}

// NewPlayer creates a ship at the given top-left corner.
func NewPlayer(x, y, speed float64, lives int) *Player {
	return &Player{
		X:     x,
		Y:     y,
		W:     PlayerWidth,
		H:     PlayerHeight,
		Speed: speed,
		Lives: lives,
	}
}

// SetMoveLeft sets the move-left intent.
func (p *Player) SetMoveLeft(on bool) { p.moveLeft.Store(on) }

// SetMoveRight sets the move-right intent.
func (p *Player) SetMoveRight(on bool) { p.moveRight.Store(on) }

// SetFiring sets the fire intent.
func (p *Player) SetFiring(on bool) { p.firing.Store(on) }

// Firing reports whether the fire input is held.
func (p *Player) Firing() bool { return p.firing.Load() }

// ApplyMovement moves the ship by its intents and clamps it to [0, boardWidth-W].
// Holding both directions cancels out.
func (p *Player) ApplyMovement(boardWidth float64) {
	if p.moveLeft.Load() {
		p.X -= p.Speed
	}
	if p.moveRight.Load() {
		p.X += p.Speed
	}
	p.X = physics.Clamp(p.X, 0, max(0, boardWidth-p.W))
}

// Reset restores the starting position and lives and clears every intent.
func (p *Player) Reset(x, y float64, lives int) {
	p.X = x
	p.Y = y
	p.Lives = lives
	p.moveLeft.Store(false)
	p.moveRight.Store(false)
	p.firing.Store(false)
	p.lastShot.Store(0)
}

// LoseLife removes one life and returns what is left. Lives never go below zero.
func (p *Player) LoseLife() int {
	if p.Lives > 0 {
		p.Lives--
	}
	return p.Lives
}

// TryFire reports whether a shot is allowed at now given the cooldown and,
// if so, records now as the last shot.
func (p *Player) TryFire(now time.Time, cooldown time.Duration) bool {
	last := p.lastShot.Load()
	if last != 0 && now.UnixNano()-last < int64(cooldown) {
		return false
	}
	return p.lastShot.CompareAndSwap(last, now.UnixNano())
}

// Bounds returns the ship's bounding box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Muzzle returns where bullets leave the ship: the centre of its top edge.
func (p *Player) Muzzle() (x, y float64) {
	return p.X + p.W/2, p.Y
}

// Center returns the centre of the ship.
func (p *Player) Center() (x, y float64) {
	return p.Bounds().Center()
}
