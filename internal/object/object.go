// Package object defines the entities of a game session: the player ship,
// bullets, enemies and explosions. Entities are plain records; the session
// decides when they move, collide and disappear.
package object

import "github.com/tomz197/skyraid/internal/physics"

// Board is the playfield. The origin is the top-left corner; Y grows downward.
type Board struct {
	Width  float64
	Height float64
}

// PastTop reports whether r has left the board through the top edge.
// A box is past the top once its bottom edge is strictly above y = 0.
func (b Board) PastTop(r physics.Rect) bool {
	return r.Bottom() < 0
}

// PastBottom reports whether r has crossed the bottom edge. Crossing is
// strict: a box whose top edge lies exactly on y = Height is still on the board.
func (b Board) PastBottom(r physics.Rect) bool {
	return r.Y > b.Height
}

// MaxExtent returns the largest width or height of any entity kind.
// Broad-phase grids must use cells at least this large.
func MaxExtent() float64 {
	return max(PlayerWidth, PlayerHeight, EnemyWidth, EnemyHeight, BulletWidth, BulletHeight)
}
