package object

import "github.com/tomz197/skyraid/internal/physics"

// Bullet dimensions.
const (
	BulletWidth  = 6.0
	BulletHeight = 12.0
)

// Bullet is a shot fired upward by the player.
type Bullet struct {
	X, Y   float64 // Top-left corner
	W, H   float64
	Speed  float64 // Upward pixels per tick
	Damage int
}

// NewBullet creates a bullet horizontally centred on centerX with its top at top.
func NewBullet(centerX, top, speed float64, damage int) *Bullet {
	return &Bullet{
		X:      centerX - BulletWidth/2,
		Y:      top,
		W:      BulletWidth,
		H:      BulletHeight,
		Speed:  speed,
		Damage: damage,
	}
}

// Advance moves the bullet one tick upward.
func (b *Bullet) Advance() {
	b.Y -= b.Speed
}

// Bounds returns the bullet's bounding box.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}
