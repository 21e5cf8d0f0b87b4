package client

import (
	"math"

	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/loop/session"
	"github.com/tomz197/skyraid/internal/object"
)

// Explosion ring radius in board pixels.
const (
	explosionMinRadius = 6.0
	explosionMaxRadius = 24.0
	explosionSegments  = 10
)

// healthBarGap is the distance between an enemy's health bar and its top edge.
const healthBarGap = 8.0

// drawBoard draws every entity of snap onto the canvas.
func drawBoard(cv *draw.Canvas, snap *session.Snapshot) {
	for _, e := range snap.Enemies {
		cv.SetColor(tintColor(e.Tint))
		cv.FillRect(e.X, e.Y, e.W, e.H)

		cv.SetColor(draw.ColorGreen)
		cv.FillRect(e.X, e.Y-healthBarGap, e.W*e.Bar, 1)
	}

	cv.SetColor(draw.ColorYellow)
	for _, b := range snap.Bullets {
		cv.FillRect(b.X, b.Y, b.W, b.H)
	}

	drawShip(cv, snap.Player)

	for _, ex := range snap.Explosions {
		drawExplosion(cv, ex)
	}
}

// drawShip draws the player as a filled triangle pointing up.
func drawShip(cv *draw.Canvas, p session.PlayerView) {
	pts := cv.BorrowPoints(3)
	pts[0] = draw.Point{X: p.X + p.W/2, Y: p.Y}
	pts[1] = draw.Point{X: p.X + p.W, Y: p.Y + p.H}
	pts[2] = draw.Point{X: p.X, Y: p.Y + p.H}
	cv.SetColor(draw.ColorCyan)
	cv.DrawPolygon(pts, true)
}

// drawExplosion draws an expanding ring that cools from yellow to red.
func drawExplosion(cv *draw.Canvas, ex session.ExplosionView) {
	r := explosionMinRadius + (explosionMaxRadius-explosionMinRadius)*ex.Progress
	pts := cv.BorrowPoints(explosionSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / explosionSegments
		pts[i] = draw.Point{X: ex.X + r*math.Cos(a), Y: ex.Y + r*math.Sin(a)}
	}

	switch {
	case ex.Progress < 0.4:
		cv.SetColor(draw.ColorYellow)
	case ex.Progress < 0.75:
		cv.SetColor(draw.ColorOrange)
	default:
		cv.SetColor(draw.ColorRed)
	}
	cv.DrawPolygon(pts, false)
}

// tintColor maps an enemy tint to a palette colour.
func tintColor(t object.Tint) draw.Color {
	switch t {
	case object.TintHealthy:
		return draw.ColorMagenta
	case object.TintDamaged:
		return draw.ColorOrange
	default:
		return draw.ColorRed
	}
}
