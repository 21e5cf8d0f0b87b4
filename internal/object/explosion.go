package object

// Explosion is a short-lived effect counted down in ticks.
type Explosion struct {
	X, Y      float64 // Centre
	Remaining int     // Ticks left
	Lifetime  int     // Initial tick count
	Active    bool
}

// NewExplosion creates an explosion centred on (x, y) lasting lifetime ticks.
func NewExplosion(x, y float64, lifetime int) *Explosion {
	return &Explosion{
		X:         x,
		Y:         y,
		Remaining: lifetime,
		Lifetime:  lifetime,
		Active:    lifetime > 0,
	}
}

// Advance counts down one tick and deactivates the explosion when it runs out.
func (e *Explosion) Advance() {
	if e.Remaining > 0 {
		e.Remaining--
	}
	if e.Remaining <= 0 {
		e.Active = false
	}
}

// Progress returns how far the explosion has played, from 0 (new) to 1 (done).
func (e *Explosion) Progress() float64 {
	if e.Lifetime <= 0 {
		return 1
	}
	return 1 - float64(e.Remaining)/float64(e.Lifetime)
}
