package arena

// Lava is the rising boundary plane. Blocks below Height minus the prune
// margin are destroyed and players below Height die.
type Lava struct {
	Height float64
	Speed  float64
}

// Advance raises the lava by Speed*dt. The height never decreases.
func (l *Lava) Advance(dt float64) {
	if dt <= 0 || l.Speed <= 0 {
		return
	}
	l.Height += l.Speed * dt
}

// Covers reports whether a block on row y has sunk past the margin.
func (l Lava) Covers(y int, margin float64) bool {
	return float64(y) < l.Height-margin
}
