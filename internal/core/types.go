package core

// Size describes the dimensions of a raster or view window.
type Size struct {
	W int
	H int
}

// Area returns W*H, or 0 for degenerate sizes.
func (s Size) Area() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}
