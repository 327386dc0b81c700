package component

// Animation steps through equal-width cells of a horizontal sprite strip.
// SpriteWidth is the cell width in pixels; 0 means the whole texture is one
// frame and nothing animates. Elapsed carries leftover time between updates.
type Animation struct {
	Enabled     bool
	Frame       int
	SpriteWidth int
	FrameRate   float32
	Elapsed     float32
}

// Active reports whether the animation should advance and be drawn per frame.
func (a *Animation) Active() bool {
	return a.Enabled && a.SpriteWidth > 0
}

// FrameCount returns how many cells fit across a texture textureWidth
// pixels wide, at least 1.
func (a *Animation) FrameCount(textureWidth int) int {
	if a.SpriteWidth <= 0 {
		return 1
	}
	n := textureWidth / a.SpriteWidth
	if n < 1 {
		return 1
	}
	return n
}
