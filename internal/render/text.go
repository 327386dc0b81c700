package render

import "github.com/go-gl/mathgl/mgl32"

// Glyph holds the cached metrics of one character in font pixel units,
// with y growing upward from the baseline. UVMin/UVMax locate the glyph in
// the atlas in normalized image coordinates.
type Glyph struct {
	Size    mgl32.Vec2
	Bearing mgl32.Vec2
	Advance float32
	UVMin   mgl32.Vec2
	UVMax   mgl32.Vec2
}

// Empty reports whether the glyph has no visible area (e.g. space).
func (g Glyph) Empty() bool {
	return g.Size.X() <= 0 || g.Size.Y() <= 0
}

// GlyphSource is what DrawString needs from a loaded font.
type GlyphSource interface {
	Glyph(r rune) (Glyph, bool)
	Atlas() Texture
	LineHeight() float32
}

// DrawString lays out text starting with its first baseline at pos and
// submits one quad per visible glyph. Characters missing from the font are
// skipped; empty glyphs only advance the pen. '\n' starts a new line.
func (r *BatchRenderer) DrawString(text string, font GlyphSource, pos mgl32.Vec3, scale float32, color mgl32.Vec4) {
	if font == nil || text == "" {
		return
	}
	atlas := font.Atlas()
	x, y := pos.X(), pos.Y()

	for _, ch := range text {
		if ch == '\n' {
			x = pos.X()
			y -= font.LineHeight() * scale
			continue
		}
		g, ok := font.Glyph(ch)
		if !ok {
			continue
		}
		if !g.Empty() {
			xpos := x + g.Bearing.X()*scale
			ypos := y - (g.Size.Y()-g.Bearing.Y())*scale
			m := mgl32.Translate3D(xpos, ypos, pos.Z()).
				Mul4(mgl32.Scale3D(g.Size.X()*scale, g.Size.Y()*scale, 1))
			uvs := UVRect(g.UVMin, g.UVMax)
			r.submit(m, mgl32.Vec2{}, color, atlas, 1, &uvs, 1)
		}
		x += g.Advance * scale
	}
}
