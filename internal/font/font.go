// Package font provides glyph metrics and text measurement for the batch
// renderer and UI layout. A Font owns a glyph table and borrows its atlas
// texture; nothing here frees GPU memory.
package font

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/width"

	"github.com/quadcore/engine/internal/render"
)

// Font is a loaded font: per-rune metrics plus the atlas they point into.
type Font struct {
	name       string
	pixelSize  float32
	lineHeight float32
	ascent     float32
	descent    float32
	glyphs     map[rune]render.Glyph
	atlas      render.Texture
}

// Metrics are the vertical font-wide metrics in pixels.
type Metrics struct {
	PixelSize  float32
	LineHeight float32
	Ascent     float32
	Descent    float32
}

// New builds a Font from an existing glyph table.
func New(name string, m Metrics, glyphs map[rune]render.Glyph, atlas render.Texture) *Font {
	return &Font{
		name:       name,
		pixelSize:  m.PixelSize,
		lineHeight: m.LineHeight,
		ascent:     m.Ascent,
		descent:    m.Descent,
		glyphs:     glyphs,
		atlas:      atlas,
	}
}

func (f *Font) Name() string          { return f.name }
func (f *Font) PixelSize() float32    { return f.pixelSize }
func (f *Font) LineHeight() float32   { return f.lineHeight }
func (f *Font) Atlas() render.Texture { return f.atlas }
func (f *Font) GlyphCount() int       { return len(f.glyphs) }
func (f *Font) Metrics() Metrics {
	return Metrics{PixelSize: f.pixelSize, LineHeight: f.lineHeight, Ascent: f.ascent, Descent: f.descent}
}

// Glyph returns the metrics for r. Full-width forms fall back to their
// narrow equivalent when only that is in the table.
func (f *Font) Glyph(r rune) (render.Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	if n := width.LookupRune(r).Narrow(); n != 0 && n != r {
		g, ok := f.glyphs[n]
		return g, ok
	}
	return render.Glyph{}, false
}

type lineMetrics struct {
	width, above, below float32
	visible             bool
}

func (f *Font) measureLine(line string, scale float32) lineMetrics {
	var lm lineMetrics
	for _, ch := range line {
		g, ok := f.Glyph(ch)
		if !ok {
			continue
		}
		lm.width += g.Advance * scale
		if g.Empty() {
			continue
		}
		above := g.Bearing.Y() * scale
		below := (g.Size.Y() - g.Bearing.Y()) * scale
		if !lm.visible || above > lm.above {
			lm.above = above
		}
		if !lm.visible || below > lm.below {
			lm.below = below
		}
		lm.visible = true
	}
	if !lm.visible {
		lm.above = f.ascent * scale
		lm.below = f.descent * scale
	}
	return lm
}

// Wrap splits text into lines on '\n' and, when maxWidth > 0, greedily at
// spaces so no line exceeds maxWidth unless a single word does.
func (f *Font) Wrap(text string, scale, maxWidth float32) []string {
	paragraphs := strings.Split(text, "\n")
	if maxWidth <= 0 {
		return paragraphs
	}
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		words := strings.Split(p, " ")
		line := ""
		for _, w := range words {
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if line != "" && f.measureLine(candidate, scale).width > maxWidth {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// CalculateSize returns the width and total height of text at scale.
func (f *Font) CalculateSize(text string, scale float32) mgl32.Vec2 {
	s := f.CalculateSizeWithBaseline(text, scale)
	return mgl32.Vec2{s.X(), s.Y()}
}

// CalculateSizeWithBaseline measures text at scale. X is the widest line,
// Y the total height from the top of the first line to the lowest
// descender of the last, and Z the distance from the top down to the
// first baseline.
func (f *Font) CalculateSizeWithBaseline(text string, scale float32) mgl32.Vec3 {
	return f.CalculateWrappedSize(text, scale, 0)
}

// CalculateWrappedSize is CalculateSizeWithBaseline with word wrapping at maxWidth.
func (f *Font) CalculateWrappedSize(text string, scale, maxWidth float32) mgl32.Vec3 {
	if text == "" {
		return mgl32.Vec3{}
	}
	lines := f.Wrap(text, scale, maxWidth)
	var maxW float32
	var first, last lineMetrics
	for i, line := range lines {
		lm := f.measureLine(line, scale)
		if lm.width > maxW {
			maxW = lm.width
		}
		if i == 0 {
			first = lm
		}
		last = lm
	}
	baseline := first.above
	height := baseline + float32(len(lines)-1)*f.lineHeight*scale + last.below
	return mgl32.Vec3{maxW, height, baseline}
}
