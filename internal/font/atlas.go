package font

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/quadcore/engine/internal/render"
)

const (
	atlasWidth  = 512
	glyphMargin = 1
)

// DefaultCharset covers printable ASCII and Latin-1.
var DefaultCharset = func() []rune {
	rs := make([]rune, 0, 95+96)
	for r := rune(32); r < 127; r++ {
		rs = append(rs, r)
	}
	for r := rune(160); r < 256; r++ {
		rs = append(rs, r)
	}
	return rs
}()

// LoadDefault rasterizes the bundled Go Regular font.
func LoadDefault(pixelSize float64, newTexture render.TextureFactory) (*Font, error) {
	return LoadTTF("goregular", goregular.TTF, pixelSize, DefaultCharset, newTexture)
}

// LoadTTF rasterizes charset from a TrueType/OpenType font into a single
// white-on-transparent atlas and records per-glyph metrics. Runes the font
// does not cover are left out of the table.
func LoadTTF(name string, data []byte, pixelSize float64, charset []rune, newTexture render.TextureFactory) (*Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    pixelSize,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %s: %w", name, err)
	}
	defer face.Close()

	type placement struct {
		r      rune
		rect   image.Rectangle
		origin image.Point
	}

	// Shelf packing: first pass places glyph boxes, second pass rasterizes.
	var places []placement
	x, y, rowH := glyphMargin, glyphMargin, 0
	for _, r := range charset {
		dr, _, _, _, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := dr.Dx(), dr.Dy()
		if x+w+glyphMargin > atlasWidth {
			x = glyphMargin
			y += rowH + glyphMargin
			rowH = 0
		}
		places = append(places, placement{r: r, rect: image.Rect(x, y, x+w, y+h), origin: dr.Min})
		x += w + glyphMargin
		if h > rowH {
			rowH = h
		}
	}
	atlasHeight := nextPow2(y + rowH + glyphMargin)

	img := image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasHeight))
	glyphs := make(map[rune]render.Glyph, len(places))
	for _, p := range places {
		_, mask, maskp, advance, _ := face.Glyph(fixed.Point26_6{}, p.r)
		if !p.rect.Empty() {
			draw.DrawMask(img, p.rect, image.White, image.Point{}, mask, maskp, draw.Src)
		}
		glyphs[p.r] = render.Glyph{
			Size:    mgl32.Vec2{float32(p.rect.Dx()), float32(p.rect.Dy())},
			Bearing: mgl32.Vec2{float32(p.origin.X), float32(-p.origin.Y)},
			Advance: float32(advance) / 64,
			UVMin: mgl32.Vec2{
				float32(p.rect.Min.X) / atlasWidth,
				float32(p.rect.Min.Y) / float32(atlasHeight),
			},
			UVMax: mgl32.Vec2{
				float32(p.rect.Max.X) / atlasWidth,
				float32(p.rect.Max.Y) / float32(atlasHeight),
			},
		}
	}

	atlas, err := newTexture(img)
	if err != nil {
		return nil, fmt.Errorf("upload atlas %s: %w", name, err)
	}

	m := face.Metrics()
	return New(name, Metrics{
		PixelSize:  float32(pixelSize),
		LineHeight: float32(m.Height) / 64,
		Ascent:     float32(m.Ascent) / 64,
		Descent:    float32(m.Descent) / 64,
	}, glyphs, atlas), nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
