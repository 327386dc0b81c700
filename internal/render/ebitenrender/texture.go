package ebitenrender

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/quadcore/engine/internal/render"
)

// Texture adapts an *ebiten.Image. The image itself is the resource view,
// so wrappers of one image share a slot.
type Texture struct {
	img *ebiten.Image
}

func Wrap(img *ebiten.Image) *Texture { return &Texture{img: img} }

func (t *Texture) Width() int                { return t.img.Bounds().Dx() }
func (t *Texture) Height() int               { return t.img.Bounds().Dy() }
func (t *Texture) View() render.ResourceView { return t.img }
func (t *Texture) Image() *ebiten.Image      { return t.img }

// NewTexture uploads img. It satisfies render.TextureFactory.
func NewTexture(img image.Image) (render.Texture, error) {
	return Wrap(ebiten.NewImageFromImage(img)), nil
}

// White returns a new 1x1 opaque white texture for slot 0.
func White() render.Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return Wrap(ebiten.NewImageFromImage(img))
}

func (d *Device) NewTexture(img image.Image) (render.Texture, error) { return NewTexture(img) }
func (d *Device) White() render.Texture                              { return White() }
