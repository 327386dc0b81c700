package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quadcore/engine/internal/render"
)

// Sprite makes an entity drawable. Texture is borrowed: the sprite never
// owns or frees it, and a nil Texture draws a solid Color quad.
type Sprite struct {
	Color   mgl32.Vec4
	Texture render.Texture
	Tiling  float32
	Visible bool
	Layer   int
}

func NewSprite(color mgl32.Vec4, tex render.Texture) Sprite {
	return Sprite{
		Color:   color,
		Texture: tex,
		Tiling:  1,
		Visible: true,
	}
}
