package component

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in the world. Position.Z is the draw layer.
// Rotation is in degrees. Anchor is the fraction of the quad that sits on
// Position; (0.5,0.5) is the center.
type Transform struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec2
	Rotation float32
	Anchor   mgl32.Vec2
}

// NewTransform returns a unit-scale, centered transform at pos.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{
		Position: pos,
		Scale:    mgl32.Vec2{1, 1},
		Anchor:   mgl32.Vec2{0.5, 0.5},
	}
}

// Matrix returns translate ∘ rotateZ ∘ scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	if t.Rotation != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation)))
	}
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), 1))
}
