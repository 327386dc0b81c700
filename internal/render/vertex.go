package render

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one corner of a batched quad. Position is already in world space.
// TexIndex selects the bound texture slot; slot 0 is always white.
// IsText is 1 for glyph quads sampled as alpha/SDF coverage.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
	TexCoord mgl32.Vec2
	TexIndex float32
	Tiling   float32
	IsText   float32
}

const (
	verticesPerQuad = 4
	indicesPerQuad  = 6
)

// Unit quad corners relative to the anchor origin, counter-clockwise from
// bottom-left. Texture coordinates use image space (v grows downward), so
// the bottom-left corner samples (0,1).
var (
	quadCorners = [verticesPerQuad]mgl32.Vec2{
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
	}
	quadTexCoords = [verticesPerQuad]mgl32.Vec2{
		{0, 1}, {1, 1}, {1, 0}, {0, 0},
	}
)

// QuadIndices returns the static index pattern for maxQuads quads:
// two triangles per quad, 0-1-2 and 2-3-0.
func QuadIndices(maxQuads int) []uint32 {
	indices := make([]uint32, maxQuads*indicesPerQuad)
	var offset uint32
	for i := 0; i < len(indices); i += indicesPerQuad {
		indices[i+0] = offset + 0
		indices[i+1] = offset + 1
		indices[i+2] = offset + 2
		indices[i+3] = offset + 2
		indices[i+4] = offset + 3
		indices[i+5] = offset + 0
		offset += verticesPerQuad
	}
	return indices
}

// UVRect returns the four texture coordinates for the sub-rectangle
// [min,max] of an image, in quadCorners order.
func UVRect(min, max mgl32.Vec2) [verticesPerQuad]mgl32.Vec2 {
	return [verticesPerQuad]mgl32.Vec2{
		{min.X(), max.Y()},
		{max.X(), max.Y()},
		{max.X(), min.Y()},
		{min.X(), min.Y()},
	}
}
