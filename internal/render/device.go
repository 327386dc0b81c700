package render

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// ResourceView identifies a GPU texture binding. Two views that compare
// equal share one texture slot, so backends must hand out comparable values
// (pointers or integers) and return the same value for every wrapper of one
// underlying resource.
type ResourceView any

// Texture is a non-owning handle to a texture whose lifetime is managed
// outside the renderer.
type Texture interface {
	Width() int
	Height() int
	View() ResourceView
}

// Camera supplies the combined view-projection matrix for a batch.
type Camera interface {
	ViewProjection() mgl32.Mat4
}

// Device is the GPU surface the batch renderer needs.
type Device interface {
	SetViewProjection(m mgl32.Mat4)
	// SetIndexBuffer uploads the static quad index pattern once.
	SetIndexBuffer(indices []uint32)
	// MapVertices maps the first n vertices of the dynamic vertex buffer for
	// writing, discarding previous contents. Unmap must follow a successful map.
	MapVertices(n int) ([]Vertex, error)
	Unmap()
	// BindTextures binds views to slots 0..len(views)-1.
	BindTextures(views []ResourceView)
	DrawIndexed(indexCount int)
}

// TextureFactory uploads a decoded image and returns its texture handle.
type TextureFactory func(img image.Image) (Texture, error)
