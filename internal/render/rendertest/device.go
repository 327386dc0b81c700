// Package rendertest provides an in-memory render.Device that records every
// submission, for tests of code that draws through a BatchRenderer.
package rendertest

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quadcore/engine/internal/render"
)

// ErrMapFailed is returned by MapVertices while Device.FailMap is set.
var ErrMapFailed = errors.New("rendertest: vertex buffer unavailable")

// Draw is one recorded DrawIndexed call with the state bound for it.
type Draw struct {
	ViewProjection mgl32.Mat4
	Vertices       []render.Vertex
	Textures       []render.ResourceView
	IndexCount     int
}

// Device records uploads and draws.
type Device struct {
	FailMap bool

	ViewProjection mgl32.Mat4
	Indices        []uint32
	Draws          []Draw
	Maps           int

	mapped   []render.Vertex
	textures []render.ResourceView
}

func NewDevice() *Device { return &Device{} }

func (d *Device) SetViewProjection(m mgl32.Mat4) { d.ViewProjection = m }

func (d *Device) SetIndexBuffer(indices []uint32) {
	d.Indices = append([]uint32(nil), indices...)
}

func (d *Device) MapVertices(n int) ([]render.Vertex, error) {
	d.Maps++
	if d.FailMap {
		return nil, ErrMapFailed
	}
	d.mapped = make([]render.Vertex, n)
	return d.mapped, nil
}

func (d *Device) Unmap() {}

func (d *Device) BindTextures(views []render.ResourceView) {
	d.textures = append(d.textures[:0:0], views...)
}

func (d *Device) DrawIndexed(indexCount int) {
	d.Draws = append(d.Draws, Draw{
		ViewProjection: d.ViewProjection,
		Vertices:       d.mapped,
		Textures:       d.textures,
		IndexCount:     indexCount,
	})
}

// Vertices returns every vertex drawn so far, in submission order.
func (d *Device) Vertices() []render.Vertex {
	var all []render.Vertex
	for _, dr := range d.Draws {
		all = append(all, dr.Vertices...)
	}
	return all
}

// Quads returns how many quads were drawn in total.
func (d *Device) Quads() int {
	n := 0
	for _, dr := range d.Draws {
		n += dr.IndexCount / 6
	}
	return n
}

// View is a comparable resource view.
type View struct{ ID int }

// Texture is a fake texture. Several Textures may share one *View.
type Texture struct {
	W, H int
	V    *View
}

func NewTexture(id, w, h int) *Texture {
	return &Texture{W: w, H: h, V: &View{ID: id}}
}

func (t *Texture) Width() int                { return t.W }
func (t *Texture) Height() int               { return t.H }
func (t *Texture) View() render.ResourceView { return t.V }

// White returns a 1×1 texture suitable as the renderer's fallback.
func White() *Texture { return NewTexture(0, 1, 1) }
