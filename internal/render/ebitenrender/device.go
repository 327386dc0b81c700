// Package ebitenrender implements render.Device on top of ebiten's
// DrawTriangles, converting clip-space batches to screen pixels.
package ebitenrender

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/quadcore/engine/internal/render"
)

// ErrNoTarget is returned by MapVertices outside Draw, when no screen is set.
var ErrNoTarget = errors.New("ebitenrender: no render target")

// glyph atlases store coverage in alpha
const textShaderSrc = `//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	a := imageSrc0At(srcPos).a * color.a
	return vec4(color.rgb*a, a)
}
`

type Device struct {
	log    *zap.Logger
	target *ebiten.Image

	viewProj mgl32.Mat4
	indices  []uint32
	vertices []render.Vertex
	views    []render.ResourceView
	mapped   bool

	textShader *ebiten.Shader

	outV []ebiten.Vertex
	outI []uint16
	// views that were not *ebiten.Image, reported once
	badViews map[render.ResourceView]bool
}

// NewDevice creates the backend. With textShader set, glyph quads use a
// coverage shader; if it fails to compile they fall back to plain sampling.
func NewDevice(textShader bool, log *zap.Logger) *Device {
	d := &Device{log: log, badViews: make(map[render.ResourceView]bool)}
	if textShader {
		sh, err := ebiten.NewShader([]byte(textShaderSrc))
		if err != nil {
			log.Warn("text shader compile failed, using plain sampling", zap.Error(err))
		} else {
			d.textShader = sh
		}
	}
	return d
}

// SetTarget sets the image batches draw into. Pass nil after the frame.
func (d *Device) SetTarget(img *ebiten.Image) { d.target = img }

func (d *Device) SetViewProjection(m mgl32.Mat4) { d.viewProj = m }

func (d *Device) SetIndexBuffer(indices []uint32) {
	d.indices = append(d.indices[:0], indices...)
}

func (d *Device) MapVertices(n int) ([]render.Vertex, error) {
	if d.target == nil {
		return nil, ErrNoTarget
	}
	if cap(d.vertices) < n {
		d.vertices = make([]render.Vertex, n)
	}
	d.vertices = d.vertices[:n]
	d.mapped = true
	return d.vertices, nil
}

func (d *Device) Unmap() { d.mapped = false }

func (d *Device) BindTextures(views []render.ResourceView) {
	d.views = append(d.views[:0], views...)
}

// DrawIndexed draws the mapped quads in submission order, one ebiten call
// per run of quads sharing a texture slot and text flag.
func (d *Device) DrawIndexed(indexCount int) {
	if d.target == nil || d.mapped {
		return
	}
	quads := indexCount / 6
	if quads*4 > len(d.vertices) {
		quads = len(d.vertices) / 4
	}
	bounds := d.target.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())

	for _, r := range quadRuns(d.vertices, quads) {
		src := d.image(r.slot)
		if src == nil {
			continue
		}
		sb := src.Bounds()
		d.outV = appendScreenVertices(d.outV[:0], d.vertices[r.first*4:r.end*4], d.viewProj, w, h,
			float32(sb.Dx()), float32(sb.Dy()))
		d.outI = runIndices(d.outI[:0], d.indices, r.first, r.end)

		if r.text && d.textShader != nil {
			op := &ebiten.DrawTrianglesShaderOptions{}
			op.Images[0] = src
			d.target.DrawTrianglesShader(d.outV, d.outI, d.textShader, op)
			continue
		}
		op := &ebiten.DrawTrianglesOptions{}
		op.Address = ebiten.AddressRepeat
		if r.text {
			op.Filter = ebiten.FilterLinear
		}
		d.target.DrawTriangles(d.outV, d.outI, src, op)
	}
}

func (d *Device) image(slot int) *ebiten.Image {
	if slot < 0 || slot >= len(d.views) {
		return nil
	}
	img, ok := d.views[slot].(*ebiten.Image)
	if !ok {
		if v := d.views[slot]; !d.badViews[v] {
			d.badViews[v] = true
			d.log.Error("texture view is not an ebiten image", zap.Int("slot", slot))
		}
		return nil
	}
	return img
}

// quadRun is the half-open quad range [first,end) drawn with one source.
type quadRun struct {
	first, end int
	slot       int
	text       bool
}

func quadRuns(vertices []render.Vertex, quads int) []quadRun {
	var runs []quadRun
	for q := 0; q < quads; q++ {
		v := vertices[q*4]
		slot, text := int(v.TexIndex), v.IsText > 0.5
		if n := len(runs); n > 0 && runs[n-1].slot == slot && runs[n-1].text == text {
			runs[n-1].end = q + 1
			continue
		}
		runs = append(runs, quadRun{first: q, end: q + 1, slot: slot, text: text})
	}
	return runs
}

// appendScreenVertices projects world-space vertices through viewProj and
// maps clip space to target pixels, y down. Texture coordinates become
// source pixels scaled by the tiling factor.
func appendScreenVertices(dst []ebiten.Vertex, src []render.Vertex, viewProj mgl32.Mat4,
	targetW, targetH, srcW, srcH float32) []ebiten.Vertex {
	for _, v := range src {
		clip := viewProj.Mul4x1(v.Position.Vec4(1))
		if w := clip.W(); w != 0 {
			clip = clip.Mul(1 / w)
		}
		tiling := v.Tiling
		if tiling == 0 {
			tiling = 1
		}
		dst = append(dst, ebiten.Vertex{
			DstX:   (clip.X() + 1) / 2 * targetW,
			DstY:   (1 - clip.Y()) / 2 * targetH,
			SrcX:   v.TexCoord.X() * tiling * srcW,
			SrcY:   v.TexCoord.Y() * tiling * srcH,
			ColorR: v.Color.X(),
			ColorG: v.Color.Y(),
			ColorB: v.Color.Z(),
			ColorA: v.Color.W(),
		})
	}
	return dst
}

// runIndices rebases the static index pattern for quads [first,end) so the
// run's first vertex is 0.
func runIndices(dst []uint16, pattern []uint32, first, end int) []uint16 {
	base := uint32(first * 4)
	for _, i := range pattern[first*6 : end*6] {
		dst = append(dst, uint16(i-base))
	}
	return dst
}
