package system

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quadcore/engine/internal/component"
	"github.com/quadcore/engine/internal/core/ecs"
	"github.com/quadcore/engine/internal/render"
)

// SpriteRenderer submits every visible Transform+Sprite entity to a batch.
type SpriteRenderer struct {
	reg     *ecs.Registry
	scratch []ecs.Entity
}

func NewSpriteRenderer(reg *ecs.Registry) *SpriteRenderer {
	return &SpriteRenderer{reg: reg}
}

// Submit draws the drawable entities of live back to front: by Position.Z,
// then Sprite.Layer, then roster order. It must run between BeginScene and
// EndScene and must not race with component mutation.
func (s *SpriteRenderer) Submit(live []ecs.Entity, r *render.BatchRenderer) int {
	transforms := ecs.Pool[component.Transform](s.reg)
	sprites := ecs.Pool[component.Sprite](s.reg)
	anims := ecs.Pool[component.Animation](s.reg)

	s.scratch = s.scratch[:0]
	for _, e := range live {
		if !transforms.Has(e) {
			continue
		}
		if sp, ok := sprites.TryGet(e); ok && sp.Visible {
			s.scratch = append(s.scratch, e)
		}
	}
	sort.SliceStable(s.scratch, func(i, j int) bool {
		ti, tj := transforms.Get(s.scratch[i]), transforms.Get(s.scratch[j])
		if ti.Position.Z() != tj.Position.Z() {
			return ti.Position.Z() < tj.Position.Z()
		}
		return sprites.Get(s.scratch[i]).Layer < sprites.Get(s.scratch[j]).Layer
	})

	for _, e := range s.scratch {
		tr := transforms.Get(e)
		sp := sprites.Get(e)
		m := tr.Matrix()

		if sp.Texture == nil {
			r.DrawQuadTransform(m, tr.Anchor, sp.Color)
			continue
		}
		if a, ok := anims.TryGet(e); ok && a.Active() {
			uvMin, uvMax := FrameUV(a, sp.Texture.Width())
			r.DrawQuadUV(m, tr.Anchor, sp.Texture, uvMin, uvMax, sp.Color)
			continue
		}
		r.DrawTexturedQuadTransform(m, tr.Anchor, sp.Texture, sp.Tiling, sp.Color)
	}
	return len(s.scratch)
}

// FrameUV returns the UV rectangle of a's current cell in a horizontal
// strip textureWidth pixels wide. The row always spans the full height.
func FrameUV(a *component.Animation, textureWidth int) (min, max mgl32.Vec2) {
	frames := a.FrameCount(textureWidth)
	col := a.Frame % frames
	if col < 0 {
		col += frames
	}
	cell := float32(a.SpriteWidth) / float32(textureWidth)
	return mgl32.Vec2{float32(col) * cell, 0}, mgl32.Vec2{float32(col+1) * cell, 1}
}
