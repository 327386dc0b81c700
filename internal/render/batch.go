package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	DefaultMaxQuads        = 10000
	DefaultMaxTextureSlots = 32
)

// Options sizes the CPU vertex buffer and the per-batch texture slot table.
type Options struct {
	MaxQuads        int
	MaxTextureSlots int
}

func DefaultOptions() Options {
	return Options{
		MaxQuads:        DefaultMaxQuads,
		MaxTextureSlots: DefaultMaxTextureSlots,
	}
}

var (
	centerAnchor = mgl32.Vec2{0.5, 0.5}
	fullUV       = quadTexCoords
)

// BatchRenderer accumulates quads into a CPU vertex buffer and submits them
// to the Device in as few indexed draws as the capacity limits allow.
// A batch is flushed when the vertex buffer or the texture slot table is
// full, and at EndScene. Callers never see the flushes.
//
// Not safe for concurrent use.
type BatchRenderer struct {
	dev   Device
	white Texture
	log   *zap.Logger

	maxQuads    int
	maxVertices int
	maxIndices  int

	vertices   []Vertex
	cursor     int
	indexCount int

	slots     []ResourceView
	slotCount int
	bound     []ResourceView

	inScene    bool
	warnedIdle bool
	stats      Stats
}

// NewBatchRenderer creates a renderer drawing through dev. white must be an
// opaque 1×1 white texture; it fills slot 0 and pads unused slots.
func NewBatchRenderer(dev Device, white Texture, opts Options, log *zap.Logger) *BatchRenderer {
	if opts.MaxQuads <= 0 {
		opts.MaxQuads = DefaultMaxQuads
	}
	// Slot 0 is reserved, so one more is needed for any textured draw.
	if opts.MaxTextureSlots < 2 {
		opts.MaxTextureSlots = DefaultMaxTextureSlots
	}

	r := &BatchRenderer{
		dev:         dev,
		white:       white,
		log:         log,
		maxQuads:    opts.MaxQuads,
		maxVertices: opts.MaxQuads * verticesPerQuad,
		maxIndices:  opts.MaxQuads * indicesPerQuad,
		vertices:    make([]Vertex, opts.MaxQuads*verticesPerQuad),
		slots:       make([]ResourceView, opts.MaxTextureSlots),
		bound:       make([]ResourceView, opts.MaxTextureSlots),
	}
	dev.SetIndexBuffer(QuadIndices(opts.MaxQuads))
	r.startBatch()

	log.Debug("batch renderer ready",
		zap.Int("max_quads", opts.MaxQuads),
		zap.Int("max_texture_slots", opts.MaxTextureSlots))
	return r
}

func (r *BatchRenderer) MaxQuads() int        { return r.maxQuads }
func (r *BatchRenderer) MaxTextureSlots() int { return len(r.slots) }
func (r *BatchRenderer) WhiteTexture() Texture {
	return r.white
}

// Stats returns the counters accumulated since the last ResetStats.
func (r *BatchRenderer) Stats() Stats { return r.stats }
func (r *BatchRenderer) ResetStats()  { r.stats = Stats{} }

// BeginScene uploads cam's view-projection and starts an empty batch.
func (r *BatchRenderer) BeginScene(cam Camera) {
	r.BeginSceneMatrix(cam.ViewProjection())
}

// BeginSceneMatrix is BeginScene for callers that already hold the matrix.
func (r *BatchRenderer) BeginSceneMatrix(viewProj mgl32.Mat4) {
	if r.inScene {
		r.log.Warn("BeginScene called inside a scene; flushing previous batch")
		r.Flush()
	}
	r.dev.SetViewProjection(viewProj)
	r.startBatch()
	r.inScene = true
}

// EndScene submits whatever is left in the current batch.
func (r *BatchRenderer) EndScene() {
	r.Flush()
	r.inScene = false
}

func (r *BatchRenderer) startBatch() {
	r.cursor = 0
	r.indexCount = 0
	for i := range r.slots {
		r.slots[i] = nil
	}
	r.slots[0] = r.white.View()
	r.slotCount = 1
}

// SlotsInUse returns how many texture slots the current batch occupies,
// including the white slot.
func (r *BatchRenderer) SlotsInUse() int { return r.slotCount }

// PendingQuads returns the number of quads accumulated since the last flush.
func (r *BatchRenderer) PendingQuads() int { return r.indexCount / indicesPerQuad }

// Flush uploads the vertices written since the last flush, binds the slot
// table and issues one indexed draw. It does nothing on an empty batch.
// A failed map drops the batch.
func (r *BatchRenderer) Flush() {
	if r.indexCount == 0 {
		return
	}
	quads := r.indexCount / indicesPerQuad

	dst, err := r.dev.MapVertices(r.cursor)
	if err != nil {
		r.log.Error("map vertex buffer failed, dropping batch",
			zap.Int("quads", quads), zap.Error(err))
		r.startBatch()
		return
	}
	copy(dst, r.vertices[:r.cursor])
	r.dev.Unmap()

	whiteView := r.slots[0]
	for i := range r.bound {
		if i < r.slotCount {
			r.bound[i] = r.slots[i]
		} else {
			r.bound[i] = whiteView
		}
	}
	r.dev.BindTextures(r.bound)
	r.dev.DrawIndexed(r.indexCount)

	r.stats.DrawCalls++
	r.stats.QuadCount += quads
	r.startBatch()
}

// reserve makes room for one more quad, flushing if the buffer is full.
func (r *BatchRenderer) reserve() bool {
	if !r.inScene {
		if !r.warnedIdle {
			r.log.Warn("draw call outside BeginScene/EndScene ignored")
			r.warnedIdle = true
		}
		return false
	}
	if r.indexCount+indicesPerQuad > r.maxIndices {
		r.Flush()
	}
	return true
}

// textureSlot finds or inserts tex in the slot table. A full table flushes
// the batch first. Slots are keyed by resource view, not by Texture value.
func (r *BatchRenderer) textureSlot(tex Texture) float32 {
	if tex == nil {
		return 0
	}
	view := tex.View()
	for i := 0; i < r.slotCount; i++ {
		if r.slots[i] == view {
			return float32(i)
		}
	}
	if r.slotCount >= len(r.slots) {
		r.Flush()
	}
	slot := r.slotCount
	r.slots[slot] = view
	r.slotCount++
	return float32(slot)
}

func (r *BatchRenderer) submit(m mgl32.Mat4, anchor mgl32.Vec2, color mgl32.Vec4,
	tex Texture, tiling float32, uvs *[verticesPerQuad]mgl32.Vec2, isText float32) {
	if !r.reserve() {
		return
	}
	slot := r.textureSlot(tex)

	for i := 0; i < verticesPerQuad; i++ {
		c := quadCorners[i]
		p := m.Mul4x1(mgl32.Vec4{c.X() - anchor.X(), c.Y() - anchor.Y(), 0, 1})
		r.vertices[r.cursor] = Vertex{
			Position: p.Vec3(),
			Color:    color,
			TexCoord: uvs[i],
			TexIndex: slot,
			Tiling:   tiling,
			IsText:   isText,
		}
		r.cursor++
	}
	r.indexCount += indicesPerQuad
}

func quadMatrix(pos mgl32.Vec3, size mgl32.Vec2, rotationDeg float32) mgl32.Mat4 {
	m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	if rotationDeg != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotationDeg)))
	}
	return m.Mul4(mgl32.Scale3D(size.X(), size.Y(), 1))
}

// DrawQuad draws a solid quad centered on pos.
func (r *BatchRenderer) DrawQuad(pos mgl32.Vec3, size mgl32.Vec2, color mgl32.Vec4) {
	r.submit(quadMatrix(pos, size, 0), centerAnchor, color, nil, 1, &fullUV, 0)
}

// DrawTexturedQuad draws tex centered on pos, tinted and repeated tiling times.
func (r *BatchRenderer) DrawTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, tex Texture, tiling float32, tint mgl32.Vec4) {
	r.submit(quadMatrix(pos, size, 0), centerAnchor, tint, tex, tiling, &fullUV, 0)
}

// DrawRotatedQuad draws a solid quad rotated about its center.
func (r *BatchRenderer) DrawRotatedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotationDeg float32, color mgl32.Vec4) {
	r.submit(quadMatrix(pos, size, rotationDeg), centerAnchor, color, nil, 1, &fullUV, 0)
}

func (r *BatchRenderer) DrawRotatedTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotationDeg float32,
	tex Texture, tiling float32, tint mgl32.Vec4) {
	r.submit(quadMatrix(pos, size, rotationDeg), centerAnchor, tint, tex, tiling, &fullUV, 0)
}

// DrawQuadTransform draws a solid unit quad through m. anchor is the point
// of the unit quad that m's origin maps to.
func (r *BatchRenderer) DrawQuadTransform(m mgl32.Mat4, anchor mgl32.Vec2, color mgl32.Vec4) {
	r.submit(m, anchor, color, nil, 1, &fullUV, 0)
}

func (r *BatchRenderer) DrawTexturedQuadTransform(m mgl32.Mat4, anchor mgl32.Vec2, tex Texture, tiling float32, tint mgl32.Vec4) {
	r.submit(m, anchor, tint, tex, tiling, &fullUV, 0)
}

// DrawQuadUV draws the [uvMin,uvMax] sub-rectangle of tex through m.
// UVs are normalized image coordinates with v growing downward.
func (r *BatchRenderer) DrawQuadUV(m mgl32.Mat4, anchor mgl32.Vec2, tex Texture,
	uvMin, uvMax mgl32.Vec2, tint mgl32.Vec4) {
	uvs := UVRect(uvMin, uvMax)
	r.submit(m, anchor, tint, tex, 1, &uvs, 0)
}
