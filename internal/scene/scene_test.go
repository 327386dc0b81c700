package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/quadcore/engine/internal/camera"
	"github.com/quadcore/engine/internal/component"
	"github.com/quadcore/engine/internal/core/ecs"
	"github.com/quadcore/engine/internal/core/event"
	"github.com/quadcore/engine/internal/font"
	"github.com/quadcore/engine/internal/render"
	"github.com/quadcore/engine/internal/render/rendertest"
)

var white = mgl32.Vec4{1, 1, 1, 1}

func newScene(t *testing.T) (*Scene, *rendertest.Device) {
	t.Helper()
	dev := rendertest.NewDevice()
	log := zaptest.NewLogger(t)
	r := render.NewBatchRenderer(dev, rendertest.White(), render.DefaultOptions(), log)
	return New("test", r, log), dev
}

func addAnimated(s *Scene, tex render.Texture, fps float32, cell int) ecs.Entity {
	e := s.CreateEntity()
	reg := s.Registry()
	ecs.Add(reg, e, component.NewTransform(mgl32.Vec3{}))
	ecs.Add(reg, e, component.NewSprite(white, tex))
	ecs.Add(reg, e, component.Animation{Enabled: true, SpriteWidth: cell, FrameRate: fps})
	return e
}

func TestAnimationCatchUp(t *testing.T) {
	s, _ := newScene(t)
	e := addAnimated(s, rendertest.NewTexture(1, 64, 16), 10, 16)

	s.Update(0.35)

	a := ecs.Get[component.Animation](s.Registry(), e)
	assert.Equal(t, 3, a.Frame)
	assert.InDelta(t, 0.05, a.Elapsed, 1e-4)
}

func TestAnimationWrapsAndCarriesTime(t *testing.T) {
	s, _ := newScene(t)
	e := addAnimated(s, rendertest.NewTexture(1, 64, 16), 10, 16)

	for i := 0; i < 5; i++ {
		s.Update(0.1001)
	}
	assert.Equal(t, 1, ecs.Get[component.Animation](s.Registry(), e).Frame, "4 frames wrap back to 0 then 1")
}

func TestAnimationSkipsDisabledAndWholeTexture(t *testing.T) {
	s, _ := newScene(t)
	tex := rendertest.NewTexture(1, 64, 16)
	off := addAnimated(s, tex, 10, 16)
	ecs.Get[component.Animation](s.Registry(), off).Enabled = false
	whole := addAnimated(s, tex, 10, 0)
	narrow := addAnimated(s, rendertest.NewTexture(2, 8, 8), 10, 16)

	s.Update(1)

	assert.Equal(t, 0, ecs.Get[component.Animation](s.Registry(), off).Frame)
	assert.Equal(t, 0, ecs.Get[component.Animation](s.Registry(), whole).Frame)
	assert.Equal(t, 0, ecs.Get[component.Animation](s.Registry(), narrow).Frame, "one frame stays at 0")
}

func TestAnimationEmitsFrameEventsNextUpdate(t *testing.T) {
	s, _ := newScene(t)
	e := addAnimated(s, rendertest.NewTexture(1, 64, 16), 10, 16)
	var frames []int
	event.Subscribe(s.Bus(), func(ev event.FrameAdvanced) {
		assert.Equal(t, e, ev.Entity)
		frames = append(frames, ev.Frame)
	})

	s.Update(0.25)
	assert.Empty(t, frames)
	s.Update(0)
	assert.Equal(t, []int{1, 2}, frames)
}

func TestRenderSubmitsSprites(t *testing.T) {
	s, dev := newScene(t)
	reg := s.Registry()
	strip := rendertest.NewTexture(1, 64, 16)
	plain := rendertest.NewTexture(2, 32, 32)

	anim := addAnimated(s, strip, 10, 16)
	ecs.Get[component.Animation](reg, anim).Frame = 2

	solid := s.CreateEntity()
	tr := component.NewTransform(mgl32.Vec3{0, 0, 1})
	tr.Scale = mgl32.Vec2{2, 2}
	ecs.Add(reg, solid, tr)
	ecs.Add(reg, solid, component.NewSprite(mgl32.Vec4{1, 0, 0, 1}, nil))

	textured := s.CreateEntity()
	ecs.Add(reg, textured, component.NewTransform(mgl32.Vec3{0, 0, 2}))
	sp := component.NewSprite(white, plain)
	sp.Tiling = 3
	ecs.Add(reg, textured, sp)

	hidden := s.CreateEntity()
	ecs.Add(reg, hidden, component.NewTransform(mgl32.Vec3{}))
	hsp := component.NewSprite(white, nil)
	hsp.Visible = false
	ecs.Add(reg, hidden, hsp)

	noTransform := s.CreateEntity()
	ecs.Add(reg, noTransform, component.NewSprite(white, nil))

	s.Render(camera.NewOrthographic(1, 10))

	require.Len(t, dev.Draws, 1)
	vs := dev.Draws[0].Vertices
	require.Len(t, vs, 12)

	// Back to front by Z: animated (z 0), solid (z 1), textured (z 2).
	assert.Equal(t, mgl32.Vec2{0.5, 1}, vs[0].TexCoord)
	assert.Equal(t, mgl32.Vec2{0.75, 0}, vs[2].TexCoord)
	assert.Equal(t, float32(1), vs[0].TexIndex)

	assert.Equal(t, float32(0), vs[4].TexIndex)
	assert.InDeltaSlice(t, []float32{-1, -1, 1}, vs[4].Position[:], 1e-5)

	assert.Equal(t, float32(2), vs[8].TexIndex)
	assert.Equal(t, float32(3), vs[8].Tiling)
}

func TestDestroyEntity(t *testing.T) {
	s, _ := newScene(t)
	a, b, c := s.CreateEntity(), s.CreateEntity(), s.CreateEntity()
	ecs.Add(s.Registry(), b, component.NewTransform(mgl32.Vec3{}))

	s.DestroyEntity(b)
	s.DestroyEntity(b)

	assert.Equal(t, []ecs.Entity{a, c}, s.Entities())
	assert.False(t, ecs.Has[component.Transform](s.Registry(), b))
	assert.Equal(t, ecs.Entity(4), s.CreateEntity(), "ids are not recycled")
}

func TestQueueDestroyRunsAfterSystems(t *testing.T) {
	s, _ := newScene(t)
	e := addAnimated(s, rendertest.NewTexture(1, 64, 16), 10, 16)
	s.QueueDestroy(e)
	assert.True(t, s.Registry().Alive(e))

	s.Update(0.2)

	assert.False(t, s.Registry().Alive(e))
	assert.Empty(t, s.Entities())
	assert.Equal(t, 1, event.Pending[event.EntityDestroyed](s.Bus()))
}

func uiFont() *font.Font {
	return font.New("ui", font.Metrics{PixelSize: 16, LineHeight: 20, Ascent: 14, Descent: 4},
		map[rune]render.Glyph{
			'A': {Size: mgl32.Vec2{10, 12}, Bearing: mgl32.Vec2{0, 12}, Advance: 10},
			'g': {Size: mgl32.Vec2{10, 12}, Bearing: mgl32.Vec2{0, 8}, Advance: 10},
		}, rendertest.NewTexture(50, 64, 64))
}

func TestTextBaselineAnchors(t *testing.T) {
	f := uiFont()
	size := f.CalculateSizeWithBaseline("Ag", 1) // maxY 12, minY 4
	y := float32(50)
	minY, maxY := size.Y()-size.Z(), size.Z()

	bottom := TextBaseline(y, size, 0)
	top := TextBaseline(y, size, 1)
	mid := TextBaseline(y, size, 0.5)

	assert.Equal(t, y+minY, bottom)
	assert.Equal(t, y-maxY, top)
	assert.InDelta(t, (bottom+top)/2, mid, 1e-5)
	assert.InDelta(t, bottom+(mid-bottom)/2, TextBaseline(y, size, 0.25), 1e-5)
	assert.InDelta(t, mid+(top-mid)/2, TextBaseline(y, size, 0.75), 1e-5)
}

func TestRenderUIText(t *testing.T) {
	s, dev := newScene(t)
	f := uiFont()
	s.CreateUIElement(UIElement{
		Position: mgl32.Vec3{50, 50, 0},
		Scale:    mgl32.Vec2{1, 1},
		Anchor:   mgl32.Vec2{0.5, 0},
		Color:    white,
		Text:     "AA",
		Font:     f,
		Visible:  true,
	})

	s.RenderUI(200, 100)

	require.Len(t, dev.Draws, 1)
	vs := dev.Draws[0].Vertices
	require.Len(t, vs, 8)
	// Width 20 centered on x=50; descent 0, so the baseline sits on y=50.
	assert.InDeltaSlice(t, []float32{40, 50, 0}, vs[0].Position[:], 1e-4)
	assert.Equal(t, float32(1), vs[0].IsText)
	assert.Equal(t, camera.NewUI(200, 100).ViewProjection(), dev.Draws[0].ViewProjection)
}

func TestRenderUIScreenSpaceAndLayerOrder(t *testing.T) {
	s, dev := newScene(t)
	icon := rendertest.NewTexture(60, 8, 8)

	top := s.CreateUIElement(UIElement{
		Position: mgl32.Vec3{0, 0, 0}, Scale: mgl32.Vec2{10, 10},
		Color: white, Layer: 5, Visible: true,
	})
	s.CreateUIElement(UIElement{
		Position: mgl32.Vec3{400, 300, 0}, Scale: mgl32.Vec2{10, 10},
		Anchor: mgl32.Vec2{0, 0}, Color: white, Image: icon,
		Layer: 1, Visible: true, ScreenSpace: true,
	})
	s.CreateUIElement(UIElement{Scale: mgl32.Vec2{1, 1}, Visible: false})

	assert.GreaterOrEqual(t, uint32(top), uint32(FirstUIElementID))
	assert.Equal(t, 3, s.UIElementCount())

	s.RenderUI(800, 600)

	vs := dev.Vertices()
	require.Len(t, vs, 8)
	// Layer 1 first: pixel (400,300) of an 800×600 viewport is the center
	// of a 133.33×100 UI space.
	assert.InDeltaSlice(t, []float32{200.0 / 3, 50, 0}, vs[0].Position[:], 1e-3)
	assert.Equal(t, float32(1), vs[0].TexIndex)
	assert.Equal(t, float32(0), vs[4].TexIndex)

	s.DestroyUIElement(top)
	_, ok := s.UIElement(top)
	assert.False(t, ok)
}
