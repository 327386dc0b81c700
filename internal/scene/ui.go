package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quadcore/engine/internal/camera"
	"github.com/quadcore/engine/internal/font"
	"github.com/quadcore/engine/internal/render"
)

// UIElementID keys persistent UI elements. The range starts well above
// entity ids so the two are never confused in logs or scripts.
type UIElementID uint32

const FirstUIElementID UIElementID = 100000

// UIHeight is the height of UI space in units; its width follows the
// viewport aspect ratio.
const UIHeight = 100

// UIElement is a retained UI node drawn by RenderUI. A text element sets
// Text and Font; Scale.X then multiplies the font's pixel metrics. An image
// element sets Image and is drawn Scale units large. With neither, a solid
// Color rectangle of Scale is drawn. ScreenSpace positions are in viewport
// pixels from the top-left; otherwise Position is already in UI units.
// Font and Image are borrowed.
type UIElement struct {
	ID          UIElementID
	Position    mgl32.Vec3
	Scale       mgl32.Vec2
	Anchor      mgl32.Vec2
	Color       mgl32.Vec4
	Layer       int
	Text        string
	Font        *font.Font
	WrapWidth   float32
	Image       render.Texture
	Visible     bool
	ScreenSpace bool
}

// CreateUIElement stores a copy of el under a fresh id and returns the id.
func (s *Scene) CreateUIElement(el UIElement) UIElementID {
	id := s.nextUI
	s.nextUI++
	el.ID = id
	s.ui[id] = &el
	return id
}

// UIElement returns the stored element for in-place edits.
func (s *Scene) UIElement(id UIElementID) (*UIElement, bool) {
	el, ok := s.ui[id]
	return el, ok
}

func (s *Scene) DestroyUIElement(id UIElementID) {
	delete(s.ui, id)
}

func (s *Scene) UIElementCount() int { return len(s.ui) }

// uiDrawOrder returns visible elements sorted by Layer, then by id.
func (s *Scene) uiDrawOrder() []*UIElement {
	s.uiScratch = s.uiScratch[:0]
	for _, el := range s.ui {
		if el.Visible {
			s.uiScratch = append(s.uiScratch, el)
		}
	}
	sort.Slice(s.uiScratch, func(i, j int) bool {
		a, b := s.uiScratch[i], s.uiScratch[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		return a.ID < b.ID
	})
	return s.uiScratch
}

// UISize returns the extent of UI space for a viewport.
func UISize(viewportW, viewportH float32) mgl32.Vec2 {
	if viewportH <= 0 {
		return mgl32.Vec2{UIHeight, UIHeight}
	}
	return mgl32.Vec2{UIHeight * viewportW / viewportH, UIHeight}
}

// uiPosition maps el's position into UI units.
func uiPosition(el *UIElement, viewportW, viewportH float32) mgl32.Vec3 {
	if !el.ScreenSpace || viewportW <= 0 || viewportH <= 0 {
		return el.Position
	}
	size := UISize(viewportW, viewportH)
	return mgl32.Vec3{
		el.Position.X() / viewportW * size.X(),
		(1 - el.Position.Y()/viewportH) * size.Y(),
		el.Position.Z(),
	}
}

// TextBaseline places the first baseline of a text block measured as size
// (see font.CalculateSizeWithBaseline) anchored at y. anchorY 0 puts the
// bottom of the block on y, 1 puts its top on y, and values between
// interpolate through the centered position at 0.5.
func TextBaseline(y float32, size mgl32.Vec3, anchorY float32) float32 {
	maxY := size.Z()
	minY := size.Y() - size.Z()
	bottom := y + minY
	top := y - maxY
	center := (bottom + top) / 2
	if anchorY <= 0.5 {
		return bottom + (center-bottom)*(anchorY/0.5)
	}
	return center + (top-center)*((anchorY-0.5)/0.5)
}

// RenderUI draws the persistent UI in its own batch over a fixed ortho
// camera sized from the viewport.
func (s *Scene) RenderUI(viewportW, viewportH float32) {
	size := UISize(viewportW, viewportH)
	s.renderer.BeginScene(camera.NewUI(size.X(), size.Y()))
	for _, el := range s.uiDrawOrder() {
		pos := uiPosition(el, viewportW, viewportH)
		switch {
		case el.Text != "" && el.Font != nil:
			s.drawText(el, pos)
		case el.Image != nil:
			m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
				Mul4(mgl32.Scale3D(el.Scale.X(), el.Scale.Y(), 1))
			s.renderer.DrawTexturedQuadTransform(m, el.Anchor, el.Image, 1, el.Color)
		default:
			m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
				Mul4(mgl32.Scale3D(el.Scale.X(), el.Scale.Y(), 1))
			s.renderer.DrawQuadTransform(m, el.Anchor, el.Color)
		}
	}
	s.renderer.EndScene()
}

func (s *Scene) drawText(el *UIElement, pos mgl32.Vec3) {
	scale := el.Scale.X()
	if scale == 0 {
		scale = 1
	}
	size := el.Font.CalculateWrappedSize(el.Text, scale, el.WrapWidth)
	x := pos.X() - el.Anchor.X()*size.X()
	baseline := TextBaseline(pos.Y(), size, el.Anchor.Y())
	lineStep := el.Font.LineHeight() * scale
	for i, line := range el.Font.Wrap(el.Text, scale, el.WrapWidth) {
		at := mgl32.Vec3{x, baseline - float32(i)*lineStep, pos.Z()}
		s.renderer.DrawString(line, el.Font, at, scale, el.Color)
	}
}
