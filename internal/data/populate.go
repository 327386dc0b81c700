package data

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quadcore/engine/internal/component"
	"github.com/quadcore/engine/internal/core/ecs"
	"github.com/quadcore/engine/internal/scene"
)

var opaqueWhite = [4]float32{1, 1, 1, 1}

// Populate creates sf's entities and UI elements in s, borrowing textures
// and fonts from a. It returns the created entities grouped by name.
func Populate(s *scene.Scene, sf *SceneFile, a *Assets) map[string][]ecs.Entity {
	reg := s.Registry()
	named := make(map[string][]ecs.Entity, len(sf.Entities))

	for _, def := range sf.Entities {
		count := def.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			e := s.CreateEntity()

			tr := component.NewTransform(mgl32.Vec3(def.Transform.Position))
			tr.Position = tr.Position.Add(mgl32.Vec3{def.Spacing[0] * float32(i), def.Spacing[1] * float32(i), 0})
			tr.Rotation = def.Transform.Rotation
			if def.Transform.Scale != nil {
				tr.Scale = mgl32.Vec2(*def.Transform.Scale)
			}
			if def.Transform.Anchor != nil {
				tr.Anchor = mgl32.Vec2(*def.Transform.Anchor)
			}
			ecs.Add(reg, e, tr)

			if sd := def.Sprite; sd != nil {
				sp := component.NewSprite(mgl32.Vec4(colorOr(sd.Color)), a.Texture(sd.Texture))
				if sd.Tiling > 0 {
					sp.Tiling = sd.Tiling
				}
				sp.Layer = sd.Layer
				sp.Visible = boolOr(sd.Visible, true)
				ecs.Add(reg, e, sp)
			}
			if ad := def.Animation; ad != nil {
				ecs.Add(reg, e, component.Animation{
					Enabled:     boolOr(ad.Enabled, true),
					SpriteWidth: ad.SpriteWidth,
					FrameRate:   ad.FrameRate,
				})
			}
			if def.Script != "" {
				ecs.Add(reg, e, component.Script{Name: def.Script})
			}
			if def.Name != "" {
				named[def.Name] = append(named[def.Name], e)
			}
		}
	}

	for _, ud := range sf.UI {
		el := scene.UIElement{
			Position:    mgl32.Vec3(ud.Position),
			Scale:       mgl32.Vec2{1, 1},
			Anchor:      mgl32.Vec2{0.5, 0.5},
			Color:       mgl32.Vec4(colorOr(ud.Color)),
			Layer:       ud.Layer,
			Text:        ud.Text,
			Font:        a.Font(ud.Font),
			WrapWidth:   ud.WrapWidth,
			Image:       a.Texture(ud.Image),
			Visible:     boolOr(ud.Visible, true),
			ScreenSpace: ud.ScreenSpace,
		}
		if ud.Scale != nil {
			el.Scale = mgl32.Vec2(*ud.Scale)
		}
		if ud.Anchor != nil {
			el.Anchor = mgl32.Vec2(*ud.Anchor)
		}
		s.CreateUIElement(el)
	}
	return named
}

func colorOr(c *[4]float32) [4]float32 {
	if c == nil {
		return opaqueWhite
	}
	return *c
}
