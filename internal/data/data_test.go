package data

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/quadcore/engine/internal/component"
	"github.com/quadcore/engine/internal/core/ecs"
	"github.com/quadcore/engine/internal/render"
	"github.com/quadcore/engine/internal/render/rendertest"
	"github.com/quadcore/engine/internal/scene"
)

const demoScene = `
name: demo
textures:
  - name: strip
    path: strip.png
  - name: gone
    path: missing.png
fonts:
  - name: ui
    size: 16
camera:
  position: [1, 2, 0]
  zoom: 8
entities:
  - name: walker
    transform:
      position: [0, 0, 1]
      scale: [2, 2]
    sprite:
      texture: strip
      layer: 3
    animation:
      sprite_width: 16
      frame_rate: 12
    script: wander
  - name: tile
    count: 3
    spacing: [1.5, 0]
    transform:
      position: [-5, -5, 0]
      anchor: [0, 0]
    sprite:
      color: [0.2, 0.4, 0.6, 1]
      texture: gone
  - name: marker
    transform:
      position: [4, 4, 2]
ui:
  - text: Score
    font: ui
    position: [10, 10, 0]
    scale: [0.5, 0.5]
    anchor: [0, 1]
    screen_space: true
  - image: strip
    position: [50, 50, 0]
    layer: 2
    visible: false
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	fh, err := os.Create(path)
	require.NoError(t, err)
	defer fh.Close()
	require.NoError(t, png.Encode(fh, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func fakeFactory() render.TextureFactory {
	id := 0
	return func(img image.Image) (render.Texture, error) {
		id++
		b := img.Bounds()
		return rendertest.NewTexture(id, b.Dx(), b.Dy()), nil
	}
}

func TestParseSceneFile(t *testing.T) {
	sf, err := ParseSceneFile([]byte(demoScene), "demo.yaml")
	require.NoError(t, err)

	assert.Equal(t, "demo", sf.Name)
	require.Len(t, sf.Entities, 3)
	assert.Equal(t, [3]float32{0, 0, 1}, sf.Entities[0].Transform.Position)
	assert.Equal(t, 16, sf.Entities[0].Animation.SpriteWidth)
	assert.Nil(t, sf.Entities[2].Sprite)
	assert.Equal(t, float32(8), sf.Camera.Zoom)
	require.Len(t, sf.UI, 2)
	assert.False(t, *sf.UI[1].Visible)
}

func TestParseSceneFileErrors(t *testing.T) {
	for name, src := range map[string]string{
		"yaml":         "entities: [",
		"texture-path": "textures:\n  - name: a\n",
		"duplicate":    "textures:\n  - {name: a, path: a.png}\n  - {name: a, path: b.png}\n",
		"font-size":    "fonts:\n  - name: ui\n",
		"sprite-width": "entities:\n  - animation: {sprite_width: -1}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSceneFile([]byte(src), name)
			assert.Error(t, err)
		})
	}
}

func TestLoadAssetsFallsBackOnMissingTexture(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "strip.png"), 64, 16)
	sf, err := ParseSceneFile([]byte(demoScene), "demo.yaml")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	a, err := LoadAssets(sf, dir, fakeFactory(), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, a.TextureCount())
	assert.Equal(t, 1, a.FontCount())
	assert.Equal(t, 64, a.Texture("strip").Width())
	assert.Nil(t, a.Texture("gone"))
	assert.Equal(t, 1, logs.FilterMessage("texture unavailable, drawing untextured").Len())
	assert.Equal(t, 1, logs.FilterMessage("unknown texture").Len())
	assert.NotNil(t, a.Font("ui"))
}

func TestPopulate(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "strip.png"), 64, 16)
	sf, err := ParseSceneFile([]byte(demoScene), "demo.yaml")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	a, err := LoadAssets(sf, dir, fakeFactory(), log)
	require.NoError(t, err)
	r := render.NewBatchRenderer(rendertest.NewDevice(), rendertest.White(), render.DefaultOptions(), log)
	s := scene.New(sf.Name, r, log)

	named := Populate(s, sf, a)

	assert.Len(t, s.Entities(), 5)
	require.Len(t, named["tile"], 3)
	reg := s.Registry()

	walker := named["walker"][0]
	sp := ecs.Get[component.Sprite](reg, walker)
	assert.Equal(t, 64, sp.Texture.Width())
	assert.Equal(t, 3, sp.Layer)
	assert.True(t, sp.Visible)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, sp.Color)
	assert.True(t, ecs.Get[component.Animation](reg, walker).Enabled)
	assert.Equal(t, "wander", ecs.Get[component.Script](reg, walker).Name)
	assert.Equal(t, mgl32.Vec2{2, 2}, ecs.Get[component.Transform](reg, walker).Scale)

	third := ecs.Get[component.Transform](reg, named["tile"][2])
	assert.Equal(t, mgl32.Vec3{-2, -5, 0}, third.Position)
	assert.Equal(t, mgl32.Vec2{0, 0}, third.Anchor)
	assert.Nil(t, ecs.Get[component.Sprite](reg, named["tile"][0]).Texture)

	assert.False(t, ecs.Has[component.Sprite](reg, named["marker"][0]))
	assert.Equal(t, 2, s.UIElementCount())

	el, ok := s.UIElement(scene.FirstUIElementID)
	require.True(t, ok)
	assert.Equal(t, "Score", el.Text)
	assert.NotNil(t, el.Font)
	assert.True(t, el.ScreenSpace)
}
