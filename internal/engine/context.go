// Package engine ties config, renderer, assets, scripting and the active
// scene into one explicitly passed Context and drives it from ebiten.
package engine

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/quadcore/engine/internal/camera"
	"github.com/quadcore/engine/internal/config"
	coresys "github.com/quadcore/engine/internal/core/system"
	"github.com/quadcore/engine/internal/data"
	"github.com/quadcore/engine/internal/render"
	"github.com/quadcore/engine/internal/scene"
	"github.com/quadcore/engine/internal/scripting"
)

// Backend is a render.Device that can also upload textures.
type Backend interface {
	render.Device
	NewTexture(img image.Image) (render.Texture, error)
	White() render.Texture
}

// Context holds everything a frame needs. There are no package-level
// singletons; whoever runs the loop owns the Context.
type Context struct {
	cfg *config.Config
	log *zap.Logger

	backend  Backend
	renderer *render.BatchRenderer
	camera   *camera.Orthographic
	scripts  *scripting.Engine
	assets   *data.Assets
	scene    *scene.Scene
	// engine-level systems, ticked before the scene's own
	systems *coresys.Runner

	frames int
}

func NewContext(cfg *config.Config, backend Backend, log *zap.Logger) (*Context, error) {
	c := &Context{
		cfg:     cfg,
		log:     log,
		backend: backend,
		renderer: render.NewBatchRenderer(backend, backend.White(), render.Options{
			MaxQuads:        cfg.Renderer.MaxQuads,
			MaxTextureSlots: cfg.Renderer.MaxTextureSlots,
		}, log),
		camera: camera.NewOrthographic(
			float32(cfg.Window.Width)/float32(cfg.Window.Height), cfg.Renderer.CameraZoom),
		assets:  data.NewAssets(log),
		systems: coresys.NewRunner(),
	}
	if cfg.Scripting.Enabled {
		eng, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return nil, fmt.Errorf("scripting: %w", err)
		}
		c.scripts = eng
	}
	return c, nil
}

func (c *Context) Config() *config.Config          { return c.cfg }
func (c *Context) Logger() *zap.Logger             { return c.log }
func (c *Context) Renderer() *render.BatchRenderer { return c.renderer }
func (c *Context) Camera() *camera.Orthographic    { return c.camera }
func (c *Context) Assets() *data.Assets            { return c.assets }
func (c *Context) Scene() *scene.Scene             { return c.scene }

// LoadScene reads a YAML scene, loads its assets relative to the file and
// makes it the active scene.
func (c *Context) LoadScene(path string) (*scene.Scene, error) {
	sf, err := data.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	assets, err := data.LoadAssets(sf, filepath.Dir(path), c.backend.NewTexture, c.log)
	if err != nil {
		return nil, fmt.Errorf("scene %s assets: %w", sf.Name, err)
	}
	c.assets = assets

	s := scene.New(sf.Name, c.renderer, c.log)
	named := data.Populate(s, sf, assets)

	c.camera.SetPosition(mgl32.Vec3(sf.Camera.Position))
	c.camera.SetRotation(sf.Camera.Rotation)
	if sf.Camera.Zoom > 0 {
		c.camera.SetZoom(sf.Camera.Zoom)
	} else {
		c.camera.SetZoom(c.cfg.Renderer.CameraZoom)
	}

	c.SetScene(s)
	c.log.Info("scene loaded",
		zap.String("scene", sf.Name),
		zap.Int("entities", len(s.Entities())),
		zap.Int("named", len(named)),
		zap.Int("ui", s.UIElementCount()),
		zap.Int("textures", assets.TextureCount()),
		zap.Int("fonts", assets.FontCount()))
	return s, nil
}

// SetScene makes s the active scene and points the script engine at it.
func (c *Context) SetScene(s *scene.Scene) {
	c.scene = s
	if c.scripts != nil {
		c.scripts.Attach(s)
	}
}

// AddSystem registers a system that outlives scene switches.
func (c *Context) AddSystem(sys coresys.System) {
	c.systems.Register(sys)
}

// Step runs the engine systems, then advances the active scene by dt seconds.
func (c *Context) Step(dt float64) {
	c.systems.Tick(dt)
	if c.scene == nil {
		return
	}
	c.scene.Update(dt)
}

// Render draws the active scene and its UI for a viewport of the given
// pixel size and returns the frame's renderer statistics.
func (c *Context) Render(viewportW, viewportH int) render.Stats {
	c.renderer.ResetStats()
	if c.scene == nil || viewportW <= 0 || viewportH <= 0 {
		return c.renderer.Stats()
	}
	c.scene.Render(c.camera)
	c.scene.RenderUI(float32(viewportW), float32(viewportH))

	st := c.renderer.Stats()
	c.frames++
	if every := c.cfg.Debug.StatsEvery; every > 0 && c.frames%every == 0 {
		c.log.Debug("frame stats",
			zap.Int("frame", c.frames),
			zap.Int("draw_calls", st.DrawCalls),
			zap.Int("quads", st.QuadCount),
			zap.Int("vertices", st.VertexCount()),
			zap.Int("indices", st.IndexCount()))
	}
	return st
}

// Resize keeps the world camera's aspect in step with the window.
func (c *Context) Resize(width, height int) {
	if width > 0 && height > 0 {
		c.camera.SetAspect(float32(width) / float32(height))
	}
}

func (c *Context) Close() {
	if c.scripts != nil {
		c.scripts.Close()
	}
}
