package config

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window    WindowConfig    `toml:"window"`
	Renderer  RendererConfig  `toml:"renderer"`
	Scene     SceneConfig     `toml:"scene"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Debug     DebugConfig     `toml:"debug"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	VSync      bool   `toml:"vsync"`
	TPS        int    `toml:"tps"` // fixed update rate
}

type RendererConfig struct {
	MaxQuads        int     `toml:"max_quads"`
	MaxTextureSlots int     `toml:"max_texture_slots"`
	TextShader      bool    `toml:"text_shader"` // false = plain alpha sampling for glyphs
	CameraZoom      float32 `toml:"camera_zoom"`
	ClearColor      [4]byte `toml:"clear_color"`
}

type SceneConfig struct {
	Path string `toml:"path"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Profile    string `toml:"profile"` // "", "cpu", "mem", "trace"
	ProfileDir string `toml:"profile_dir"`
	StatsEvery int    `toml:"stats_every"` // log renderer stats every N frames, 0 = off
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is only used in errors.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Renderer.MaxQuads <= 0 {
		return fmt.Errorf("renderer.max_quads must be positive, got %d", c.Renderer.MaxQuads)
	}
	// ebiten indices are 16-bit per draw.
	if c.Renderer.MaxQuads*4 > math.MaxUint16 {
		return fmt.Errorf("renderer.max_quads %d exceeds %d", c.Renderer.MaxQuads, math.MaxUint16/4)
	}
	if c.Renderer.MaxTextureSlots < 2 {
		return fmt.Errorf("renderer.max_texture_slots must be at least 2, got %d", c.Renderer.MaxTextureSlots)
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem", "trace":
	default:
		return fmt.Errorf("debug.profile %q: want cpu, mem or trace", c.Debug.Profile)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "quadcore",
			Width:  1280,
			Height: 720,
			VSync:  true,
			TPS:    60,
		},
		Renderer: RendererConfig{
			MaxQuads:        10000,
			MaxTextureSlots: 32,
			TextShader:      true,
			CameraZoom:      10,
			ClearColor:      [4]byte{24, 24, 32, 255},
		},
		Scene: SceneConfig{
			Path: "assets/scenes/demo.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			ProfileDir: ".",
		},
	}
}
