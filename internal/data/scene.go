package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneFile is the YAML description of a scene: the assets it uses, its
// entities and its persistent UI.
type SceneFile struct {
	Name     string       `yaml:"name"`
	Textures []TextureDef `yaml:"textures"`
	Fonts    []FontDef    `yaml:"fonts"`
	Camera   CameraDef    `yaml:"camera"`
	Entities []EntityDef  `yaml:"entities"`
	UI       []UIDef      `yaml:"ui"`
}

type TextureDef struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// FontDef loads a TTF at Size pixels. An empty Path uses the bundled font.
type FontDef struct {
	Name string  `yaml:"name"`
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

type CameraDef struct {
	Position [3]float32 `yaml:"position"`
	Rotation float32    `yaml:"rotation"`
	Zoom     float32    `yaml:"zoom"`
}

type EntityDef struct {
	Name      string        `yaml:"name"`
	Transform TransformDef  `yaml:"transform"`
	Sprite    *SpriteDef    `yaml:"sprite,omitempty"`
	Animation *AnimationDef `yaml:"animation,omitempty"`
	Script    string        `yaml:"script,omitempty"`
	// Count > 1 spawns a row of copies spaced by Spacing.
	Count   int        `yaml:"count,omitempty"`
	Spacing [2]float32 `yaml:"spacing,omitempty"`
}

type TransformDef struct {
	Position [3]float32  `yaml:"position"`
	Scale    *[2]float32 `yaml:"scale,omitempty"`
	Rotation float32     `yaml:"rotation"`
	Anchor   *[2]float32 `yaml:"anchor,omitempty"`
}

type SpriteDef struct {
	Color   *[4]float32 `yaml:"color,omitempty"`
	Texture string      `yaml:"texture,omitempty"`
	Tiling  float32     `yaml:"tiling,omitempty"`
	Layer   int         `yaml:"layer"`
	Visible *bool       `yaml:"visible,omitempty"`
}

type AnimationDef struct {
	Enabled     *bool   `yaml:"enabled,omitempty"`
	SpriteWidth int     `yaml:"sprite_width"`
	FrameRate   float32 `yaml:"frame_rate"`
}

type UIDef struct {
	Position    [3]float32  `yaml:"position"`
	Scale       *[2]float32 `yaml:"scale,omitempty"`
	Anchor      *[2]float32 `yaml:"anchor,omitempty"`
	Color       *[4]float32 `yaml:"color,omitempty"`
	Layer       int         `yaml:"layer"`
	Text        string      `yaml:"text,omitempty"`
	Font        string      `yaml:"font,omitempty"`
	WrapWidth   float32     `yaml:"wrap_width,omitempty"`
	Image       string      `yaml:"image,omitempty"`
	Visible     *bool       `yaml:"visible,omitempty"`
	ScreenSpace bool        `yaml:"screen_space"`
}

// LoadSceneFile reads and parses a scene description.
func LoadSceneFile(path string) (*SceneFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return ParseSceneFile(raw, path)
}

func ParseSceneFile(raw []byte, name string) (*SceneFile, error) {
	var f SceneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", name, err)
	}
	seen := make(map[string]bool, len(f.Textures))
	for _, t := range f.Textures {
		if t.Name == "" || t.Path == "" {
			return nil, fmt.Errorf("scene %s: texture entries need name and path", name)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("scene %s: duplicate texture %q", name, t.Name)
		}
		seen[t.Name] = true
	}
	for _, fd := range f.Fonts {
		if fd.Name == "" || fd.Size <= 0 {
			return nil, fmt.Errorf("scene %s: font entries need name and positive size", name)
		}
	}
	for i, e := range f.Entities {
		if e.Animation != nil && e.Animation.SpriteWidth < 0 {
			return nil, fmt.Errorf("scene %s: entity %d: negative sprite_width", name, i)
		}
	}
	if f.Name == "" {
		f.Name = name
	}
	return &f, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
