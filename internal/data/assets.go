package data

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/quadcore/engine/internal/font"
	"github.com/quadcore/engine/internal/render"
)

// Assets is the resource table scenes borrow textures and fonts from.
// It owns the handles; components only reference them.
type Assets struct {
	textures map[string]render.Texture
	fonts    map[string]*font.Font
	log      *zap.Logger
}

func NewAssets(log *zap.Logger) *Assets {
	return &Assets{
		textures: make(map[string]render.Texture),
		fonts:    make(map[string]*font.Font),
		log:      log,
	}
}

// LoadAssets loads every texture and font sf declares, resolving paths
// against baseDir. A texture that fails to load is logged and left out, so
// sprites using it draw as solid quads; a font that fails falls back to the
// bundled font. Only a failing fallback is an error.
func LoadAssets(sf *SceneFile, baseDir string, newTexture render.TextureFactory, log *zap.Logger) (*Assets, error) {
	a := NewAssets(log)
	for _, td := range sf.Textures {
		tex, err := loadTexture(filepath.Join(baseDir, td.Path), newTexture)
		if err != nil {
			log.Error("texture unavailable, drawing untextured",
				zap.String("texture", td.Name), zap.Error(err))
			continue
		}
		a.textures[td.Name] = tex
	}
	for _, fd := range sf.Fonts {
		f, err := loadFont(fd, baseDir, newTexture)
		if err != nil {
			log.Warn("font unavailable, using bundled font",
				zap.String("font", fd.Name), zap.Error(err))
			f, err = font.LoadDefault(fd.Size, newTexture)
			if err != nil {
				return nil, fmt.Errorf("load fallback font for %s: %w", fd.Name, err)
			}
		}
		a.fonts[fd.Name] = f
		log.Debug("font loaded", zap.String("font", fd.Name), zap.Int("glyphs", f.GlyphCount()))
	}
	return a, nil
}

func loadTexture(path string, newTexture render.TextureFactory) (render.Texture, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	img, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return newTexture(img)
}

func loadFont(fd FontDef, baseDir string, newTexture render.TextureFactory) (*font.Font, error) {
	if fd.Path == "" {
		return font.LoadDefault(fd.Size, newTexture)
	}
	path := filepath.Join(baseDir, fd.Path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return font.LoadTTF(fd.Name, raw, fd.Size, font.DefaultCharset, newTexture)
}

func (a *Assets) AddTexture(name string, tex render.Texture) { a.textures[name] = tex }
func (a *Assets) AddFont(name string, f *font.Font)          { a.fonts[name] = f }

// Texture returns the named texture, or nil with a warning when unknown.
func (a *Assets) Texture(name string) render.Texture {
	if name == "" {
		return nil
	}
	tex, ok := a.textures[name]
	if !ok {
		a.log.Warn("unknown texture", zap.String("texture", name))
		return nil
	}
	return tex
}

// Font returns the named font, or nil with a warning when unknown.
func (a *Assets) Font(name string) *font.Font {
	if name == "" {
		return nil
	}
	f, ok := a.fonts[name]
	if !ok {
		a.log.Warn("unknown font", zap.String("font", name))
		return nil
	}
	return f
}

func (a *Assets) TextureCount() int { return len(a.textures) }
func (a *Assets) FontCount() int    { return len(a.fonts) }
