package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[window]
title = "demo"
width = 800

[renderer]
max_quads = 2000
clear_color = [0, 0, 0, 255]

[logging]
level = "debug"
`), "inline")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, 2000, cfg.Renderer.MaxQuads)
	assert.Equal(t, 32, cfg.Renderer.MaxTextureSlots)
	assert.Equal(t, [4]byte{0, 0, 0, 255}, cfg.Renderer.ClearColor)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestParseRejectsBadValues(t *testing.T) {
	for name, src := range map[string]string{
		"syntax":      `[window`,
		"quads":       "[renderer]\nmax_quads = 0",
		"quads-large": "[renderer]\nmax_quads = 20000",
		"slots":       "[renderer]\nmax_texture_slots = 1",
		"profile":     "[debug]\nprofile = \"block\"",
		"size":        "[window]\nheight = -1",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), name)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\npath = \"level.yaml\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "level.yaml", cfg.Scene.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
