package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/quadcore/engine/internal/core/event"
	"github.com/quadcore/engine/internal/scene"
)

// Engine wraps a single gopher-lua VM for entity behaviour scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm    *lua.LState
	log   *zap.Logger
	scene *scene.Scene

	// scripts that raised an error are not called again
	disabled map[string]bool
	// names already reported as missing
	missing map[string]bool
}

// NewEngine creates a Lua engine, registers the entity API and loads all
// scripts from scriptsDir. An empty or missing directory loads nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:       vm,
		log:      log,
		disabled: make(map[string]bool),
		missing:  make(map[string]bool),
	}
	e.registerAPI()

	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Warn("scripts directory missing", zap.String("dir", dir))
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source. name only appears in errors.
func (e *Engine) LoadString(name, src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// Attach points the API at s, registers the per-frame script system and
// forwards animation frame events to on_frame handlers. Attaching again
// moves the engine to the new scene.
func (e *Engine) Attach(s *scene.Scene) {
	e.scene = s
	s.AddSystem(newScriptSystem(e, s))
	event.Subscribe(s.Bus(), func(ev event.FrameAdvanced) {
		if e.scene != s {
			return
		}
		e.onFrame(ev)
	})
}

// behaviour returns the global table a Script component names, or nil.
func (e *Engine) behaviour(name string) *lua.LTable {
	if e.disabled[name] {
		return nil
	}
	t, ok := e.vm.GetGlobal(name).(*lua.LTable)
	if !ok {
		if !e.missing[name] {
			e.missing[name] = true
			e.log.Warn("script table not found", zap.String("script", name))
		}
		return nil
	}
	return t
}

// call invokes t[fn](args...) if present. A Lua error disables the script.
func (e *Engine) call(name string, t *lua.LTable, fn string, args ...lua.LValue) {
	f, ok := t.RawGetString(fn).(*lua.LFunction)
	if !ok {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.disabled[name] = true
		e.log.Error("lua script error, script disabled",
			zap.String("script", name), zap.String("func", fn), zap.Error(err))
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
