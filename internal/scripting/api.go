package scripting

import (
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/quadcore/engine/internal/component"
	"github.com/quadcore/engine/internal/core/ecs"
)

// Entity API exposed to Lua. Every function takes the entity id first and
// quietly does nothing for a dead entity or a missing component.
func (e *Engine) registerAPI() {
	api := map[string]lua.LGFunction{
		"get_position": e.luaGetPosition,
		"set_position": e.luaSetPosition,
		"set_rotation": e.luaSetRotation,
		"set_scale":    e.luaSetScale,
		"set_tint":     e.luaSetTint,
		"set_visible":  e.luaSetVisible,
		"destroy":      e.luaDestroy,
		"log":          e.luaLog,
	}
	for name, fn := range api {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// entityArg resolves argument 1 to a live entity.
func (e *Engine) entityArg(L *lua.LState) (ecs.Entity, bool) {
	id := ecs.Entity(L.CheckInt(1))
	if e.scene == nil || !e.scene.Registry().Alive(id) {
		return ecs.Null, false
	}
	return id, true
}

func (e *Engine) transformArg(L *lua.LState) *component.Transform {
	id, ok := e.entityArg(L)
	if !ok {
		return nil
	}
	tr, _ := ecs.TryGet[component.Transform](e.scene.Registry(), id)
	return tr
}

func (e *Engine) spriteArg(L *lua.LState) *component.Sprite {
	id, ok := e.entityArg(L)
	if !ok {
		return nil
	}
	sp, _ := ecs.TryGet[component.Sprite](e.scene.Registry(), id)
	return sp
}

// get_position(e) -> x, y, z | nil
func (e *Engine) luaGetPosition(L *lua.LState) int {
	tr := e.transformArg(L)
	if tr == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(tr.Position.X()))
	L.Push(lua.LNumber(tr.Position.Y()))
	L.Push(lua.LNumber(tr.Position.Z()))
	return 3
}

// set_position(e, x, y [, z])
func (e *Engine) luaSetPosition(L *lua.LState) int {
	x := float32(L.CheckNumber(2))
	y := float32(L.CheckNumber(3))
	tr := e.transformArg(L)
	if tr == nil {
		return 0
	}
	z := float32(L.OptNumber(4, lua.LNumber(tr.Position.Z())))
	tr.Position = mgl32.Vec3{x, y, z}
	return 0
}

// set_rotation(e, degrees)
func (e *Engine) luaSetRotation(L *lua.LState) int {
	deg := float32(L.CheckNumber(2))
	if tr := e.transformArg(L); tr != nil {
		tr.Rotation = deg
	}
	return 0
}

// set_scale(e, sx [, sy])
func (e *Engine) luaSetScale(L *lua.LState) int {
	sx := L.CheckNumber(2)
	sy := L.OptNumber(3, sx)
	if tr := e.transformArg(L); tr != nil {
		tr.Scale = mgl32.Vec2{float32(sx), float32(sy)}
	}
	return 0
}

// set_tint(e, r, g, b [, a])
func (e *Engine) luaSetTint(L *lua.LState) int {
	c := mgl32.Vec4{
		float32(L.CheckNumber(2)),
		float32(L.CheckNumber(3)),
		float32(L.CheckNumber(4)),
		float32(L.OptNumber(5, 1)),
	}
	if sp := e.spriteArg(L); sp != nil {
		sp.Color = c
	}
	return 0
}

// set_visible(e, bool)
func (e *Engine) luaSetVisible(L *lua.LState) int {
	v := L.CheckBool(2)
	if sp := e.spriteArg(L); sp != nil {
		sp.Visible = v
	}
	return 0
}

// destroy(e) defers removal to the end of the frame.
func (e *Engine) luaDestroy(L *lua.LState) int {
	if id, ok := e.entityArg(L); ok {
		e.scene.QueueDestroy(id)
	}
	return 0
}

// log(msg)
func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("script", zap.String("msg", L.CheckString(1)))
	return 0
}
