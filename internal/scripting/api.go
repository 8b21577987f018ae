package scripting

import (
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"

	"github.com/sceneworks/sceneedit/internal/scene"
)

// registerAPI installs the global "editor" table. Entity ids are the index
// part of the entity id, as the console shows them.
func (e *Engine) registerAPI() {
	e.vm.SetGlobal("editor", e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"add":        e.luaAdd,
		"delete":     e.luaDelete,
		"select":     e.luaSelect,
		"select_all": e.luaSelectAll,
		"clear":      e.luaClear,
		"move":       e.luaTransform(e.ed.Move),
		"rotate":     e.luaTransform(e.ed.Rotate),
		"scale":      e.luaTransform(e.ed.Scale),
		"undo":       e.luaUndo,
		"redo":       e.luaRedo,
		"count":      e.luaCount,
		"selected":   e.luaSelected,
		"name":       e.luaName,
	}))
}

// editor.add(kind) -> id
func (e *Engine) luaAdd(L *lua.LState) int {
	ent, err := e.ed.AddPrimitive(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(ent.ID.Index()))
	return 1
}

// editor.delete() -> number deleted
func (e *Engine) luaDelete(L *lua.LState) int {
	L.Push(lua.LNumber(e.ed.DeleteSelected()))
	return 1
}

// editor.select(id [, toggle])
func (e *Engine) luaSelect(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	if L.OptBool(2, false) {
		e.ed.ToggleSelect(ent)
	} else {
		e.ed.SelectOnly(ent)
	}
	return 0
}

func (e *Engine) luaSelectAll(L *lua.LState) int {
	e.ed.SelectAll()
	return 0
}

func (e *Engine) luaClear(L *lua.LState) int {
	e.ed.ClearSelection()
	return 0
}

// editor.move|rotate|scale(id, x, y, z)
func (e *Engine) luaTransform(apply func(*scene.Entity, mgl32.Vec3) error) lua.LGFunction {
	return func(L *lua.LState) int {
		ent := e.checkEntity(L, 1)
		v := mgl32.Vec3{
			float32(L.CheckNumber(2)),
			float32(L.CheckNumber(3)),
			float32(L.CheckNumber(4)),
		}
		if err := apply(ent, v); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}
}

func (e *Engine) luaUndo(L *lua.LState) int {
	L.Push(lua.LBool(e.ed.Undo()))
	return 1
}

func (e *Engine) luaRedo(L *lua.LState) int {
	L.Push(lua.LBool(e.ed.Redo()))
	return 1
}

func (e *Engine) luaCount(L *lua.LState) int {
	L.Push(lua.LNumber(len(e.ed.Entities())))
	return 1
}

// editor.selected() -> {ids}
func (e *Engine) luaSelected(L *lua.LState) int {
	t := L.NewTable()
	for _, ent := range e.ed.Selected() {
		t.Append(lua.LNumber(ent.ID.Index()))
	}
	L.Push(t)
	return 1
}

// editor.name(id) -> display name
func (e *Engine) luaName(L *lua.LState) int {
	L.Push(lua.LString(e.checkEntity(L, 1).Name))
	return 1
}

func (e *Engine) checkEntity(L *lua.LState, n int) *scene.Entity {
	id := L.CheckInt(n)
	if id < 0 {
		L.ArgError(n, "entity id must not be negative")
		return nil
	}
	ent, err := e.ed.Lookup(uint32(id))
	if err != nil {
		L.ArgError(n, err.Error())
		return nil
	}
	return ent
}
