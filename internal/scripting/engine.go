// Package scripting runs Lua macros against an editor session.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/sceneworks/sceneedit/internal/scene"
)

// APIVersion is exposed to scripts as the global API_VERSION.
const APIVersion = 1

// Editor is the part of the editor session scripts can drive.
type Editor interface {
	AddPrimitive(kind string) (*scene.Entity, error)
	DeleteSelected() int
	Lookup(n uint32) (*scene.Entity, error)
	Select(e *scene.Entity) bool
	SelectOnly(e *scene.Entity) bool
	ToggleSelect(e *scene.Entity) bool
	SelectAll()
	ClearSelection()
	Move(e *scene.Entity, pos mgl32.Vec3) error
	Rotate(e *scene.Entity, deg mgl32.Vec3) error
	Scale(e *scene.Entity, scale mgl32.Vec3) error
	Undo() bool
	Redo() bool
	Entities() []*scene.Entity
	Selected() []*scene.Entity
}

// Engine wraps a single gopher-lua VM. Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	ed  Editor
	log *zap.Logger
}

// NewEngine creates a Lua VM with the editor API and loads every .lua file
// in scriptsDir, in name order. A missing directory is not an error.
func NewEngine(scriptsDir string, ed Editor, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{vm: vm, ed: ed, log: log}
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
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
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

// RunFile executes a script file.
func (e *Engine) RunFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		e.log.Error("lua script error", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("run %s: %w", path, err)
	}
	return nil
}

// RunString executes a chunk of Lua source.
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		e.log.Error("lua chunk error", zap.Error(err))
		return err
	}
	return nil
}

// Hook calls the global Lua function name if a script defined one. It
// reports whether the function ran without error.
func (e *Engine) Hook(name string, args ...any) bool {
	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return false
	}
	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = toLua(a)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua hook error", zap.String("func", name), zap.Error(err))
		return false
	}
	return true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func toLua(v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case uint32:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	}
	return lua.LString(fmt.Sprint(v))
}
