// Package editor ties the entity registry, command history, renderer and
// entity factory into one editing session.
package editor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/sceneworks/sceneedit/internal/command"
	"github.com/sceneworks/sceneedit/internal/core/event"
	"github.com/sceneworks/sceneedit/internal/data"
	"github.com/sceneworks/sceneedit/internal/factory"
	"github.com/sceneworks/sceneedit/internal/history"
	"github.com/sceneworks/sceneedit/internal/locale"
	"github.com/sceneworks/sceneedit/internal/render"
	"github.com/sceneworks/sceneedit/internal/scene"
	"github.com/sceneworks/sceneedit/internal/shortcut"
)

var ErrNoEntity = errors.New("editor: no such entity")

// Options configures a Session. The zero value is usable.
type Options struct {
	MaxHistorySize    int
	ReselectOnRestore bool
	Language          string
	Seed              int64
	Catalog           *data.PrimitiveTable // nil = built-in catalog
	Store             SceneStore           // nil disables save and load
	Log               *zap.Logger
}

// Session is one open scene and everything needed to edit it. It is driven
// from a single goroutine.
type Session struct {
	log      *zap.Logger
	reg      *scene.Registry
	hist     *history.History
	rend     *render.Headless
	factory  *factory.Factory
	bus      *event.Bus
	loc      *locale.Localizer
	keys     *shortcut.Map
	store    SceneStore
	reselect bool

	sceneName   string
	helpVisible bool
}

func New(opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	rend := render.NewHeadless(log.Named("render"))
	s := &Session{
		log:       log,
		reg:       scene.NewRegistry(rend),
		hist:      history.New(opts.MaxHistorySize, log.Named("history")),
		rend:      rend,
		factory:   factory.New(opts.Catalog, opts.Seed),
		bus:       event.NewBus(),
		loc:       locale.New(opts.Language),
		keys:      shortcut.NewMap(),
		store:     opts.Store,
		reselect:  opts.ReselectOnRestore,
		sceneName: "untitled",
	}
	s.reg.OnSelectionChange(func(sel []*scene.Entity) {
		event.Publish(s.bus, event.SelectionChanged{Selected: sel, Total: s.reg.Len()})
	})
	s.hist.OnDrop(s.dropped)
	s.hist.OnStateChange(func(st history.State) {
		event.Publish(s.bus, event.HistoryChanged{
			CanUndo: st.CanUndo,
			CanRedo: st.CanRedo,
			Cursor:  s.hist.Cursor(),
			Len:     s.hist.Len(),
		})
	})
	s.bindShortcuts()
	return s
}

func (s *Session) Registry() *scene.Registry    { return s.reg }
func (s *Session) History() *history.History    { return s.hist }
func (s *Session) Renderer() *render.Headless   { return s.rend }
func (s *Session) Factory() *factory.Factory    { return s.factory }
func (s *Session) Bus() *event.Bus              { return s.bus }
func (s *Session) Localizer() *locale.Localizer { return s.loc }
func (s *Session) Shortcuts() *shortcut.Map     { return s.keys }
func (s *Session) SceneName() string            { return s.sceneName }
func (s *Session) HelpVisible() bool            { return s.helpVisible }
func (s *Session) Selected() []*scene.Entity    { return s.reg.Selected() }
func (s *Session) Entities() []*scene.Entity    { return s.reg.Entities() }
func (s *Session) TransformMode() render.Mode   { return s.rend.Mode() }
func (s *Session) Kinds() []string              { return s.factory.Kinds() }

// Lookup finds an entity by the index part of its id, as shown to users.
func (s *Session) Lookup(n uint32) (*scene.Entity, error) {
	for _, e := range s.reg.Entities() {
		if e.ID.Index() == n {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNoEntity, n)
}

// AddPrimitive creates an entity of kind and adds it as one undo step.
func (s *Session) AddPrimitive(kind string) (*scene.Entity, error) {
	e, err := s.factory.Create(kind)
	if err != nil {
		return nil, err
	}
	cmd, err := command.NewAdd(s.reg, e)
	if err != nil {
		return nil, err
	}
	s.hist.Execute(cmd)
	return e, nil
}

// DeleteSelected removes every selected entity as one undo step and
// returns how many were removed.
func (s *Session) DeleteSelected() int {
	sel := s.reg.Selected()
	if len(sel) == 0 {
		return 0
	}
	cmd, err := command.NewDelete(s.reg, sel, command.ReselectOnRestore(s.reselect))
	if err != nil {
		s.log.Warn("delete selection", zap.Error(err))
		return 0
	}
	s.hist.Execute(cmd)
	return len(cmd.Entities())
}

// Transform moves e to after as one undo step. An unchanged transform
// records nothing.
func (s *Session) Transform(e *scene.Entity, after scene.Transform) error {
	if !s.reg.Contains(e) {
		return ErrNoEntity
	}
	if e.Transform.Equal(after) {
		return nil
	}
	cmd, err := command.NewTransformFrom(s.reg, e, after)
	if err != nil {
		return err
	}
	s.hist.Execute(cmd)
	return nil
}

// Move sets the position of e.
func (s *Session) Move(e *scene.Entity, pos mgl32.Vec3) error {
	if e == nil {
		return ErrNoEntity
	}
	t := e.Transform
	t.Position = pos
	return s.Transform(e, t)
}

// Rotate sets the Euler rotation of e, given in degrees.
func (s *Session) Rotate(e *scene.Entity, deg mgl32.Vec3) error {
	if e == nil {
		return ErrNoEntity
	}
	t := e.Transform
	t.Rotation = mgl32.Vec3{
		mgl32.DegToRad(deg[0]),
		mgl32.DegToRad(deg[1]),
		mgl32.DegToRad(deg[2]),
	}
	return s.Transform(e, t)
}

// Scale sets the scale of e.
func (s *Session) Scale(e *scene.Entity, scale mgl32.Vec3) error {
	if e == nil {
		return ErrNoEntity
	}
	t := e.Transform
	t.Scale = scale
	return s.Transform(e, t)
}

func (s *Session) Select(e *scene.Entity) bool       { return s.reg.Select(e) }
func (s *Session) SelectOnly(e *scene.Entity) bool   { return s.reg.SelectOnly(e) }
func (s *Session) ToggleSelect(e *scene.Entity) bool { return s.reg.ToggleSelect(e) }
func (s *Session) SelectAll()                        { s.reg.SelectAll() }
func (s *Session) ClearSelection()                   { s.reg.ClearSelection() }

// SetTransformMode switches the manipulation handle between translate,
// rotate and scale.
func (s *Session) SetTransformMode(mode string) error {
	m, err := render.ParseMode(mode)
	if err != nil {
		return err
	}
	s.rend.SetMode(m)
	return nil
}

func (s *Session) Undo() bool { return s.hist.Undo() }
func (s *Session) Redo() bool { return s.hist.Redo() }

// ToggleHelp flips the shortcut help visibility and returns the new state.
func (s *Session) ToggleHelp() bool {
	s.helpVisible = !s.helpVisible
	return s.helpVisible
}

// InfoBar returns the localised object and selection counts.
func (s *Session) InfoBar() string {
	return s.loc.Sprintf(locale.InfoBar, s.reg.Len(), len(s.reg.Selected()))
}

// NewScene disposes every entity, including those only reachable through
// undo, and starts an empty history.
func (s *Session) NewScene() {
	s.reset()
	s.sceneName = "untitled"
	s.log.Info("new scene")
	event.Publish(s.bus, event.SceneReplaced{Name: s.sceneName})
}

func (s *Session) reset() {
	live := s.reg.Entities()
	s.hist.Clear()
	s.reg.RemoveEntities(live)
	s.factory.Release(live...)
	s.factory.Reset()
}

// dropped frees entities that only the forgotten command could have brought
// back: the entity of an undone add, and those of an applied delete.
func (s *Session) dropped(cmd command.Command, applied bool) {
	var orphans []*scene.Entity
	switch c := cmd.(type) {
	case *command.AddCommand:
		if !applied {
			orphans = append(orphans, c.Entity())
		}
	case *command.DeleteCommand:
		if applied {
			orphans = c.Entities()
		}
	}
	for _, e := range orphans {
		if s.reg.Contains(e) {
			continue
		}
		s.rend.DisposeResources(e)
		s.factory.Release(e)
		s.log.Debug("entity freed", zap.String("entity", e.Name), zap.String("command", cmd.Name()))
	}
}
