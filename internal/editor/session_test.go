package editor_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sceneworks/sceneedit/internal/core/event"
	"github.com/sceneworks/sceneedit/internal/editor"
	"github.com/sceneworks/sceneedit/internal/render"
	"github.com/sceneworks/sceneedit/internal/scene"
)

var errMissing = errors.New("missing")

type memStore struct {
	scenes map[string]scene.Snapshot
}

func newMemStore() *memStore { return &memStore{scenes: map[string]scene.Snapshot{}} }

func (m *memStore) Save(_ context.Context, snap scene.Snapshot) (bool, error) {
	if old, ok := m.scenes[snap.Name]; ok && reflect.DeepEqual(old, snap) {
		return false, nil
	}
	m.scenes[snap.Name] = snap
	return true, nil
}

func (m *memStore) Load(_ context.Context, name string) (scene.Snapshot, error) {
	snap, ok := m.scenes[name]
	if !ok {
		return scene.Snapshot{}, errMissing
	}
	return snap, nil
}

func (m *memStore) List(context.Context) ([]scene.SceneInfo, error) {
	var out []scene.SceneInfo
	for name, s := range m.scenes {
		out = append(out, scene.SceneInfo{Name: name, Entities: len(s.Entities)})
	}
	return out, nil
}

func newSession(t *testing.T, opts editor.Options) *editor.Session {
	t.Helper()
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	return editor.New(opts)
}

func TestAddUndoRedo(t *testing.T) {
	s := newSession(t, editor.Options{})

	cube, err := s.AddPrimitive("cube")
	require.NoError(t, err)
	sphere, err := s.AddPrimitive("sphere")
	require.NoError(t, err)
	assert.Equal(t, []*scene.Entity{cube, sphere}, s.Entities())
	assert.Equal(t, []*scene.Entity{sphere}, s.Selected())

	assert.True(t, s.Undo())
	assert.Equal(t, []*scene.Entity{cube}, s.Entities())
	assert.Empty(t, s.Selected())

	assert.True(t, s.Redo())
	assert.Equal(t, []*scene.Entity{cube, sphere}, s.Entities())
	assert.Equal(t, []*scene.Entity{sphere}, s.Selected())
	assert.False(t, s.Redo())

	_, err = s.AddPrimitive("teapot")
	assert.Error(t, err)
	assert.Equal(t, 2, s.History().Len())
}

func TestDeleteSelectedIsOneStep(t *testing.T) {
	s := newSession(t, editor.Options{})
	a, _ := s.AddPrimitive("cube")
	b, _ := s.AddPrimitive("cone")
	c, _ := s.AddPrimitive("torus")

	assert.Equal(t, 0, func() int { s.ClearSelection(); return s.DeleteSelected() }())

	s.SelectOnly(a)
	s.Select(c)
	assert.Equal(t, 2, s.DeleteSelected())
	assert.Equal(t, []*scene.Entity{b}, s.Entities())
	assert.Equal(t, 4, s.History().Len())

	require.True(t, s.Undo())
	assert.Equal(t, []*scene.Entity{a, b, c}, s.Entities())
	assert.Empty(t, s.Selected())
}

func TestDeleteReselectOption(t *testing.T) {
	s := newSession(t, editor.Options{ReselectOnRestore: true})
	a, _ := s.AddPrimitive("cube")
	s.DeleteSelected()
	s.Undo()
	assert.Equal(t, []*scene.Entity{a}, s.Selected())
	assert.Same(t, a, s.Renderer().Handle())
}

func TestTransformOps(t *testing.T) {
	s := newSession(t, editor.Options{})
	e, _ := s.AddPrimitive("cube")

	require.NoError(t, s.Move(e, mgl32.Vec3{1, 2, 3}))
	require.NoError(t, s.Rotate(e, mgl32.Vec3{90, 0, 0}))
	require.NoError(t, s.Scale(e, mgl32.Vec3{2, 2, 2}))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, e.Transform.Position)
	assert.InDelta(t, mgl32.DegToRad(90), e.Transform.Rotation[0], 1e-6)
	assert.Equal(t, 4, s.History().Len())

	require.NoError(t, s.Move(e, mgl32.Vec3{1, 2, 3}))
	assert.Equal(t, 4, s.History().Len(), "unchanged transform records nothing")

	s.Undo()
	s.Undo()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, e.Transform.Rotation)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, e.Transform.Position)

	assert.ErrorIs(t, s.Move(nil, mgl32.Vec3{}), editor.ErrNoEntity)
	found, err := s.Lookup(e.ID.Index())
	require.NoError(t, err)
	assert.Same(t, e, found)
	_, err = s.Lookup(999)
	assert.ErrorIs(t, err, editor.ErrNoEntity)
}

func TestEventsAndInfoBar(t *testing.T) {
	s := newSession(t, editor.Options{})
	var sel []event.SelectionChanged
	var hist []event.HistoryChanged
	event.Subscribe(s.Bus(), func(ev event.SelectionChanged) { sel = append(sel, ev) })
	event.Subscribe(s.Bus(), func(ev event.HistoryChanged) { hist = append(hist, ev) })

	s.AddPrimitive("cube")
	s.AddPrimitive("plane")
	require.NotEmpty(t, sel)
	assert.Equal(t, 2, sel[len(sel)-1].Total)
	require.Len(t, hist, 2)
	assert.Equal(t, event.HistoryChanged{CanUndo: true, CanRedo: false, Cursor: 1, Len: 2}, hist[1])

	s.Undo()
	assert.Equal(t, event.HistoryChanged{CanUndo: true, CanRedo: true, Cursor: 0, Len: 2}, hist[2])

	assert.Equal(t, "Objects: 1 | Selected: 0", s.InfoBar())
	s.SelectAll()
	assert.Equal(t, "Objects: 1 | Selected: 1", s.InfoBar())

	ja := editor.New(editor.Options{Language: "ja", Seed: 1})
	assert.Equal(t, "オブジェクト数: 0 | 選択中: 0", ja.InfoBar())
}

func TestShortcuts(t *testing.T) {
	s := newSession(t, editor.Options{})

	assert.True(t, s.HandleKey("1"))
	assert.True(t, s.HandleKey("2"))
	require.Equal(t, 2, s.Registry().Len())
	assert.Equal(t, "cube", s.Entities()[0].Kind)
	assert.Equal(t, "sphere", s.Entities()[1].Kind)

	assert.True(t, s.HandleKey("r"))
	assert.Equal(t, render.Rotate, s.TransformMode())

	assert.True(t, s.HandleKey("a"))
	assert.Len(t, s.Selected(), 2)
	assert.True(t, s.HandleKey("Delete"))
	assert.Equal(t, 0, s.Registry().Len())

	assert.True(t, s.HandleKey("Ctrl+Z"))
	assert.Equal(t, 2, s.Registry().Len())
	assert.True(t, s.HandleKey("ctrl+z"))
	assert.True(t, s.HandleKey("ctrl+shift+z"))
	assert.True(t, s.HandleKey("escape"))
	assert.Empty(t, s.Selected())

	assert.False(t, s.HelpVisible())
	assert.True(t, s.HandleKey("h"))
	assert.True(t, s.HelpVisible())

	assert.False(t, s.HandleKey("ctrl+q"))
	assert.Len(t, s.Shortcuts().List(), 16)
	assert.Error(t, s.SetTransformMode("shear"))
}

func TestNewSceneDisposesEverything(t *testing.T) {
	s := newSession(t, editor.Options{})
	a, _ := s.AddPrimitive("cube")
	s.AddPrimitive("sphere")
	s.DeleteSelected()

	var replaced []event.SceneReplaced
	event.Subscribe(s.Bus(), func(ev event.SceneReplaced) { replaced = append(replaced, ev) })

	s.NewScene()
	assert.Equal(t, 0, s.Registry().Len())
	assert.Equal(t, 0, s.History().Len())
	assert.False(t, s.Undo())
	assert.Equal(t, 0, s.Factory().Live())
	_, _, ok := s.Renderer().Buffers(a)
	assert.False(t, ok)
	require.Len(t, replaced, 1)

	e, _ := s.AddPrimitive("cube")
	assert.Equal(t, "Cube 1", e.Name)
}

func TestRedoBranchCutFreesUndoneAdd(t *testing.T) {
	s := newSession(t, editor.Options{})
	cube, err := s.AddPrimitive("cube")
	require.NoError(t, err)
	require.True(t, s.Undo())
	_, err = s.AddPrimitive("sphere")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Factory().Live())
	_, _, ok := s.Renderer().Buffers(cube)
	assert.False(t, ok, "cube can no longer be redone")

	s.NewScene()
	assert.Equal(t, 0, s.Factory().Live())
}

func TestEvictedDeleteFreesEntities(t *testing.T) {
	s := newSession(t, editor.Options{MaxHistorySize: 2})
	a, err := s.AddPrimitive("cube")
	require.NoError(t, err)
	require.Equal(t, 1, s.DeleteSelected())
	s.AddPrimitive("sphere")
	_, _, ok := s.Renderer().Buffers(a)
	assert.True(t, ok, "delete is still undoable")

	s.AddPrimitive("torus")
	assert.Equal(t, 2, s.History().Len())
	assert.Equal(t, 2, s.Factory().Live())
	_, _, ok = s.Renderer().Buffers(a)
	assert.False(t, ok)

	s.NewScene()
	assert.Equal(t, 0, s.Factory().Live())
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := newSession(t, editor.Options{Store: store})

	a, _ := s.AddPrimitive("cube")
	s.Move(a, mgl32.Vec3{4, 0, 0})
	s.AddPrimitive("plane")

	saved, err := s.SaveScene(ctx, "level1")
	require.NoError(t, err)
	assert.True(t, saved)
	saved, err = s.SaveScene(ctx, "")
	require.NoError(t, err)
	assert.False(t, saved, "second save of the same scene is skipped")
	assert.Equal(t, "level1", s.SceneName())

	s.NewScene()
	require.NoError(t, s.LoadScene(ctx, "level1"))
	require.Equal(t, 2, s.Registry().Len())
	loaded := s.Entities()
	assert.Equal(t, "Cube 1", loaded[0].Name)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, loaded[0].Transform.Position)
	assert.Equal(t, "plane", loaded[1].Kind)
	assert.True(t, loaded[1].Material.DoubleSided)
	assert.Empty(t, s.Selected())
	assert.False(t, s.History().CanUndo())

	err = s.LoadScene(ctx, "nope")
	assert.ErrorIs(t, err, errMissing)
	assert.Equal(t, 2, s.Registry().Len(), "failed load keeps the scene")

	infos, err := s.Scenes(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 2, infos[0].Entities)
}

func TestNoStore(t *testing.T) {
	s := newSession(t, editor.Options{})
	ctx := context.Background()
	_, err := s.SaveScene(ctx, "x")
	assert.ErrorIs(t, err, editor.ErrNoStore)
	assert.ErrorIs(t, s.LoadScene(ctx, "x"), editor.ErrNoStore)
	_, err = s.Scenes(ctx)
	assert.ErrorIs(t, err, editor.ErrNoStore)
}
