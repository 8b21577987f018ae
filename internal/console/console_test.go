package console_test

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sceneworks/sceneedit/internal/console"
	"github.com/sceneworks/sceneedit/internal/editor"
)

type fakeScripts struct {
	ran []string
	err error
}

func (f *fakeScripts) RunFile(path string) error {
	f.ran = append(f.ran, path)
	return f.err
}

func newConsole(t *testing.T) (*console.Console, *editor.Session, *bytes.Buffer, *fakeScripts) {
	t.Helper()
	sess := editor.New(editor.Options{Language: "en", Seed: 1})
	var out bytes.Buffer
	scripts := &fakeScripts{}
	return console.New(sess, &out, scripts), sess, &out, scripts
}

func TestSplit(t *testing.T) {
	args, err := console.Split(`save "my scene"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"save", "my scene"}, args)
}

func TestAddMoveUndo(t *testing.T) {
	c, sess, out, _ := newConsole(t)
	ctx := context.Background()

	require.NoError(t, c.Exec(ctx, "add cube"))
	require.NoError(t, c.Exec(ctx, "add sphere"))
	cube := sess.Entities()[0]
	id := cube.ID.Index()

	require.NoError(t, c.Exec(ctx, "move "+itoa(id)+" 1 -2.5 3"))
	assert.Equal(t, mgl32.Vec3{1, -2.5, 3}, cube.Transform.Position)

	require.NoError(t, c.Exec(ctx, "undo"))
	assert.Equal(t, mgl32.Vec3{}, cube.Transform.Position)
	assert.Contains(t, out.String(), "Objects: 2 | Selected: 1")

	require.NoError(t, c.Exec(ctx, "undo"))
	require.NoError(t, c.Exec(ctx, "undo"))
	out.Reset()
	require.NoError(t, c.Exec(ctx, "undo"))
	assert.Contains(t, out.String(), "Nothing to undo")

	assert.Error(t, c.Exec(ctx, "move 1 2 3"))
	assert.Error(t, c.Exec(ctx, "move x 1 2 3"))
	assert.Error(t, c.Exec(ctx, "add teapot"))
}

func TestSelectAndDelete(t *testing.T) {
	c, sess, _, _ := newConsole(t)
	ctx := context.Background()
	for _, k := range []string{"cube", "cone", "torus"} {
		require.NoError(t, c.Exec(ctx, "add "+k))
	}
	es := sess.Entities()

	require.NoError(t, c.Exec(ctx, "select "+itoa(es[0].ID.Index())+" "+itoa(es[2].ID.Index())))
	assert.Len(t, sess.Selected(), 2)
	require.NoError(t, c.Exec(ctx, "select -toggle "+itoa(es[0].ID.Index())))
	assert.Len(t, sess.Selected(), 1)
	require.NoError(t, c.Exec(ctx, "select "+itoa(es[1].ID.Index())))
	assert.Len(t, sess.Selected(), 1, "toggle flag does not stick")

	require.NoError(t, c.Exec(ctx, "selectall"))
	require.NoError(t, c.Exec(ctx, "delete"))
	assert.Equal(t, 0, sess.Registry().Len())
	require.NoError(t, c.Exec(ctx, "key ctrl+z"))
	assert.Equal(t, 3, sess.Registry().Len())

	assert.ErrorIs(t, c.Exec(ctx, "select 999"), editor.ErrNoEntity)
}

func TestModeHistoryAndHelp(t *testing.T) {
	c, sess, out, _ := newConsole(t)
	ctx := context.Background()

	require.NoError(t, c.Exec(ctx, "mode rotate"))
	assert.Equal(t, "rotate", string(sess.TransformMode()))
	assert.Error(t, c.Exec(ctx, "mode shear"))

	require.NoError(t, c.Exec(ctx, "add cube"))
	require.NoError(t, c.Exec(ctx, "add plane"))
	out.Reset()
	require.NoError(t, c.Exec(ctx, "history"))
	assert.Contains(t, out.String(), ">   1  Add Object")
	assert.Contains(t, out.String(), "2/100")

	out.Reset()
	require.NoError(t, c.Exec(ctx, "help"))
	assert.Contains(t, out.String(), "move <id> x y z")
	assert.Contains(t, out.String(), "ctrl+shift+z")

	err := c.Exec(ctx, "fly")
	assert.ErrorIs(t, err, console.ErrUnknownCommand)
}

func TestRunScriptAndSaveWithoutStore(t *testing.T) {
	c, _, _, scripts := newConsole(t)
	ctx := context.Background()

	require.NoError(t, c.Exec(ctx, "run scripts/grid.lua"))
	assert.Equal(t, []string{"scripts/grid.lua"}, scripts.ran)
	scripts.err = errors.New("boom")
	assert.EqualError(t, c.Exec(ctx, "run x.lua"), "boom")

	assert.ErrorIs(t, c.Exec(ctx, "save test"), editor.ErrNoStore)
}

func TestRunLoop(t *testing.T) {
	c, sess, out, _ := newConsole(t)
	in := strings.NewReader("add cube\nbogus\nlist\nquit\nadd sphere\n")

	require.NoError(t, c.Run(context.Background(), in))
	assert.True(t, c.Done())
	assert.Equal(t, 1, sess.Registry().Len(), "lines after quit are not read")
	assert.Contains(t, out.String(), "unknown command: bogus")
	assert.Contains(t, out.String(), "Cube 1")
}

func itoa(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
