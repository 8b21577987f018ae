package console

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/muesli/termenv"

	"github.com/sceneworks/sceneedit/internal/editor"
	"github.com/sceneworks/sceneedit/internal/locale"
	"github.com/sceneworks/sceneedit/internal/scene"
)

// ScriptRunner executes a script file against the session.
type ScriptRunner interface {
	RunFile(path string) error
}

// Console reads commands for one session and writes results to out.
type Console struct {
	sess    *editor.Session
	out     *termenv.Output
	reg     *Registry
	scripts ScriptRunner
	ctx     context.Context
	done    bool
}

// New returns a console for sess. scripts may be nil, disabling "run".
func New(sess *editor.Session, out io.Writer, scripts ScriptRunner) *Console {
	c := &Console{
		sess:    sess,
		out:     termenv.NewOutput(out),
		reg:     NewRegistry(),
		scripts: scripts,
		ctx:     context.Background(),
	}
	c.register()
	return c
}

// Done reports whether "quit" was entered.
func (c *Console) Done() bool { return c.done }

// Exec runs one command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	args, err := Split(line)
	if err != nil {
		return err
	}
	c.ctx = ctx
	return c.reg.Execute(args)
}

// Run reads lines from in until it is exhausted, quit is entered or ctx is
// cancelled. Command errors are printed, not returned.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	c.prompt()
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Exec(ctx, sc.Text()); err != nil {
			c.errorf("%v", err)
		}
		if c.done {
			return nil
		}
		c.prompt()
	}
	return sc.Err()
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, c.out.String("> ").Faint())
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.out, c.out.String(msg).Foreground(termenv.ANSIRed))
}

func (c *Console) info() {
	c.printf("%s", c.sess.InfoBar())
}

func (c *Console) describe(e *scene.Entity) string {
	mark := " "
	if c.sess.Registry().IsSelected(e) {
		mark = "*"
	}
	return fmt.Sprintf("%s %3d  %-14s %s", mark, e.ID.Index(), e.Name, e.Transform)
}

func (c *Console) register() {
	l := c.sess.Localizer()

	c.reg.Register("add", "add <kind>  create a primitive ("+strings.Join(c.sess.Kinds(), ", ")+")", nil,
		func(args []string) error {
			if len(args) != 1 {
				return errors.New("usage: add <kind>")
			}
			e, err := c.sess.AddPrimitive(args[0])
			if err != nil {
				return err
			}
			c.printf("%s", c.describe(e))
			return nil
		})

	c.reg.Register("delete", "delete  delete the selection", nil, func([]string) error {
		n := c.sess.DeleteSelected()
		c.printf("deleted %d", n)
		return nil
	})

	selFlags := flag.NewFlagSet("select", flag.ContinueOnError)
	toggle := selFlags.Bool("toggle", false, "toggle instead of replacing the selection")
	c.reg.Register("select", "select [-toggle] <id>...", selFlags, func(args []string) error {
		if len(args) == 0 {
			return errors.New("usage: select [-toggle] <id>...")
		}
		for i, a := range args {
			e, err := c.entity(a)
			if err != nil {
				return err
			}
			switch {
			case *toggle:
				c.sess.ToggleSelect(e)
			case i == 0:
				c.sess.SelectOnly(e)
			default:
				c.sess.Select(e)
			}
		}
		c.info()
		return nil
	})

	c.reg.Register("selectall", "selectall", nil, func([]string) error {
		c.sess.SelectAll()
		c.info()
		return nil
	})

	c.reg.Register("clear", "clear  clear the selection", nil, func([]string) error {
		c.sess.ClearSelection()
		c.info()
		return nil
	})

	c.reg.Register("move", "move <id> x y z", nil, c.transform(c.sess.Move))
	c.reg.Register("rotate", "rotate <id> x y z  (degrees)", nil, c.transform(c.sess.Rotate))
	c.reg.Register("scale", "scale <id> x y z", nil, c.transform(c.sess.Scale))

	c.reg.Register("mode", "mode translate|rotate|scale", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: mode translate|rotate|scale")
		}
		if err := c.sess.SetTransformMode(args[0]); err != nil {
			return err
		}
		c.printf("mode %s", c.sess.TransformMode())
		return nil
	})

	c.reg.Register("undo", "undo", nil, func([]string) error {
		if !c.sess.Undo() {
			c.printf("%s", l.Sprintf(locale.NothingToUndo))
			return nil
		}
		c.info()
		return nil
	})

	c.reg.Register("redo", "redo", nil, func([]string) error {
		if !c.sess.Redo() {
			c.printf("%s", l.Sprintf(locale.NothingToRedo))
			return nil
		}
		c.info()
		return nil
	})

	c.reg.Register("key", "key <chord>  press a shortcut, e.g. ctrl+z", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: key <chord>")
		}
		if !c.sess.HandleKey(args[0]) {
			c.printf("%s", l.Sprintf(locale.UnknownShortcut, args[0]))
			return nil
		}
		if args[0] == "h" && c.sess.HelpVisible() {
			c.shortcuts()
		}
		c.info()
		return nil
	})

	c.reg.Register("list", "list  list entities, * marks selected", nil, func([]string) error {
		for _, e := range c.sess.Entities() {
			c.printf("%s", c.describe(e))
		}
		c.info()
		return nil
	})

	c.reg.Register("info", "info", nil, func([]string) error {
		c.info()
		fr := c.sess.Renderer().Frame()
		c.printf("scene %q  mode %s  frame %d  drawables %d  triangles %d",
			c.sess.SceneName(), c.sess.TransformMode(), fr.Number, fr.Drawables, fr.Triangles)
		return nil
	})

	c.reg.Register("history", "history  list undo steps, > marks the cursor", nil, func([]string) error {
		h := c.sess.History()
		for i, cmd := range h.Commands() {
			mark := " "
			if i == h.Cursor() {
				mark = ">"
			}
			c.printf("%s %3d  %s", mark, i, cmd.Name())
		}
		c.printf("%d/%d", h.Len(), h.MaxSize())
		return nil
	})

	c.reg.Register("new", "new  start an empty scene", nil, func([]string) error {
		c.sess.NewScene()
		c.printf("%s", l.Sprintf(locale.SceneCleared))
		return nil
	})

	c.reg.Register("save", "save [name]", nil, func(args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		saved, err := c.sess.SaveScene(c.ctx, name)
		if err != nil {
			return err
		}
		if !saved {
			c.printf("%s", l.Sprintf(locale.SceneUnchanged, c.sess.SceneName()))
			return nil
		}
		c.printf("%s", l.Sprintf(locale.SceneSaved, c.sess.SceneName(), c.sess.Registry().Len()))
		return nil
	})

	c.reg.Register("load", "load <name>", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: load <name>")
		}
		if err := c.sess.LoadScene(c.ctx, args[0]); err != nil {
			return err
		}
		c.printf("%s", l.Sprintf(locale.SceneLoaded, c.sess.SceneName(), c.sess.Registry().Len()))
		return nil
	})

	c.reg.Register("scenes", "scenes  list saved scenes", nil, func([]string) error {
		infos, err := c.sess.Scenes(c.ctx)
		if err != nil {
			return err
		}
		for _, in := range infos {
			c.printf("%-20s %4d  %s", in.Name, in.Entities, in.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	})

	c.reg.Register("run", "run <file.lua>", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: run <file.lua>")
		}
		if c.scripts == nil {
			return errors.New("scripting is not enabled")
		}
		if err := c.scripts.RunFile(args[0]); err != nil {
			return err
		}
		c.info()
		return nil
	})

	c.reg.Register("help", "help", nil, func([]string) error {
		for _, cmd := range c.reg.Commands() {
			c.printf("  %s", cmd.Usage)
		}
		c.shortcuts()
		return nil
	})

	c.reg.Register("quit", "quit", nil, func([]string) error {
		c.done = true
		return nil
	})
}

func (c *Console) shortcuts() {
	for _, b := range c.sess.Shortcuts().List() {
		c.printf("  %-14s %s", b.Chord, b.Description)
	}
}

func (c *Console) entity(arg string) (*scene.Entity, error) {
	n, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("bad entity id %q", arg)
	}
	return c.sess.Lookup(uint32(n))
}

func (c *Console) transform(apply func(*scene.Entity, mgl32.Vec3) error) func([]string) error {
	return func(args []string) error {
		if len(args) != 4 {
			return errors.New("expected <id> x y z")
		}
		e, err := c.entity(args[0])
		if err != nil {
			return err
		}
		var v mgl32.Vec3
		for i := range 3 {
			f, err := strconv.ParseFloat(args[i+1], 32)
			if err != nil {
				return fmt.Errorf("bad number %q", args[i+1])
			}
			v[i] = float32(f)
		}
		if err := apply(e, v); err != nil {
			return err
		}
		c.printf("%s", c.describe(e))
		return nil
	}
}
