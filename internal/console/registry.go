// Package console is the line-oriented command interface to an editor
// session.
package console

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/mattn/go-shellwords"
)

var ErrUnknownCommand = errors.New("console: unknown command")

// Command is a subcommand with its own flags. Run receives the positional
// arguments left after the flags are parsed.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. A nil fs gets an empty flag set.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
	}
	fs.SetOutput(io.Discard)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Split tokenises a line the way a shell would, honouring quotes.
func Split(line string) ([]string, error) {
	return shellwords.Parse(line)
}

// Execute runs the subcommand in args[0]. Flags are reset to their defaults
// before each parse.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	hasFlags := false
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		hasFlags = true
		_ = f.Value.Set(f.DefValue)
	})
	if !hasFlags {
		// negative numbers are arguments, not flags
		return cmd.Run(args[1:])
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// Commands returns every subcommand sorted by name.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.cmds))
	for _, c := range r.cmds {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
