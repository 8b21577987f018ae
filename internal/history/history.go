// Package history keeps the bounded, linear undo/redo record of executed
// commands.
package history

import (
	"slices"

	"go.uber.org/zap"

	"github.com/sceneworks/sceneedit/internal/command"
)

// DefaultMaxSize is the number of commands kept when no size is given.
const DefaultMaxSize = 100

// State is what the history observer is told after every change.
type State struct {
	CanUndo bool
	CanRedo bool
}

// History records commands in execution order. Commands at indices up to and
// including the cursor are applied; those after it were undone and can be
// redone. The cursor is -1 when nothing is applied.
type History struct {
	commands []command.Command
	cursor   int
	maxSize  int
	log      *zap.Logger

	onStateChange func(State)
	onDrop        func(cmd command.Command, applied bool)
}

// New returns an empty history holding at most maxSize commands.
// A maxSize below 1 selects DefaultMaxSize.
func New(maxSize int, log *zap.Logger) *History {
	if maxSize < 1 {
		maxSize = DefaultMaxSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &History{
		commands: make([]command.Command, 0, maxSize),
		cursor:   -1,
		maxSize:  maxSize,
		log:      log,
	}
}

// OnStateChange sets the observer called after every history mutation.
func (h *History) OnStateChange(fn func(State)) {
	h.onStateChange = fn
}

// OnDrop sets the observer called for every command the history forgets:
// undone commands cut off by a new edit, the oldest command evicted when
// the record is full, and everything removed by Clear. applied tells
// whether the command's effect is still in the scene.
func (h *History) OnDrop(fn func(cmd command.Command, applied bool)) {
	h.onDrop = fn
}

// Execute applies cmd and records it after the cursor, discarding anything
// that was available for redo. When the record is full the oldest command is
// dropped and the cursor stays on the new last entry.
func (h *History) Execute(cmd command.Command) {
	if cmd == nil {
		return
	}
	cmd.Apply()

	truncated := slices.Clone(h.commands[h.cursor+1:])
	clear(h.commands[h.cursor+1:])
	h.commands = h.commands[:h.cursor+1]
	h.commands = append(h.commands, cmd)
	for _, c := range truncated {
		h.drop(c, false)
	}

	if len(h.commands) > h.maxSize {
		evicted := h.commands[0]
		h.commands = slices.Delete(h.commands, 0, 1)
		h.log.Debug("command evicted", zap.String("command", evicted.Name()))
		h.drop(evicted, true)
	} else {
		h.cursor++
	}
	h.log.Debug("command executed",
		zap.String("command", cmd.Name()),
		zap.Int("cursor", h.cursor),
		zap.Int("len", len(h.commands)))
	h.notify()
}

// Undo inverts the command at the cursor. It reports false when there is
// nothing to undo.
func (h *History) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	cmd := h.commands[h.cursor]
	cmd.Invert()
	h.cursor--
	h.log.Debug("command undone", zap.String("command", cmd.Name()), zap.Int("cursor", h.cursor))
	h.notify()
	return true
}

// Redo re-applies the command after the cursor. It reports false when there
// is nothing to redo.
func (h *History) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.cursor++
	cmd := h.commands[h.cursor]
	cmd.Apply()
	h.log.Debug("command redone", zap.String("command", cmd.Name()), zap.Int("cursor", h.cursor))
	h.notify()
	return true
}

// Clear forgets every command, oldest first.
func (h *History) Clear() {
	dropped, cursor := slices.Clone(h.commands), h.cursor
	for i, c := range dropped {
		h.drop(c, i <= cursor)
	}
	clear(h.commands)
	h.commands = h.commands[:0]
	h.cursor = -1
	h.notify()
}

// CanUndo reports whether a command is applied.
func (h *History) CanUndo() bool { return h.cursor >= 0 }

// CanRedo reports whether an undone command follows the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.commands)-1 }

// State returns both availability flags.
func (h *History) State() State {
	return State{CanUndo: h.CanUndo(), CanRedo: h.CanRedo()}
}

// Cursor returns the index of the last applied command, -1 when none is.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of recorded commands, applied or undone.
func (h *History) Len() int { return len(h.commands) }

// MaxSize returns the most commands the history keeps.
func (h *History) MaxSize() int { return h.maxSize }

// Commands returns a copy of the recorded commands, oldest first.
func (h *History) Commands() []command.Command { return slices.Clone(h.commands) }

func (h *History) drop(cmd command.Command, applied bool) {
	if h.onDrop != nil {
		h.onDrop(cmd, applied)
	}
}

func (h *History) notify() {
	if h.onStateChange != nil {
		h.onStateChange(h.State())
	}
}
