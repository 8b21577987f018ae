// Package command implements the reversible scene edits recorded by the
// undo history.
package command

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbound is returned when a command is constructed without a registry or target.
	ErrUnbound = errors.New("command: nil registry or entity")
	// ErrNoTargets is returned when a delete is constructed with no entities.
	ErrNoTargets = errors.New("command: no entities to delete")
)

// Command is one reversible edit. Everything Apply and Invert need is
// captured when the command is built, so either may run any number of times
// in alternation. Invert leaves the registry, renderer and entity exactly as
// they were before the first Apply.
type Command interface {
	// Name is the user-facing label of the edit.
	Name() string
	Apply()
	Invert()
}

// unbound panics on a zero-value command. Calling one is a programming error.
func unbound(name, op string) {
	panic(fmt.Sprintf("command: %s called on unbound %s", op, name))
}
