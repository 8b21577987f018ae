// Package shortcut maps keyboard chords to editor actions.
package shortcut

import (
	"slices"
	"strings"
)

// Chord is a normalised key combination such as "ctrl+shift+z".
// Modifiers always appear in the order ctrl, shift, alt.
type Chord string

// Key is a raw key press.
type Key struct {
	Name  string
	Ctrl  bool
	Meta  bool // treated as ctrl
	Shift bool
	Alt   bool
}

// Chord returns the normalised chord for k.
func (k Key) Chord() Chord {
	var b strings.Builder
	if k.Ctrl || k.Meta {
		b.WriteString("ctrl+")
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	b.WriteString(strings.ToLower(k.Name))
	return Chord(b.String())
}

// Parse normalises a written chord: "Ctrl+Shift+Z", "cmd+z" and "z+ctrl"
// style input are all accepted. The last non-modifier part is the key.
func Parse(s string) Chord {
	var k Key
	for _, part := range strings.Split(strings.TrimSpace(s), "+") {
		switch p := strings.ToLower(strings.TrimSpace(part)); p {
		case "ctrl", "control":
			k.Ctrl = true
		case "meta", "cmd", "command", "super":
			k.Meta = true
		case "shift":
			k.Shift = true
		case "alt", "option":
			k.Alt = true
		case "":
		default:
			k.Name = p
		}
	}
	if k.Name == "" && strings.HasSuffix(s, "+") {
		k.Name = "+"
	}
	return k.Chord()
}

// Binding is one registered shortcut.
type Binding struct {
	Chord       Chord
	Description string
	Action      func()
}

// Map holds bindings in registration order. Registering a chord again
// replaces its action but keeps its place.
type Map struct {
	bindings []Binding
}

func NewMap() *Map {
	return &Map{}
}

// Register binds chord, which is normalised with Parse, to fn.
func (m *Map) Register(chord, description string, fn func()) {
	c := Parse(chord)
	b := Binding{Chord: c, Description: description, Action: fn}
	if i := m.index(c); i >= 0 {
		m.bindings[i] = b
		return
	}
	m.bindings = append(m.bindings, b)
}

// Handle runs the action bound to chord and reports whether there was one.
func (m *Map) Handle(chord Chord) bool {
	i := m.index(chord)
	if i < 0 {
		return false
	}
	if fn := m.bindings[i].Action; fn != nil {
		fn()
	}
	return true
}

// HandleKey runs the action for a raw key press.
func (m *Map) HandleKey(k Key) bool {
	return m.Handle(k.Chord())
}

// Lookup returns the binding for chord.
func (m *Map) Lookup(chord Chord) (Binding, bool) {
	if i := m.index(chord); i >= 0 {
		return m.bindings[i], true
	}
	return Binding{}, false
}

// List returns the bindings in registration order.
func (m *Map) List() []Binding {
	return slices.Clone(m.bindings)
}

func (m *Map) index(c Chord) int {
	return slices.IndexFunc(m.bindings, func(b Binding) bool { return b.Chord == c })
}
