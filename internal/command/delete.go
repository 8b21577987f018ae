package command

import (
	"fmt"

	"github.com/sceneworks/sceneedit/internal/scene"
)

// DeleteCommand removes a batch of entities as one undo step. Undo puts every
// entity back at the index it had when the command was built.
type DeleteCommand struct {
	reg      *scene.Registry
	targets  []scene.Placement
	reselect bool
}

// DeleteOption configures a DeleteCommand.
type DeleteOption func(*DeleteCommand)

// ReselectOnRestore makes undo select the restored entities. By default the
// selection is left alone.
func ReselectOnRestore(on bool) DeleteOption {
	return func(c *DeleteCommand) { c.reselect = on }
}

// NewDelete records the position and scene linkage of each entity in es.
// Repeated entities are recorded once and entities absent from the registry
// are ignored.
func NewDelete(reg *scene.Registry, es []*scene.Entity, opts ...DeleteOption) (*DeleteCommand, error) {
	if reg == nil {
		return nil, ErrUnbound
	}
	if len(es) == 0 {
		return nil, ErrNoTargets
	}
	c := &DeleteCommand{reg: reg, targets: make([]scene.Placement, 0, len(es))}
	graph, _ := reg.Renderer().(scene.SceneGraph)
	seen := make(map[*scene.Entity]bool, len(es))
	for _, e := range es {
		if e == nil {
			return nil, ErrUnbound
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		p := scene.Placement{Entity: e, Index: reg.IndexOf(e)}
		if p.Index < 0 {
			// not in the registry: nothing to remove or restore
			continue
		}
		if graph != nil {
			p.Parent = graph.ParentOf(e)
		}
		c.targets = append(c.targets, p)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *DeleteCommand) Name() string {
	if len(c.targets) > 1 {
		return fmt.Sprintf("Delete %d Objects", len(c.targets))
	}
	return "Delete Object"
}

// Entities returns the deleted entities in the order given to NewDelete.
func (c *DeleteCommand) Entities() []*scene.Entity {
	out := make([]*scene.Entity, len(c.targets))
	for i, p := range c.targets {
		out[i] = p.Entity
	}
	return out
}

func (c *DeleteCommand) Apply() {
	if c.reg == nil {
		unbound("DeleteCommand", "Apply")
	}
	c.reg.Detach(c.Entities()...)
}

func (c *DeleteCommand) Invert() {
	if c.reg == nil {
		unbound("DeleteCommand", "Invert")
	}
	c.reg.Restore(c.targets, c.reselect)
}

var _ Command = (*DeleteCommand)(nil)
