package command

import "github.com/sceneworks/sceneedit/internal/scene"

// AddCommand puts one entity at the end of the registry and selects only it.
type AddCommand struct {
	reg    *scene.Registry
	entity *scene.Entity
}

func NewAdd(reg *scene.Registry, e *scene.Entity) (*AddCommand, error) {
	if reg == nil || e == nil {
		return nil, ErrUnbound
	}
	return &AddCommand{reg: reg, entity: e}, nil
}

func (c *AddCommand) Name() string { return "Add Object" }

// Entity returns the entity the command adds.
func (c *AddCommand) Entity() *scene.Entity { return c.entity }

func (c *AddCommand) Apply() {
	if c.reg == nil {
		unbound("AddCommand", "Apply")
	}
	c.reg.AddEntity(c.entity)
}

func (c *AddCommand) Invert() {
	if c.reg == nil {
		unbound("AddCommand", "Invert")
	}
	c.reg.Detach(c.entity)
}

var _ Command = (*AddCommand)(nil)
