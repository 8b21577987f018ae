package command

import "github.com/sceneworks/sceneedit/internal/scene"

// TransformCommand switches one entity between two transform snapshots.
// Consecutive edits of the same entity are never merged; a drag should be
// submitted as one command built from its start and end transforms.
type TransformCommand struct {
	reg    *scene.Registry
	entity *scene.Entity
	before scene.Transform
	after  scene.Transform
}

func NewTransform(reg *scene.Registry, e *scene.Entity, before, after scene.Transform) (*TransformCommand, error) {
	if reg == nil || e == nil {
		return nil, ErrUnbound
	}
	return &TransformCommand{reg: reg, entity: e, before: before, after: after}, nil
}

// NewTransformFrom takes the entity's current transform as the before snapshot.
func NewTransformFrom(reg *scene.Registry, e *scene.Entity, after scene.Transform) (*TransformCommand, error) {
	if e == nil {
		return nil, ErrUnbound
	}
	return NewTransform(reg, e, e.Transform, after)
}

func (c *TransformCommand) Name() string { return "Transform Object" }

func (c *TransformCommand) Entity() *scene.Entity { return c.entity }

func (c *TransformCommand) Apply() {
	if c.reg == nil {
		unbound("TransformCommand", "Apply")
	}
	c.entity.Transform = c.after
	c.reg.Touch(c.entity)
}

func (c *TransformCommand) Invert() {
	if c.reg == nil {
		unbound("TransformCommand", "Invert")
	}
	c.entity.Transform = c.before
	c.reg.Touch(c.entity)
}

var _ Command = (*TransformCommand)(nil)
