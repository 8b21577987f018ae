package scene

// Renderer is the display collaborator the registry drives. Calls are
// fire-and-forget; none of them may call back into the registry.
type Renderer interface {
	// Attach puts the transform-manipulation handle on e.
	Attach(e *Entity)
	// Detach removes the transform-manipulation handle from whatever it is on.
	Detach()
	AddToScene(e *Entity)
	RemoveFromScene(e *Entity)
	// DisposeResources frees geometry and material buffers held for e.
	DisposeResources(e *Entity)
	Redraw()
}

// Node is the renderer-owned scene-graph linkage of an entity.
// The registry stores it but never inspects it.
type Node any

// SceneGraph is implemented by renderers that parent entities under scene
// nodes. Without it, entities are always added to the scene root.
type SceneGraph interface {
	ParentOf(e *Entity) Node
	AddToParent(e *Entity, parent Node)
}

// NopRenderer ignores every call.
type NopRenderer struct{}

func (NopRenderer) Attach(*Entity)           {}
func (NopRenderer) Detach()                  {}
func (NopRenderer) AddToScene(*Entity)       {}
func (NopRenderer) RemoveFromScene(*Entity)  {}
func (NopRenderer) DisposeResources(*Entity) {}
func (NopRenderer) Redraw()                  {}

var _ Renderer = NopRenderer{}
