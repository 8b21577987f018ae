package scene

import (
	"slices"
	"sort"

	"github.com/sceneworks/sceneedit/internal/core/ecs"
)

// Placement records where an entity sat in the registry so it can be put back.
type Placement struct {
	Entity *Entity
	Index  int  // position in the entity list, -1 when unknown
	Parent Node // renderer linkage, nil for the scene root
}

// Registry owns the ordered entity list and the selection set. The selection
// is always a subset of the entity list. Membership is by pointer identity.
//
// A Registry is used from a single goroutine; it does no locking.
type Registry struct {
	renderer Renderer
	entities []*Entity
	selected []*Entity // insertion ordered
	active   *Entity   // entity the manipulation handle is attached to

	onSelectionChange func(selected []*Entity)
}

// NewRegistry returns an empty registry drawing through r. A nil r is
// replaced by NopRenderer.
func NewRegistry(r Renderer) *Registry {
	if r == nil {
		r = NopRenderer{}
	}
	return &Registry{renderer: r}
}

// OnSelectionChange sets the observer called with the selected entities
// after every selection change.
func (r *Registry) OnSelectionChange(fn func(selected []*Entity)) {
	r.onSelectionChange = fn
}

func (r *Registry) Renderer() Renderer { return r.renderer }

func (r *Registry) Len() int { return len(r.entities) }

// Entities returns a copy of the entity list in order.
func (r *Registry) Entities() []*Entity { return slices.Clone(r.entities) }

// Selected returns a copy of the selection in selection order.
func (r *Registry) Selected() []*Entity { return slices.Clone(r.selected) }

// Active returns the entity carrying the manipulation handle, or nil.
func (r *Registry) Active() *Entity { return r.active }

// IndexOf returns the position of e in the entity list, or -1.
func (r *Registry) IndexOf(e *Entity) int { return slices.Index(r.entities, e) }

func (r *Registry) Contains(e *Entity) bool { return r.IndexOf(e) >= 0 }

func (r *Registry) IsSelected(e *Entity) bool { return slices.Contains(r.selected, e) }

// Find returns the entity with the given id, or nil.
func (r *Registry) Find(id ecs.EntityID) *Entity {
	for _, e := range r.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// AddEntity appends e, puts it in the scene and makes it the only selection.
// Adding an entity that is already present duplicates it.
func (r *Registry) AddEntity(e *Entity) {
	r.entities = append(r.entities, e)
	r.renderer.AddToScene(e)
	r.selected = append(r.selected[:0], e)
	r.attach(e)
	r.notify()
	r.renderer.Redraw()
}

// RemoveEntities removes each of es from the scene for good, disposing its
// renderer resources. Entities not present are skipped.
func (r *Registry) RemoveEntities(es []*Entity) {
	removed, lostActive := 0, false
	for _, e := range es {
		if !r.Contains(e) {
			continue
		}
		if r.active == e {
			lostActive = true
		}
		r.renderer.DisposeResources(e)
		r.renderer.RemoveFromScene(e)
		r.unlink(e)
		removed++
	}
	if removed == 0 {
		return
	}
	if lostActive {
		if len(r.selected) > 0 {
			r.attach(r.selected[0])
		} else {
			r.renderer.Detach()
			r.active = nil
		}
	}
	r.notify()
	r.renderer.Redraw()
}

// Detach takes es out of the entity list and the scene without disposing
// anything, so they can be restored later. It returns where each entity sat,
// with Index -1 for entities that were not present.
func (r *Registry) Detach(es ...*Entity) []Placement {
	out := make([]Placement, 0, len(es))
	for _, e := range es {
		p := Placement{Entity: e, Index: r.IndexOf(e)}
		if g, ok := r.renderer.(SceneGraph); ok {
			p.Parent = g.ParentOf(e)
		}
		r.renderer.RemoveFromScene(e)
		r.unlink(e)
		out = append(out, p)
	}
	r.renderer.Detach()
	r.active = nil
	r.notify()
	r.renderer.Redraw()
	return out
}

// Restore puts entities back at their recorded positions, lowest index first
// so a batch comes back in its original order. An index that no longer fits
// the list appends instead. With reselect the restored entities become the
// selection; otherwise the selection is left as it is.
func (r *Registry) Restore(ps []Placement, reselect bool) {
	ordered := slices.Clone(ps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})
	for _, p := range ordered {
		if p.Index >= 0 && p.Index <= len(r.entities) {
			r.entities = slices.Insert(r.entities, p.Index, p.Entity)
		} else {
			r.entities = append(r.entities, p.Entity)
		}
		g, ok := r.renderer.(SceneGraph)
		if ok && p.Parent != nil {
			g.AddToParent(p.Entity, p.Parent)
		} else {
			r.renderer.AddToScene(p.Entity)
		}
	}
	if reselect && len(ps) > 0 {
		r.selected = r.selected[:0]
		for _, p := range ps {
			if !slices.Contains(r.selected, p.Entity) {
				r.selected = append(r.selected, p.Entity)
			}
		}
		r.attach(r.selected[len(r.selected)-1])
		r.notify()
	}
	r.renderer.Redraw()
}

// Touch redraws the whole scene after an entity changed in place.
func (r *Registry) Touch(*Entity) {
	r.renderer.Redraw()
}

// Select adds e to the selection and moves the handle onto it. It reports
// false, changing nothing, when e is not in the registry.
func (r *Registry) Select(e *Entity) bool {
	if !r.Contains(e) {
		return false
	}
	if !r.IsSelected(e) {
		r.selected = append(r.selected, e)
	}
	r.attach(e)
	r.notify()
	r.renderer.Redraw()
	return true
}

// SelectOnly replaces the selection with e.
func (r *Registry) SelectOnly(e *Entity) bool {
	if !r.Contains(e) {
		return false
	}
	r.selected = append(r.selected[:0], e)
	r.attach(e)
	r.notify()
	r.renderer.Redraw()
	return true
}

// ToggleSelect flips the selection state of e. When e leaves the selection
// the handle moves to the first remaining selected entity.
func (r *Registry) ToggleSelect(e *Entity) bool {
	if i := slices.Index(r.selected, e); i >= 0 {
		r.selected = slices.Delete(r.selected, i, i+1)
		if len(r.selected) == 0 {
			r.renderer.Detach()
			r.active = nil
		} else {
			r.attach(r.selected[0])
		}
	} else {
		if !r.Contains(e) {
			return false
		}
		r.selected = append(r.selected, e)
		r.attach(e)
	}
	r.notify()
	r.renderer.Redraw()
	return true
}

// SelectAll selects every entity in list order with the handle on the first.
func (r *Registry) SelectAll() {
	r.selected = append(r.selected[:0], r.entities...)
	if len(r.entities) > 0 {
		r.attach(r.entities[0])
	} else {
		r.renderer.Detach()
		r.active = nil
	}
	r.notify()
	r.renderer.Redraw()
}

func (r *Registry) ClearSelection() {
	r.selected = r.selected[:0]
	r.renderer.Detach()
	r.active = nil
	r.notify()
	r.renderer.Redraw()
}

func (r *Registry) attach(e *Entity) {
	r.renderer.Attach(e)
	r.active = e
}

// unlink drops the first occurrence of e from the entity list and the selection.
func (r *Registry) unlink(e *Entity) {
	if i := slices.Index(r.entities, e); i >= 0 {
		r.entities = slices.Delete(r.entities, i, i+1)
	}
	if i := slices.Index(r.selected, e); i >= 0 {
		r.selected = slices.Delete(r.selected, i, i+1)
	}
	if r.active == e {
		r.active = nil
	}
}

func (r *Registry) notify() {
	if r.onSelectionChange != nil {
		r.onSelectionChange(r.Selected())
	}
}
