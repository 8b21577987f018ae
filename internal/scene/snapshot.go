package scene

import "time"

// EntityState is the persistent part of an entity. Ids and renderer
// linkage are not saved.
type EntityState struct {
	Kind      string
	Name      string
	Transform Transform
	Material  Material
}

// Snapshot is a named copy of the entity list in order.
type Snapshot struct {
	Name     string
	Entities []EntityState
}

// SceneInfo describes a stored snapshot.
type SceneInfo struct {
	Name      string
	Entities  int
	UpdatedAt time.Time
}

// Capture copies the registry's entities into a snapshot.
func (r *Registry) Capture(name string) Snapshot {
	s := Snapshot{Name: name, Entities: make([]EntityState, 0, len(r.entities))}
	for _, e := range r.entities {
		st := EntityState{Kind: e.Kind, Name: e.Name, Transform: e.Transform}
		if e.Material != nil {
			st.Material = *e.Material
		}
		s.Entities = append(s.Entities, st)
	}
	return s
}
