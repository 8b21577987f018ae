package ecs

// Stores groups the per-entity stores that belong to one owner so all data
// for an entity can be released in one call.
type Stores struct {
	members []Releaser
}

func NewStores(members ...Releaser) *Stores {
	return &Stores{members: members}
}

// Track adds a store to the set.
func (s *Stores) Track(r Releaser) {
	s.members = append(s.members, r)
}

// Release drops id from every tracked store.
func (s *Stores) Release(id EntityID) {
	for _, m := range s.members {
		m.Release(id)
	}
}
