// Package scene holds the authoritative list of scene entities and the
// current selection, and defines the renderer collaborator they are shown by.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/sceneworks/sceneedit/internal/core/ecs"
)

// Transform is the position, Euler rotation (XYZ, radians) and scale of an entity.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Equal reports whether t and o are component-wise identical.
func (t Transform) Equal(o Transform) bool {
	return t.Position == o.Position && t.Rotation == o.Rotation && t.Scale == o.Scale
}

func (t Transform) String() string {
	return fmt.Sprintf("pos(%.2f %.2f %.2f) rot(%.2f %.2f %.2f) scale(%.2f %.2f %.2f)",
		t.Position[0], t.Position[1], t.Position[2],
		t.Rotation[0], t.Rotation[1], t.Rotation[2],
		t.Scale[0], t.Scale[1], t.Scale[2])
}

// Material is the surface description of an entity.
type Material struct {
	Color       uint32 // 0xRRGGBB
	Roughness   float32
	Metalness   float32
	DoubleSided bool
}

// Geometry names the mesh generator for an entity and its parameters.
type Geometry struct {
	Type   string // box, sphere, cylinder, cone, plane, torus or a polyhedron
	Params map[string]float32
}

// Param returns the named parameter, or def if unset.
func (g Geometry) Param(name string, def float32) float32 {
	if v, ok := g.Params[name]; ok {
		return v
	}
	return def
}

// Entity is one renderable object. Identity is the pointer: two entities with
// identical fields are still distinct members of a Registry.
type Entity struct {
	ID        ecs.EntityID
	Kind      string
	Name      string
	Geometry  Geometry
	Transform Transform
	Material  *Material // nil when the entity has no material state
}

func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", e.Name, e.ID.Index())
}
