// Package render implements the scene renderer without a display. It keeps
// scene membership, the manipulation handle, per-entity buffers and frame
// statistics, which is everything the editor observes of a renderer.
package render

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sceneworks/sceneedit/internal/core/ecs"
	"github.com/sceneworks/sceneedit/internal/scene"
)

var ErrUnknownMode = errors.New("render: unknown transform mode")

// Mode is the manipulation handle's transform mode.
type Mode string

const (
	Translate Mode = "translate"
	Rotate    Mode = "rotate"
	Scale     Mode = "scale"
)

// ParseMode accepts a mode name or its shortcut letter.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translate", "move", "g":
		return Translate, nil
	case "rotate", "r":
		return Rotate, nil
	case "scale", "s":
		return Scale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Group is a scene-graph node entities can be parented under.
type Group struct {
	Name string
}

// Frame summarises the most recent redraw.
type Frame struct {
	Number    uint64
	Drawables int
	Triangles int
}

// Headless is a Renderer and SceneGraph that draws nothing.
type Headless struct {
	log *zap.Logger

	root    *Group
	parents map[*scene.Entity]*Group

	meshes   *ecs.Store[Mesh]
	surfaces *ecs.Store[Surface]
	buffers  *ecs.Stores

	handle *scene.Entity
	mode   Mode
	frame  Frame
}

func NewHeadless(log *zap.Logger) *Headless {
	if log == nil {
		log = zap.NewNop()
	}
	meshes := ecs.NewStore[Mesh]()
	surfaces := ecs.NewStore[Surface]()
	return &Headless{
		log:      log,
		root:     &Group{Name: "scene"},
		parents:  make(map[*scene.Entity]*Group),
		meshes:   meshes,
		surfaces: surfaces,
		buffers:  ecs.NewStores(meshes, surfaces),
		mode:     Translate,
	}
}

func (h *Headless) Attach(e *scene.Entity) { h.handle = e }

func (h *Headless) Detach() { h.handle = nil }

// Handle returns the entity carrying the manipulation handle, or nil.
func (h *Headless) Handle() *scene.Entity { return h.handle }

func (h *Headless) AddToScene(e *scene.Entity) {
	h.AddToParent(e, h.root)
}

// AddToParent links e under parent, which must be a *Group this renderer
// returned. Anything else links e to the scene root.
func (h *Headless) AddToParent(e *scene.Entity, parent scene.Node) {
	g, ok := parent.(*Group)
	if !ok || g == nil {
		g = h.root
	}
	h.parents[e] = g
	h.upload(e)
	h.log.Debug("entity added to scene",
		zap.String("entity", e.Name),
		zap.String("parent", g.Name),
	)
}

// ParentOf returns the group e is linked under, or nil if e is not in the scene.
func (h *Headless) ParentOf(e *scene.Entity) scene.Node {
	if g, ok := h.parents[e]; ok {
		return g
	}
	return nil
}

func (h *Headless) RemoveFromScene(e *scene.Entity) {
	if _, ok := h.parents[e]; !ok {
		return
	}
	delete(h.parents, e)
	h.log.Debug("entity removed from scene", zap.String("entity", e.Name))
}

// DisposeResources frees the mesh and surface buffers of e.
func (h *Headless) DisposeResources(e *scene.Entity) {
	h.buffers.Release(e.ID)
	h.log.Debug("entity resources disposed", zap.String("entity", e.Name))
}

// Redraw counts what is in the scene and has both buffers uploaded.
func (h *Headless) Redraw() {
	h.frame.Number++
	h.frame.Drawables = 0
	h.frame.Triangles = 0
	live := make(map[ecs.EntityID]bool, len(h.parents))
	for e := range h.parents {
		live[e.ID] = true
	}
	ecs.Join(h.meshes, h.surfaces, func(id ecs.EntityID, m *Mesh, _ *Surface) {
		if live[id] {
			h.frame.Drawables++
			h.frame.Triangles += m.Triangles
		}
	})
}

// NewGroup returns a node entities can be parented under with Reparent.
func (h *Headless) NewGroup(name string) *Group {
	return &Group{Name: name}
}

// Reparent moves an entity already in the scene under g.
func (h *Headless) Reparent(e *scene.Entity, g *Group) bool {
	if _, ok := h.parents[e]; !ok {
		return false
	}
	h.parents[e] = g
	return true
}

// Root is the scene root group.
func (h *Headless) Root() *Group { return h.root }

// InScene reports whether e is linked into the scene graph.
func (h *Headless) InScene(e *scene.Entity) bool {
	_, ok := h.parents[e]
	return ok
}

// Buffers reports whether e still has uploaded buffers.
func (h *Headless) Buffers(e *scene.Entity) (Mesh, Surface, bool) {
	m, ok1 := h.meshes.Get(e.ID)
	s, ok2 := h.surfaces.Get(e.ID)
	if !ok1 || !ok2 {
		return Mesh{}, Surface{}, false
	}
	return *m, *s, true
}

func (h *Headless) Mode() Mode { return h.mode }

func (h *Headless) SetMode(m Mode) {
	h.mode = m
	h.log.Debug("transform mode", zap.String("mode", string(m)))
}

func (h *Headless) Frame() Frame { return h.frame }

// upload creates buffers for e unless they survived an earlier detach.
func (h *Headless) upload(e *scene.Entity) {
	if !h.meshes.Has(e.ID) {
		m := buildMesh(e.Geometry)
		h.meshes.Put(e.ID, &m)
	}
	if !h.surfaces.Has(e.ID) {
		s := buildSurface(e.Material)
		h.surfaces.Put(e.ID, &s)
	}
}

var (
	_ scene.Renderer   = (*Headless)(nil)
	_ scene.SceneGraph = (*Headless)(nil)
)
