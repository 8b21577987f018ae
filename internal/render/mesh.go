package render

import "github.com/sceneworks/sceneedit/internal/scene"

// Mesh is the geometry buffer kept for an entity.
type Mesh struct {
	Geometry  string
	Vertices  int
	Triangles int
}

// Surface is the material buffer kept for an entity.
type Surface struct {
	Color       uint32
	Roughness   float32
	Metalness   float32
	DoubleSided bool
}

var polyhedronFaces = map[string]int{
	"tetrahedron":  4,
	"octahedron":   8,
	"dodecahedron": 36, // 12 pentagons, 3 triangles each
	"icosahedron":  20,
}

// buildMesh sizes the buffers a non-indexed triangulation of g would need.
func buildMesh(g scene.Geometry) Mesh {
	m := Mesh{Geometry: g.Type}
	switch g.Type {
	case "box":
		m.Vertices, m.Triangles = 24, 12
	case "plane":
		m.Vertices, m.Triangles = 4, 2
	case "sphere":
		w := int(g.Param("width_segments", 32))
		h := int(g.Param("height_segments", 16))
		m.Vertices = (w + 1) * (h + 1)
		m.Triangles = w * (h - 1) * 2
	case "cylinder", "cone":
		r := int(g.Param("radial_segments", 32))
		m.Vertices = (r+1)*2 + 2*(2*r+1)
		m.Triangles = r*2 + r*2
	case "torus":
		rs := int(g.Param("radial_segments", 16))
		ts := int(g.Param("tubular_segments", 100))
		m.Vertices = (rs + 1) * (ts + 1)
		m.Triangles = rs * ts * 2
	default:
		if n, ok := polyhedronFaces[g.Type]; ok {
			m.Vertices, m.Triangles = n*3, n
		}
	}
	return m
}

func buildSurface(mat *scene.Material) Surface {
	if mat == nil {
		return Surface{Color: 0xffffff, Roughness: 1}
	}
	return Surface{
		Color:       mat.Color,
		Roughness:   mat.Roughness,
		Metalness:   mat.Metalness,
		DoubleSided: mat.DoubleSided,
	}
}
