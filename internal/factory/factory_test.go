package factory_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sceneworks/sceneedit/internal/data"
	"github.com/sceneworks/sceneedit/internal/factory"
	"github.com/sceneworks/sceneedit/internal/scene"
)

func TestCreateNamesAndDefaults(t *testing.T) {
	f := factory.New(nil, 42)

	a, err := f.Create("cube")
	require.NoError(t, err)
	b, err := f.Create("Cube")
	require.NoError(t, err)
	s, err := f.Create("sphere")
	require.NoError(t, err)

	assert.Equal(t, "Cube 1", a.Name)
	assert.Equal(t, "Cube 2", b.Name)
	assert.Equal(t, "Sphere 1", s.Name)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 3, f.Live())

	assert.Equal(t, "box", a.Geometry.Type)
	assert.Equal(t, float32(1), a.Geometry.Param("width", 0))
	assert.True(t, a.Transform.Equal(scene.IdentityTransform()))

	require.NotNil(t, a.Material)
	assert.Equal(t, float32(0.5), a.Material.Roughness)
	assert.Equal(t, float32(0.5), a.Material.Metalness)
	assert.LessOrEqual(t, a.Material.Color, uint32(0xffffff))
	assert.False(t, a.Material.DoubleSided)
}

func TestCreatePlaneLiesFlat(t *testing.T) {
	f := factory.New(nil, 1)
	p, err := f.Create("plane")
	require.NoError(t, err)

	assert.InDelta(t, -mgl32.DegToRad(90), p.Transform.Rotation[0], 1e-6)
	assert.True(t, p.Material.DoubleSided)
}

func TestCreateUnknownKind(t *testing.T) {
	f := factory.New(nil, 1)
	_, err := f.Create("teapot")
	assert.ErrorIs(t, err, factory.ErrUnknownKind)
	assert.Equal(t, 0, f.Live())
}

func TestSameSeedSameColors(t *testing.T) {
	f1 := factory.New(nil, 99)
	f2 := factory.New(nil, 99)
	for range 5 {
		a, _ := f1.Create("torus")
		b, _ := f2.Create("torus")
		assert.Equal(t, a.Material.Color, b.Material.Color)
	}
}

func TestCatalogOverridesMaterial(t *testing.T) {
	tbl, err := data.ParsePrimitiveTable([]byte(`
primitives:
  - kind: floor
    geometry: plane
    color: 0x808080
    metalness: 0
    scale: [10, 10, 1]
`))
	require.NoError(t, err)
	f := factory.New(tbl, 3)

	e, err := f.Create("floor")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x808080), e.Material.Color)
	assert.Equal(t, float32(0), e.Material.Metalness)
	assert.Equal(t, float32(0.5), e.Material.Roughness)
	assert.Equal(t, mgl32.Vec3{10, 10, 1}, e.Transform.Scale)
}

func TestReleaseAndRebuild(t *testing.T) {
	f := factory.New(nil, 5)
	a, _ := f.Create("cone")
	f.Release(a)
	assert.Equal(t, 0, f.Live())

	tr := scene.IdentityTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	e, err := f.Rebuild("cone", "Saved cone", tr, scene.Material{Color: 0xff0000, Roughness: 0.1})
	require.NoError(t, err)
	assert.Equal(t, "Saved cone", e.Name)
	assert.Equal(t, "cone", e.Geometry.Type)
	assert.Equal(t, uint32(0xff0000), e.Material.Color)
	assert.NotEqual(t, a.ID, e.ID, "recycled slot gets a new generation")

	_, err = f.Rebuild("blob", "x", tr, scene.Material{})
	assert.ErrorIs(t, err, factory.ErrUnknownKind)
}
