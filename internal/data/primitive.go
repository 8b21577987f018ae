package data

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed primitives.yaml
var defaultPrimitives []byte

// Primitive describes one shape the editor can create.
type Primitive struct {
	Kind        string             `yaml:"kind"`
	Label       string             `yaml:"label"`
	Geometry    string             `yaml:"geometry"`
	Params      map[string]float32 `yaml:"params"`
	Position    [3]float32         `yaml:"position"`
	Rotation    [3]float32         `yaml:"rotation"` // Euler XYZ, radians
	Scale       *[3]float32        `yaml:"scale"`    // nil = unit scale
	DoubleSided bool               `yaml:"double_sided"`
	Color       *uint32            `yaml:"color"` // nil = random per entity
	Roughness   *float32           `yaml:"roughness"`
	Metalness   *float32           `yaml:"metalness"`
}

// Param returns the named geometry parameter, or def if unset.
func (p *Primitive) Param(name string, def float32) float32 {
	if v, ok := p.Params[name]; ok {
		return v
	}
	return def
}

type primitiveFile struct {
	Primitives []Primitive `yaml:"primitives"`
}

// PrimitiveTable holds primitives by kind in catalog order.
type PrimitiveTable struct {
	byKind map[string]*Primitive
	order  []string
}

// DefaultPrimitiveTable returns the built-in catalog.
func DefaultPrimitiveTable() *PrimitiveTable {
	t, err := ParsePrimitiveTable(defaultPrimitives)
	if err != nil {
		panic(fmt.Sprintf("data: built-in primitive catalog: %v", err))
	}
	return t
}

// LoadPrimitiveTable loads a primitive catalog from a YAML file.
func LoadPrimitiveTable(path string) (*PrimitiveTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read primitive catalog: %w", err)
	}
	return ParsePrimitiveTable(raw)
}

// ParsePrimitiveTable decodes a catalog. Kinds are matched case-insensitively
// and must be unique.
func ParsePrimitiveTable(raw []byte) (*PrimitiveTable, error) {
	var f primitiveFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse primitive catalog: %w", err)
	}
	t := &PrimitiveTable{
		byKind: make(map[string]*Primitive, len(f.Primitives)),
	}
	for i := range f.Primitives {
		p := &f.Primitives[i]
		p.Kind = strings.ToLower(strings.TrimSpace(p.Kind))
		if p.Kind == "" {
			return nil, fmt.Errorf("parse primitive catalog: entry %d has no kind", i)
		}
		if _, dup := t.byKind[p.Kind]; dup {
			return nil, fmt.Errorf("parse primitive catalog: duplicate kind %q", p.Kind)
		}
		if p.Label == "" {
			p.Label = strings.ToUpper(p.Kind[:1]) + p.Kind[1:]
		}
		t.byKind[p.Kind] = p
		t.order = append(t.order, p.Kind)
	}
	return t, nil
}

// Get returns the primitive for kind, or nil.
func (t *PrimitiveTable) Get(kind string) *Primitive {
	return t.byKind[strings.ToLower(kind)]
}

// Kinds returns every kind in catalog order.
func (t *PrimitiveTable) Kinds() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *PrimitiveTable) Count() int {
	return len(t.order)
}
