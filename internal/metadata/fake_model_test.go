package metadata_test

import (
	"fmt"
	"reflect"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

const ns = "Sample"

func qn(short string) metadata.QualifiedName {
	return metadata.QualifiedName{ShortName: short, Namespace: ns}
}

// staticModel is an in-memory Introspector.
type staticModel struct {
	types []*metadata.TypeInfo
	props map[metadata.QualifiedName][]*metadata.PropertyInfo
	rels  map[metadata.QualifiedName][]*metadata.RelationshipInfo
	fail  error
}

func newStaticModel() *staticModel {
	return &staticModel{
		props: make(map[metadata.QualifiedName][]*metadata.PropertyInfo),
		rels:  make(map[metadata.QualifiedName][]*metadata.RelationshipInfo),
	}
}

func (m *staticModel) entity(t *metadata.TypeInfo, props ...*metadata.PropertyInfo) *staticModel {
	m.types = append(m.types, t)
	m.props[t.Name] = props
	return m
}

func (m *staticModel) complex(t *metadata.TypeInfo, props ...*metadata.PropertyInfo) *staticModel {
	m.props[t.Name] = props
	return m
}

func (m *staticModel) nav(owner string, r *metadata.RelationshipInfo) *staticModel {
	m.rels[qn(owner)] = append(m.rels[qn(owner)], r)
	return m
}

func (m *staticModel) StructuralTypes() ([]*metadata.TypeInfo, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.types, nil
}

func (m *staticModel) Properties(t *metadata.TypeInfo) ([]*metadata.PropertyInfo, error) {
	props, ok := m.props[t.Name]
	if !ok {
		return nil, fmt.Errorf("no such type %s", t.Name)
	}
	return props, nil
}

func (m *staticModel) Relationships(t *metadata.TypeInfo) ([]*metadata.RelationshipInfo, error) {
	return m.rels[t.Name], nil
}

func prop(name string, rt reflect.Type, mods ...func(*metadata.PropertyInfo)) *metadata.PropertyInfo {
	p := &metadata.PropertyInfo{Name: name, Type: rt}
	for _, mod := range mods {
		mod(p)
	}
	return p
}

func key(p *metadata.PropertyInfo)      { p.IsKey = true }
func identity(p *metadata.PropertyInfo) { p.IsKey = true; p.Generation = metadata.GenerationStore }
func nullable(p *metadata.PropertyInfo) { p.IsNullable = true }

func maxLen(n int) func(*metadata.PropertyInfo) {
	return func(p *metadata.PropertyInfo) { p.MaxLength = n }
}

func entity(short string, bases ...string) *metadata.TypeInfo {
	t := &metadata.TypeInfo{Name: qn(short)}
	for _, b := range bases {
		t.BaseTypes = append(t.BaseTypes, qn(b))
	}
	return t
}

type Role int

const (
	RoleAdmin Role = iota
	RoleUser
)

func (Role) EnumMembers() []metadata.EnumMember {
	return []metadata.EnumMember{{Name: "Admin", Value: int64(RoleAdmin)}, {Name: "User", Value: int64(RoleUser)}}
}

type Color string

func (Color) EnumMembers() []metadata.EnumMember {
	return []metadata.EnumMember{{Name: "Red", Value: 0}, {Name: "Green", Value: 1}}
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c), nil }

// Status is an int-kind enum serialized by name.
type Status int

const (
	StatusOpen Status = iota
	StatusClosed
)

func (Status) EnumMembers() []metadata.EnumMember {
	return []metadata.EnumMember{{Name: "Open", Value: int64(StatusOpen)}, {Name: "Closed", Value: int64(StatusClosed)}}
}

func (s Status) MarshalText() ([]byte, error) {
	if s == StatusClosed {
		return []byte("Closed"), nil
	}
	return []byte("Open"), nil
}

// Shape declares its members on the pointer receiver.
type Shape int16

func (*Shape) EnumMembers() []metadata.EnumMember {
	return []metadata.EnumMember{{Name: "Circle", Value: 1}, {Name: "Square", Value: 4}}
}

var (
	tString = reflect.TypeFor[string]()
	tInt    = reflect.TypeFor[int]()
	tInt32  = reflect.TypeFor[int32]()
)
