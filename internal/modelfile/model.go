package modelfile

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

// Model is a resolved model file. It is read-only after New.
type Model struct {
	types []*metadata.TypeInfo
	props map[metadata.QualifiedName][]*metadata.PropertyInfo
	rels  map[metadata.QualifiedName][]*metadata.RelationshipInfo
}

// New resolves the references of f. Enum and complex references must name
// declarations of the same file; navigation targets and base types are left
// for the metadata assembler to check.
func New(f *File) (*Model, error) {
	ns := f.Namespace
	if ns == "" {
		return nil, fmt.Errorf("model namespace is required")
	}

	enums := make(map[metadata.QualifiedName]*metadata.EnumInfo, len(f.Enums))
	for _, e := range f.Enums {
		name, err := metadata.ParseQualifiedName(e.Name, ns)
		if err != nil {
			return nil, fmt.Errorf("enum: %w", err)
		}
		if _, dup := enums[name]; dup {
			return nil, fmt.Errorf("enum %s declared twice", name)
		}
		info := &metadata.EnumInfo{
			Name:     name,
			Text:     e.Text,
			Values:   make([]string, 0, len(e.Members)),
			Ordinals: make([]int64, 0, len(e.Members)),
		}
		for _, m := range e.Members {
			info.Values = append(info.Values, m.Name)
			info.Ordinals = append(info.Ordinals, m.Value.Int64())
		}
		enums[name] = info
	}

	m := &Model{
		props: make(map[metadata.QualifiedName][]*metadata.PropertyInfo, len(f.Types)),
		rels:  make(map[metadata.QualifiedName][]*metadata.RelationshipInfo, len(f.Types)),
	}
	byName := make(map[metadata.QualifiedName]*metadata.TypeInfo, len(f.Types))
	for _, td := range f.Types {
		name, err := metadata.ParseQualifiedName(td.Name, ns)
		if err != nil {
			return nil, fmt.Errorf("type: %w", err)
		}
		if _, dup := byName[name]; dup {
			return nil, &metadata.UnsupportedModelError{Type: name.String(), Reason: "declared twice"}
		}
		info := &metadata.TypeInfo{Name: name, IsComplex: td.Complex, ResourceName: td.ResourceName}
		for _, b := range td.Base {
			base, err := metadata.ParseQualifiedName(b, ns)
			if err != nil {
				return nil, fmt.Errorf("type %s base: %w", name, err)
			}
			info.BaseTypes = append(info.BaseTypes, base)
		}
		byName[name] = info
		m.types = append(m.types, info)
	}

	r := &resolver{ns: ns, enums: enums, types: byName}
	for i, td := range f.Types {
		info := m.types[i]
		props, err := r.properties(info, td)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", info.Name, err)
		}
		rels, err := r.navigations(td)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", info.Name, err)
		}
		m.props[info.Name] = props
		m.rels[info.Name] = rels
	}

	return m, nil
}

type resolver struct {
	ns    string
	enums map[metadata.QualifiedName]*metadata.EnumInfo
	types map[metadata.QualifiedName]*metadata.TypeInfo
}

func (r *resolver) properties(info *metadata.TypeInfo, td TypeDecl) ([]*metadata.PropertyInfo, error) {
	keys := make(map[string]bool, len(td.Keys))
	for _, k := range td.Keys {
		keys[k] = true
	}

	props := make([]*metadata.PropertyInfo, 0, len(td.Properties))
	for _, pd := range td.Properties {
		p, err := r.property(pd)
		if err != nil {
			return nil, err
		}
		if keys[pd.Name] {
			p.IsKey = true
			p.IsNullable = false
			delete(keys, pd.Name)
		}
		props = append(props, p)
	}

	for _, k := range td.Keys {
		if keys[k] {
			return nil, fmt.Errorf("key %s is not a declared property", k)
		}
	}
	return props, nil
}

func (r *resolver) property(pd PropertyDecl) (*metadata.PropertyInfo, error) {
	if pd.Name == "" {
		return nil, fmt.Errorf("property without a name")
	}
	p := &metadata.PropertyInfo{
		Name:          pd.Name,
		IsNullable:    pd.Nullable,
		MaxLength:     pd.MaxLength,
		DefaultValue:  pd.Default,
		IsConcurrency: pd.Concurrency,
		StorageType:   pd.StorageType,
		Custom:        pd.Custom,
	}

	gen, ok := generations[pd.Generation]
	if !ok {
		return nil, fmt.Errorf("property %s: unknown generation %q", pd.Name, pd.Generation)
	}
	p.Generation = gen

	if pd.Complex != "" {
		name, err := metadata.ParseQualifiedName(pd.Complex, r.ns)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", pd.Name, err)
		}
		ct, ok := r.types[name]
		if !ok || !ct.IsComplex {
			return nil, fmt.Errorf("property %s: %s is not a declared complex type", pd.Name, name)
		}
		p.Complex = ct
		p.IsNullable = false
		return p, nil
	}

	if pd.Enum != "" {
		name, err := metadata.ParseQualifiedName(pd.Enum, r.ns)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", pd.Name, err)
		}
		e, ok := r.enums[name]
		if !ok {
			return nil, fmt.Errorf("property %s: enum %s is not declared", pd.Name, name)
		}
		p.Enum = e
		if pd.Type == "" {
			p.Type = reflect.TypeFor[int32]()
			if e.Text {
				p.Type = reflect.TypeFor[string]()
			}
			return p, nil
		}
	}

	if pd.Type == "" {
		return nil, fmt.Errorf("property %s has no type", pd.Name)
	}
	if rt, ok := scalarTypes[strings.ToLower(pd.Type)]; ok {
		p.Type = rt
	} else if p.StorageType == "" {
		p.StorageType = pd.Type
	}
	return p, nil
}

func (r *resolver) navigations(td TypeDecl) ([]*metadata.RelationshipInfo, error) {
	rels := make([]*metadata.RelationshipInfo, 0, len(td.Navigations))
	for _, nd := range td.Navigations {
		target, err := metadata.ParseQualifiedName(nd.Target, r.ns)
		if err != nil {
			return nil, fmt.Errorf("navigation %s: %w", nd.Name, err)
		}
		if len(nd.ForeignKeys) > 0 && len(nd.InvForeignKeys) > 0 {
			return nil, fmt.Errorf("navigation %s declares both foreign keys and inverse foreign keys", nd.Name)
		}
		rels = append(rels, &metadata.RelationshipInfo{
			Name:               nd.Name,
			Target:             target,
			IsScalar:           nd.Scalar,
			Association:        nd.Association,
			ForeignKeyNames:    nd.ForeignKeys.Slice(),
			InvForeignKeyNames: nd.InvForeignKeys.Slice(),
			PrincipalKeyNames:  nd.PrincipalKeys.Slice(),
			Custom:             nd.Custom,
		})
	}
	return rels, nil
}

func (m *Model) StructuralTypes() ([]*metadata.TypeInfo, error) {
	return slices.Clone(m.types), nil
}

func (m *Model) Properties(t *metadata.TypeInfo) ([]*metadata.PropertyInfo, error) {
	props, ok := m.props[t.Name]
	if !ok {
		return nil, fmt.Errorf("type %s is not declared", t.Name)
	}
	return slices.Clone(props), nil
}

func (m *Model) Relationships(t *metadata.TypeInfo) ([]*metadata.RelationshipInfo, error) {
	rels, ok := m.rels[t.Name]
	if !ok {
		return nil, fmt.Errorf("type %s is not declared", t.Name)
	}
	return slices.Clone(rels), nil
}
