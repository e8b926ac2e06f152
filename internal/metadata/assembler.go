package metadata

import (
	"slices"
)

// Assemble merges built types and the enum catalog into one document after
// checking every cross reference between them.
func Assemble(version, naming string, types []*MetaType, enums []*MetaEnum) (*BreezeMetadata, error) {
	byName := make(map[string]*MetaType, len(types))
	for _, t := range types {
		name := t.QualifiedName().String()
		if _, dup := byName[name]; dup {
			return nil, unsupported(name, "", "duplicate structural type")
		}
		byName[name] = t
	}

	enumNames := make(map[string]bool, len(enums))
	for _, e := range enums {
		name := e.QualifiedName().String()
		if enumNames[name] {
			return nil, unsupported("", "", "duplicate enum type %s", name)
		}
		if len(e.Values) != len(e.Ordinals) {
			return nil, unsupported("", "", "enum %s has %d values and %d ordinals", name, len(e.Values), len(e.Ordinals))
		}
		enumNames[name] = true
	}

	a := &assembly{types: byName}
	for _, t := range types {
		if err := a.checkBase(t); err != nil {
			return nil, err
		}
	}
	for _, t := range types {
		if err := a.checkProperties(t, enumNames); err != nil {
			return nil, err
		}
		for _, nav := range t.NavigationProperties {
			if err := a.checkNavigation(t, nav); err != nil {
				return nil, err
			}
		}
	}
	if err := a.checkAssociations(); err != nil {
		return nil, err
	}

	if types == nil {
		types = []*MetaType{}
	}
	if enums == nil {
		enums = []*MetaEnum{}
	}
	return &BreezeMetadata{
		MetadataVersion:  version,
		NamingConvention: naming,
		StructuralTypes:  types,
		EnumTypes:        enums,
	}, nil
}

type navEnd struct {
	owner *MetaType
	nav   *MetaNavProperty
}

type assembly struct {
	types        map[string]*MetaType
	associations []string
	ends         map[string][]navEnd
}

func (a *assembly) checkBase(t *MetaType) error {
	name := t.QualifiedName().String()
	visited := map[string]bool{name: true}
	for base := t.BaseTypeName; base != ""; {
		parent, ok := a.types[base]
		if !ok {
			return unsupported(name, "", "unknown base type %s", base)
		}
		if parent.IsComplexType {
			return unsupported(name, "", "base type %s is a complex type", base)
		}
		if visited[base] {
			return unsupported(name, "", "inheritance cycle through %s", base)
		}
		visited[base] = true
		base = parent.BaseTypeName
	}
	return nil
}

// hasDataProperty looks through t and its base chain. Chains are known to
// be acyclic by the time this runs.
func (a *assembly) hasDataProperty(t *MetaType, name string) bool {
	for t != nil {
		for _, p := range t.DataProperties {
			if p.NameOnServer == name {
				return true
			}
		}
		t = a.types[t.BaseTypeName]
	}
	return false
}

func (a *assembly) checkProperties(t *MetaType, enumNames map[string]bool) error {
	name := t.QualifiedName().String()
	for _, p := range t.DataProperties {
		if p.ComplexTypeName != "" {
			ct, ok := a.types[p.ComplexTypeName]
			if !ok || !ct.IsComplexType {
				return unsupported(name, p.NameOnServer, "unknown complex type %s", p.ComplexTypeName)
			}
		}
		if p.EnumType != "" && !enumNames[p.EnumType] {
			return unsupported(name, p.NameOnServer, "unknown enum type %s", p.EnumType)
		}
	}
	return nil
}

func (a *assembly) checkNavigation(t *MetaType, nav *MetaNavProperty) error {
	name := t.QualifiedName().String()
	target, ok := a.types[nav.EntityTypeName]
	if !ok || target.IsComplexType {
		return unsupported(name, nav.NameOnServer, "unknown target entity type %s", nav.EntityTypeName)
	}

	for _, fk := range nav.ForeignKeyNamesOnServer {
		if !a.hasDataProperty(t, fk) {
			return unsupported(name, nav.NameOnServer, "foreign key %s is not a data property of %s", fk, name)
		}
	}
	for _, fk := range nav.InvForeignKeyNamesOnServer {
		if !a.hasDataProperty(target, fk) {
			return unsupported(name, nav.NameOnServer, "inverse foreign key %s is not a data property of %s", fk, nav.EntityTypeName)
		}
	}

	if len(nav.PrincipalKeyNames) > 0 {
		principal, fks := t, nav.InvForeignKeyNamesOnServer
		if len(nav.ForeignKeyNamesOnServer) > 0 {
			principal, fks = target, nav.ForeignKeyNamesOnServer
		}
		for _, pk := range nav.PrincipalKeyNames {
			if !a.hasDataProperty(principal, pk) {
				return unsupported(name, nav.NameOnServer, "principal key %s is not a data property of %s",
					pk, principal.QualifiedName())
			}
		}
		if len(fks) > 0 && len(fks) != len(nav.PrincipalKeyNames) {
			return unsupported(name, nav.NameOnServer, "%d foreign keys reference %d principal keys",
				len(fks), len(nav.PrincipalKeyNames))
		}
	}

	if a.ends == nil {
		a.ends = make(map[string][]navEnd)
	}
	if _, seen := a.ends[nav.AssociationName]; !seen {
		a.associations = append(a.associations, nav.AssociationName)
	}
	a.ends[nav.AssociationName] = append(a.ends[nav.AssociationName], navEnd{owner: t, nav: nav})
	return nil
}

func (a *assembly) checkAssociations() error {
	for _, assoc := range a.associations {
		ends := a.ends[assoc]
		first := ends[0]
		switch len(ends) {
		case 1:
			continue
		case 2:
		default:
			return unsupported(first.owner.QualifiedName().String(), first.nav.NameOnServer,
				"association %s is shared by %d navigations", assoc, len(ends))
		}

		second := ends[1]
		if first.nav.EntityTypeName != second.owner.QualifiedName().String() ||
			second.nav.EntityTypeName != first.owner.QualifiedName().String() {
			return unsupported(first.owner.QualifiedName().String(), first.nav.NameOnServer,
				"association %s ends do not point at each other", assoc)
		}
		if !pairedKeys(first.nav, second.nav) || !pairedKeys(second.nav, first.nav) {
			return unsupported(first.owner.QualifiedName().String(), first.nav.NameOnServer,
				"association %s foreign keys do not match %s", assoc, second.nav.NameOnServer)
		}
	}
	return nil
}

// pairedKeys holds when the forward keys of one end match the inverse keys
// declared by the other.
func pairedKeys(forward, inverse *MetaNavProperty) bool {
	if len(forward.ForeignKeyNamesOnServer) == 0 || len(inverse.InvForeignKeyNamesOnServer) == 0 {
		return true
	}
	return slices.Equal(forward.ForeignKeyNamesOnServer, inverse.InvForeignKeyNamesOnServer)
}
