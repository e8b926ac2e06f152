package metadata

import (
	"encoding"
	"reflect"
	"slices"
)

// EnumMember is one labelled value of an enumeration.
type EnumMember struct {
	Name  string
	Value int64
}

// Enumeration is implemented by named Go types used as enums. Members are
// returned in declaration order.
type Enumeration interface {
	EnumMembers() []EnumMember
}

var (
	enumerationType   = reflect.TypeFor[Enumeration]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// EnumFromType describes rt as an enum in namespace ns when it or a pointer
// to it implements Enumeration. Types that also implement
// encoding.TextMarshaler are text enums.
func EnumFromType(rt reflect.Type, ns string) (*EnumInfo, bool) {
	rt = UnwrapNullable(rt)
	if rt == nil {
		return nil, false
	}

	ptr := reflect.PointerTo(rt)
	var enum Enumeration
	switch {
	case rt.Implements(enumerationType):
		enum = reflect.Zero(rt).Interface().(Enumeration)
	case ptr.Implements(enumerationType):
		enum = reflect.New(rt).Interface().(Enumeration)
	default:
		return nil, false
	}

	members := enum.EnumMembers()
	info := &EnumInfo{
		Name:     QualifiedName{ShortName: rt.Name(), Namespace: ns},
		Values:   make([]string, 0, len(members)),
		Ordinals: make([]int64, 0, len(members)),
		Text:     rt.Implements(textMarshalerType) || ptr.Implements(textMarshalerType),
	}
	for _, m := range members {
		info.Values = append(info.Values, m.Name)
		info.Ordinals = append(info.Ordinals, m.Value)
	}
	return info, true
}

// EnumRef records one property referencing an enum.
type EnumRef struct {
	Type     QualifiedName
	Property string
	Enum     *EnumInfo
}

// BuildEnumCatalog emits one MetaEnum per distinct enum in first-encounter
// order, carrying every member of the enum.
func BuildEnumCatalog(refs []EnumRef) ([]*MetaEnum, error) {
	catalog := []*MetaEnum{}
	seen := make(map[QualifiedName]*EnumInfo)

	for _, ref := range refs {
		e := ref.Enum
		if e == nil {
			continue
		}
		if len(e.Values) != len(e.Ordinals) {
			return nil, unsupported(ref.Type.String(), ref.Property,
				"enum %s has %d values and %d ordinals", e.Name, len(e.Values), len(e.Ordinals))
		}
		if prev, ok := seen[e.Name]; ok {
			if !sameEnum(prev, e) {
				return nil, unsupported(ref.Type.String(), ref.Property,
					"enum %s has conflicting definitions", e.Name)
			}
			continue
		}
		seen[e.Name] = e
		catalog = append(catalog, &MetaEnum{
			ShortName: e.Name.ShortName,
			Namespace: e.Name.Namespace,
			Values:    append([]string{}, e.Values...),
			Ordinals:  append([]int64{}, e.Ordinals...),
		})
	}

	return catalog, nil
}

func sameEnum(a, b *EnumInfo) bool {
	return slices.Equal(a.Values, b.Values) && slices.Equal(a.Ordinals, b.Ordinals)
}
