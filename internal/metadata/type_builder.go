package metadata

import (
	"fmt"

	"github.com/jinzhu/inflection"
)

// buildType produces the MetaType of one structural type.
func (s *buildState) buildType(t *TypeInfo) (*MetaType, error) {
	mt := &MetaType{
		ShortName:            t.Name.ShortName,
		Namespace:            t.Name.Namespace,
		IsComplexType:        t.IsComplex,
		DataProperties:       []*MetaDataProperty{},
		NavigationProperties: []*MetaNavProperty{},
	}

	switch len(t.BaseTypes) {
	case 0:
	case 1:
		if t.IsComplex {
			return nil, unsupported(t.Name.String(), "", "complex types cannot derive from %s", t.BaseTypes[0])
		}
		mt.BaseTypeName = t.BaseTypes[0].String()
	default:
		return nil, unsupported(t.Name.String(), "", "multiple inheritance is not supported (%d base types)", len(t.BaseTypes))
	}

	tc := s.constraints.ForType(t.Name)
	if tc != nil {
		s.usedTypes[tc] = true
	}

	props, err := s.introspector.Properties(t)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties of %s: %w", t.Name, err)
	}

	var keys []*PropertyInfo
	for _, p := range props {
		pc := tc.ForProperty(p.Name)
		if pc != nil {
			s.usedProps[pc] = true
		}
		dp, err := s.buildProperty(t, p, pc)
		if err != nil {
			return nil, err
		}
		mt.DataProperties = append(mt.DataProperties, dp)
		if dp.IsPartOfKey {
			keys = append(keys, p)
		}
	}

	if t.IsComplex {
		return mt, nil
	}

	mt.AutoGeneratedKeyType = keyPolicy(keys, tc)
	if len(keys) > 0 || (tc != nil && tc.KeyGenerator) {
		s.ownKeys[t.Name] = true
	}
	mt.DefaultResourceName = resourceName(t, tc)

	rels, err := s.introspector.Relationships(t)
	if err != nil {
		return nil, fmt.Errorf("failed to read relationships of %s: %w", t.Name, err)
	}
	for _, r := range rels {
		mt.NavigationProperties = append(mt.NavigationProperties, buildNavigation(t, r))
	}

	return mt, nil
}

// complexType builds an owned type once per qualified name.
func (s *buildState) complexType(t *TypeInfo) error {
	if s.complexSeen[t.Name] {
		return nil
	}
	s.complexSeen[t.Name] = true

	owned := *t
	owned.IsComplex = true
	owned.ResourceName = ""
	mt, err := s.buildType(&owned)
	if err != nil {
		return err
	}
	s.complexTypes = append(s.complexTypes, mt)
	return nil
}

func keyPolicy(keys []*PropertyInfo, tc *TypeConstraint) AutoGeneratedKeyType {
	if tc != nil && tc.KeyGenerator {
		return KeyTypeKeyGenerator
	}
	if len(keys) != 1 {
		return KeyTypeNone
	}

	key := keys[0]
	switch key.Generation {
	case GenerationStore:
		if rt := UnwrapNullable(key.Type); rt != nil && !isIntegerKind(rt.Kind()) {
			return KeyTypeKeyGenerator
		}
		return KeyTypeIdentity
	case GenerationKeyGenerator:
		return KeyTypeKeyGenerator
	default:
		return KeyTypeNone
	}
}

func resourceName(t *TypeInfo, tc *TypeConstraint) string {
	if t.ResourceName != "" {
		return t.ResourceName
	}
	if tc != nil && tc.ResourceName != "" {
		return tc.ResourceName
	}
	return inflection.Plural(t.Name.ShortName)
}

func buildNavigation(owner *TypeInfo, r *RelationshipInfo) *MetaNavProperty {
	return &MetaNavProperty{
		MetaProperty: MetaProperty{
			NameOnServer: r.Name,
			Custom:       r.Custom,
			Validators:   []MetaValidator{},
		},
		EntityTypeName:             r.Target.String(),
		IsScalar:                   r.IsScalar,
		AssociationName:            AssociationName(owner.Name, r),
		ForeignKeyNamesOnServer:    r.ForeignKeyNames,
		InvForeignKeyNamesOnServer: r.InvForeignKeyNames,
		PrincipalKeyNames:          r.PrincipalKeyNames,
	}
}
