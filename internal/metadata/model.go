package metadata

import (
	"fmt"
	"reflect"
	"strings"
)

// Introspector is the read-only view of a model the builder walks.
// Implementations must be safe for concurrent use.
type Introspector interface {
	// StructuralTypes lists the entity types in a stable order. Complex
	// types are discovered through properties.
	StructuralTypes() ([]*TypeInfo, error)
	// Properties lists the scalar and complex properties declared on t,
	// excluding inherited ones, in declaration order.
	Properties(t *TypeInfo) ([]*PropertyInfo, error)
	// Relationships lists the navigations declared on t.
	Relationships(t *TypeInfo) ([]*RelationshipInfo, error)
}

// QualifiedName identifies a type or enum.
type QualifiedName struct {
	ShortName string
	Namespace string
}

// String renders the wire form "ShortName:#Namespace".
func (q QualifiedName) String() string {
	return q.ShortName + ":#" + q.Namespace
}

// ParseQualifiedName reads "ShortName:#Namespace". A bare short name takes
// defaultNamespace.
func ParseQualifiedName(s, defaultNamespace string) (QualifiedName, error) {
	short, ns, found := strings.Cut(s, ":#")
	if !found {
		ns = defaultNamespace
	}
	if short == "" || ns == "" {
		return QualifiedName{}, fmt.Errorf("invalid qualified name %q", s)
	}
	return QualifiedName{ShortName: short, Namespace: ns}, nil
}

// Generation is how a property value is produced.
type Generation int

const (
	GenerationNone Generation = iota
	// GenerationStore values are assigned by the database.
	GenerationStore
	// GenerationKeyGenerator values are issued by an external generator.
	GenerationKeyGenerator
)

// TypeInfo describes one structural type.
type TypeInfo struct {
	Name         QualifiedName
	BaseTypes    []QualifiedName
	IsComplex    bool
	ResourceName string
}

// PropertyInfo describes one declared property.
type PropertyInfo struct {
	Name string
	// Type is the runtime type, nil when unknown.
	Type reflect.Type
	// StorageType is the store's name for the column type.
	StorageType   string
	IsNullable    bool
	MaxLength     int
	DefaultValue  any
	Generation    Generation
	IsKey         bool
	IsConcurrency bool
	Enum          *EnumInfo
	// Complex is set for owned sub-objects.
	Complex *TypeInfo
	Custom  any
}

// RelationshipInfo describes one navigation.
type RelationshipInfo struct {
	Name     string
	Target   QualifiedName
	IsScalar bool
	// Association overrides the generated association name.
	Association string
	// ForeignKeyNames are properties of the declaring type.
	ForeignKeyNames []string
	// InvForeignKeyNames are properties of the target type.
	InvForeignKeyNames []string
	// PrincipalKeyNames are the referenced keys on the principal end.
	PrincipalKeyNames []string
	Custom            any
}

// EnumInfo is an enumeration referenced by a property.
type EnumInfo struct {
	Name     QualifiedName
	Values   []string
	Ordinals []int64
	// Text enums travel as their labels.
	Text bool
}

// AssociationName names the association a relationship belongs to. Both ends
// of a pair produce the same name.
func AssociationName(owner QualifiedName, r *RelationshipInfo) string {
	if r.Association != "" {
		return r.Association
	}
	dependent, principal, fks := owner, r.Target, r.ForeignKeyNames
	if len(fks) == 0 {
		dependent, principal, fks = r.Target, owner, r.InvForeignKeyNames
	}
	return "AN_" + dependent.ShortName + "_" + principal.ShortName + "_" + strings.Join(fks, "_")
}
