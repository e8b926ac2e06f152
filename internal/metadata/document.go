package metadata

// AutoGeneratedKeyType declares how key values of an entity type are produced.
type AutoGeneratedKeyType string

const (
	KeyTypeNone         AutoGeneratedKeyType = "None"
	KeyTypeIdentity     AutoGeneratedKeyType = "Identity"
	KeyTypeKeyGenerator AutoGeneratedKeyType = "KeyGenerator"
)

// ConcurrencyModeFixed marks a property used for optimistic concurrency checks.
const ConcurrencyModeFixed = "Fixed"

// BreezeMetadata is the document root delivered to the client.
type BreezeMetadata struct {
	MetadataVersion  string      `json:"metadataVersion"`
	NamingConvention string      `json:"namingConvention"`
	StructuralTypes  []*MetaType `json:"structuralTypes"`
	EnumTypes        []*MetaEnum `json:"enumTypes"`
}

// MetaType describes one entity or complex type.
type MetaType struct {
	ShortName            string               `json:"shortName"`
	Namespace            string               `json:"namespace"`
	BaseTypeName         string               `json:"baseTypeName,omitempty"`
	AutoGeneratedKeyType AutoGeneratedKeyType `json:"autoGeneratedKeyType,omitempty"`
	DefaultResourceName  string               `json:"defaultResourceName,omitempty"`
	IsComplexType        bool                 `json:"isComplexType"`
	DataProperties       []*MetaDataProperty  `json:"dataProperties"`
	NavigationProperties []*MetaNavProperty   `json:"navigationProperties"`
}

// QualifiedName returns the type's identity.
func (t *MetaType) QualifiedName() QualifiedName {
	return QualifiedName{ShortName: t.ShortName, Namespace: t.Namespace}
}

// KeyNames returns the names of the key properties in declaration order.
func (t *MetaType) KeyNames() []string {
	var keys []string
	for _, p := range t.DataProperties {
		if p.IsPartOfKey {
			keys = append(keys, p.NameOnServer)
		}
	}
	return keys
}

// MetaProperty holds the fields shared by data and navigation properties.
type MetaProperty struct {
	NameOnServer string          `json:"nameOnServer"`
	Custom       any             `json:"custom,omitempty"`
	Validators   []MetaValidator `json:"validators"`
}

// MetaDataProperty describes a scalar or complex-valued property.
type MetaDataProperty struct {
	MetaProperty
	DataType        DataType `json:"dataType,omitempty"`
	EnumType        string   `json:"enumType,omitempty"`
	IsPartOfKey     bool     `json:"isPartOfKey,omitempty"`
	IsNullable      *bool    `json:"isNullable,omitempty"`
	MaxLength       *int     `json:"maxLength,omitempty"`
	DefaultValue    any      `json:"defaultValue,omitempty"`
	ConcurrencyMode string   `json:"concurrencyMode,omitempty"`
	ComplexTypeName string   `json:"complexTypeName,omitempty"`
	RawTypeName     string   `json:"rawTypeName,omitempty"`

	// IsIdentityColumn is set for store generated keys while building and is
	// never written to the wire.
	IsIdentityColumn bool `json:"-"`
}

// Nullable reports the property's nullability, false when unset.
func (p *MetaDataProperty) Nullable() bool {
	return p.IsNullable != nil && *p.IsNullable
}

// MetaNavProperty describes one end of an association.
type MetaNavProperty struct {
	MetaProperty
	EntityTypeName             string   `json:"entityTypeName"`
	IsScalar                   bool     `json:"isScalar"`
	AssociationName            string   `json:"associationName"`
	ForeignKeyNamesOnServer    []string `json:"foreignKeyNamesOnServer,omitempty"`
	InvForeignKeyNamesOnServer []string `json:"invForeignKeyNamesOnServer,omitempty"`

	// PrincipalKeyNames are the referenced key properties on the principal
	// end, primary or alternate. Build time only.
	PrincipalKeyNames []string `json:"-"`
}

// MetaEnum is an enumeration exported as parallel value and ordinal arrays.
type MetaEnum struct {
	ShortName string   `json:"shortName"`
	Namespace string   `json:"namespace"`
	Values    []string `json:"values"`
	Ordinals  []int64  `json:"ordinals"`
}

// QualifiedName returns the enum's identity.
func (e *MetaEnum) QualifiedName() QualifiedName {
	return QualifiedName{ShortName: e.ShortName, Namespace: e.Namespace}
}
