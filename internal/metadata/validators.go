package metadata

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validator names are wire identifiers shared with the client.
const (
	ValidatorRequired  = "required"
	ValidatorMaxLength = "maxLength"
	ValidatorDate      = "date"
	ValidatorByte      = "byte"
	ValidatorInt16     = "int16"
	ValidatorInt32     = "int32"
	ValidatorInt64     = "int64"
	ValidatorNumber    = "number"
	ValidatorBool      = "bool"
	ValidatorGUID      = "guid"
	ValidatorDuration  = "duration"
)

type validatorKind uint8

const (
	kindNamed validatorKind = iota
	kindRequired
	kindMaxLength
)

// MetaValidator is one of Required, MaxLength(n) or Named(name).
type MetaValidator struct {
	kind      validatorKind
	name      string
	maxLength int
}

// Required is the validator for non-nullable properties.
func Required() MetaValidator {
	return MetaValidator{kind: kindRequired, name: ValidatorRequired}
}

// MaxLength is the length validator carrying its bound.
func MaxLength(n int) MetaValidator {
	return MetaValidator{kind: kindMaxLength, name: ValidatorMaxLength, maxLength: n}
}

// Named is a type validator identified only by its name.
func Named(name string) MetaValidator {
	return MetaValidator{kind: kindNamed, name: name}
}

// Name returns the wire name.
func (v MetaValidator) Name() string {
	return v.name
}

// Bound returns the length bound of a MaxLength validator.
func (v MetaValidator) Bound() (int, bool) {
	return v.maxLength, v.kind == kindMaxLength
}

func (v MetaValidator) String() string {
	if v.kind == kindMaxLength {
		return fmt.Sprintf("%s(%d)", v.name, v.maxLength)
	}
	return v.name
}

type validatorWire struct {
	Name      string `json:"name"`
	MaxLength *int   `json:"maxLength,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (v MetaValidator) MarshalJSON() ([]byte, error) {
	w := validatorWire{Name: v.name}
	if v.kind == kindMaxLength {
		n := v.maxLength
		w.MaxLength = &n
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *MetaValidator) UnmarshalJSON(data []byte) error {
	var w validatorWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.Name == ValidatorRequired:
		*v = Required()
	case w.Name == ValidatorMaxLength && w.MaxLength != nil:
		*v = MaxLength(*w.MaxLength)
	case w.Name == "":
		return fmt.Errorf("validator without a name")
	default:
		*v = Named(w.Name)
	}
	return nil
}

// ValidatorTable maps runtime types to their type validator. Lookups are
// exact; wrappers are stripped by the caller.
type ValidatorTable map[reflect.Type]MetaValidator

// DefaultValidatorTable returns a fresh table for the Go types the client
// knows how to validate.
func DefaultValidatorTable() ValidatorTable {
	return ValidatorTable{
		reflect.TypeFor[time.Time]():       Named(ValidatorDate),
		reflect.TypeFor[uint8]():           Named(ValidatorByte),
		reflect.TypeFor[int8]():            Named(ValidatorInt16),
		reflect.TypeFor[int16]():           Named(ValidatorInt16),
		reflect.TypeFor[uint16]():          Named(ValidatorInt32),
		reflect.TypeFor[int32]():           Named(ValidatorInt32),
		reflect.TypeFor[int]():             Named(ValidatorInt64),
		reflect.TypeFor[int64]():           Named(ValidatorInt64),
		reflect.TypeFor[uint]():            Named(ValidatorInt64),
		reflect.TypeFor[uint32]():          Named(ValidatorInt64),
		reflect.TypeFor[uint64]():          Named(ValidatorInt64),
		reflect.TypeFor[float32]():         Named(ValidatorNumber),
		reflect.TypeFor[float64]():         Named(ValidatorNumber),
		reflect.TypeFor[decimal.Decimal](): Named(ValidatorNumber),
		reflect.TypeFor[bool]():            Named(ValidatorBool),
		reflect.TypeFor[uuid.UUID]():       Named(ValidatorGUID),
		reflect.TypeFor[time.Duration]():   Named(ValidatorDuration),
	}
}

// Clone returns a copy that can be extended without touching the receiver.
func (t ValidatorTable) Clone() ValidatorTable {
	out := make(ValidatorTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

var kindValidators = map[reflect.Kind]string{
	reflect.Bool:    ValidatorBool,
	reflect.Uint8:   ValidatorByte,
	reflect.Int8:    ValidatorInt16,
	reflect.Int16:   ValidatorInt16,
	reflect.Uint16:  ValidatorInt32,
	reflect.Int32:   ValidatorInt32,
	reflect.Uint32:  ValidatorInt64,
	reflect.Int:     ValidatorInt64,
	reflect.Int64:   ValidatorInt64,
	reflect.Uint:    ValidatorInt64,
	reflect.Uint64:  ValidatorInt64,
	reflect.Float32: ValidatorNumber,
	reflect.Float64: ValidatorNumber,
}

// Lookup finds the type validator for rt. Named types over a basic kind fall
// back to the kind's validator, like DataTypeTable.Lookup.
func (t ValidatorTable) Lookup(rt reflect.Type) (MetaValidator, bool) {
	if rt == nil {
		return MetaValidator{}, false
	}
	if v, ok := t[rt]; ok {
		return v, true
	}
	if name, ok := kindValidators[rt.Kind()]; ok {
		return Named(name), true
	}
	return MetaValidator{}, false
}

// DeriveValidators returns the ordered validators for a built property. The
// table is consulted with nullable wrappers removed from runtimeType.
func DeriveValidators(p *MetaDataProperty, runtimeType reflect.Type, table ValidatorTable) []MetaValidator {
	validators := []MetaValidator{}

	if !p.Nullable() && !p.IsIdentityColumn {
		validators = append(validators, Required())
	}
	if p.MaxLength != nil {
		validators = append(validators, MaxLength(*p.MaxLength))
	}
	// text enums travel as strings whatever their Go kind
	if p.EnumType != "" && p.DataType == DataTypeString {
		return validators
	}
	if v, ok := table.Lookup(UnwrapNullable(runtimeType)); ok {
		validators = append(validators, v)
	}

	return validators
}

// UnwrapNullable strips pointers and database/sql Null wrappers.
func UnwrapNullable(rt reflect.Type) reflect.Type {
	for rt != nil {
		switch {
		case rt.Kind() == reflect.Pointer:
			rt = rt.Elem()
		case isSQLNull(rt):
			rt = rt.Field(0).Type
		default:
			return rt
		}
	}
	return nil
}

var sqlPkgPath = reflect.TypeFor[sql.NullString]().PkgPath()

// isSQLNull matches sql.NullString and friends, including sql.Null[T].
func isSQLNull(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct &&
		rt.PkgPath() == sqlPkgPath &&
		rt.NumField() == 2 &&
		rt.Field(1).Name == "Valid" &&
		rt.Field(1).Type.Kind() == reflect.Bool
}
