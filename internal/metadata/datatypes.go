package metadata

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DataType is a canonical scalar type tag.
type DataType string

const (
	DataTypeString         DataType = "String"
	DataTypeInt16          DataType = "Int16"
	DataTypeInt32          DataType = "Int32"
	DataTypeInt64          DataType = "Int64"
	DataTypeByte           DataType = "Byte"
	DataTypeBoolean        DataType = "Boolean"
	DataTypeDecimal        DataType = "Decimal"
	DataTypeDouble         DataType = "Double"
	DataTypeSingle         DataType = "Single"
	DataTypeDateTime       DataType = "DateTime"
	DataTypeDateTimeOffset DataType = "DateTimeOffset"
	DataTypeTime           DataType = "Time"
	DataTypeGUID           DataType = "Guid"
	DataTypeBinary         DataType = "Binary"
	DataTypeUndefined      DataType = "Undefined"
)

// DataTypeTable maps runtime types to canonical data types.
type DataTypeTable map[reflect.Type]DataType

// DefaultDataTypeTable returns a fresh table of the Go types with a
// canonical data type.
func DefaultDataTypeTable() DataTypeTable {
	return DataTypeTable{
		reflect.TypeFor[string]():          DataTypeString,
		reflect.TypeFor[[]byte]():          DataTypeBinary,
		reflect.TypeFor[bool]():            DataTypeBoolean,
		reflect.TypeFor[uint8]():           DataTypeByte,
		reflect.TypeFor[int8]():            DataTypeInt16,
		reflect.TypeFor[int16]():           DataTypeInt16,
		reflect.TypeFor[uint16]():          DataTypeInt32,
		reflect.TypeFor[int32]():           DataTypeInt32,
		reflect.TypeFor[uint32]():          DataTypeInt64,
		reflect.TypeFor[int]():             DataTypeInt64,
		reflect.TypeFor[int64]():           DataTypeInt64,
		reflect.TypeFor[uint]():            DataTypeInt64,
		reflect.TypeFor[uint64]():          DataTypeInt64,
		reflect.TypeFor[float32]():         DataTypeSingle,
		reflect.TypeFor[float64]():         DataTypeDouble,
		reflect.TypeFor[decimal.Decimal](): DataTypeDecimal,
		reflect.TypeFor[time.Time]():       DataTypeDateTime,
		reflect.TypeFor[time.Duration]():   DataTypeTime,
		reflect.TypeFor[uuid.UUID]():       DataTypeGUID,
	}
}

// Clone returns a copy that can be extended without touching the receiver.
func (t DataTypeTable) Clone() DataTypeTable {
	out := make(DataTypeTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

var kindDataTypes = map[reflect.Kind]DataType{
	reflect.String:  DataTypeString,
	reflect.Bool:    DataTypeBoolean,
	reflect.Uint8:   DataTypeByte,
	reflect.Int8:    DataTypeInt16,
	reflect.Int16:   DataTypeInt16,
	reflect.Uint16:  DataTypeInt32,
	reflect.Int32:   DataTypeInt32,
	reflect.Uint32:  DataTypeInt64,
	reflect.Int:     DataTypeInt64,
	reflect.Int64:   DataTypeInt64,
	reflect.Uint:    DataTypeInt64,
	reflect.Uint64:  DataTypeInt64,
	reflect.Float32: DataTypeSingle,
	reflect.Float64: DataTypeDouble,
}

// Lookup returns the data type of rt. Named types over a basic kind fall
// back to the kind's data type.
func (t DataTypeTable) Lookup(rt reflect.Type) (DataType, bool) {
	if rt == nil {
		return "", false
	}
	if dt, ok := t[rt]; ok {
		return dt, true
	}
	dt, ok := kindDataTypes[rt.Kind()]
	return dt, ok
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
