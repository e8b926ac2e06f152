package database

import (
	"reflect"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

// DataTypeTable extends the default table with gorm and gorm.io/datatypes
// column types.
func DataTypeTable() metadata.DataTypeTable {
	t := metadata.DefaultDataTypeTable()
	t[reflect.TypeFor[gorm.DeletedAt]()] = metadata.DataTypeDateTime
	t[reflect.TypeFor[datatypes.Date]()] = metadata.DataTypeDateTime
	t[reflect.TypeFor[datatypes.Time]()] = metadata.DataTypeTime
	t[reflect.TypeFor[datatypes.UUID]()] = metadata.DataTypeGUID
	return t
}

// ValidatorTable is the validator counterpart of DataTypeTable.
func ValidatorTable() metadata.ValidatorTable {
	t := metadata.DefaultValidatorTable()
	t[reflect.TypeFor[gorm.DeletedAt]()] = metadata.Named(metadata.ValidatorDate)
	t[reflect.TypeFor[datatypes.Date]()] = metadata.Named(metadata.ValidatorDate)
	t[reflect.TypeFor[datatypes.Time]()] = metadata.Named(metadata.ValidatorDuration)
	t[reflect.TypeFor[datatypes.UUID]()] = metadata.Named(metadata.ValidatorGUID)
	return t
}
