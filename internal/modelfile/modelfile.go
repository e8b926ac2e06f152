// Package modelfile reads declarative model descriptions from YAML or JSON
// and serves them as a metadata.Introspector.
package modelfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
	"github.com/localnerve/jam-build-breezemeta/internal/types"
)

// File is the document form of a model.
type File struct {
	Namespace string     `yaml:"namespace" json:"namespace"`
	Enums     []Enum     `yaml:"enums,omitempty" json:"enums,omitempty"`
	Types     []TypeDecl `yaml:"types" json:"types"`
}

type Enum struct {
	Name    string       `yaml:"name" json:"name"`
	Text    bool         `yaml:"text,omitempty" json:"text,omitempty"`
	Members []EnumMember `yaml:"members" json:"members"`
}

type EnumMember struct {
	Name  string          `yaml:"name" json:"name"`
	Value types.FlexInt64 `yaml:"value" json:"value"`
}

type TypeDecl struct {
	Name         string                 `yaml:"name" json:"name"`
	Base         types.FlexList[string] `yaml:"base,omitempty" json:"base,omitempty"`
	Complex      bool                   `yaml:"complex,omitempty" json:"complex,omitempty"`
	ResourceName string                 `yaml:"resourceName,omitempty" json:"resourceName,omitempty"`
	Keys         types.FlexList[string] `yaml:"keys,omitempty" json:"keys,omitempty"`
	Properties   []PropertyDecl         `yaml:"properties" json:"properties"`
	Navigations  []NavigationDecl       `yaml:"navigations,omitempty" json:"navigations,omitempty"`
}

type PropertyDecl struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Nullable    bool   `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	MaxLength   int    `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Generation  string `yaml:"generation,omitempty" json:"generation,omitempty"` // none, store, keyGenerator
	Concurrency bool   `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	Enum        string `yaml:"enum,omitempty" json:"enum,omitempty"`
	Complex     string `yaml:"complex,omitempty" json:"complex,omitempty"`
	StorageType string `yaml:"storageType,omitempty" json:"storageType,omitempty"`
	Custom      any    `yaml:"custom,omitempty" json:"custom,omitempty"`
}

type NavigationDecl struct {
	Name           string                 `yaml:"name" json:"name"`
	Target         string                 `yaml:"target" json:"target"`
	Scalar         bool                   `yaml:"scalar,omitempty" json:"scalar,omitempty"`
	Association    string                 `yaml:"association,omitempty" json:"association,omitempty"`
	ForeignKeys    types.FlexList[string] `yaml:"foreignKeys,omitempty" json:"foreignKeys,omitempty"`
	InvForeignKeys types.FlexList[string] `yaml:"invForeignKeys,omitempty" json:"invForeignKeys,omitempty"`
	PrincipalKeys  types.FlexList[string] `yaml:"principalKeys,omitempty" json:"principalKeys,omitempty"`
	Custom         any                    `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// scalarTypes maps declared type names to runtime types. Names outside the
// map become unmapped properties whose raw type name is the declared name.
var scalarTypes = map[string]reflect.Type{
	"string":   reflect.TypeFor[string](),
	"bool":     reflect.TypeFor[bool](),
	"byte":     reflect.TypeFor[uint8](),
	"int16":    reflect.TypeFor[int16](),
	"int32":    reflect.TypeFor[int32](),
	"int64":    reflect.TypeFor[int64](),
	"single":   reflect.TypeFor[float32](),
	"double":   reflect.TypeFor[float64](),
	"decimal":  reflect.TypeFor[decimal.Decimal](),
	"datetime": reflect.TypeFor[time.Time](),
	"time":     reflect.TypeFor[time.Duration](),
	"guid":     reflect.TypeFor[uuid.UUID](),
	"binary":   reflect.TypeFor[[]byte](),
}

var generations = map[string]metadata.Generation{
	"":             metadata.GenerationNone,
	"none":         metadata.GenerationNone,
	"store":        metadata.GenerationStore,
	"keyGenerator": metadata.GenerationKeyGenerator,
}

// Load reads a model file. Files ending in .json are decoded as JSON,
// anything else as YAML.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}

	return New(&f)
}

// Parse decodes a YAML model.
func Parse(data []byte) (*Model, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return New(&f)
}
