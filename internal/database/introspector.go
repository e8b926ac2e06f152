// introspector.go
//
// Breeze client metadata for gorm models, served alongside the jam-build data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-breezemeta.
// jam-build-breezemeta is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-breezemeta is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-breezemeta.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"fmt"
	"path"
	"reflect"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

// ResourceNamer is implemented by models that name their own resource.
type ResourceNamer interface {
	ResourceName() string
}

// dbDataTyper matches types that choose their column type per dialect.
type dbDataTyper interface {
	GormDBDataType(*gorm.DB, *schema.Field) string
}

// GormIntrospector reads registered gorm models. All parsing happens in
// NewGormIntrospector, so a GormIntrospector is immutable and safe for
// concurrent use.
type GormIntrospector struct {
	db        *gorm.DB
	namer     schema.Namer
	namespace string
	logger    *zap.Logger

	cache      *sync.Map
	registered map[reflect.Type]metadata.QualifiedName
	types      []*metadata.TypeInfo
	props      map[metadata.QualifiedName][]*metadata.PropertyInfo
	rels       map[metadata.QualifiedName][]*metadata.RelationshipInfo
	complex    map[metadata.QualifiedName]*metadata.TypeInfo
}

// IntrospectorOption configures a GormIntrospector.
type IntrospectorOption func(*GormIntrospector)

// WithNamespace puts every type and enum in ns. By default each type takes
// the last element of its package path.
func WithNamespace(ns string) IntrospectorOption {
	return func(g *GormIntrospector) { g.namespace = ns }
}

// WithLogger sets the logger for skipped relationships.
func WithLogger(l *zap.Logger) IntrospectorOption {
	return func(g *GormIntrospector) { g.logger = l }
}

// NewGormIntrospector parses models with db's naming strategy. db may be
// nil, in which case the default naming strategy applies and raw type names
// come from gorm's data types instead of the dialect.
func NewGormIntrospector(db *gorm.DB, models []any, opts ...IntrospectorOption) (*GormIntrospector, error) {
	g := &GormIntrospector{
		db:         db,
		namer:      schema.NamingStrategy{},
		logger:     zap.NewNop(),
		cache:      &sync.Map{},
		registered: make(map[reflect.Type]metadata.QualifiedName, len(models)),
		props:      make(map[metadata.QualifiedName][]*metadata.PropertyInfo),
		rels:       make(map[metadata.QualifiedName][]*metadata.RelationshipInfo),
		complex:    make(map[metadata.QualifiedName]*metadata.TypeInfo),
	}
	if db != nil && db.Config != nil && db.NamingStrategy != nil {
		g.namer = db.NamingStrategy
	}
	for _, opt := range opts {
		opt(g)
	}

	schemas := make([]*schema.Schema, 0, len(models))
	for _, model := range models {
		s, err := schema.Parse(model, g.cache, g.namer)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		name := g.qualify(s.ModelType)
		if _, dup := g.registered[s.ModelType]; dup {
			return nil, fmt.Errorf("model %s registered twice", name)
		}
		g.registered[s.ModelType] = name
		schemas = append(schemas, s)
	}

	for i, s := range schemas {
		if err := g.read(s, models[i]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *GormIntrospector) qualify(rt reflect.Type) metadata.QualifiedName {
	ns := g.namespace
	if ns == "" {
		ns = path.Base(rt.PkgPath())
	}
	return metadata.QualifiedName{ShortName: rt.Name(), Namespace: ns}
}

// read records the type, its own properties and its own relationships.
func (g *GormIntrospector) read(s *schema.Schema, model any) error {
	info := &metadata.TypeInfo{Name: g.registered[s.ModelType]}
	if rn, ok := model.(ResourceNamer); ok {
		info.ResourceName = rn.ResourceName()
	}

	// Anonymous embeddings of registered models are base types.
	bases := make(map[string]bool)
	for i := 0; i < s.ModelType.NumField(); i++ {
		sf := s.ModelType.Field(i)
		if !sf.Anonymous {
			continue
		}
		if base, ok := g.registered[indirect(sf.Type)]; ok {
			bases[sf.Name] = true
			info.BaseTypes = append(info.BaseTypes, base)
		}
	}

	own := make([]*schema.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if len(f.BindNames) > 1 && bases[f.BindNames[0]] {
			continue
		}
		own = append(own, f)
	}

	props, err := g.properties(s.ModelType, own, 0)
	if err != nil {
		return fmt.Errorf("model %s: %w", info.Name, err)
	}
	g.types = append(g.types, info)
	g.props[info.Name] = props
	g.rels[info.Name] = g.relationships(s, info, own)
	return nil
}

// properties groups fields below depth into scalar and complex properties.
// Fields of a named embedded struct share EmbeddedBindNames[depth].
func (g *GormIntrospector) properties(owner reflect.Type, fields []*schema.Field, depth int) ([]*metadata.PropertyInfo, error) {
	var props []*metadata.PropertyInfo
	grouped := make(map[string]bool)

	for _, f := range fields {
		if !isColumn(f) {
			continue
		}
		if len(f.EmbeddedBindNames) <= depth+1 {
			props = append(props, g.scalar(f))
			continue
		}

		group := f.EmbeddedBindNames[depth]
		if grouped[group] {
			continue
		}
		grouped[group] = true

		sf, ok := owner.FieldByName(group)
		if !ok {
			return nil, fmt.Errorf("embedded field %s not found on %s", group, owner.Name())
		}
		var members []*schema.Field
		for _, m := range fields {
			if len(m.EmbeddedBindNames) > depth+1 && m.EmbeddedBindNames[depth] == group {
				members = append(members, m)
			}
		}
		ct, err := g.complexType(indirect(sf.Type), members, depth+1)
		if err != nil {
			return nil, err
		}
		props = append(props, &metadata.PropertyInfo{Name: group, Type: sf.Type, Complex: ct})
	}

	return props, nil
}

// complexType registers rt as a complex type on first sight. Later owners
// reuse the first definition.
func (g *GormIntrospector) complexType(rt reflect.Type, fields []*schema.Field, depth int) (*metadata.TypeInfo, error) {
	name := g.qualify(rt)
	if ct, ok := g.complex[name]; ok {
		return ct, nil
	}
	ct := &metadata.TypeInfo{Name: name, IsComplex: true}
	g.complex[name] = ct

	props, err := g.properties(rt, fields, depth)
	if err != nil {
		return nil, err
	}
	g.props[name] = props
	return ct, nil
}

func (g *GormIntrospector) scalar(f *schema.Field) *metadata.PropertyInfo {
	p := &metadata.PropertyInfo{
		Name:          f.Name,
		Type:          f.FieldType,
		StorageType:   g.storageType(f),
		IsNullable:    !(f.NotNull || f.PrimaryKey),
		IsKey:         f.PrimaryKey,
		IsConcurrency: hasBreezeFlag(f, "concurrency"),
	}
	if f.IndirectFieldType.Kind() == reflect.String && f.Size > 0 {
		p.MaxLength = f.Size
	}
	if f.HasDefaultValue && f.DefaultValueInterface != nil {
		p.DefaultValue = f.DefaultValueInterface
	}

	switch {
	case hasBreezeFlag(f, "keyGenerator"):
		p.Generation = metadata.GenerationKeyGenerator
	case f.AutoIncrement:
		p.Generation = metadata.GenerationStore
	case f.PrimaryKey && f.HasDefaultValue && f.DefaultValueInterface == nil && f.DefaultValue != "":
		p.Generation = metadata.GenerationStore
	}

	rt := metadata.UnwrapNullable(f.FieldType)
	if enum, ok := metadata.EnumFromType(rt, g.qualify(rt).Namespace); ok {
		p.Enum = enum
	}
	return p
}

// storageType names the column type the way gorm's migrator does.
func (g *GormIntrospector) storageType(f *schema.Field) string {
	if g.db != nil && g.db.Dialector != nil {
		if t, ok := reflect.New(f.IndirectFieldType).Interface().(dbDataTyper); ok {
			if dt := t.GormDBDataType(g.db, f); dt != "" {
				return dt
			}
		}
		if dt := g.db.Dialector.DataTypeOf(f); dt != "" {
			return dt
		}
	}
	if f.DataType != "" {
		return string(f.DataType)
	}
	return f.FieldType.String()
}

func (g *GormIntrospector) relationships(s *schema.Schema, owner *metadata.TypeInfo, own []*schema.Field) []*metadata.RelationshipInfo {
	var rels []*metadata.RelationshipInfo
	for _, f := range own {
		if len(f.EmbeddedBindNames) > 1 {
			continue
		}
		rel, ok := s.Relationships.Relations[f.Name]
		if !ok || rel.Field != f {
			continue
		}

		if rel.Polymorphic != nil || rel.Type == schema.Many2Many || rel.JoinTable != nil {
			g.logger.Warn("skipping relationship without a dependent entity",
				zap.String("type", owner.Name.String()),
				zap.String("relationship", rel.Name),
				zap.String("kind", string(rel.Type)))
			continue
		}

		info := &metadata.RelationshipInfo{
			Name:   rel.Name,
			Target: g.target(rel.FieldSchema.ModelType),
		}
		var fks []string
		for _, ref := range rel.References {
			if ref.PrimaryKey == nil || ref.ForeignKey == nil {
				continue
			}
			fks = append(fks, ref.ForeignKey.Name)
			info.PrincipalKeyNames = append(info.PrincipalKeyNames, ref.PrimaryKey.Name)
		}

		switch rel.Type {
		case schema.BelongsTo:
			info.IsScalar = true
			info.ForeignKeyNames = fks
		case schema.HasOne:
			info.IsScalar = true
			info.InvForeignKeyNames = fks
		case schema.HasMany:
			info.InvForeignKeyNames = fks
		default:
			continue
		}
		rels = append(rels, info)
	}
	return rels
}

func (g *GormIntrospector) target(rt reflect.Type) metadata.QualifiedName {
	if name, ok := g.registered[rt]; ok {
		return name
	}
	return g.qualify(rt)
}

func (g *GormIntrospector) StructuralTypes() ([]*metadata.TypeInfo, error) {
	return slices.Clone(g.types), nil
}

func (g *GormIntrospector) Properties(t *metadata.TypeInfo) ([]*metadata.PropertyInfo, error) {
	props, ok := g.props[t.Name]
	if !ok {
		return nil, fmt.Errorf("type %s is not registered", t.Name)
	}
	return slices.Clone(props), nil
}

func (g *GormIntrospector) Relationships(t *metadata.TypeInfo) ([]*metadata.RelationshipInfo, error) {
	if _, ok := g.props[t.Name]; !ok {
		return nil, fmt.Errorf("type %s is not registered", t.Name)
	}
	return slices.Clone(g.rels[t.Name]), nil
}

// isColumn drops relationship and ignored fields.
func isColumn(f *schema.Field) bool {
	return f.DataType != "" && (f.Creatable || f.Updatable || f.Readable)
}

func hasBreezeFlag(f *schema.Field, flag string) bool {
	for _, v := range strings.Split(f.Tag.Get("breeze"), ",") {
		if strings.TrimSpace(v) == flag {
			return true
		}
	}
	return false
}

func indirect(rt reflect.Type) reflect.Type {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt
}
