// builder.go
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

package metadata

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	DefaultMetadataVersion  = "1.0.5"
	DefaultNamingConvention = "camelCase"
)

// Builder turns an Introspector's model into a BreezeMetadata document.
// A Builder holds no per-build state and may be shared.
type Builder struct {
	introspector Introspector
	dataTypes    DataTypeTable
	validators   ValidatorTable
	constraints  *ConstraintTable
	version      string
	naming       string
	logger       *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithDataTypes replaces the runtime type to data type table.
func WithDataTypes(t DataTypeTable) Option {
	return func(b *Builder) { b.dataTypes = t }
}

// WithValidators replaces the runtime type to validator table.
func WithValidators(t ValidatorTable) Option {
	return func(b *Builder) { b.validators = t }
}

// WithConstraints applies explicit per type and per property overrides.
func WithConstraints(c *ConstraintTable) Option {
	return func(b *Builder) { b.constraints = c }
}

// WithVersion stamps the document's metadataVersion.
func WithVersion(v string) Option {
	return func(b *Builder) { b.version = v }
}

// WithNamingConvention stamps the document's namingConvention.
func WithNamingConvention(n string) Option {
	return func(b *Builder) { b.naming = n }
}

// WithLogger sets the logger for non-fatal mapping diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder over in.
func NewBuilder(in Introspector, opts ...Option) *Builder {
	b := &Builder{
		introspector: in,
		dataTypes:    DefaultDataTypeTable(),
		validators:   DefaultValidatorTable(),
		version:      DefaultMetadataVersion,
		naming:       DefaultNamingConvention,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// buildState is the scratch space of one Build call.
type buildState struct {
	*Builder
	complexSeen  map[QualifiedName]bool
	complexTypes []*MetaType
	enumRefs     []EnumRef
	ownKeys      map[QualifiedName]bool

	// constraint entries that matched a built type or property
	usedTypes map[*TypeConstraint]bool
	usedProps map[*PropertyConstraint]bool
}

// Build runs the pipeline once. It returns a complete document or an error,
// never partial output.
func (b *Builder) Build(ctx context.Context) (*BreezeMetadata, error) {
	if err := b.constraints.Validate(); err != nil {
		return nil, fmt.Errorf("invalid constraint table: %w", err)
	}

	infos, err := b.introspector.StructuralTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate structural types: %w", err)
	}

	s := &buildState{
		Builder:     b,
		complexSeen: make(map[QualifiedName]bool),
		ownKeys:     make(map[QualifiedName]bool),
		usedTypes:   make(map[*TypeConstraint]bool),
		usedProps:   make(map[*PropertyConstraint]bool),
	}

	types := make([]*MetaType, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if info.IsComplex {
			if err := s.complexType(info); err != nil {
				return nil, err
			}
			continue
		}
		mt, err := s.buildType(info)
		if err != nil {
			return nil, err
		}
		types = append(types, mt)
	}
	s.inheritKeyPolicies(types)
	types = append(types, s.complexTypes...)
	s.warnUnmatchedConstraints()

	enums, err := BuildEnumCatalog(s.enumRefs)
	if err != nil {
		return nil, err
	}

	doc, err := Assemble(b.version, b.naming, types, enums)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("metadata built",
		zap.Int("structuralTypes", len(doc.StructuralTypes)),
		zap.Int("enumTypes", len(doc.EnumTypes)))

	return doc, nil
}

// warnUnmatchedConstraints logs constraint entries that named no type or
// property of the model.
func (s *buildState) warnUnmatchedConstraints() {
	if s.constraints == nil {
		return
	}
	for i := range s.constraints.Types {
		tc := &s.constraints.Types[i]
		if !s.usedTypes[tc] {
			s.logger.Warn("constraint matches no type", zap.String("type", tc.Type))
			continue
		}
		for j := range tc.Properties {
			if pc := &tc.Properties[j]; !s.usedProps[pc] {
				s.logger.Warn("constraint matches no property",
					zap.String("type", tc.Type),
					zap.String("property", pc.Name))
			}
		}
	}
}

// inheritKeyPolicies gives derived types without keys of their own the key
// policy of their root.
func (s *buildState) inheritKeyPolicies(types []*MetaType) {
	byName := make(map[string]*MetaType, len(types))
	for _, t := range types {
		byName[t.QualifiedName().String()] = t
	}

	for _, t := range types {
		if t.BaseTypeName == "" || s.ownKeys[t.QualifiedName()] {
			continue
		}
		visited := map[string]bool{t.QualifiedName().String(): true}
		for base := byName[t.BaseTypeName]; base != nil && !visited[base.QualifiedName().String()]; base = byName[base.BaseTypeName] {
			visited[base.QualifiedName().String()] = true
			if s.ownKeys[base.QualifiedName()] || base.BaseTypeName == "" {
				t.AutoGeneratedKeyType = base.AutoGeneratedKeyType
				break
			}
		}
	}
}
