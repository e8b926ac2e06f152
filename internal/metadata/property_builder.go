package metadata

import (
	"go.uber.org/zap"
)

// buildProperty produces the MetaDataProperty of one declared property.
// Owned sub-objects are built as complex types on first sight.
func (s *buildState) buildProperty(owner *TypeInfo, p *PropertyInfo, pc *PropertyConstraint) (*MetaDataProperty, error) {
	dp := &MetaDataProperty{
		MetaProperty: MetaProperty{
			NameOnServer: p.Name,
			Custom:       p.Custom,
		},
	}
	if pc != nil && pc.Custom != nil {
		dp.Custom = pc.Custom
	}

	if p.Complex != nil {
		if err := s.complexType(p.Complex); err != nil {
			return nil, err
		}
		nullable := false
		dp.ComplexTypeName = p.Complex.Name.String()
		dp.IsNullable = &nullable
		dp.Validators = []MetaValidator{}
		return dp, nil
	}

	nullable := p.IsNullable
	maxLength := p.MaxLength
	concurrency := p.IsConcurrency
	defaultValue := p.DefaultValue
	if pc != nil {
		if pc.Required != nil {
			nullable = !*pc.Required
		}
		if pc.MaxLength != nil {
			maxLength = *pc.MaxLength
		}
		if pc.DefaultValue != nil {
			defaultValue = pc.DefaultValue
		}
		concurrency = concurrency || pc.Concurrency
	}

	dp.IsNullable = &nullable
	if maxLength > 0 {
		dp.MaxLength = &maxLength
	}
	dp.DefaultValue = defaultValue
	if concurrency {
		dp.ConcurrencyMode = ConcurrencyModeFixed
	}
	if p.IsKey && !owner.IsComplex {
		dp.IsPartOfKey = true
		dp.IsIdentityColumn = p.Generation == GenerationStore
	}

	runtimeType := UnwrapNullable(p.Type)
	switch {
	case p.Enum != nil:
		dp.EnumType = p.Enum.Name.String()
		s.enumRefs = append(s.enumRefs, EnumRef{Type: owner.Name, Property: p.Name, Enum: p.Enum})
		if p.Enum.Text {
			dp.DataType = DataTypeString
		} else if dt, ok := s.dataTypes.Lookup(runtimeType); ok {
			dp.DataType = dt
		} else {
			dp.DataType = DataTypeInt32
		}
	default:
		if dt, ok := s.dataTypes.Lookup(runtimeType); ok {
			dp.DataType = dt
		} else {
			dp.DataType = DataTypeUndefined
			dp.RawTypeName = rawTypeName(p)
			s.logger.Debug("unmapped property type",
				zap.String("type", owner.Name.String()),
				zap.String("property", p.Name),
				zap.String("rawTypeName", dp.RawTypeName))
		}
	}

	dp.Validators = DeriveValidators(dp, runtimeType, s.validators)
	return dp, nil
}

func rawTypeName(p *PropertyInfo) string {
	switch {
	case p.StorageType != "":
		return p.StorageType
	case p.Type != nil:
		return p.Type.String()
	default:
		return "unknown"
	}
}
