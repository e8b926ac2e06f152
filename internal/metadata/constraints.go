package metadata

import "fmt"

// ConstraintTable holds explicit overrides applied while building types.
// A zero or nil table changes nothing.
type ConstraintTable struct {
	Types []TypeConstraint `yaml:"types" json:"types"`
}

// TypeConstraint overrides one type. Type is a short or qualified name.
type TypeConstraint struct {
	Type         string               `yaml:"type" json:"type"`
	ResourceName string               `yaml:"resourceName,omitempty" json:"resourceName,omitempty"`
	KeyGenerator bool                 `yaml:"keyGenerator,omitempty" json:"keyGenerator,omitempty"`
	Properties   []PropertyConstraint `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// PropertyConstraint overrides one property of a type.
type PropertyConstraint struct {
	Name         string `yaml:"name" json:"name"`
	Required     *bool  `yaml:"required,omitempty" json:"required,omitempty"`
	MaxLength    *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Concurrency  bool   `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	DefaultValue any    `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Custom       any    `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// Validate rejects duplicate and unnamed entries.
func (c *ConstraintTable) Validate() error {
	if c == nil {
		return nil
	}
	seenTypes := make(map[string]bool, len(c.Types))
	for _, tc := range c.Types {
		if tc.Type == "" {
			return fmt.Errorf("constraint entry without a type")
		}
		if seenTypes[tc.Type] {
			return fmt.Errorf("duplicate constraints for type %s", tc.Type)
		}
		seenTypes[tc.Type] = true

		seenProps := make(map[string]bool, len(tc.Properties))
		for _, pc := range tc.Properties {
			if pc.Name == "" {
				return fmt.Errorf("constraint on type %s without a property name", tc.Type)
			}
			if seenProps[pc.Name] {
				return fmt.Errorf("duplicate constraints for %s.%s", tc.Type, pc.Name)
			}
			seenProps[pc.Name] = true
			if pc.MaxLength != nil && *pc.MaxLength <= 0 {
				return fmt.Errorf("constraint %s.%s: maxLength must be positive", tc.Type, pc.Name)
			}
		}
	}
	return nil
}

// ForType finds the entry for name. Qualified entries win over short ones.
func (c *ConstraintTable) ForType(name QualifiedName) *TypeConstraint {
	if c == nil {
		return nil
	}
	var short *TypeConstraint
	for i := range c.Types {
		switch c.Types[i].Type {
		case name.String():
			return &c.Types[i]
		case name.ShortName:
			short = &c.Types[i]
		}
	}
	return short
}

// ForProperty finds the entry for a property of the type.
func (tc *TypeConstraint) ForProperty(name string) *PropertyConstraint {
	if tc == nil {
		return nil
	}
	for i := range tc.Properties {
		if tc.Properties[i].Name == name {
			return &tc.Properties[i]
		}
	}
	return nil
}
