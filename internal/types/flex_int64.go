package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FlexInt64 is an int64 that can be decoded from either a number or a string.
type FlexInt64 int64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt64(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return f.parse(s)
	}

	return fmt.Errorf("FlexInt64: unexpected type, expected number or string")
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (f *FlexInt64) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("FlexInt64: unexpected node at line %d, expected number or string", value.Line)
	}
	return f.parse(value.Value)
}

func (f *FlexInt64) parse(s string) error {
	val, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return fmt.Errorf("FlexInt64: invalid int64 string %q: %w", s, err)
	}
	*f = FlexInt64(val)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// Int64 converts FlexInt64 back to int64.
func (f FlexInt64) Int64() int64 {
	return int64(f)
}
