package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

// LoadConstraints reads a YAML constraint table. An empty path yields a nil
// table, which changes nothing.
func LoadConstraints(path string) (*metadata.ConstraintTable, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read constraints file: %w", err)
	}
	table, err := ParseConstraints(data)
	if err != nil {
		return nil, fmt.Errorf("constraints file %s: %w", path, err)
	}
	return table, nil
}

// ParseConstraints decodes and validates a YAML constraint table. Unknown
// keys are rejected.
func ParseConstraints(data []byte) (*metadata.ConstraintTable, error) {
	table := &metadata.ConstraintTable{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(table); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse constraints: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
