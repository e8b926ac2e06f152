package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "breezemeta version: dev") || !strings.Contains(out, "Metadata version: 1.0.5") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestDumpBuiltIn(t *testing.T) {
	out, err := run(t, "dump", "accounts", "--indent", "0", "--metadata-version", "3.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc metadata.BreezeMetadata
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not a document: %v", err)
	}
	if doc.MetadataVersion != "3.1.0" {
		t.Errorf("expected metadataVersion 3.1.0, got %s", doc.MetadataVersion)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected compact output")
	}
}

func TestDumpModelFileWithConstraints(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.yaml")
	constraints := filepath.Join(dir, "constraints.yaml")
	if err := os.WriteFile(model, []byte(`namespace: Shop
types:
  - name: Item
    keys: ItemID
    properties:
      - name: ItemID
        type: int32
        generation: store
      - name: Title
        type: string
`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(constraints, []byte(`types:
  - type: Item
    resourceName: Catalog
    properties:
      - name: Title
        maxLength: 80
`), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "dump", "--file", model, "--constraints", constraints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc metadata.BreezeMetadata
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not a document: %v", err)
	}
	if len(doc.StructuralTypes) != 1 || doc.StructuralTypes[0].DefaultResourceName != "Catalog" {
		t.Fatalf("unexpected document: %s", out)
	}
	title := doc.StructuralTypes[0].DataProperties[1]
	if title.MaxLength == nil || *title.MaxLength != 80 {
		t.Errorf("expected maxLength 80 on Title, got %v", title.MaxLength)
	}
}

func TestDumpUnknownContext(t *testing.T) {
	if _, err := run(t, "dump", "inventory"); err == nil || !strings.Contains(err.Error(), "metadata context not found") {
		t.Fatalf("expected context not found error, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ accounts:") || !strings.Contains(out, "✓ northwind:") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestCheckFailure(t *testing.T) {
	model := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(model, []byte("namespace: S\ntypes:\n  - name: A\n    base: Missing\n    properties: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "check", "--file", model)
	if err == nil {
		t.Fatalf("expected a failure")
	}
	if !strings.Contains(out, "✗ file:") || !strings.Contains(out, "unknown base type") {
		t.Errorf("unexpected output: %s", out)
	}
}
