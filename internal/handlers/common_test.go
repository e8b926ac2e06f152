package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
	"github.com/localnerve/jam-build-breezemeta/internal/types"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"not found", fmt.Errorf("%w: inventory", services.ErrContextNotFound), 404, types.ErrorTypeNotFound},
		{"unsupported", fmt.Errorf("context x: %w", &metadata.UnsupportedModelError{Type: "A:#S", Reason: "bad"}), 500, types.ErrorTypeUnsupportedModel},
		{"other", errors.New("boom"), 500, types.ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := classifyError("inventory", tt.err, nil)
			if ce.Code != tt.code || ce.Type != tt.kind {
				t.Errorf("expected %d/%s, got %d/%s", tt.code, tt.kind, ce.Code, ce.Type)
			}
		})
	}

	if ce := classifyError("inventory", services.ErrContextNotFound, nil); ce.Message != "Metadata context 'inventory' not found" {
		t.Errorf("unexpected message %q", ce.Message)
	}
}
