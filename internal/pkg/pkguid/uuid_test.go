package pkguid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerateIsV7(t *testing.T) {
	gen := NewUUID()
	seen := make(map[string]struct{}, 20)
	for i := 0; i < 20; i++ {
		raw := gen.Generate()
		id, err := uuid.Parse(raw)
		if err != nil {
			t.Fatalf("invalid uuid %q: %v", raw, err)
		}
		if id.Version() != 7 {
			t.Fatalf("expected version 7, got %d", id.Version())
		}
		if _, dup := seen[raw]; dup {
			t.Fatalf("duplicate id %q", raw)
		}
		seen[raw] = struct{}{}
	}
}
