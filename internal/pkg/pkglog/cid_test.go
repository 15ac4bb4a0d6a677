package pkglog

import (
	"context"
	"testing"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	if id, ok := CorrelationID(context.Background()); ok || id != "" {
		t.Fatalf("expected no id on a bare context, got %q", id)
	}

	ctx := WithCorrelationID(context.Background(), "upload-7")
	if id, ok := CorrelationID(ctx); !ok || id != "upload-7" {
		t.Fatalf("expected upload-7, got %q (ok=%v)", id, ok)
	}

	if _, ok := CorrelationID(WithCorrelationID(ctx, "")); ok {
		t.Fatalf("empty id must be reported as absent")
	}
}
