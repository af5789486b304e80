package cache

import (
	"context"
	"testing"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok := c.Get(ctx, "loans"); ok {
		t.Error("Expected miss on empty cache")
	}

	if err := c.Set(ctx, "loans", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, ok := c.Get(ctx, "loans")
	if !ok || val != `[]` {
		t.Errorf("Get = (%q, %v), want (%q, true)", val, ok, `[]`)
	}

	if err := c.Delete(ctx, "loans"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := c.Get(ctx, "loans"); ok {
		t.Error("Expected miss after delete")
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of absent key failed: %v", err)
	}
}
