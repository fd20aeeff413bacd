package ratelimit

import "testing"

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatalf("expected bucket exhausted")
	}
}

func TestAllowIsolatesKeys(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first key should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("first key exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("second key must have its own bucket")
	}
}
