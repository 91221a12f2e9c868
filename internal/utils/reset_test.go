package utils

import (
	"encoding/hex"
	"testing"
)

func TestNewResetTokenShape(t *testing.T) {
	raw, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if len(raw) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(raw))
	}
	if _, err := hex.DecodeString(raw); err != nil {
		t.Fatalf("token is not valid hex: %v", err)
	}
}

func TestNewResetTokenIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		raw, err := NewResetToken()
		if err != nil {
			t.Fatalf("NewResetToken: %v", err)
		}
		if _, dup := seen[raw]; dup {
			t.Fatal("duplicate token generated")
		}
		seen[raw] = struct{}{}
	}
}

func TestHashResetRaw(t *testing.T) {
	a := HashResetRaw("token-a")
	b := HashResetRaw("token-b")
	if a == b {
		t.Error("different tokens hash identically")
	}
	if a != HashResetRaw("token-a") {
		t.Error("hash is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
	if a == "token-a" {
		t.Error("hash equals its input")
	}
}
