package idgen

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	id, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(id, DefaultPrefix) {
		t.Errorf("id %q missing prefix %q", id, DefaultPrefix)
	}
	if len(id) != len(DefaultPrefix)+Length {
		t.Errorf("id length = %d, want %d", len(id), len(DefaultPrefix)+Length)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	id, err := GenerateWithPrefix("req-")
	if err != nil {
		t.Fatalf("GenerateWithPrefix: %v", err)
	}
	if !strings.HasPrefix(id, "req-") {
		t.Errorf("id %q missing prefix req-", id)
	}
}
