package derive_test

import (
	"testing"

	"github.com/isuruf/jumplab/internal/derive"
)

func TestRegistryList(t *testing.T) {
	registry := derive.NewRegistry()

	names := registry.List()
	want := []string{"dirichlet", "neumann", "transmission"}
	if len(names) != len(want) {
		t.Fatalf("expected %d problems, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("List()[%d] = %s, want %s", i, names[i], name)
		}
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := derive.NewRegistry()

	if _, err := registry.Get("helmholtz"); err == nil {
		t.Error("expected error for unknown problem")
	}
}

func TestRegistryBuildsFreshProblems(t *testing.T) {
	registry := derive.NewRegistry()

	p1, err := registry.Get("transmission")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := registry.Get("transmission")
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Error("Get returned a shared problem instance")
	}
	if !p1.Interior.Equal(p2.Interior) {
		t.Error("fresh problems differ structurally")
	}
}
