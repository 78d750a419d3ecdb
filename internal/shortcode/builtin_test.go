package shortcode

import (
	"testing"
)

func TestBuiltInDefinitionsRegister(t *testing.T) {
	registry := NewRegistry(NewValidator())

	if err := RegisterBuiltIns(registry, nil); err != nil {
		t.Fatalf("RegisterBuiltIns returned error: %v", err)
	}

	for _, name := range []string{"image", "github", "youtube", "alert", "code"} {
		if _, ok := registry.Get(name); !ok {
			t.Errorf("built-in %q not registered", name)
		}
	}
}

func TestRegisterBuiltInsSubset(t *testing.T) {
	registry := NewRegistry(NewValidator())

	if err := RegisterBuiltIns(registry, []string{"image", "github"}); err != nil {
		t.Fatalf("RegisterBuiltIns returned error: %v", err)
	}

	if _, ok := registry.Get("image"); !ok {
		t.Error("image not registered")
	}
	if _, ok := registry.Get("youtube"); ok {
		t.Error("youtube should not be registered")
	}
}

func TestRegisterBuiltInsUnknownName(t *testing.T) {
	registry := NewRegistry(NewValidator())

	if err := RegisterBuiltIns(registry, []string{"marquee"}); err == nil {
		t.Fatal("expected error for unknown built-in")
	}
}

func TestGithubRepoValidation(t *testing.T) {
	validator := NewValidator()
	def := githubDefinition()

	if _, err := validator.CoerceParams(def, map[string]any{"repo": "not-a-repo"}); err == nil {
		t.Fatal("expected error for repo without owner")
	}
	if _, err := validator.CoerceParams(def, map[string]any{"repo": "goliatone/go-corpus"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
