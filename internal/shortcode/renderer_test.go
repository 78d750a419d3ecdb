package shortcode

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

type memoryCache struct {
	mu     sync.Mutex
	values map[string]any
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]any)}
}

func (c *memoryCache) Get(_ context.Context, key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return value, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string]any)
	return nil
}

func newTestRenderer(t *testing.T, defs ...interfaces.ShortcodeDefinition) *Renderer {
	t.Helper()
	validator := NewValidator()
	registry := NewRegistry(validator)
	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			t.Fatalf("Register(%s) returned error: %v", def.Name, err)
		}
	}
	return NewRenderer(registry, validator)
}

func TestRendererTemplateOutput(t *testing.T) {
	renderer := newTestRenderer(t, imageDefinition())

	html, err := renderer.Render(interfaces.ShortcodeContext{Context: context.Background()}, "image", map[string]any{
		"src": "/images/gopher.png",
		"alt": "a gopher",
	}, "")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	output := string(html)
	if !strings.Contains(output, `src="/images/gopher.png"`) {
		t.Errorf("missing src in output: %s", output)
	}
	if !strings.Contains(output, `alt="a gopher"`) {
		t.Errorf("missing alt in output: %s", output)
	}
}

func TestRendererUnknownShortcode(t *testing.T) {
	renderer := newTestRenderer(t)

	if _, err := renderer.Render(interfaces.ShortcodeContext{}, "nope", nil, ""); !errors.Is(err, ErrUnknownShortcode) {
		t.Fatalf("expected ErrUnknownShortcode, got %v", err)
	}
}

func TestRendererHandlerPreferredOverTemplate(t *testing.T) {
	def := interfaces.ShortcodeDefinition{
		Name:     "custom",
		Template: `<span>template</span>`,
		Handler: func(_ interfaces.ShortcodeContext, _ map[string]any, _ string) (template.HTML, error) {
			return "<span>handler</span>", nil
		},
	}
	renderer := newTestRenderer(t, def)

	html, err := renderer.Render(interfaces.ShortcodeContext{}, "custom", nil, "")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if string(html) != "<span>handler</span>" {
		t.Errorf("expected handler output, got %s", html)
	}
}

func TestRendererSanitizesOutput(t *testing.T) {
	def := interfaces.ShortcodeDefinition{
		Name:     "evil",
		Template: `<script>alert(1)</script>`,
	}
	renderer := newTestRenderer(t, def)

	if _, err := renderer.Render(interfaces.ShortcodeContext{}, "evil", nil, ""); err == nil {
		t.Fatal("expected sanitizer to reject script output")
	}
}

func TestRendererCachesByTTL(t *testing.T) {
	def := githubDefinition()
	cache := newMemoryCache()
	validator := NewValidator()
	registry := NewRegistry(validator)
	if err := registry.Register(def); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	renderer := NewRenderer(registry, validator, WithRendererCache(cache))

	ctx := interfaces.ShortcodeContext{Context: context.Background()}
	params := map[string]any{"repo": "goliatone/go-corpus"}

	first, err := renderer.Render(ctx, "github", params, "")
	if err != nil {
		t.Fatalf("first Render returned error: %v", err)
	}
	second, err := renderer.Render(ctx, "github", params, "")
	if err != nil {
		t.Fatalf("second Render returned error: %v", err)
	}

	if first != second {
		t.Errorf("expected identical cached output")
	}
	if cache.sets != 1 {
		t.Errorf("expected single cache write, got %d", cache.sets)
	}
}
