package di

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-corpus/internal/generator"
	"github.com/goliatone/go-corpus/internal/runtimeconfig"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func TestNewContainerDefaults(t *testing.T) {
	c, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if c.PostStore() == nil {
		t.Fatal("expected post store")
	}
	if c.ShortcodeService() == nil {
		t.Fatal("expected shortcode service")
	}
	if c.CatalogService() == nil {
		t.Fatal("expected catalog service")
	}
	if c.AuditService() == nil {
		t.Fatal("expected audit service")
	}
	if c.MarkdownService() != nil {
		t.Fatal("markdown service should be nil until enabled")
	}
	if c.BunDB() != nil {
		t.Fatal("expected in-memory storage by default")
	}
}

func TestNewContainerPostStoreRoundTrip(t *testing.T) {
	c, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	ctx := context.Background()
	created, err := c.PostStore().Create(ctx, interfaces.PostCreateRequest{
		Slug:        "first-post",
		Title:       "First Post",
		Body:        "Body",
		Checksum:    "sum",
		SourcePath:  "articles/first-post.md",
		PublishedAt: time.Date(2016, 3, 8, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := c.PostStore().GetBySlug(ctx, "first-post")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, found.ID)
	}
}

func TestNewContainerDisabledGenerator(t *testing.T) {
	c, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if _, err := c.GeneratorService().Build(context.Background(), generator.BuildOptions{}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestNewContainerGeneratorEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Generator = true
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = t.TempDir()
	cfg.Site.BaseURL = "https://example.com"

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	result, err := c.GeneratorService().Build(context.Background(), generator.BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.DryRun {
		t.Fatal("expected dry-run result")
	}
}

func TestNewContainerMarkdownEnabled(t *testing.T) {
	dir := t.TempDir()
	article := "---\ntitle: First Post\ndate: 2016-03-08\nurl: first-post\ncategories:\n  - golang\n---\n\nBody of the article.\n"
	if err := os.WriteFile(filepath.Join(dir, "first-post.md"), []byte(article), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = dir

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.MarkdownService() == nil {
		t.Fatal("expected markdown service")
	}

	result, err := c.MarkdownService().ImportDirectory(context.Background(), ".", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.CreatedPostIDs) != 1 {
		t.Fatalf("expected 1 created post, got %d", len(result.CreatedPostIDs))
	}

	post, err := c.PostStore().GetBySlug(context.Background(), "first-post")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if post.Title != "First Post" {
		t.Fatalf("unexpected title %q", post.Title)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = true
	cfg.Features.Markdown = false

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected config error, got %v", err)
	}
}

type stubPostStore struct {
	interfaces.PostStore
}

func TestNewContainerServiceOverrides(t *testing.T) {
	store := &stubPostStore{}
	c, err := NewContainer(runtimeconfig.DefaultConfig(), WithPostStore(store))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.PostStore() != store {
		t.Fatal("expected post store override to win")
	}
}

func TestNewContainerShortcodesDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Shortcodes = false

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	content := "before {{% github repo=\"goliatone/go-corpus\" %}} after"
	out, err := c.ShortcodeService().Process(context.Background(), content)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != content {
		t.Fatalf("expected passthrough, got %q", out)
	}
}
