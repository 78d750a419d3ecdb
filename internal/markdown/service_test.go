package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

type upperShortcodes struct {
	calls int
}

func (u *upperShortcodes) Process(_ context.Context, content string) (string, error) {
	u.calls++
	return strings.ReplaceAll(content, "{{% greeting %}}", "<em>hello</em>"), nil
}

func (u *upperShortcodes) Registry() interfaces.ShortcodeRegistry {
	return nil
}

func newServiceFS() fstest.MapFS {
	return fstest.MapFS{
		"first-post.md": &fstest.MapFile{Data: []byte(`---
title: First Post
url: first-post
date: 2016-03-08
---
# Heading

Body text.
`)},
		"second-post.md": &fstest.MapFile{Data: []byte(`---
title: Second Post
url: second-post
date: 2016-04-01
---
Another body.
`)},
	}
}

func newTestService(t *testing.T, fsys fstest.MapFS, opts ...ServiceOption) *Service {
	t.Helper()
	opts = append([]ServiceOption{WithFilesystem(fsys)}, opts...)
	svc, err := NewService(Config{Pattern: "*.md"}, nil, opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceRender(t *testing.T) {
	svc := newTestService(t, newServiceFS())

	html, err := svc.Render(context.Background(), []byte("# Title\n\nparagraph"), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<h1") {
		t.Errorf("expected heading in output, got %s", html)
	}
}

func TestServiceRenderExpandsShortcodes(t *testing.T) {
	shortcodes := &upperShortcodes{}
	svc := newTestService(t, newServiceFS(), WithShortcodeService(shortcodes))

	html, err := svc.Render(context.Background(), []byte("Say {{% greeting %}} twice."), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if shortcodes.calls != 1 {
		t.Fatalf("expected shortcode service to run once, got %d", shortcodes.calls)
	}
	if !strings.Contains(string(html), "<em>hello</em>") {
		t.Errorf("expected expanded shortcode in output, got %s", html)
	}
}

func TestServiceRenderDocument(t *testing.T) {
	svc := newTestService(t, newServiceFS())

	doc := &interfaces.Document{Body: []byte("**bold**")}
	html, err := svc.RenderDocument(context.Background(), doc, interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !strings.Contains(string(html), "<strong>bold</strong>") {
		t.Errorf("unexpected html: %s", html)
	}
	if string(doc.BodyHTML) != string(html) {
		t.Error("expected document body html to be set")
	}
}

func TestServiceRenderDocumentNil(t *testing.T) {
	svc := newTestService(t, newServiceFS())
	if _, err := svc.RenderDocument(context.Background(), nil, interfaces.ParseOptions{}); err == nil {
		t.Fatal("expected error for nil document")
	}
}

func TestServiceLoadRendersBody(t *testing.T) {
	svc := newTestService(t, newServiceFS())

	doc, err := svc.Load(context.Background(), "first-post.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.FrontMatter.Title != "First Post" {
		t.Errorf("title = %q", doc.FrontMatter.Title)
	}
	if !strings.Contains(string(doc.BodyHTML), "<h1") {
		t.Errorf("expected rendered body, got %s", doc.BodyHTML)
	}
}

func TestServiceLoadDirectorySorted(t *testing.T) {
	svc := newTestService(t, newServiceFS())

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].FilePath != "first-post.md" || docs[1].FilePath != "second-post.md" {
		t.Errorf("unexpected order: %s, %s", docs[0].FilePath, docs[1].FilePath)
	}
}

func TestServiceImportDirectory(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, newServiceFS(), WithPostStore(store))

	result, err := svc.ImportDirectory(context.Background(), ".", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.CreatedPostIDs) != 2 {
		t.Fatalf("expected 2 created posts, got %d", len(result.CreatedPostIDs))
	}
	record, ok := store.records["first-post"]
	if !ok {
		t.Fatal("expected first-post to be indexed")
	}
	if record.Title != "First Post" {
		t.Errorf("title = %q", record.Title)
	}
}

func TestServiceSyncDeletesOrphans(t *testing.T) {
	store := newStubStore()
	fsys := newServiceFS()
	svc := newTestService(t, fsys, WithPostStore(store))
	ctx := context.Background()

	if _, err := svc.ImportDirectory(ctx, ".", interfaces.ImportOptions{}); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	delete(fsys, "second-post.md")
	result, err := svc.Sync(ctx, ".", interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Deleted != 1 {
		t.Errorf("deleted = %d", result.Deleted)
	}
	if _, ok := store.records["second-post"]; ok {
		t.Error("expected second-post to be removed")
	}
}

func TestServiceImportWithoutStore(t *testing.T) {
	svc := newTestService(t, newServiceFS())
	doc := &interfaces.Document{FrontMatter: interfaces.FrontMatter{Slug: "first-post"}}
	if _, err := svc.Import(context.Background(), doc, interfaces.ImportOptions{}); err != ErrPostStoreRequired {
		t.Fatalf("expected ErrPostStoreRequired, got %v", err)
	}
}
