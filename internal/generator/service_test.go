package generator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-corpus/internal/catalog"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/google/uuid"
)

type memoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	kinds map[string]writeCategory
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{
		files: map[string][]byte{},
		kinds: map[string]writeCategory{},
	}
}

func (w *memoryWriter) EnsureDir(context.Context, string) error { return nil }

func (w *memoryWriter) WriteFile(_ context.Context, req writeFileRequest) error {
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[req.Path] = data
	w.kinds[req.Path] = req.Category
	return nil
}

func (w *memoryWriter) ReadFile(_ context.Context, path string) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (w *memoryWriter) RemoveAll(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path == "." || path == "" {
		w.files = map[string][]byte{}
		w.kinds = map[string]writeCategory{}
		return nil
	}
	prefix := strings.TrimSuffix(path, "/") + "/"
	for name := range w.files {
		if name == path || strings.HasPrefix(name, prefix) {
			delete(w.files, name)
			delete(w.kinds, name)
		}
	}
	return nil
}

func (w *memoryWriter) content(t *testing.T, path string) string {
	t.Helper()
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	if !ok {
		t.Fatalf("expected artifact %q, have %v", path, w.paths())
	}
	return string(data)
}

func (w *memoryWriter) has(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	return ok
}

func (w *memoryWriter) paths() []string {
	out := make([]string, 0, len(w.files))
	for name := range w.files {
		out = append(out, name)
	}
	return out
}

type recordStore struct {
	records []*interfaces.PostRecord
}

func (s *recordStore) Create(context.Context, interfaces.PostCreateRequest) (*interfaces.PostRecord, error) {
	return nil, nil
}

func (s *recordStore) Update(context.Context, interfaces.PostUpdateRequest) (*interfaces.PostRecord, error) {
	return nil, nil
}

func (s *recordStore) GetBySlug(context.Context, string) (*interfaces.PostRecord, error) {
	return nil, nil
}

func (s *recordStore) List(_ context.Context, opts interfaces.PostListOptions) ([]*interfaces.PostRecord, error) {
	if opts.Category == "" {
		return s.records, nil
	}
	var out []*interfaces.PostRecord
	for _, record := range s.records {
		for _, category := range record.Categories {
			if category == opts.Category {
				out = append(out, record)
				break
			}
		}
	}
	return out, nil
}

func (s *recordStore) Delete(context.Context, interfaces.PostDeleteRequest) error {
	return nil
}

func corpusRecord(slug string, published time.Time, categories ...string) *interfaces.PostRecord {
	return &interfaces.PostRecord{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       "Notes on " + strings.ReplaceAll(slug, "-", " "),
		Categories:  categories,
		Excerpt:     "About " + slug,
		BodyHTML:    fmt.Sprintf("<p>Body of %s</p>", slug),
		Checksum:    "sum-" + slug,
		PublishedAt: published,
		ModifiedAt:  published,
	}
}

func newTestGenerator(t *testing.T, cfg Config, records ...*interfaces.PostRecord) (Service, *memoryWriter) {
	t.Helper()
	cat, err := catalog.NewService(&recordStore{records: records})
	if err != nil {
		t.Fatalf("catalog.NewService returned error: %v", err)
	}
	writer := newMemoryWriter()
	svc, err := NewService(cfg, Dependencies{
		Catalog: cat,
		Writer:  writer,
		Clock: func() time.Time {
			return time.Date(2016, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, writer
}

func defaultTestConfig() Config {
	return Config{
		BaseURL:         "https://example.com",
		Title:           "Example Corpus",
		Description:     "Articles about things",
		Incremental:     true,
		GenerateSitemap: true,
		GenerateRobots:  true,
		GenerateFeeds:   true,
	}
}

func TestBuildGeneratesSite(t *testing.T) {
	svc, writer := newTestGenerator(t, defaultTestConfig(),
		corpusRecord("first-post", time.Date(2016, 3, 10, 0, 0, 0, 0, time.UTC), "golang"),
		corpusRecord("second-post", time.Date(2015, 11, 7, 0, 0, 0, 0, time.UTC), "golang", "architecture"),
	)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	// 2 posts, index, 2 categories, 2 archive months.
	if result.PagesBuilt != 7 {
		t.Errorf("expected 7 pages built, got %d (paths %v)", result.PagesBuilt, writer.paths())
	}
	if result.FeedsBuilt != 2 {
		t.Errorf("expected 2 feeds, got %d", result.FeedsBuilt)
	}

	for _, path := range []string{
		"index.html",
		"posts/first-post/index.html",
		"posts/second-post/index.html",
		"categories/golang/index.html",
		"categories/architecture/index.html",
		"archive/2016/03/index.html",
		"archive/2015/11/index.html",
		"feed.xml",
		"feed.atom.xml",
		"sitemap.xml",
		"robots.txt",
		manifestFileName,
	} {
		if !writer.has(path) {
			t.Errorf("missing artifact %q (have %v)", path, writer.paths())
		}
	}

	postHTML := writer.content(t, "posts/first-post/index.html")
	if !strings.Contains(postHTML, "<p>Body of first-post</p>") {
		t.Errorf("post page missing body html: %s", postHTML)
	}

	sitemap := writer.content(t, "sitemap.xml")
	if !strings.Contains(sitemap, "https://example.com/posts/first-post") {
		t.Errorf("sitemap missing post location: %s", sitemap)
	}
}

func TestBuildIncrementalSkipsUnchangedPages(t *testing.T) {
	svc, writer := newTestGenerator(t, defaultTestConfig(),
		corpusRecord("first-post", time.Date(2016, 3, 10, 0, 0, 0, 0, time.UTC), "golang"),
	)

	first, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("first Build returned error: %v", err)
	}
	if first.PagesBuilt == 0 {
		t.Fatal("expected first build to render pages")
	}

	second, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second Build returned error: %v", err)
	}
	if second.PagesBuilt != 0 {
		t.Errorf("expected no pages rebuilt, got %d", second.PagesBuilt)
	}
	if second.PagesSkipped != first.PagesBuilt {
		t.Errorf("expected %d pages skipped, got %d", first.PagesBuilt, second.PagesSkipped)
	}
	// The sitemap still covers skipped pages via the manifest.
	sitemap := writer.content(t, "sitemap.xml")
	if !strings.Contains(sitemap, "/posts/first-post") {
		t.Errorf("sitemap dropped skipped page: %s", sitemap)
	}
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	svc, writer := newTestGenerator(t, defaultTestConfig(),
		corpusRecord("first-post", time.Date(2016, 3, 10, 0, 0, 0, 0, time.UTC), "golang"),
	)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !result.DryRun {
		t.Error("expected dry run result")
	}
	if len(result.Rendered) == 0 {
		t.Error("expected rendered pages in dry run result")
	}
	if len(writer.paths()) != 0 {
		t.Errorf("dry run should not write artifacts, wrote %v", writer.paths())
	}
}

func TestBuildSlugFilterLimitsPostPages(t *testing.T) {
	svc, writer := newTestGenerator(t, defaultTestConfig(),
		corpusRecord("first-post", time.Date(2016, 3, 10, 0, 0, 0, 0, time.UTC), "golang"),
		corpusRecord("second-post", time.Date(2015, 11, 7, 0, 0, 0, 0, time.UTC), "golang"),
	)

	result, err := svc.Build(context.Background(), BuildOptions{Slugs: []string{"First-Post"}})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if result.PagesBuilt != 1 {
		t.Errorf("expected 1 page built, got %d", result.PagesBuilt)
	}
	if !writer.has("posts/first-post/index.html") {
		t.Errorf("missing filtered post page, have %v", writer.paths())
	}
	if writer.has("posts/second-post/index.html") || writer.has("index.html") {
		t.Errorf("slug filter rendered extra pages: %v", writer.paths())
	}
}

func TestBuildConcurrentWorkers(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Workers = 4

	records := make([]*interfaces.PostRecord, 0, 8)
	for i := 0; i < 8; i++ {
		records = append(records, corpusRecord(
			fmt.Sprintf("post-%d", i),
			time.Date(2016, 3, 10+i%5, 0, 0, 0, 0, time.UTC),
			"golang",
		))
	}
	svc, writer := newTestGenerator(t, cfg, records...)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	// 8 posts, index, 1 category, 1 archive month.
	if result.PagesBuilt != 11 {
		t.Errorf("expected 11 pages built, got %d (paths %v)", result.PagesBuilt, writer.paths())
	}
}

func TestCleanRemovesArtifacts(t *testing.T) {
	svc, writer := newTestGenerator(t, defaultTestConfig(),
		corpusRecord("first-post", time.Date(2016, 3, 10, 0, 0, 0, 0, time.UTC), "golang"),
	)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if err := svc.Clean(context.Background()); err != nil {
		t.Fatalf("Clean returned error: %v", err)
	}
	if len(writer.paths()) != 0 {
		t.Errorf("expected empty output after clean, have %v", writer.paths())
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != ErrServiceDisabled {
		t.Errorf("expected ErrServiceDisabled, got %v", err)
	}
	if err := svc.Clean(context.Background()); err != ErrServiceDisabled {
		t.Errorf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestNewServiceRequiresCatalog(t *testing.T) {
	if _, err := NewService(Config{OutputDir: "out"}, Dependencies{}); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}
