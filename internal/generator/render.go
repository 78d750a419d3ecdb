package generator

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/goliatone/go-corpus/internal/catalog"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// PageKind distinguishes the page types the site assembler emits.
type PageKind string

const (
	KindPost     PageKind = "post"
	KindIndex    PageKind = "index"
	KindCategory PageKind = "category"
	KindArchive  PageKind = "archive"
)

// TemplateRenderer renders a named template with the supplied context.
type TemplateRenderer interface {
	Render(ctx context.Context, name string, data TemplateContext) (string, error)
}

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	BaseURL     string
	Title       string
	Description string
	Metadata    map[string]any
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
	Options     BuildOptions
}

// TemplateContext is the data contract passed to TemplateRenderer implementations.
type TemplateContext struct {
	Site       SiteMetadata
	Build      BuildMetadata
	Kind       PageKind
	Post       *interfaces.PostRecord
	Posts      []*interfaces.PostRecord
	Category   string
	Categories []catalog.CategorySummary
	Archive    *catalog.ArchiveBucket
	Helpers    TemplateHelpers
}

// TemplateHelpers exposes convenience helpers for template authors.
type TemplateHelpers struct {
	baseURL string
}

func newTemplateHelpers(baseURL string) TemplateHelpers {
	return TemplateHelpers{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// BaseURL returns the configured site base URL.
func (h TemplateHelpers) BaseURL() string {
	return h.baseURL
}

// WithBaseURL prefixes the provided path with the configured base URL.
func (h TemplateHelpers) WithBaseURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return h.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if h.baseURL == "" {
		return path
	}
	return h.baseURL + path
}

// HTML marks rendered article markup as safe for template insertion. The
// markdown pipeline already sanitised it.
func (h TemplateHelpers) HTML(value string) template.HTML {
	return template.HTML(value)
}

// FormatDate renders a timestamp in the long form used across the site.
func (h TemplateHelpers) FormatDate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("January 2, 2006")
}

// RenderedPage captures the rendered HTML output for a site page.
type RenderedPage struct {
	Kind         PageKind
	Slug         string
	Route        string
	Output       string
	Template     string
	HTML         string
	Checksum     string
	// SourceHash fingerprints the page inputs, used by incremental builds.
	SourceHash   string
	LastModified time.Time
	Duration     time.Duration
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	Kind     PageKind
	Slug     string
	Route    string
	Template string
	Duration time.Duration
	Skipped  bool
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}

// htmlRenderer renders html/template sources parsed at construction time.
type htmlRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer parses the supplied name/source pairs into a renderer.
// When sources is nil the built-in templates are used.
func NewHTMLRenderer(sources map[string]string) (TemplateRenderer, error) {
	if sources == nil {
		sources = defaultTemplates()
	}
	root := template.New("site")
	for name, source := range sources {
		if _, err := root.New(name).Parse(source); err != nil {
			return nil, fmt.Errorf("generator: parse template %q: %w", name, err)
		}
	}
	return &htmlRenderer{templates: root}, nil
}

func (r *htmlRenderer) Render(_ context.Context, name string, data TemplateContext) (string, error) {
	tmpl := r.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("generator: template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generator: render template %q: %w", name, err)
	}
	return buf.String(), nil
}
