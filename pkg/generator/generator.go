// Package generator exposes the static site generation API for go-corpus hosts.
// Use NewService with Config and Dependencies to render the article corpus
// into a publishable tree of pages, feeds, and sitemaps.
package generator

import internal "github.com/goliatone/go-corpus/internal/generator"

type (
	Service          = internal.Service
	Config           = internal.Config
	BuildOptions     = internal.BuildOptions
	BuildResult      = internal.BuildResult
	RenderedPage     = internal.RenderedPage
	RenderDiagnostic = internal.RenderDiagnostic
	Dependencies     = internal.Dependencies
	TemplateRenderer = internal.TemplateRenderer
	TemplateContext  = internal.TemplateContext
	SiteMetadata     = internal.SiteMetadata
)

var ErrServiceDisabled = internal.ErrServiceDisabled

// NewService wires a static site generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	return internal.NewService(cfg, deps)
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return internal.NewDisabledService()
}

// NewHTMLRenderer builds the default html/template renderer, optionally with
// caller supplied template sources keyed by page kind.
func NewHTMLRenderer(sources map[string]string) (TemplateRenderer, error) {
	return internal.NewHTMLRenderer(sources)
}
