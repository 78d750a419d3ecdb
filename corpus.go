package corpus

import (
	"github.com/goliatone/go-corpus/internal/audit"
	"github.com/goliatone/go-corpus/internal/catalog"
	"github.com/goliatone/go-corpus/internal/di"
	"github.com/goliatone/go-corpus/internal/generator"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// PostStore exports the post index contract for consumers of the corpus package.
type PostStore = interfaces.PostStore

// MarkdownService exports the markdown workflow contract.
type MarkdownService = interfaces.MarkdownService

// ShortcodeService exports the shortcode expansion contract.
type ShortcodeService = interfaces.ShortcodeService

// CatalogService exports the category and archive index contract.
type CatalogService = *catalog.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// AuditService exports the corpus lint contract.
type AuditService = *audit.Service

// Document exports the parsed article representation.
type Document = interfaces.Document

// PostRecord exports the indexed post representation.
type PostRecord = interfaces.PostRecord

// LoadOptions exports the markdown load options.
type LoadOptions = interfaces.LoadOptions

// ParseOptions exports the markdown parse options.
type ParseOptions = interfaces.ParseOptions

// ImportOptions exports the markdown import options.
type ImportOptions = interfaces.ImportOptions

// ImportResult exports the markdown import outcome.
type ImportResult = interfaces.ImportResult

// SyncOptions exports the markdown sync options.
type SyncOptions = interfaces.SyncOptions

// SyncResult exports the markdown sync outcome.
type SyncResult = interfaces.SyncResult

// AuditDirectoryOptions exports the options accepted by directory audits.
type AuditDirectoryOptions = audit.DirectoryOptions

// AuditReport exports the audit report produced by corpus lint runs.
type AuditReport = audit.Report

// BuildOptions exports the options accepted by site builds.
type BuildOptions = generator.BuildOptions

// BuildResult exports the outcome of a site build.
type BuildResult = generator.BuildResult

// Module represents the top level corpus runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a corpus module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts returns the configured post index.
func (m *Module) Posts() PostStore {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.PostStore()
}

// Markdown returns the configured markdown service. It is nil until the
// markdown workflow is enabled in the configuration.
func (m *Module) Markdown() MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Shortcodes returns the configured shortcode service.
func (m *Module) Shortcodes() ShortcodeService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ShortcodeService()
}

// Catalog returns the configured catalog service.
func (m *Module) Catalog() CatalogService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CatalogService()
}

// Generator returns the configured static site generator.
func (m *Module) Generator() GeneratorService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.GeneratorService()
}

// Audit returns the configured corpus lint service.
func (m *Module) Audit() AuditService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AuditService()
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.container.Logger()
}
