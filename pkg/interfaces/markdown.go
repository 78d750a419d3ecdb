package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across calls; extension toggles let
// hosts tailor rendering without rewriting the core service.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the high-level file workflows for a corpus of
// Markdown articles: load documents from disk, render them to HTML, and
// synchronise them with the post index.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
	Sync(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error)
}

// Document represents a Markdown article file with parsed metadata and
// content. The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so sync workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// FrontMatter models the YAML metadata block at the top of an article file.
// The recognised keys mirror what blog corpora actually carry; anything else
// lands in Custom, and Raw preserves the full key/value set for round-trip
// comparisons.
type FrontMatter struct {
	Title       string
	Slug        string
	Categories  []string
	Authors     []string
	Excerpt     string
	Description string
	Image       string
	// Date and Modified are zero when the source value is absent or does not
	// parse as an ISO-8601-like timestamp; the original strings stay in Raw so
	// audits can report malformed values.
	Date     time.Time
	Modified time.Time
	Draft    bool
	Custom   map[string]any
	Raw      map[string]any
}

// Summary returns the preferred short description for the document. The
// corpus uses excerpt and description interchangeably; excerpt wins when
// both are present.
func (fm FrontMatter) Summary() string {
	if fm.Excerpt != "" {
		return fm.Excerpt
	}
	return fm.Description
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how Markdown documents are converted into posts.
type ImportOptions struct {
	DryRun bool
	// SkipDrafts leaves documents flagged draft out of the import.
	SkipDrafts bool
}

// SyncOptions extends ImportOptions to handle update/delete semantics for
// repeated synchronisation runs.
type SyncOptions struct {
	ImportOptions
	DeleteOrphaned bool
}

// ImportResult reports the outcome of a single import operation, exposing
// counts and IDs so callers can audit behaviour or trigger follow-up actions.
type ImportResult struct {
	CreatedPostIDs []uuid.UUID
	UpdatedPostIDs []uuid.UUID
	SkippedPostIDs []uuid.UUID
	Errors         []error
}

// SyncResult summarises a bulk sync run across many files.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
