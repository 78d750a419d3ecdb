package audit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/internal/markdown"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// ErrDirectoryRequired indicates an audit run was started without a source directory.
var ErrDirectoryRequired = errors.New("audit: directory is required")

// DirectoryOptions narrows which files an audit run inspects.
type DirectoryOptions struct {
	// Pattern limits audited files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed. Defaults to true.
	Recursive *bool
}

// Service audits a directory of Markdown articles: it loads every document and
// runs the checker over the result set.
type Service struct {
	checker *Checker
	logger  interfaces.Logger
}

// ServiceOption customises the audit service.
type ServiceOption func(*Service)

// WithServiceLogger attaches a logger to the audit service.
func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs an audit service with its own checker.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	s.checker = NewChecker(WithLogger(s.logger))
	return s
}

// AuditDirectory loads Markdown files beneath dir and audits them.
func (s *Service) AuditDirectory(ctx context.Context, dir string, opts DirectoryOptions) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, ErrDirectoryRequired
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	recursive := true
	if opts.Recursive != nil {
		recursive = *opts.Recursive
	}

	loader := markdown.NewLoader(os.DirFS(abs), markdown.LoaderConfig{
		BasePath:  ".",
		Pattern:   opts.Pattern,
		Recursive: recursive,
	})

	results, err := loader.LoadDirectory(ctx, ".", markdown.LoadParams{})
	if err != nil {
		return nil, err
	}

	docs := make([]markdown.DocumentResult, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		docs = append(docs, *result)
	}

	report, err := s.checker.Check(ctx, docs)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"directory": abs,
		"documents": report.Documents,
		"errors":    len(report.Errors()),
		"warnings":  len(report.Warnings()),
	}).Info("audit.directory_completed")

	return report, nil
}
