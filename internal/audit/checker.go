package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/internal/markdown"
	"github.com/goliatone/go-corpus/internal/validation"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/goliatone/go-corpus/posts"
	"gopkg.in/yaml.v3"
)

// Checker runs the corpus integrity checks.
type Checker struct {
	logger interfaces.Logger
}

// CheckerOption customises checker behaviour.
type CheckerOption func(*Checker)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) CheckerOption {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChecker constructs a checker.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check audits every supplied document and returns the aggregated report.
// Documents that failed to load never reach this point; loader errors are
// surfaced by the caller.
func (c *Checker) Check(ctx context.Context, results []markdown.DocumentResult) (*Report, error) {
	report := &Report{
		Documents:  len(results),
		Duplicates: map[string][]string{},
	}

	slugPaths := map[string][]string{}

	for _, result := range results {
		if result.Document == nil {
			continue
		}
		doc := result.Document

		c.checkFrontMatter(report, doc)
		c.checkDates(report, doc)
		c.checkBody(report, doc)
		c.checkRoundTrip(report, doc)

		slug := c.checkSlug(report, doc)
		if slug != "" {
			slugPaths[slug] = append(slugPaths[slug], doc.FilePath)
		}
	}

	for slug, paths := range slugPaths {
		if len(paths) < 2 {
			continue
		}
		report.Duplicates[slug] = paths
		for _, path := range paths {
			report.add(Issue{
				Severity: SeverityWarning,
				Code:     CodeSlugDuplicate,
				Path:     path,
				Field:    "url",
				Message:  fmt.Sprintf("slug %q shared by %d documents; older copies import as revisions", slug, len(paths)),
			})
		}
	}

	report.sortIssues()

	logging.WithFields(c.baseLogger(ctx), map[string]any{
		"operation": "audit.check",
		"documents": report.Documents,
		"errors":    len(report.Errors()),
		"warnings":  len(report.Warnings()),
	}).Info("audit.check_completed")

	return report, nil
}

func (c *Checker) checkFrontMatter(report *Report, doc *interfaces.Document) {
	payload, err := normalizePayload(doc.FrontMatter.Raw)
	if err != nil {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeFrontMatterSchema,
			Path:     doc.FilePath,
			Message:  err.Error(),
		})
		return
	}

	if err := validation.ValidateFrontMatter(payload); err != nil {
		for _, issue := range validation.Issues(err) {
			report.add(Issue{
				Severity: SeverityError,
				Code:     CodeFrontMatterSchema,
				Path:     doc.FilePath,
				Field:    strings.TrimPrefix(issue.Location, "/"),
				Message:  issue.Message,
			})
		}
	}
}

func (c *Checker) checkDates(report *Report, doc *interfaces.Document) {
	date := c.checkDateField(report, doc, "date")
	modified := c.checkDateField(report, doc, "modified")

	if !date.IsZero() && !modified.IsZero() && modified.Before(date) {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeModifiedBeforeDate,
			Path:     doc.FilePath,
			Field:    "modified",
			Message:  "modified timestamp precedes publication date",
		})
	}
}

func (c *Checker) checkDateField(report *Report, doc *interfaces.Document, field string) time.Time {
	raw, ok := doc.FrontMatter.Raw[field]
	if !ok || raw == nil {
		return time.Time{}
	}

	switch value := raw.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return time.Time{}
		}
		ts, err := markdown.ParseTime(value)
		if err != nil {
			code := CodeDateInvalid
			if field == "modified" {
				code = CodeModifiedInvalid
			}
			report.add(Issue{
				Severity: SeverityError,
				Code:     code,
				Path:     doc.FilePath,
				Field:    field,
				Message:  fmt.Sprintf("cannot parse %q as a timestamp", value),
			})
			return time.Time{}
		}
		return ts
	default:
		// YAML already decoded the value into a native timestamp.
		if field == "date" {
			return doc.FrontMatter.Date
		}
		return doc.FrontMatter.Modified
	}
}

func (c *Checker) checkSlug(report *Report, doc *interfaces.Document) string {
	explicit := strings.TrimSpace(doc.FrontMatter.Slug)
	if explicit != "" {
		if !posts.IsValidSlug(explicit) {
			report.add(Issue{
				Severity: SeverityWarning,
				Code:     CodeSlugInvalid,
				Path:     doc.FilePath,
				Field:    "url",
				Message:  fmt.Sprintf("url %q is not a normalized slug", explicit),
			})
		}
		return strings.ToLower(explicit)
	}

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeSlugMissing,
			Path:     doc.FilePath,
			Field:    "url",
			Message:  "document has neither an explicit url nor a title to derive one from",
		})
		return ""
	}

	derived, err := posts.NormalizeSlug(title)
	if err != nil || derived == "" {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeSlugMissing,
			Path:     doc.FilePath,
			Field:    "title",
			Message:  fmt.Sprintf("cannot derive slug from title %q", title),
		})
		return ""
	}
	return derived
}

func (c *Checker) checkBody(report *Report, doc *interfaces.Document) {
	if strings.TrimSpace(string(doc.Body)) == "" {
		report.add(Issue{
			Severity: SeverityWarning,
			Code:     CodeBodyEmpty,
			Path:     doc.FilePath,
			Message:  "document body is empty",
		})
	}
}

// checkRoundTrip verifies the front matter survives serialize/parse/serialize
// unchanged, which guards against YAML constructs the tooling would not
// rewrite faithfully.
func (c *Checker) checkRoundTrip(report *Report, doc *interfaces.Document) {
	if len(doc.FrontMatter.Raw) == 0 {
		return
	}

	first, err := yaml.Marshal(doc.FrontMatter.Raw)
	if err != nil {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeRoundTrip,
			Path:     doc.FilePath,
			Message:  fmt.Sprintf("front matter cannot be serialized: %v", err),
		})
		return
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(first, &decoded); err != nil {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeRoundTrip,
			Path:     doc.FilePath,
			Message:  fmt.Sprintf("serialized front matter cannot be re-parsed: %v", err),
		})
		return
	}

	second, err := yaml.Marshal(decoded)
	if err != nil || !bytes.Equal(first, second) {
		report.add(Issue{
			Severity: SeverityError,
			Code:     CodeRoundTrip,
			Path:     doc.FilePath,
			Message:  "front matter does not round-trip to stable YAML",
		})
	}
}

func (c *Checker) baseLogger(ctx context.Context) interfaces.Logger {
	logger := c.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}

// normalizePayload reduces front matter values to plain JSON types so the
// schema validator sees the same shapes a JSON decoder would produce. Nested
// mappings arrive from the YAML decoder keyed by interface{} and must be
// rekeyed before the JSON round-trip.
func normalizePayload(raw map[string]any) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		normalized[key] = normalizeValue(value)
	}
	encoded, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("front matter not representable: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, fmt.Errorf("front matter not representable: %w", err)
	}
	return payload, nil
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, elem := range typed {
			out[key] = normalizeValue(elem)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, elem := range typed {
			out[fmt.Sprint(key)] = normalizeValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, elem := range typed {
			out[i] = normalizeValue(elem)
		}
		return out
	default:
		return typed
	}
}
