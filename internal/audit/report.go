// Package audit runs integrity checks across a loaded article corpus:
// front matter schema conformance, slug uniqueness, date validity, and
// YAML round-trip stability.
package audit

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies an issue. Errors indicate documents the importer
// cannot represent faithfully; warnings flag conventions worth fixing.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes reported by the checker.
const (
	CodeFrontMatterSchema = "frontmatter_schema"
	CodeDateInvalid       = "date_invalid"
	CodeModifiedInvalid   = "modified_invalid"
	CodeModifiedBeforeDate = "modified_before_date"
	CodeSlugInvalid       = "slug_invalid"
	CodeSlugMissing       = "slug_missing"
	CodeSlugDuplicate     = "slug_duplicate"
	CodeBodyEmpty         = "body_empty"
	CodeRoundTrip         = "frontmatter_round_trip"
)

// Issue captures a single finding against a document.
type Issue struct {
	Severity Severity
	Code     string
	Path     string
	Field    string
	Message  string
}

func (i Issue) String() string {
	var builder strings.Builder
	builder.WriteString(string(i.Severity))
	builder.WriteString(" [")
	builder.WriteString(i.Code)
	builder.WriteString("] ")
	builder.WriteString(i.Path)
	if i.Field != "" {
		builder.WriteString("#")
		builder.WriteString(i.Field)
	}
	if i.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(i.Message)
	}
	return builder.String()
}

// Report aggregates findings for a corpus run.
type Report struct {
	Documents  int
	Issues     []Issue
	Duplicates map[string][]string
}

// HasErrors reports whether any issue carries error severity.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity subset.
func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity subset.
func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Report) filter(severity Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// Summary renders a one-line digest suitable for log output.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d documents, %d errors, %d warnings",
		r.Documents, len(r.Errors()), len(r.Warnings()))
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

func (r *Report) sortIssues() {
	sort.SliceStable(r.Issues, func(i, j int) bool {
		if r.Issues[i].Path != r.Issues[j].Path {
			return r.Issues[i].Path < r.Issues[j].Path
		}
		return r.Issues[i].Code < r.Issues[j].Code
	})
}
