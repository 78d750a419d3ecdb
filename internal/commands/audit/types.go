package auditcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-corpus/internal/audit"
)

const auditDirectoryMessageType = "corpus.audit.directory"

// ReportCallback receives the audit report produced by a lint run. The callback
// is optional and is invoked synchronously when a report is available.
type ReportCallback func(*audit.Report)

// AuditDirectoryCommand lints every Markdown document under Directory,
// checking front matter conformance, dates, slugs, and round-trip stability.
type AuditDirectoryCommand struct {
	// Directory selects the filesystem path to audit.
	Directory string `json:"directory"`
	// Pattern limits audited files to those matching the glob (defaults to "*.md").
	Pattern string `json:"pattern,omitempty"`
	// Recursive controls sub-directory traversal; nil means recurse.
	Recursive *bool `json:"recursive,omitempty"`
	// Strict escalates the command to fail when the report carries warnings.
	Strict bool `json:"strict,omitempty"`

	ReportCallback ReportCallback `json:"-"`
}

// Type implements command.Message.
func (AuditDirectoryCommand) Type() string { return auditDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd AuditDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("corpus.audit.directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// FeatureGates exposes runtime feature toggles required by audit command handlers.
type FeatureGates struct {
	AuditEnabled func() bool
}

func (g FeatureGates) auditEnabled() bool {
	if g.AuditEnabled == nil {
		return true
	}
	return g.AuditEnabled()
}
