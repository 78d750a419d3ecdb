package auditcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-corpus/internal/audit"
	"github.com/goliatone/go-corpus/internal/commands"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const auditOperation = "audit.directory"

var (
	// ErrAuditFeatureDisabled is returned when the audit feature flag is disabled at runtime.
	ErrAuditFeatureDisabled = errors.New("audit command: feature disabled")
	// ErrAuditFailed is returned when the report contains blocking issues.
	ErrAuditFailed = errors.New("audit command: report contains errors")
)

var _ command.Commander[AuditDirectoryCommand] = (*AuditDirectoryHandler)(nil)

// AuditDirectoryHandler lints a corpus directory via the shared command handler foundation.
type AuditDirectoryHandler struct {
	inner *commands.Handler[AuditDirectoryCommand]
}

// NewAuditDirectoryHandler creates a handler bound to the supplied audit service.
func NewAuditDirectoryHandler(service *audit.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[AuditDirectoryCommand]) *AuditDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg AuditDirectoryCommand) error {
		if service == nil || !gates.auditEnabled() {
			return ErrAuditFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := service.AuditDirectory(ctx, msg.Directory, audit.DirectoryOptions{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}

		if msg.ReportCallback != nil {
			msg.ReportCallback(report)
		}

		logging.WithFields(baseLogger, map[string]any{
			"documents": report.Documents,
			"errors":    len(report.Errors()),
			"warnings":  len(report.Warnings()),
		}).Info("audit.command.directory.completed")

		if report.HasErrors() {
			return fmt.Errorf("%w: %s", ErrAuditFailed, report.Summary())
		}
		if msg.Strict && len(report.Warnings()) > 0 {
			return fmt.Errorf("%w: %s", ErrAuditFailed, report.Summary())
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[AuditDirectoryCommand]{
		commands.WithLogger[AuditDirectoryCommand](baseLogger),
		commands.WithOperation[AuditDirectoryCommand](auditOperation),
		commands.WithMessageFields(func(msg AuditDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[AuditDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AuditDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AuditDirectoryCommand].
func (h *AuditDirectoryHandler) Execute(ctx context.Context, msg AuditDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
