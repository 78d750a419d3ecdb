package auditcmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-corpus/internal/audit"
	goerrors "github.com/goliatone/go-errors"
)

func writeArticle(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write article: %v", err)
	}
}

const cleanArticle = `---
title: A Clean Article
date: 2016-03-10
categories: [golang]
url: a-clean-article
---

Body text.
`

const untitledArticle = `---
date: 2016-03-10
---

Body text.
`

const emptyBodyArticle = `---
title: Hollow Article
date: 2016-03-10
url: hollow-article
---
`

func newHandler(t *testing.T) *AuditDirectoryHandler {
	t.Helper()
	return NewAuditDirectoryHandler(audit.NewService(), nil, FeatureGates{})
}

func TestAuditDirectoryHandlerCleanCorpus(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "clean.md", cleanArticle)

	var report *audit.Report
	err := newHandler(t).Execute(context.Background(), AuditDirectoryCommand{
		Directory: dir,
		ReportCallback: func(r *audit.Report) {
			report = r
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if report == nil {
		t.Fatal("expected report delivered to callback")
	}
	if report.Documents != 1 {
		t.Fatalf("expected 1 document audited, got %d", report.Documents)
	}
	if report.HasErrors() {
		t.Fatalf("unexpected errors: %v", report.Errors())
	}
}

func TestAuditDirectoryHandlerFailsOnErrors(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "untitled.md", untitledArticle)

	err := newHandler(t).Execute(context.Background(), AuditDirectoryCommand{Directory: dir})
	if err == nil {
		t.Fatal("expected audit failure")
	}
	if !errors.Is(err, ErrAuditFailed) {
		t.Fatalf("expected ErrAuditFailed, got %v", err)
	}
}

func TestAuditDirectoryHandlerStrictEscalatesWarnings(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "hollow.md", emptyBodyArticle)

	handler := newHandler(t)

	if err := handler.Execute(context.Background(), AuditDirectoryCommand{Directory: dir}); err != nil {
		t.Fatalf("expected warnings tolerated without strict, got %v", err)
	}

	err := handler.Execute(context.Background(), AuditDirectoryCommand{Directory: dir, Strict: true})
	if !errors.Is(err, ErrAuditFailed) {
		t.Fatalf("expected ErrAuditFailed in strict mode, got %v", err)
	}
}

func TestAuditDirectoryHandlerValidatesDirectory(t *testing.T) {
	err := newHandler(t).Execute(context.Background(), AuditDirectoryCommand{Directory: "  "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestAuditDirectoryHandlerFeatureDisabled(t *testing.T) {
	handler := NewAuditDirectoryHandler(audit.NewService(), nil, FeatureGates{
		AuditEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), AuditDirectoryCommand{Directory: "articles"})
	if !errors.Is(err, ErrAuditFeatureDisabled) {
		t.Fatalf("expected ErrAuditFeatureDisabled, got %v", err)
	}
}
