package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	"github.com/goliatone/go-corpus/internal/audit"
	auditcmd "github.com/goliatone/go-corpus/internal/commands/audit"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runLint(os.Args[1:]); err != nil {
		if errors.Is(err, auditcmd.ErrAuditFailed) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Fatalf("corpus lint: %v", err)
	}
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("corpus-lint", flag.ExitOnError)
	contentDir := fs.String("content-dir", "articles", "Path to the markdown article root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	strict := fs.Bool("strict", false, "Fail on warnings as well as errors")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := auditcmd.NewAuditDirectoryHandler(
		module.Audit,
		module.Logger,
		auditcmd.FeatureGates{AuditEnabled: func() bool { return true }},
	)
	cmd := auditcmd.AuditDirectoryCommand{
		Directory: *contentDir,
		Pattern:   *pattern,
		Strict:    *strict,
		ReportCallback: func(report *audit.Report) {
			printReport(report)
		},
	}
	return handler.Execute(context.Background(), cmd)
}

func printReport(report *audit.Report) {
	if report == nil {
		return
	}
	for _, issue := range report.Issues {
		fmt.Fprintln(os.Stdout, issue.String())
	}
	fmt.Fprintln(os.Stdout, report.Summary())
}
