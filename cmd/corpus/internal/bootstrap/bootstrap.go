// Package bootstrap builds corpus modules for the CLI entry points. Each
// command shares the same configuration surface so flags behave consistently.
package bootstrap

import (
	"fmt"
	"strings"

	corpus "github.com/goliatone/go-corpus"
	"github.com/goliatone/go-corpus/internal/di"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// Options captures configuration for corpus CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	SkipDrafts     bool
	OutputDir      string
	BaseURL        string
	SiteTitle      string
	CleanBuild     bool
	Incremental    bool
	Workers        int
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the corpus module and the services the CLIs operate on.
type Module struct {
	Module    *corpus.Module
	Markdown  interfaces.MarkdownService
	Generator corpus.GeneratorService
	Audit     corpus.AuditService
	Logger    interfaces.Logger
}

// BuildModule constructs a corpus module configured for CLI operations. The
// generator is wired only when an output directory is supplied.
func BuildModule(opts Options) (*Module, error) {
	cfg := corpus.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "articles"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive
	cfg.Markdown.SkipDrafts = opts.SkipDrafts

	if outputDir := strings.TrimSpace(opts.OutputDir); outputDir != "" {
		cfg.Features.Generator = true
		cfg.Generator.Enabled = true
		cfg.Generator.OutputDir = outputDir
		cfg.Generator.CleanBuild = opts.CleanBuild
		cfg.Generator.Incremental = opts.Incremental
		cfg.Generator.Workers = opts.Workers
		cfg.Site.BaseURL = strings.TrimSpace(opts.BaseURL)
		cfg.Site.Title = strings.TrimSpace(opts.SiteTitle)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := corpus.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise corpus module: %w", err)
	}

	service := module.Markdown()
	if service == nil {
		return nil, fmt.Errorf("markdown service not configured; ensure markdown feature is enabled")
	}

	logger := logging.MarkdownLogger(module.Container().LoggerProvider())

	return &Module{
		Module:    module,
		Markdown:  service,
		Generator: module.Generator(),
		Audit:     module.Audit(),
		Logger:    logger,
	}, nil
}

// SplitSlugs parses a comma separated slug list into a trimmed slice.
func SplitSlugs(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	slugs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			slugs = append(slugs, trimmed)
		}
	}
	return slugs
}
