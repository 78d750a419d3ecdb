package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	corpus "github.com/goliatone/go-corpus"
	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	staticcmd "github.com/goliatone/go-corpus/internal/commands/static"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("corpus build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("corpus-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "articles", "Path to the markdown article root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	outputDir := fs.String("output-dir", "dist", "Directory receiving the generated site")
	baseURL := fs.String("base-url", "", "Absolute base URL used in feeds and the sitemap")
	title := fs.String("title", "", "Site title used in feeds and page chrome")
	skipDrafts := fs.Bool("skip-drafts", true, "Skip documents marked as drafts")
	clean := fs.Bool("clean", false, "Remove the output directory before building")
	incremental := fs.Bool("incremental", true, "Skip pages whose inputs are unchanged")
	workers := fs.Int("workers", 0, "Number of concurrent page renders, 0 renders sequentially")
	dryRun := fs.Bool("dry-run", false, "Report what would be built without writing files")
	slugs := fs.String("slugs", "", "Comma separated slugs to build, empty builds everything")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:  *contentDir,
		Pattern:     *pattern,
		Recursive:   true,
		SkipDrafts:  *skipDrafts,
		OutputDir:   *outputDir,
		BaseURL:     *baseURL,
		SiteTitle:   *title,
		CleanBuild:  *clean,
		Incremental: *incremental,
		Workers:     *workers,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	// The site is generated from the post index, so the corpus is synced first.
	syncResult, err := module.Markdown.Sync(ctx, ".", interfaces.SyncOptions{
		ImportOptions: interfaces.ImportOptions{SkipDrafts: *skipDrafts},
	})
	if err != nil {
		return fmt.Errorf("sync corpus: %w", err)
	}
	if len(syncResult.Errors) > 0 {
		for _, syncErr := range syncResult.Errors {
			fmt.Fprintf(os.Stderr, "sync: %v\n", syncErr)
		}
		return fmt.Errorf("sync corpus: %d documents failed", len(syncResult.Errors))
	}

	handler := staticcmd.NewBuildSiteHandler(
		module.Generator,
		module.Logger,
		staticcmd.FeatureGates{GeneratorEnabled: func() bool { return true }},
	)

	var result *corpus.BuildResult
	cmd := staticcmd.BuildSiteCommand{
		Slugs:  bootstrap.SplitSlugs(*slugs),
		DryRun: *dryRun,
		ResultCallback: func(envelope staticcmd.ResultEnvelope) {
			result = envelope.Result
		},
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}

	if result != nil {
		fmt.Fprintf(os.Stdout, "built %d pages, skipped %d, %d feeds in %s\n",
			result.PagesBuilt, result.PagesSkipped, result.FeedsBuilt, result.Duration)
	}
	return nil
}
