package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-corpus/internal/commands/markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("corpus import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("corpus-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "articles", "Path to the markdown article root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	skipDrafts := fs.Bool("skip-drafts", false, "Skip documents marked as drafts")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting posts")
	sync := fs.Bool("sync", false, "Reconcile the index with the directory instead of importing")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "With -sync, delete posts whose source files are gone")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		SkipDrafts: *skipDrafts,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	gates := markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return true },
	}

	ctx := context.Background()

	if *sync {
		handler := markdowncmd.NewSyncDirectoryHandler(module.Markdown, module.Logger, gates)
		cmd := markdowncmd.SyncDirectoryCommand{
			Directory:      *directory,
			SkipDrafts:     *skipDrafts,
			DryRun:         *dryRun,
			DeleteOrphaned: *deleteOrphaned,
		}
		if err := handler.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("execute sync command: %w", err)
		}
		fmt.Fprintln(os.Stdout, "corpus sync command executed successfully")
		return nil
	}

	handler := markdowncmd.NewImportDirectoryHandler(module.Markdown, module.Logger, gates)
	cmd := markdowncmd.ImportDirectoryCommand{
		Directory:  *directory,
		SkipDrafts: *skipDrafts,
		DryRun:     *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "corpus import command executed successfully")

	return nil
}
