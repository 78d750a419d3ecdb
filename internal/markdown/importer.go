package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/goliatone/go-corpus/posts"
)

var (
	ErrPostStoreRequired = errors.New("markdown importer: post store is required")
	ErrSlugMissing       = errors.New("markdown importer: frontmatter url is required")
)

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Store  interfaces.PostStore
	Logger interfaces.Logger
}

// Importer converts markdown documents into indexed posts. Documents sharing
// a slug are treated as revisions of one post: the newest document becomes
// the post body and every sibling is recorded, mirroring the draft
// iterations present in the corpus.
type Importer struct {
	store  interfaces.PostStore
	logger interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	return &Importer{
		store:  cfg.Store,
		logger: cfg.Logger,
	}
}

// ImportDocument imports a single markdown document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.store == nil {
		return nil, ErrPostStoreRequired
	}
	group := []*interfaces.Document{doc}
	acc := newImportAccumulator()
	if err := i.applyGroup(ctx, groupKey(doc), group, opts, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports an arbitrary slice of documents, grouping them by slug.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.store == nil {
		return nil, ErrPostStoreRequired
	}

	grouped := groupBySlug(docs)
	acc := newImportAccumulator()
	for slug, group := range grouped {
		group = sortDocuments(group)
		if err := i.applyGroup(ctx, slug, group, opts, acc); err != nil {
			acc.addError(err)
		}
	}
	return acc.result(), firstError(acc.errors)
}

// SyncDocuments imports all provided documents and optionally deletes orphaned posts.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if i.store == nil {
		return nil, ErrPostStoreRequired
	}

	grouped := groupBySlug(docs)
	acc := newSyncAccumulator()

	for slug, group := range grouped {
		group = sortDocuments(group)
		res := newImportAccumulator()
		if err := i.applyGroup(ctx, slug, group, opts.ImportOptions, res); err != nil {
			res.addError(err)
		}
		acc.merge(res.result())
	}

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, grouped, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

func (i *Importer) applyGroup(ctx context.Context, slug string, docs []*interfaces.Document, opts interfaces.ImportOptions, acc *importAccumulator) error {
	if slug == "" {
		return ErrSlugMissing
	}
	if len(docs) == 0 {
		return nil
	}

	for _, doc := range docs {
		if err := validateDocument(doc); err != nil {
			return err
		}
	}

	// The newest document wins; its siblings stay visible as revisions.
	current := docs[len(docs)-1]
	if current.FrontMatter.Draft && opts.SkipDrafts {
		acc.skip(uuid.Nil)
		return nil
	}

	title := strings.TrimSpace(current.FrontMatter.Title)
	if title == "" {
		title = fallbackTitle(slug)
	}
	checksum := hex.EncodeToString(current.Checksum)

	existing, err := i.store.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, posts.ErrPostNotFound) {
		return fmt.Errorf("markdown importer: post lookup %s: %w", slug, err)
	}

	if existing == nil {
		if opts.DryRun {
			acc.skip(uuid.Nil)
			return nil
		}

		createReq := interfaces.PostCreateRequest{
			Slug:        slug,
			Title:       title,
			Categories:  current.FrontMatter.Categories,
			Authors:     current.FrontMatter.Authors,
			Excerpt:     current.FrontMatter.Summary(),
			Image:       current.FrontMatter.Image,
			Body:        string(current.Body),
			BodyHTML:    string(current.BodyHTML),
			Checksum:    checksum,
			SourcePath:  current.FilePath,
			Draft:       current.FrontMatter.Draft,
			PublishedAt: current.FrontMatter.Date,
			ModifiedAt:  current.FrontMatter.Modified,
			Custom:      current.FrontMatter.Custom,
			Revisions:   revisionInputs(docs),
		}

		record, createErr := i.store.Create(ctx, createReq)
		if createErr != nil {
			return fmt.Errorf("markdown importer: create post %s: %w", slug, createErr)
		}
		acc.created(record.ID)
		return nil
	}

	if existing.Checksum == checksum && len(existing.Revisions) == len(docs) {
		acc.skip(existing.ID)
		return nil
	}

	if opts.DryRun {
		acc.skip(existing.ID)
		return nil
	}

	updateReq := interfaces.PostUpdateRequest{
		ID:          existing.ID,
		Title:       title,
		Categories:  current.FrontMatter.Categories,
		Authors:     current.FrontMatter.Authors,
		Excerpt:     current.FrontMatter.Summary(),
		Image:       current.FrontMatter.Image,
		Body:        string(current.Body),
		BodyHTML:    string(current.BodyHTML),
		Checksum:    checksum,
		SourcePath:  current.FilePath,
		Draft:       current.FrontMatter.Draft,
		PublishedAt: current.FrontMatter.Date,
		ModifiedAt:  current.FrontMatter.Modified,
		Custom:      current.FrontMatter.Custom,
		Revisions:   revisionInputs(docs),
	}

	updated, updateErr := i.store.Update(ctx, updateReq)
	if updateErr != nil {
		return fmt.Errorf("markdown importer: update post %s: %w", slug, updateErr)
	}
	acc.updated(updated.ID)
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, docs map[string][]*interfaces.Document, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := i.store.List(ctx, interfaces.PostListOptions{IncludeDrafts: true})
	if err != nil {
		return fmt.Errorf("markdown importer: list posts: %w", err)
	}

	docSlugs := make(map[string]struct{}, len(docs))
	for slug := range docs {
		docSlugs[slug] = struct{}{}
	}

	for _, record := range existing {
		if _, ok := docSlugs[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := i.store.Delete(ctx, interfaces.PostDeleteRequest{ID: record.ID}); err != nil {
			return fmt.Errorf("markdown importer: delete post %s: %w", record.Slug, err)
		}
		acc.deleted++
	}

	return nil
}

func validateDocument(doc *interfaces.Document) error {
	if doc == nil {
		return errors.New("markdown importer: nil document")
	}
	if strings.TrimSpace(doc.FrontMatter.Slug) == "" {
		return ErrSlugMissing
	}
	return nil
}

func groupKey(doc *interfaces.Document) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.FrontMatter.Slug)
}

func groupBySlug(docs []*interfaces.Document) map[string][]*interfaces.Document {
	result := map[string][]*interfaces.Document{}
	for _, doc := range docs {
		key := groupKey(doc)
		result[key] = append(result[key], doc)
	}
	return result
}

// sortDocuments orders a slug group oldest first, so the final entry is the
// most recent draft. Front-matter timestamps win over file modification time;
// the path breaks remaining ties deterministically.
func sortDocuments(docs []*interfaces.Document) []*interfaces.Document {
	slices.SortFunc(docs, func(a, b *interfaces.Document) int {
		if a == nil || b == nil {
			return 0
		}
		at := documentTimestamp(a)
		bt := documentTimestamp(b)
		if at.Before(bt) {
			return -1
		}
		if at.After(bt) {
			return 1
		}
		return strings.Compare(a.FilePath, b.FilePath)
	})
	return docs
}

func documentTimestamp(doc *interfaces.Document) time.Time {
	if !doc.FrontMatter.Modified.IsZero() {
		return doc.FrontMatter.Modified
	}
	if !doc.FrontMatter.Date.IsZero() {
		return doc.FrontMatter.Date
	}
	return doc.LastModified
}

func revisionInputs(docs []*interfaces.Document) []interfaces.PostRevisionInput {
	out := make([]interfaces.PostRevisionInput, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		input := interfaces.PostRevisionInput{
			SourcePath: doc.FilePath,
			Checksum:   hex.EncodeToString(doc.Checksum),
		}
		switch {
		case !doc.FrontMatter.Modified.IsZero():
			input.ModifiedAt = doc.FrontMatter.Modified
		case !doc.FrontMatter.Date.IsZero():
			input.ModifiedAt = doc.FrontMatter.Date
		default:
			input.ModifiedAt = doc.LastModified
		}
		out = append(out, input)
	}
	return out
}

func fallbackTitle(slug string) string {
	if slug == "" {
		return "Untitled"
	}
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

type importAccumulator struct {
	createdIDs []uuid.UUID
	updatedIDs []uuid.UUID
	skippedIDs []uuid.UUID
	errors     []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdIDs: []uuid.UUID{},
		updatedIDs: []uuid.UUID{},
		skippedIDs: []uuid.UUID{},
		errors:     []error{},
	}
}

func (a *importAccumulator) created(id uuid.UUID) {
	if id != uuid.Nil {
		a.createdIDs = append(a.createdIDs, id)
	}
}

func (a *importAccumulator) updated(id uuid.UUID) {
	if id != uuid.Nil {
		a.updatedIDs = append(a.updatedIDs, id)
	}
}

func (a *importAccumulator) skip(id uuid.UUID) {
	if id != uuid.Nil {
		a.skippedIDs = append(a.skippedIDs, id)
	}
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedPostIDs: a.createdIDs,
		UpdatedPostIDs: a.updatedIDs,
		SkippedPostIDs: a.skippedIDs,
		Errors:         a.errors,
	}
}

type syncAccumulator struct {
	created int
	updated int
	deleted int
	skipped int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedPostIDs)
	s.updated += len(res.UpdatedPostIDs)
	s.skipped += len(res.SkippedPostIDs)
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created: s.created,
		Updated: s.updated,
		Skipped: s.skipped,
		Deleted: s.deleted,
		Errors:  s.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
