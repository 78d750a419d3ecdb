package posts

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-corpus/internal/identity"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// PostRepository is the storage contract the service depends on. The bun
// implementation satisfies it; tests provide in-memory fakes.
type PostRepository interface {
	Create(ctx context.Context, record *Post) (*Post, error)
	Update(ctx context.Context, record *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostRevisionRepository stores the revision entries attached to a post.
type PostRevisionRepository interface {
	Create(ctx context.Context, record *PostRevision) (*PostRevision, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*PostRevision, error)
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}

// ServiceConfig wires the repositories and logger into a Service.
type ServiceConfig struct {
	Posts     PostRepository
	Revisions PostRevisionRepository
	Logger    interfaces.Logger
}

// Service implements interfaces.PostStore on top of the repositories.
type Service struct {
	posts     PostRepository
	revisions PostRevisionRepository
	logger    interfaces.Logger
}

// NewService constructs the post index service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Posts == nil {
		return nil, ErrStorageRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		posts:     cfg.Posts,
		revisions: cfg.Revisions,
		logger:    logger,
	}, nil
}

var _ interfaces.PostStore = (*Service)(nil)

// Create indexes a new post. The slug must be unique across the corpus;
// callers that hold multiple documents for one slug pass them as revisions.
func (s *Service) Create(ctx context.Context, req interfaces.PostCreateRequest) (*interfaces.PostRecord, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if !IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}

	existing, err := s.posts.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, ErrPostNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &SlugConflictError{Slug: slug, SourcePath: req.SourcePath}
	}

	record := &Post{
		ID:         identity.PostUUID(slug),
		Slug:       slug,
		Title:      req.Title,
		Categories: append([]string(nil), req.Categories...),
		Authors:    append([]string(nil), req.Authors...),
		Excerpt:    optionalString(req.Excerpt),
		Image:      optionalString(req.Image),
		Body:       req.Body,
		BodyHTML:   req.BodyHTML,
		Checksum:   req.Checksum,
		SourcePath: req.SourcePath,
		Draft:      req.Draft,
		Custom:     req.Custom,
	}
	if !req.PublishedAt.IsZero() {
		published := req.PublishedAt
		record.PublishedAt = &published
	}
	if !req.ModifiedAt.IsZero() {
		modified := req.ModifiedAt
		record.ModifiedAt = &modified
	}

	created, err := s.posts.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	revisions, err := s.storeRevisions(ctx, created.ID, req.Revisions)
	if err != nil {
		return nil, err
	}

	logging.WithDocumentContext(s.logger, req.SourcePath, slug, "create").
		Info("posts.create", "revisions", len(revisions))

	return s.toRecord(created, revisions), nil
}

// Update replaces the indexed fields of an existing post. Revision entries
// are rewritten from the request so repeated syncs stay deterministic.
func (s *Service) Update(ctx context.Context, req interfaces.PostUpdateRequest) (*interfaces.PostRecord, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPostIDRequired
	}

	record, err := s.posts.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	record.Title = req.Title
	record.Categories = append([]string(nil), req.Categories...)
	record.Authors = append([]string(nil), req.Authors...)
	record.Excerpt = optionalString(req.Excerpt)
	record.Image = optionalString(req.Image)
	record.Body = req.Body
	record.BodyHTML = req.BodyHTML
	record.Checksum = req.Checksum
	record.SourcePath = req.SourcePath
	record.Draft = req.Draft
	record.Custom = req.Custom
	record.PublishedAt = nil
	if !req.PublishedAt.IsZero() {
		published := req.PublishedAt
		record.PublishedAt = &published
	}
	record.ModifiedAt = nil
	if !req.ModifiedAt.IsZero() {
		modified := req.ModifiedAt
		record.ModifiedAt = &modified
	}
	record.UpdatedAt = time.Now().UTC()

	updated, err := s.posts.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	if s.revisions != nil {
		if err := s.revisions.DeleteByPost(ctx, updated.ID); err != nil {
			return nil, err
		}
	}
	revisions, err := s.storeRevisions(ctx, updated.ID, req.Revisions)
	if err != nil {
		return nil, err
	}

	logging.WithDocumentContext(s.logger, req.SourcePath, updated.Slug, "update").
		Info("posts.update", "revisions", len(revisions))

	return s.toRecord(updated, revisions), nil
}

// GetBySlug returns the indexed post for a slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*interfaces.PostRecord, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	record, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	revisions, err := s.loadRevisions(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return s.toRecord(record, revisions), nil
}

// List returns indexed posts, newest first. Drafts are excluded unless
// requested; Category narrows the result to posts carrying that tag.
func (s *Service) List(ctx context.Context, opts interfaces.PostListOptions) ([]*interfaces.PostRecord, error) {
	records, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*Post, 0, len(records))
	for _, record := range records {
		if record.Draft && !opts.IncludeDrafts {
			continue
		}
		if opts.Category != "" && !record.HasCategory(opts.Category) {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].EffectiveDate().After(filtered[j].EffectiveDate())
	})

	out := make([]*interfaces.PostRecord, 0, len(filtered))
	for _, record := range filtered {
		revisions, err := s.loadRevisions(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, s.toRecord(record, revisions))
	}
	return out, nil
}

// Delete removes a post and its revision entries from the index.
func (s *Service) Delete(ctx context.Context, req interfaces.PostDeleteRequest) error {
	if req.ID == uuid.Nil {
		return ErrPostIDRequired
	}
	if s.revisions != nil {
		if err := s.revisions.DeleteByPost(ctx, req.ID); err != nil {
			return err
		}
	}
	return s.posts.Delete(ctx, req.ID)
}

func (s *Service) storeRevisions(ctx context.Context, postID uuid.UUID, inputs []interfaces.PostRevisionInput) ([]*PostRevision, error) {
	if s.revisions == nil || len(inputs) == 0 {
		return nil, nil
	}
	out := make([]*PostRevision, 0, len(inputs))
	for _, input := range inputs {
		revision := &PostRevision{
			ID:         identity.RevisionUUID(postID, input.SourcePath),
			PostID:     postID,
			SourcePath: input.SourcePath,
			Checksum:   input.Checksum,
		}
		if !input.ModifiedAt.IsZero() {
			modified := input.ModifiedAt
			revision.ModifiedAt = &modified
		}
		created, err := s.revisions.Create(ctx, revision)
		if err != nil {
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

func (s *Service) loadRevisions(ctx context.Context, postID uuid.UUID) ([]*PostRevision, error) {
	if s.revisions == nil {
		return nil, nil
	}
	return s.revisions.ListByPost(ctx, postID)
}

func (s *Service) toRecord(post *Post, revisions []*PostRevision) *interfaces.PostRecord {
	record := &interfaces.PostRecord{
		ID:         post.ID,
		Slug:       post.Slug,
		Title:      post.Title,
		Categories: append([]string(nil), post.Categories...),
		Authors:    append([]string(nil), post.Authors...),
		Body:       post.Body,
		BodyHTML:   post.BodyHTML,
		Checksum:   post.Checksum,
		SourcePath: post.SourcePath,
		Draft:      post.Draft,
		Custom:     post.Custom,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
	if post.Excerpt != nil {
		record.Excerpt = *post.Excerpt
	}
	if post.Image != nil {
		record.Image = *post.Image
	}
	if post.PublishedAt != nil {
		record.PublishedAt = *post.PublishedAt
	}
	if post.ModifiedAt != nil {
		record.ModifiedAt = *post.ModifiedAt
	}
	for _, revision := range revisions {
		entry := interfaces.PostRevisionRecord{
			ID:         revision.ID,
			PostID:     revision.PostID,
			SourcePath: revision.SourcePath,
			Checksum:   revision.Checksum,
		}
		if revision.ModifiedAt != nil {
			entry.ModifiedAt = *revision.ModifiedAt
		}
		record.Revisions = append(record.Revisions, entry)
	}
	return record
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
