package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPostRepository stores posts through go-repository-bun with optional
// read caching.
type BunPostRepository struct {
	repo repository.Repository[*Post]
}

func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPostRepository {
	base := NewPostRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPostRepository{repo: wrapped}
}

func (r *BunPostRepository) Create(ctx context.Context, record *Post) (*Post, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post repository create %s: %w", record.Slug, err)
	}
	return created, nil
}

func (r *BunPostRepository) Update(ctx context.Context, record *Post) (*Post, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "post", record.Slug)
	}
	return updated, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	return result, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	return result, nil
}

func (r *BunPostRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.published_at DESC")
	}))
	if err != nil {
		return nil, fmt.Errorf("post repository list: %w", err)
	}
	return records, nil
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Post{ID: id}); err != nil {
		return mapRepositoryError(err, "post", id.String())
	}
	return nil
}

// BunPostRevisionRepository stores revision entries for duplicate-slug drafts.
type BunPostRevisionRepository struct {
	repo repository.Repository[*PostRevision]
}

func NewBunPostRevisionRepository(db *bun.DB) *BunPostRevisionRepository {
	return &BunPostRevisionRepository{repo: NewPostRevisionRepository(db)}
}

func (r *BunPostRevisionRepository) Create(ctx context.Context, record *PostRevision) (*PostRevision, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post revision repository create %s: %w", record.SourcePath, err)
	}
	return created, nil
}

func (r *BunPostRevisionRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*PostRevision, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.post_id = ?", postID).
			OrderExpr("?TableAlias.modified_at ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("post revision repository list: %w", err)
	}
	return records, nil
}

func (r *BunPostRevisionRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	records, err := r.ListByPost(ctx, postID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := r.repo.Delete(ctx, &PostRevision{ID: record.ID}); err != nil {
			return mapRepositoryError(err, "post_revision", record.ID.String())
		}
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
