package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryPostRepository is an in-memory implementation for scaffolding and tests.
type MemoryPostRepository struct {
	mu        sync.RWMutex
	posts     map[uuid.UUID]*Post
	slugIndex map[string]uuid.UUID
}

// NewMemoryPostRepository creates an empty in-memory post repository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		posts:     make(map[uuid.UUID]*Post),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied post.
func (m *MemoryPostRepository) Create(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

// Update replaces the stored record with the supplied state.
func (m *MemoryPostRepository) Update(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

// GetByID retrieves a post by identifier.
func (m *MemoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.posts[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(rec), nil
}

// GetBySlug retrieves a post by slug, returning NotFoundError when absent.
func (m *MemoryPostRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return clonePost(m.posts[id]), nil
}

// List returns every stored post ordered newest first.
func (m *MemoryPostRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Post, 0, len(m.posts))
	for _, rec := range m.posts {
		out = append(out, clonePost(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveDate().After(out[j].EffectiveDate())
	})
	return out, nil
}

// Delete removes the post. Deleting an unknown post returns NotFoundError.
func (m *MemoryPostRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.posts[id]
	if !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.posts, id)
	return nil
}

func clonePost(src *Post) *Post {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Categories = append([]string(nil), src.Categories...)
	copied.Authors = append([]string(nil), src.Authors...)
	if src.Custom != nil {
		copied.Custom = make(map[string]any, len(src.Custom))
		for k, v := range src.Custom {
			copied.Custom[k] = v
		}
	}
	if len(src.Revisions) > 0 {
		copied.Revisions = make([]*PostRevision, len(src.Revisions))
		for i, rev := range src.Revisions {
			copied.Revisions[i] = cloneRevision(rev)
		}
	}
	return &copied
}

// MemoryPostRevisionRepository stores revision entries in-memory.
type MemoryPostRevisionRepository struct {
	mu        sync.RWMutex
	revisions map[uuid.UUID]*PostRevision
}

// NewMemoryPostRevisionRepository constructs the repository.
func NewMemoryPostRevisionRepository() *MemoryPostRevisionRepository {
	return &MemoryPostRevisionRepository{
		revisions: make(map[uuid.UUID]*PostRevision),
	}
}

// Create inserts the supplied revision.
func (m *MemoryPostRevisionRepository) Create(_ context.Context, record *PostRevision) (*PostRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRevision(record)
	m.revisions[copied.ID] = copied
	return cloneRevision(copied), nil
}

// ListByPost returns the revisions for a post ordered oldest first.
func (m *MemoryPostRevisionRepository) ListByPost(_ context.Context, postID uuid.UUID) ([]*PostRevision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*PostRevision, 0)
	for _, rec := range m.revisions {
		if rec.PostID == postID {
			out = append(out, cloneRevision(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		left, right := out[i].ModifiedAt, out[j].ModifiedAt
		if left == nil || right == nil {
			return right != nil
		}
		return left.Before(*right)
	})
	return out, nil
}

// DeleteByPost removes every revision attached to the post.
func (m *MemoryPostRevisionRepository) DeleteByPost(_ context.Context, postID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, rec := range m.revisions {
		if rec.PostID == postID {
			delete(m.revisions, id)
		}
	}
	return nil
}

func cloneRevision(src *PostRevision) *PostRevision {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Post = nil
	if src.ModifiedAt != nil {
		at := *src.ModifiedAt
		copied.ModifiedAt = &at
	}
	return &copied
}
