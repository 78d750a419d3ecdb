package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore abstracts the post index so markdown imports can provision or
// update records without depending on internal implementations.
type PostStore interface {
	Create(ctx context.Context, req PostCreateRequest) (*PostRecord, error)
	Update(ctx context.Context, req PostUpdateRequest) (*PostRecord, error)
	GetBySlug(ctx context.Context, slug string) (*PostRecord, error)
	List(ctx context.Context, opts PostListOptions) ([]*PostRecord, error)
	Delete(ctx context.Context, req PostDeleteRequest) error
}

// PostCreateRequest captures the details required to index a post.
type PostCreateRequest struct {
	Slug        string
	Title       string
	Categories  []string
	Authors     []string
	Excerpt     string
	Image       string
	Body        string
	BodyHTML    string
	Checksum    string
	SourcePath  string
	Draft       bool
	PublishedAt time.Time
	ModifiedAt  time.Time
	Custom      map[string]any
	// Revisions records sibling documents that share the post's slug. The
	// corpus contains draft iterations of the same article; they are kept,
	// not collapsed.
	Revisions []PostRevisionInput
}

// PostUpdateRequest captures the mutable fields for an indexed post.
type PostUpdateRequest struct {
	ID          uuid.UUID
	Title       string
	Categories  []string
	Authors     []string
	Excerpt     string
	Image       string
	Body        string
	BodyHTML    string
	Checksum    string
	SourcePath  string
	Draft       bool
	PublishedAt time.Time
	ModifiedAt  time.Time
	Custom      map[string]any
	Revisions   []PostRevisionInput
}

// PostRevisionInput describes one source document contributing to a post.
type PostRevisionInput struct {
	SourcePath string
	Checksum   string
	ModifiedAt time.Time
}

// PostDeleteRequest identifies a post to remove from the index.
type PostDeleteRequest struct {
	ID uuid.UUID
}

// PostListOptions filters post listings.
type PostListOptions struct {
	Category      string
	IncludeDrafts bool
}

// PostRecord is the read model returned by the store.
type PostRecord struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Categories  []string
	Authors     []string
	Excerpt     string
	Image       string
	Body        string
	BodyHTML    string
	Checksum    string
	SourcePath  string
	Draft       bool
	PublishedAt time.Time
	ModifiedAt  time.Time
	Custom      map[string]any
	Revisions   []PostRevisionRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostRevisionRecord is the stored form of a revision entry.
type PostRevisionRecord struct {
	ID         uuid.UUID
	PostID     uuid.UUID
	SourcePath string
	Checksum   string
	ModifiedAt time.Time
}
