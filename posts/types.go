package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is the canonical index record for one article in the corpus. A post is
// keyed by its slug (the `url` front-matter field); every source document
// sharing that slug contributes a revision.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug        string         `bun:"slug,notnull,unique" json:"slug"`
	Title       string         `bun:"title,notnull" json:"title"`
	Categories  []string       `bun:"categories,type:jsonb" json:"categories,omitempty"`
	Authors     []string       `bun:"authors,type:jsonb" json:"authors,omitempty"`
	Excerpt     *string        `bun:"excerpt" json:"excerpt,omitempty"`
	Image       *string        `bun:"image" json:"image,omitempty"`
	Body        string         `bun:"body,notnull" json:"body"`
	BodyHTML    string         `bun:"body_html" json:"body_html,omitempty"`
	Checksum    string         `bun:"checksum,notnull" json:"checksum"`
	SourcePath  string         `bun:"source_path,notnull" json:"source_path"`
	Draft       bool           `bun:"draft,notnull,default:false" json:"draft"`
	PublishedAt *time.Time     `bun:"published_at,nullzero" json:"published_at,omitempty"`
	ModifiedAt  *time.Time     `bun:"modified_at,nullzero" json:"modified_at,omitempty"`
	Custom      map[string]any `bun:"custom,type:jsonb" json:"custom,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Revisions []*PostRevision `bun:"rel:has-many,join:id=post_id" json:"revisions,omitempty"`
}

// PostRevision records one source document that carries the post's slug. The
// corpus contains near-duplicate drafts of several articles; each draft is
// kept here so nothing is silently collapsed.
type PostRevision struct {
	bun.BaseModel `bun:"table:post_revisions,alias:pr"`

	ID         uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	PostID     uuid.UUID  `bun:"post_id,notnull,type:uuid" json:"post_id"`
	SourcePath string     `bun:"source_path,notnull" json:"source_path"`
	Checksum   string     `bun:"checksum,notnull" json:"checksum"`
	ModifiedAt *time.Time `bun:"modified_at,nullzero" json:"modified_at,omitempty"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Post *Post `bun:"rel:belongs-to,join:post_id=id" json:"post,omitempty"`
}

// HasCategory reports whether the post carries the supplied category tag.
func (p *Post) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// EffectiveDate returns the best timestamp for ordering: modified when set,
// otherwise the published date.
func (p *Post) EffectiveDate() time.Time {
	if p.ModifiedAt != nil && !p.ModifiedAt.IsZero() {
		return *p.ModifiedAt
	}
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return time.Time{}
}
