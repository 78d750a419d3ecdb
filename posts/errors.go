package posts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSlugRequired    = errors.New("posts: slug is required")
	ErrSlugInvalid     = errors.New("posts: slug contains invalid characters")
	ErrSlugExists      = errors.New("posts: slug already exists")
	ErrTitleRequired   = errors.New("posts: title is required")
	ErrBodyRequired    = errors.New("posts: body is required")
	ErrPostIDRequired  = errors.New("posts: post id required")
	ErrPostNotFound    = errors.New("posts: post not found")
	ErrStorageRequired = errors.New("posts: storage is not configured")
)

// NotFoundError reports a missing record with enough context to build
// actionable messages.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrPostNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return fmt.Sprintf("%s: %s", ErrPostNotFound.Error(), e.Resource)
	}
	return fmt.Sprintf("%s: %s %q", ErrPostNotFound.Error(), e.Resource, key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPostNotFound
}

// SlugConflictError surfaces slug collisions on create.
type SlugConflictError struct {
	Slug       string
	SourcePath string
}

func (e *SlugConflictError) Error() string {
	if e == nil {
		return ErrSlugExists.Error()
	}
	slug := strings.TrimSpace(e.Slug)
	if slug == "" {
		return ErrSlugExists.Error()
	}
	if path := strings.TrimSpace(e.SourcePath); path != "" {
		return fmt.Sprintf("%s: slug=%s source=%s", ErrSlugExists.Error(), slug, path)
	}
	return fmt.Sprintf("%s: slug=%s", ErrSlugExists.Error(), slug)
}

func (e *SlugConflictError) Unwrap() error {
	return ErrSlugExists
}
