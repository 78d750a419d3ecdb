// Package catalog answers the read-side questions the site and feeds need:
// recent articles, category listings, and year/month archives.
package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// ErrStoreRequired is returned when the service is constructed without a post store.
var ErrStoreRequired = errors.New("catalog: post store is required")

// CategorySummary aggregates post counts per category.
type CategorySummary struct {
	Name  string
	Count int
}

// ArchiveBucket groups posts published in the same month.
type ArchiveBucket struct {
	Year  int
	Month time.Month
	Posts []*interfaces.PostRecord
}

// Service exposes corpus read models on top of the post store.
type Service struct {
	store  interfaces.PostStore
	logger interfaces.Logger
}

// Option customises the service.
type Option func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a catalog service.
func NewService(store interfaces.PostStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	s := &Service{
		store:  store,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Recent returns the newest published posts, capped at limit. A non-positive
// limit returns everything.
func (s *Service) Recent(ctx context.Context, limit int) ([]*interfaces.PostRecord, error) {
	records, err := s.store.List(ctx, interfaces.PostListOptions{})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Categories returns every category with its post count, most used first.
func (s *Service) Categories(ctx context.Context) ([]CategorySummary, error) {
	records, err := s.store.List(ctx, interfaces.PostListOptions{})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, record := range records {
		for _, category := range record.Categories {
			name := strings.TrimSpace(category)
			if name == "" {
				continue
			}
			counts[name]++
		}
	}

	summaries := make([]CategorySummary, 0, len(counts))
	for name, count := range counts {
		summaries = append(summaries, CategorySummary{Name: name, Count: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// ByCategory returns published posts carrying the supplied category.
func (s *Service) ByCategory(ctx context.Context, category string) ([]*interfaces.PostRecord, error) {
	return s.store.List(ctx, interfaces.PostListOptions{Category: category})
}

// Archive groups published posts into year/month buckets, newest bucket first.
// Posts without a publication date are skipped; the audit tooling flags them.
func (s *Service) Archive(ctx context.Context) ([]ArchiveBucket, error) {
	records, err := s.store.List(ctx, interfaces.PostListOptions{})
	if err != nil {
		return nil, err
	}

	type bucketKey struct {
		year  int
		month time.Month
	}
	buckets := map[bucketKey][]*interfaces.PostRecord{}
	for _, record := range records {
		when := record.PublishedAt
		if when.IsZero() {
			logging.WithFields(s.baseLogger(ctx), map[string]any{
				"slug": record.Slug,
			}).Debug("catalog.archive.skipped_undated_post")
			continue
		}
		key := bucketKey{year: when.Year(), month: when.Month()}
		buckets[key] = append(buckets[key], record)
	}

	out := make([]ArchiveBucket, 0, len(buckets))
	for key, posts := range buckets {
		out = append(out, ArchiveBucket{Year: key.year, Month: key.month, Posts: posts})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
