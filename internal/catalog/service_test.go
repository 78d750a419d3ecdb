package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/google/uuid"
)

type stubStore struct {
	records []*interfaces.PostRecord
}

func (s *stubStore) Create(context.Context, interfaces.PostCreateRequest) (*interfaces.PostRecord, error) {
	return nil, nil
}

func (s *stubStore) Update(context.Context, interfaces.PostUpdateRequest) (*interfaces.PostRecord, error) {
	return nil, nil
}

func (s *stubStore) GetBySlug(context.Context, string) (*interfaces.PostRecord, error) {
	return nil, nil
}

func (s *stubStore) List(_ context.Context, opts interfaces.PostListOptions) ([]*interfaces.PostRecord, error) {
	if opts.Category == "" {
		return s.records, nil
	}
	var out []*interfaces.PostRecord
	for _, record := range s.records {
		for _, category := range record.Categories {
			if category == opts.Category {
				out = append(out, record)
				break
			}
		}
	}
	return out, nil
}

func (s *stubStore) Delete(context.Context, interfaces.PostDeleteRequest) error {
	return nil
}

func post(slug string, published time.Time, categories ...string) *interfaces.PostRecord {
	return &interfaces.PostRecord{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       slug,
		Categories:  categories,
		PublishedAt: published,
	}
}

func newTestService(t *testing.T, records ...*interfaces.PostRecord) *Service {
	t.Helper()
	service, err := NewService(&stubStore{records: records})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return service
}

func TestNewServiceRequiresStore(t *testing.T) {
	if _, err := NewService(nil); err != ErrStoreRequired {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
}

func TestRecentHonoursLimit(t *testing.T) {
	service := newTestService(t,
		post("a", time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)),
		post("b", time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)),
		post("c", time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC)),
	)

	records, err := service.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Slug != "a" {
		t.Errorf("expected newest first, got %s", records[0].Slug)
	}
}

func TestRecentZeroLimitReturnsAll(t *testing.T) {
	service := newTestService(t,
		post("a", time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)),
		post("b", time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)),
	)

	records, err := service.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected all records, got %d", len(records))
	}
}

func TestCategoriesCountsAndSorts(t *testing.T) {
	service := newTestService(t,
		post("a", time.Now(), "golang", "architecture"),
		post("b", time.Now(), "golang"),
		post("c", time.Now(), "javascript"),
	)

	summaries, err := service.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}

	if len(summaries) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(summaries))
	}
	if summaries[0].Name != "golang" || summaries[0].Count != 2 {
		t.Errorf("expected golang first with 2 posts, got %+v", summaries[0])
	}
	// Ties break alphabetically.
	if summaries[1].Name != "architecture" {
		t.Errorf("expected architecture second, got %+v", summaries[1])
	}
}

func TestByCategoryDelegatesFilter(t *testing.T) {
	service := newTestService(t,
		post("a", time.Now(), "golang"),
		post("b", time.Now(), "javascript"),
	)

	records, err := service.ByCategory(context.Background(), "golang")
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "a" {
		t.Errorf("unexpected records %v", records)
	}
}

func TestArchiveBucketsByMonth(t *testing.T) {
	service := newTestService(t,
		post("a", time.Date(2016, 3, 10, 0, 0, 0, 0, time.UTC)),
		post("b", time.Date(2016, 3, 2, 0, 0, 0, 0, time.UTC)),
		post("c", time.Date(2015, 11, 7, 0, 0, 0, 0, time.UTC)),
		post("undated", time.Time{}),
	)

	buckets, err := service.Archive(context.Background())
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Year != 2016 || buckets[0].Month != time.March {
		t.Errorf("expected 2016-03 first, got %d-%d", buckets[0].Year, buckets[0].Month)
	}
	if len(buckets[0].Posts) != 2 {
		t.Errorf("expected 2 posts in 2016-03, got %d", len(buckets[0].Posts))
	}
	if buckets[1].Year != 2015 || buckets[1].Month != time.November {
		t.Errorf("expected 2015-11 second, got %d-%d", buckets[1].Year, buckets[1].Month)
	}
}
