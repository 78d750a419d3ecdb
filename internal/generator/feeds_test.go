package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/google/uuid"
)

func feedTestService(t *testing.T) *service {
	t.Helper()
	routes, err := newSiteRoutes(newRouteManager())
	if err != nil {
		t.Fatalf("newSiteRoutes returned error: %v", err)
	}
	return &service{
		cfg:    Config{BaseURL: "https://example.com"},
		routes: routes,
	}
}

func TestBuildFeedItemsSortsNewestFirst(t *testing.T) {
	svc := feedTestService(t)
	generatedAt := time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC)

	items := svc.buildFeedItems([]*interfaces.PostRecord{
		corpusRecord("older", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)),
		corpusRecord("newer", time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)),
	}, generatedAt)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Link != "https://example.com/posts/newer" {
		t.Errorf("expected newest first, got %q", items[0].Link)
	}
	if items[1].Link != "https://example.com/posts/older" {
		t.Errorf("expected oldest last, got %q", items[1].Link)
	}
}

func TestBuildFeedItemsFallsBackToGeneratedAt(t *testing.T) {
	svc := feedTestService(t)
	generatedAt := time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC)

	record := corpusRecord("undated", time.Time{})
	record.ModifiedAt = time.Time{}

	items := svc.buildFeedItems([]*interfaces.PostRecord{record}, generatedAt)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].PublishedAt.Equal(generatedAt) {
		t.Errorf("expected generatedAt fallback, got %v", items[0].PublishedAt)
	}
	if !items[0].UpdatedAt.Equal(generatedAt) {
		t.Errorf("expected updated fallback, got %v", items[0].UpdatedAt)
	}
}

func TestBuildFeedItemsDeduplicatesByID(t *testing.T) {
	svc := feedTestService(t)
	record := corpusRecord("repeat", time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC))

	items := svc.buildFeedItems([]*interfaces.PostRecord{record, record}, time.Now())
	if len(items) != 1 {
		t.Fatalf("expected 1 item after dedup, got %d", len(items))
	}
}

func TestBuildFeedItemsCapsAtLimit(t *testing.T) {
	svc := feedTestService(t)
	records := make([]*interfaces.PostRecord, 0, maxFeedItems+10)
	for i := 0; i < maxFeedItems+10; i++ {
		record := corpusRecord("bulk", time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i)*time.Hour))
		record.ID = uuid.New()
		records = append(records, record)
	}

	items := svc.buildFeedItems(records, time.Now())
	if len(items) != maxFeedItems {
		t.Fatalf("expected %d items, got %d", maxFeedItems, len(items))
	}
}

func TestBuildRSSFeedEscapesContent(t *testing.T) {
	site := SiteMetadata{BaseURL: "https://example.com", Title: "A & B"}
	generatedAt := time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC)

	content := buildRSSFeed(site, []feedItem{{
		Title:       "Ampersands & You",
		Summary:     "On <markup>",
		Link:        "https://example.com/posts/amp",
		GUID:        "guid-1",
		PublishedAt: generatedAt,
	}}, generatedAt)

	if !strings.Contains(content, "<title>A &amp; B</title>") {
		t.Errorf("channel title not escaped: %s", content)
	}
	if !strings.Contains(content, "Ampersands &amp; You") {
		t.Errorf("item title not escaped: %s", content)
	}
	if !strings.Contains(content, "On &lt;markup&gt;") {
		t.Errorf("summary not escaped: %s", content)
	}
}

func TestBuildAtomFeedStructure(t *testing.T) {
	site := SiteMetadata{BaseURL: "https://example.com", Title: "Corpus"}
	generatedAt := time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC)

	content := buildAtomFeed(site, []feedItem{{
		Title:       "Entry",
		Link:        "https://example.com/posts/entry",
		GUID:        "guid-1",
		PublishedAt: generatedAt,
		UpdatedAt:   generatedAt,
	}}, generatedAt)

	for _, fragment := range []string{
		`<feed xmlns="http://www.w3.org/2005/Atom">`,
		"<id>https://example.com/feed.atom.xml</id>",
		`<link rel="self" href="https://example.com/feed.atom.xml" />`,
		"<entry>",
		"<published>2016-06-01T00:00:00Z</published>",
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("atom feed missing %q: %s", fragment, content)
		}
	}
}

func TestSiteTitleFallbacks(t *testing.T) {
	if got := siteTitle(SiteMetadata{Title: "Named"}); got != "Named" {
		t.Errorf("unexpected title %q", got)
	}
	if got := siteTitle(SiteMetadata{BaseURL: "https://example.com"}); got != "https://example.com" {
		t.Errorf("unexpected title %q", got)
	}
	if got := siteTitle(SiteMetadata{}); got != "Article Feed" {
		t.Errorf("unexpected title %q", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	if got := absoluteURL("https://example.com/", "/posts/a"); got != "https://example.com/posts/a" {
		t.Errorf("unexpected url %q", got)
	}
	if got := absoluteURL("", "posts/a"); got != "http://localhost/posts/a" {
		t.Errorf("unexpected url %q", got)
	}
	if got := absoluteURL("https://example.com", ""); got != "https://example.com" {
		t.Errorf("unexpected url %q", got)
	}
}
