package generator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSitemapSortsAndDeduplicates(t *testing.T) {
	fallback := time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC)
	content := buildSitemap("https://example.com", []RenderedPage{
		{Route: "/posts/zebra", LastModified: time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/posts/alpha"},
		{Route: "/posts/zebra"},
		{Route: "/"},
	}, fallback)

	if strings.Count(content, "<loc>https://example.com/posts/zebra</loc>") != 1 {
		t.Errorf("expected deduplicated zebra entry: %s", content)
	}
	alpha := strings.Index(content, "/posts/alpha")
	zebra := strings.Index(content, "/posts/zebra")
	if alpha < 0 || zebra < 0 || alpha > zebra {
		t.Errorf("expected sorted locations: %s", content)
	}
	if !strings.Contains(content, "<lastmod>2016-06-01T00:00:00Z</lastmod>") {
		t.Errorf("expected fallback lastmod: %s", content)
	}
	if !strings.Contains(content, "<lastmod>2016-03-01T00:00:00Z</lastmod>") {
		t.Errorf("expected page lastmod: %s", content)
	}
}

func TestBuildRobots(t *testing.T) {
	content := buildRobots("https://example.com", true)
	if !strings.Contains(content, "User-agent: *") {
		t.Errorf("missing user-agent line: %s", content)
	}
	if !strings.Contains(content, "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("missing sitemap line: %s", content)
	}

	bare := buildRobots("https://example.com", false)
	if strings.Contains(bare, "Sitemap:") {
		t.Errorf("unexpected sitemap line: %s", bare)
	}
}
