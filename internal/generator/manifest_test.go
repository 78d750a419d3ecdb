package generator

import (
	"strings"
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	manifest := newBuildManifest()
	manifest.GeneratedAt = time.Date(2016, 6, 1, 12, 0, 0, 0, time.UTC)
	manifest.setPage(manifestPage{
		Kind:     string(KindPost),
		Slug:     "first-post",
		Route:    "/posts/first-post",
		Output:   "posts/first-post/index.html",
		Hash:     "hash-a",
		Checksum: "sum-a",
	})
	manifest.setPage(manifestPage{
		Kind:   string(KindIndex),
		Route:  "/",
		Output: "index.html",
		Hash:   "hash-b",
	})

	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parseManifest returned error: %v", err)
	}
	if len(parsed.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(parsed.Pages))
	}
	entry, ok := parsed.lookupPage("/posts/first-post")
	if !ok {
		t.Fatal("expected post entry after round trip")
	}
	if entry.Hash != "hash-a" || entry.Output != "posts/first-post/index.html" {
		t.Errorf("unexpected entry %+v", entry)
	}
}

func TestManifestParsesKeyedForm(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"pages": {
			"/posts/first-post": {
				"kind": "post",
				"slug": "first-post",
				"route": "/posts/first-post",
				"output": "posts/first-post/index.html",
				"hash": "hash-a"
			}
		}
	}`)

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parseManifest returned error: %v", err)
	}
	if _, ok := parsed.lookupPage("/posts/first-post"); !ok {
		t.Fatal("expected entry from keyed form")
	}
}

func TestManifestLookupIsCaseInsensitive(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{Route: "/Posts/First-Post", Hash: "h", Output: "o"})
	if _, ok := manifest.lookupPage("/posts/first-post"); !ok {
		t.Fatal("expected case-insensitive lookup")
	}
}

func TestShouldSkipPage(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{
		Route:  "/posts/first-post",
		Output: "posts/first-post/index.html",
		Hash:   "hash-a",
	})

	if !manifest.shouldSkipPage("/posts/first-post", "hash-a", "posts/first-post/index.html") {
		t.Error("expected skip for unchanged page")
	}
	if manifest.shouldSkipPage("/posts/first-post", "hash-b", "posts/first-post/index.html") {
		t.Error("expected rebuild for changed hash")
	}
	if manifest.shouldSkipPage("/posts/first-post", "hash-a", "elsewhere/index.html") {
		t.Error("expected rebuild for moved output")
	}
	if manifest.shouldSkipPage("/posts/other", "hash-a", "posts/other/index.html") {
		t.Error("expected rebuild for unknown route")
	}
}

func TestPrunePages(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{Route: "/keep", Hash: "h", Output: "keep/index.html"})
	manifest.setPage(manifestPage{Route: "/drop", Hash: "h", Output: "drop/index.html"})

	manifest.prunePages(map[string]struct{}{
		manifest.pageKey("/keep"): {},
	})

	if _, ok := manifest.lookupPage("/keep"); !ok {
		t.Error("expected kept entry to survive prune")
	}
	if _, ok := manifest.lookupPage("/drop"); ok {
		t.Error("expected stale entry to be pruned")
	}
}

func TestParseManifestRejectsGarbage(t *testing.T) {
	if _, err := parseManifest([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
	if !strings.Contains(string(mustMarshal(t, newBuildManifest())), `"version"`) {
		t.Error("expected version field in manifest payload")
	}
}

func mustMarshal(t *testing.T, manifest *buildManifest) []byte {
	t.Helper()
	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	return data
}
