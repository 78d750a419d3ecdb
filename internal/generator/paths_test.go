package generator

import "testing"

func newTestRoutes(t *testing.T) *siteRoutes {
	t.Helper()
	routes, err := newSiteRoutes(newRouteManager())
	if err != nil {
		t.Fatalf("newSiteRoutes returned error: %v", err)
	}
	return routes
}

func TestSiteRoutes(t *testing.T) {
	routes := newTestRoutes(t)

	home, err := routes.Home()
	if err != nil {
		t.Fatalf("Home returned error: %v", err)
	}
	if home != "/" {
		t.Errorf("unexpected home route %q", home)
	}

	post, err := routes.Post("first-post")
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if post != "/posts/first-post" {
		t.Errorf("unexpected post route %q", post)
	}

	category, err := routes.Category("golang")
	if err != nil {
		t.Fatalf("Category returned error: %v", err)
	}
	if category != "/categories/golang" {
		t.Errorf("unexpected category route %q", category)
	}

	archive, err := routes.Archive(2016, 3)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	if archive != "/archive/2016/03" {
		t.Errorf("unexpected archive route %q", archive)
	}
}

func TestSiteRoutesUnknownRoute(t *testing.T) {
	routes := newTestRoutes(t)
	if _, err := routes.build("missing", nil); err == nil {
		t.Fatal("expected error for unknown route")
	}
}

func TestLookupGroupUnknown(t *testing.T) {
	if _, err := lookupGroup(newRouteManager(), "nope"); err == nil {
		t.Fatal("expected error for unknown group")
	}
	if _, err := lookupGroup(nil, "site"); err == nil {
		t.Fatal("expected error for nil manager")
	}
}

func TestBuildOutputPath(t *testing.T) {
	cases := []struct {
		route string
		want  string
	}{
		{"/", "index.html"},
		{"", "index.html"},
		{"/posts/first-post", "posts/first-post/index.html"},
		{"posts/first-post/", "posts/first-post/index.html"},
		{"/archive/2016/03", "archive/2016/03/index.html"},
	}
	for _, tc := range cases {
		if got := buildOutputPath(tc.route); got != tc.want {
			t.Errorf("buildOutputPath(%q) = %q, want %q", tc.route, got, tc.want)
		}
	}
}

func TestJoinOutputPath(t *testing.T) {
	if got := joinOutputPath("site", "/posts/a/"); got != "site/posts/a" {
		t.Errorf("unexpected join result %q", got)
	}
	if got := joinOutputPath("", "robots.txt"); got != "robots.txt" {
		t.Errorf("unexpected join result %q", got)
	}
}
