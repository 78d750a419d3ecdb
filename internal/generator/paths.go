package generator

import (
	"fmt"
	"path"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const routeGroupSite = "site"

// Route names resolved through the urlkit manager.
const (
	routeHome     = "home"
	routePost     = "post"
	routeCategory = "category"
	routeArchive  = "archive"
)

// newRouteManager declares the site's URL space. The group carries no base
// URL so builders return site-relative routes; absoluteURL prefixes the
// configured base when feeds and sitemaps need full links.
func newRouteManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroupSite,
				BaseURL: "",
				Paths: map[string]string{
					routeHome:     "/",
					routePost:     "/posts/:slug",
					routeCategory: "/categories/:category",
					routeArchive:  "/archive/:year/:month",
				},
			},
		},
	})
}

// siteRoutes builds concrete routes from the urlkit group. RouteManager
// panics on unknown groups and routes, so lookups run behind a recover.
type siteRoutes struct {
	group *urlkit.Group
}

func newSiteRoutes(manager *urlkit.RouteManager) (*siteRoutes, error) {
	group, err := lookupGroup(manager, routeGroupSite)
	if err != nil {
		return nil, err
	}
	return &siteRoutes{group: group}, nil
}

func (r *siteRoutes) Home() (string, error) {
	return r.build(routeHome, nil)
}

func (r *siteRoutes) Post(slug string) (string, error) {
	return r.build(routePost, map[string]any{"slug": slug})
}

func (r *siteRoutes) Category(category string) (string, error) {
	return r.build(routeCategory, map[string]any{"category": category})
}

func (r *siteRoutes) Archive(year int, month int) (string, error) {
	return r.build(routeArchive, map[string]any{
		"year":  fmt.Sprintf("%04d", year),
		"month": fmt.Sprintf("%02d", month),
	})
}

func (r *siteRoutes) build(route string, params map[string]any) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route %q: %v", route, rec)
		}
	}()
	builder := r.group.Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("generator: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

// buildOutputPath maps a site route to its on-disk location. Every route
// becomes a directory with an index.html so URLs stay extensionless.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), " \t\r\n/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

func joinOutputPath(base, rel string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	rel = strings.Trim(strings.TrimSpace(rel), "/")
	if base == "" {
		return rel
	}
	if rel == "" {
		return base
	}
	return path.Join(base, rel)
}
