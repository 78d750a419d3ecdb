// Package generator assembles the static site: one page per article, the
// front index, category and archive listings, feeds, and a sitemap. Builds
// are incremental; a manifest records what was rendered so unchanged pages
// are skipped on the next run.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-corpus/internal/catalog"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRendererRequired = errors.New("generator: template renderer is required")
	errCatalogRequired  = errors.New("generator: catalog service is required")
	errOutputRequired   = errors.New("generator: output directory is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	Title           string
	Description     string
	CleanBuild      bool
	Incremental     bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	Workers         int
	RecentLimit     int
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// Slugs limits the post pages rendered; aggregate pages rebuild whenever
	// any post changed. Empty means every post.
	Slugs  []string
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt   int
	PagesSkipped int
	FeedsBuilt   int
	Duration     time.Duration
	Rendered     []RenderedPage
	Diagnostics  []RenderDiagnostic
	Errors       []error
	DryRun       bool
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Catalog  *catalog.Service
	Renderer TemplateRenderer
	Logger   interfaces.Logger
	// Writer overrides the on-disk artifact writer, used by tests.
	Writer artifactWriter
	Clock  func() time.Time
}

// NewService wires a generator with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Catalog == nil {
		return nil, errCatalogRequired
	}
	if deps.Renderer == nil {
		renderer, err := NewHTMLRenderer(nil)
		if err != nil {
			return nil, err
		}
		deps.Renderer = renderer
	}

	writer := deps.Writer
	if writer == nil {
		if strings.TrimSpace(cfg.OutputDir) == "" {
			return nil, errOutputRequired
		}
		writer = newOSWriter(cfg.OutputDir)
	}

	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	manager := newRouteManager()
	routes, err := newSiteRoutes(manager)
	if err != nil {
		return nil, err
	}

	return &service{
		cfg:    cfg,
		deps:   deps,
		writer: writer,
		routes: routes,
	}, nil
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

type service struct {
	cfg    Config
	deps   Dependencies
	writer artifactWriter
	routes *siteRoutes
}

// pageJob is a unit of render work resolved before the worker pool runs.
type pageJob struct {
	kind     PageKind
	slug     string
	route    string
	template string
	hash     string
	lastMod  time.Time
	context  TemplateContext
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	generatedAt := s.deps.Clock().UTC()
	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "generator.build",
	})

	records, err := s.deps.Catalog.Recent(ctx, 0)
	if err != nil {
		return nil, err
	}
	categories, err := s.deps.Catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	archives, err := s.deps.Catalog.Archive(ctx)
	if err != nil {
		return nil, err
	}

	site := SiteMetadata{
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
		Title:       s.cfg.Title,
		Description: s.cfg.Description,
		Metadata:    map[string]any{},
	}
	build := BuildMetadata{GeneratedAt: generatedAt, Options: opts}

	jobs, err := s.collectJobs(ctx, site, build, records, categories, archives, opts)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		DryRun:      opts.DryRun,
		Diagnostics: make([]RenderDiagnostic, 0, len(jobs)),
	}

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.writer.RemoveAll(ctx, "."); err != nil {
			return nil, err
		}
	}

	manifest := newBuildManifest()
	if s.cfg.Incremental && !s.cfg.CleanBuild {
		if loaded, err := s.loadManifest(ctx); err != nil {
			result.Errors = append(result.Errors, err)
		} else if loaded != nil {
			manifest = loaded
		}
	}

	var (
		mu          sync.Mutex
		rendered    = make([]RenderedPage, 0, len(jobs))
		errorsSlice []error
		pageKeys    = map[string]struct{}{}
	)

	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		pageKeys[manifest.pageKey(outcome.diagnostic.Route)] = struct{}{}
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	workerCount := s.effectiveWorkerCount(len(jobs))
	if workerCount <= 1 || len(jobs) <= 1 {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			collect(s.renderJob(ctx, job, manifest))
		}
	} else {
		s.renderConcurrently(ctx, jobs, workerCount, manifest, collect)
	}

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = time.Since(start)
		if len(errorsSlice) > 0 {
			result.Errors = append(result.Errors, errorsSlice...)
			return result, errors.Join(errorsSlice...)
		}
		return result, nil
	}

	if err := s.persistPages(ctx, rendered); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	if s.cfg.GenerateFeeds {
		items := s.buildFeedItems(records, generatedAt)
		feeds, err := s.writeFeeds(ctx, s.writer, site, items, generatedAt)
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		}
		result.FeedsBuilt = feeds
	}

	if s.cfg.GenerateSitemap {
		sitemapPages := s.mergeRenderedForSitemap(rendered, manifest)
		if err := s.writeSitemap(ctx, site, sitemapPages, generatedAt); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx, site); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if len(errorsSlice) == 0 {
		manifest.GeneratedAt = generatedAt
		for _, page := range rendered {
			manifest.setPage(manifestPage{
				Kind:       string(page.Kind),
				Slug:       page.Slug,
				Route:      page.Route,
				Output:     page.Output,
				Hash:       page.SourceHash,
				Checksum:   page.Checksum,
				RenderedAt: generatedAt,
			})
		}
		if len(opts.Slugs) == 0 {
			manifest.prunePages(pageKeys)
		}
		if err := s.persistManifest(ctx, manifest); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	result.Rendered = rendered
	result.Duration = time.Since(start)

	logging.WithFields(logger, map[string]any{
		"pages_built":   result.PagesBuilt,
		"pages_skipped": result.PagesSkipped,
		"feeds_built":   result.FeedsBuilt,
		"duration_ms":   result.Duration.Milliseconds(),
	}).Info("generator.build_completed")

	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.writer.RemoveAll(ctx, ".")
}

func (s *service) collectJobs(
	ctx context.Context,
	site SiteMetadata,
	build BuildMetadata,
	records []*interfaces.PostRecord,
	categories []catalog.CategorySummary,
	archives []catalog.ArchiveBucket,
	opts BuildOptions,
) ([]pageJob, error) {
	var jobs []pageJob

	selected := map[string]struct{}{}
	for _, slug := range opts.Slugs {
		selected[strings.ToLower(strings.TrimSpace(slug))] = struct{}{}
	}

	helpers := newTemplateHelpers(site.BaseURL)
	corpusHash := corpusContentHash(records)

	for _, record := range records {
		if record == nil {
			continue
		}
		if len(selected) > 0 {
			if _, ok := selected[strings.ToLower(record.Slug)]; !ok {
				continue
			}
		}
		route, err := s.routes.Post(record.Slug)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, pageJob{
			kind:     KindPost,
			slug:     record.Slug,
			route:    route,
			template: templatePost,
			hash:     pageHash(templatePost, record.Checksum),
			lastMod:  record.ModifiedAt,
			context: TemplateContext{
				Site:    site,
				Build:   build,
				Kind:    KindPost,
				Post:    record,
				Helpers: helpers,
			},
		})
	}

	if len(selected) > 0 {
		return jobs, nil
	}

	indexPosts := records
	if s.cfg.RecentLimit > 0 && len(indexPosts) > s.cfg.RecentLimit {
		indexPosts = indexPosts[:s.cfg.RecentLimit]
	}
	homeRoute, err := s.routes.Home()
	if err != nil {
		return nil, err
	}
	jobs = append(jobs, pageJob{
		kind:     KindIndex,
		route:    homeRoute,
		template: templateIndex,
		hash:     pageHash(templateIndex, corpusHash),
		context: TemplateContext{
			Site:       site,
			Build:      build,
			Kind:       KindIndex,
			Posts:      indexPosts,
			Categories: categories,
			Helpers:    helpers,
		},
	})

	for _, summary := range categories {
		route, err := s.routes.Category(summary.Name)
		if err != nil {
			return nil, err
		}
		posts, err := s.deps.Catalog.ByCategory(ctx, summary.Name)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, pageJob{
			kind:     KindCategory,
			slug:     summary.Name,
			route:    route,
			template: templateCategory,
			hash:     pageHash(templateCategory, summary.Name, corpusContentHash(posts)),
			context: TemplateContext{
				Site:     site,
				Build:    build,
				Kind:     KindCategory,
				Category: summary.Name,
				Posts:    posts,
				Helpers:  helpers,
			},
		})
	}

	for i := range archives {
		bucket := archives[i]
		route, err := s.routes.Archive(bucket.Year, int(bucket.Month))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, pageJob{
			kind:     KindArchive,
			slug:     fmt.Sprintf("%04d-%02d", bucket.Year, bucket.Month),
			route:    route,
			template: templateArchive,
			hash:     pageHash(templateArchive, fmt.Sprintf("%04d-%02d", bucket.Year, bucket.Month), corpusContentHash(bucket.Posts)),
			context: TemplateContext{
				Site:    site,
				Build:   build,
				Kind:    KindArchive,
				Archive: &bucket,
				Helpers: helpers,
			},
		})
	}

	return jobs, nil
}

func (s *service) renderJob(ctx context.Context, job pageJob, manifest *buildManifest) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			Kind:     job.kind,
			Slug:     job.slug,
			Route:    job.route,
			Template: job.template,
		},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	output := buildOutputPath(job.route)
	if s.cfg.Incremental && manifest.shouldSkipPage(job.route, job.hash, output) {
		outcome.skipped = true
		outcome.diagnostic.Skipped = true
		return outcome
	}

	start := time.Now()
	html, err := s.deps.Renderer.Render(ctx, job.template, job.context)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		err = fmt.Errorf("generator: render %s %q: %w", job.kind, job.route, err)
		outcome.err = err
		outcome.diagnostic.Err = err
		return outcome
	}

	outcome.page = RenderedPage{
		Kind:         job.kind,
		Slug:         job.slug,
		Route:        job.route,
		Output:       output,
		Template:     job.template,
		HTML:         html,
		Checksum:     computeHashFromString(html),
		SourceHash:   job.hash,
		LastModified: job.lastMod,
		Duration:     duration,
	}
	return outcome
}

func (s *service) renderConcurrently(
	ctx context.Context,
	jobs []pageJob,
	workers int,
	manifest *buildManifest,
	collect func(renderOutcome),
) {
	queue := make(chan pageJob)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				collect(s.renderJob(ctx, job, manifest))
			}
		}()
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return
		case queue <- job:
		}
	}
	close(queue)
	wg.Wait()
}

func (s *service) persistPages(ctx context.Context, rendered []RenderedPage) error {
	ordered := append([]RenderedPage(nil), rendered...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Output < ordered[j].Output
	})

	for _, page := range ordered {
		if err := s.writer.WriteFile(ctx, writeFileRequest{
			Path:        page.Output,
			Content:     strings.NewReader(page.HTML),
			Size:        int64(len(page.HTML)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    page.Checksum,
			Metadata: map[string]string{
				"kind":  string(page.Kind),
				"route": page.Route,
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

// mergeRenderedForSitemap combines this run's pages with manifest entries for
// pages skipped by the incremental check, so the sitemap stays complete.
func (s *service) mergeRenderedForSitemap(rendered []RenderedPage, manifest *buildManifest) []RenderedPage {
	out := append([]RenderedPage(nil), rendered...)
	seen := map[string]struct{}{}
	for _, page := range rendered {
		seen[manifest.pageKey(page.Route)] = struct{}{}
	}
	for key, entry := range manifest.Pages {
		if _, ok := seen[key]; ok {
			continue
		}
		out = append(out, RenderedPage{
			Kind:     PageKind(entry.Kind),
			Slug:     entry.Slug,
			Route:    entry.Route,
			Output:   entry.Output,
			Checksum: entry.Checksum,
		})
	}
	return out
}

func (s *service) writeSitemap(ctx context.Context, site SiteMetadata, pages []RenderedPage, generatedAt time.Time) error {
	content := buildSitemap(site.BaseURL, pages, generatedAt)
	return s.writer.WriteFile(ctx, writeFileRequest{
		Path:        "sitemap.xml",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(content),
	})
}

func (s *service) writeRobots(ctx context.Context, site SiteMetadata) error {
	content := buildRobots(site.BaseURL, s.cfg.GenerateSitemap)
	return s.writer.WriteFile(ctx, writeFileRequest{
		Path:        "robots.txt",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain",
		Checksum:    computeHashFromString(content),
	})
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	data, err := s.writer.ReadFile(ctx, manifestFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newBuildManifest(), nil
		}
		return nil, err
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	return s.writer.WriteFile(ctx, writeFileRequest{
		Path:        manifestFileName,
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHashFromString(string(data)),
	})
}

func (s *service) effectiveWorkerCount(jobs int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > jobs {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func (s *service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}

func computeHashFromString(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// pageHash fingerprints the inputs of a page so incremental builds can skip
// renders whose sources did not change.
func pageHash(parts ...string) string {
	return computeHashFromString(strings.Join(parts, "\x00"))
}

// corpusContentHash fingerprints a post set by slug and checksum.
func corpusContentHash(records []*interfaces.PostRecord) string {
	keys := make([]string, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		keys = append(keys, record.Slug+"="+record.Checksum)
	}
	sort.Strings(keys)
	return computeHashFromString(strings.Join(keys, "|"))
}
