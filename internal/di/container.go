// Package di wires the corpus services together. Hosts construct a Container
// from a validated config and pull fully configured services out of it; every
// binding can be overridden through an Option for tests and embedding.
package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-corpus/internal/audit"
	"github.com/goliatone/go-corpus/internal/catalog"
	"github.com/goliatone/go-corpus/internal/generator"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/internal/logging/console"
	"github.com/goliatone/go-corpus/internal/logging/gologger"
	"github.com/goliatone/go-corpus/internal/markdown"
	"github.com/goliatone/go-corpus/internal/runtimeconfig"
	"github.com/goliatone/go-corpus/internal/shortcode"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/goliatone/go-corpus/posts"
)

// Container wires module dependencies. Repositories default to in-memory
// implementations until a bun.DB is supplied.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	postRepo     posts.PostRepository
	revisionRepo posts.PostRevisionRepository

	postSvc      interfaces.PostStore
	shortcodeSvc interfaces.ShortcodeService
	markdownSvc  interfaces.MarkdownService
	catalogSvc   *catalog.Service
	generatorSvc generator.Service
	auditSvc     *audit.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches the post index onto bun-backed repositories.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithPostRepositories overrides the storage used by the post index.
func WithPostRepositories(postRepo posts.PostRepository, revisionRepo posts.PostRevisionRepository) Option {
	return func(c *Container) {
		c.postRepo = postRepo
		c.revisionRepo = revisionRepo
	}
}

// WithPostStore overrides the default post index binding.
func WithPostStore(store interfaces.PostStore) Option {
	return func(c *Container) {
		c.postSvc = store
	}
}

// WithShortcodeService overrides the default shortcode service binding.
func WithShortcodeService(svc interfaces.ShortcodeService) Option {
	return func(c *Container) {
		c.shortcodeSvc = svc
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithGeneratorService overrides the default site generator binding.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// WithAuditService overrides the default audit service binding.
func WithAuditService(svc *audit.Service) Option {
	return func(c *Container) {
		c.auditSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		postRepo:     posts.NewMemoryPostRepository(),
		revisionRepo: posts.NewMemoryPostRevisionRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureCacheDefaults()

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureRepositories()

	if err := c.configureServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.postRepo = posts.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.revisionRepo = posts.NewBunPostRevisionRepository(c.bunDB)
}

func (c *Container) configureServices() error {
	if c.postSvc == nil {
		svc, err := posts.NewService(posts.ServiceConfig{
			Posts:     c.postRepo,
			Revisions: c.revisionRepo,
			Logger:    logging.PostsLogger(c.loggerProvider),
		})
		if err != nil {
			return err
		}
		c.postSvc = svc
	}

	if c.shortcodeSvc == nil {
		if !c.Config.Features.Shortcodes {
			c.shortcodeSvc = shortcode.NewNoOpService()
		} else {
			svc, err := shortcode.NewDefaultService(
				shortcode.WithLogger(logging.ShortcodeLogger(c.loggerProvider)),
			)
			if err != nil {
				return err
			}
			c.shortcodeSvc = svc
		}
	}

	if c.markdownSvc == nil && c.Config.Markdown.Enabled {
		mdCfg := c.Config.Markdown
		svc, err := markdown.NewService(markdown.Config{
			BasePath:  mdCfg.ContentDir,
			Pattern:   mdCfg.Pattern,
			Recursive: mdCfg.Recursive,
			Parser: interfaces.ParseOptions{
				Extensions: mdCfg.Parser.Extensions,
				Sanitize:   mdCfg.Parser.Sanitize,
				HardWraps:  mdCfg.Parser.HardWraps,
				SafeMode:   mdCfg.Parser.SafeMode,
			},
		}, nil,
			markdown.WithPostStore(c.postSvc),
			markdown.WithShortcodeService(c.shortcodeSvc),
			markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
		)
		if err != nil {
			return err
		}
		c.markdownSvc = svc
	}

	if c.catalogSvc == nil {
		svc, err := catalog.NewService(c.postSvc,
			catalog.WithLogger(logging.SiteLogger(c.loggerProvider)),
		)
		if err != nil {
			return err
		}
		c.catalogSvc = svc
	}

	if c.generatorSvc == nil {
		if !c.Config.Generator.Enabled {
			c.generatorSvc = generator.NewDisabledService()
		} else {
			genCfg := c.Config.Generator
			svc, err := generator.NewService(generator.Config{
				OutputDir:       genCfg.OutputDir,
				BaseURL:         c.Config.Site.BaseURL,
				Title:           c.Config.Site.Title,
				Description:     c.Config.Site.Description,
				CleanBuild:      genCfg.CleanBuild,
				Incremental:     genCfg.Incremental,
				GenerateSitemap: genCfg.GenerateSitemap,
				GenerateRobots:  genCfg.GenerateRobots,
				GenerateFeeds:   genCfg.GenerateFeeds,
				Workers:         genCfg.Workers,
				RecentLimit:     genCfg.RecentLimit,
			}, generator.Dependencies{
				Catalog: c.catalogSvc,
				Logger:  logging.SiteLogger(c.loggerProvider),
			})
			if err != nil {
				return err
			}
			c.generatorSvc = svc
		}
	}

	if c.auditSvc == nil {
		c.auditSvc = audit.NewService(
			audit.WithServiceLogger(logging.AuditLogger(c.loggerProvider)),
		)
	}
	return nil
}

// BunDB exposes the configured database handle, nil when running in-memory.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// CacheService exposes the repository cache, nil when caching is disabled.
func (c *Container) CacheService() repocache.CacheService {
	return c.cacheService
}

// LoggerProvider exposes the configured logger provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the root module logger.
func (c *Container) Logger() interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, "")
}

// PostRepository exposes the configured post repository.
func (c *Container) PostRepository() posts.PostRepository {
	return c.postRepo
}

// PostRevisionRepository exposes the configured revision repository.
func (c *Container) PostRevisionRepository() posts.PostRevisionRepository {
	return c.revisionRepo
}

// PostStore returns the configured post index service.
func (c *Container) PostStore() interfaces.PostStore {
	return c.postSvc
}

// ShortcodeService returns the configured shortcode service.
func (c *Container) ShortcodeService() interfaces.ShortcodeService {
	return c.shortcodeSvc
}

// MarkdownService returns the configured markdown service, nil when the
// markdown workflow is not enabled.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() *catalog.Service {
	return c.catalogSvc
}

// GeneratorService returns the configured site generator. A disabled
// generator still satisfies the interface and fails every build.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// AuditService returns the configured audit service.
func (c *Container) AuditService() *audit.Service {
	return c.auditSvc
}
