// Package runtimeconfig holds the module-level configuration surface. The
// root corpus package aliases these types so host applications configure the
// module without importing internal packages.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMarkdownFeatureRequired indicates markdown configuration without the feature flag.
	ErrMarkdownFeatureRequired = errors.New("corpus config: markdown feature must be enabled to configure markdown")
	// ErrMarkdownContentDirRequired indicates a missing source directory.
	ErrMarkdownContentDirRequired = errors.New("corpus config: markdown content directory is required when markdown is enabled")
	// ErrGeneratorOutputDirRequired indicates a missing output directory.
	ErrGeneratorOutputDirRequired = errors.New("corpus config: generator output directory is required when generator is enabled")
	// ErrGeneratorWorkersInvalid indicates a negative worker count.
	ErrGeneratorWorkersInvalid = errors.New("corpus config: generator workers must be zero or positive")
	// ErrAdvancedCacheRequiresEnabledCache ensures advanced cache builds only when cache is enabled.
	ErrAdvancedCacheRequiresEnabledCache = errors.New("corpus config: advanced cache feature requires cache to be enabled")
	// ErrCommandsCronRequiresScheduling ensures automatic cron wiring only runs when scheduling is enabled.
	ErrCommandsCronRequiresScheduling = errors.New("corpus config: command cron auto-registration requires scheduling to be enabled")
	// ErrLoggingProviderRequired indicates the logger feature is on with no provider.
	ErrLoggingProviderRequired = errors.New("corpus config: logging provider is required when logging feature is enabled")
	// ErrLoggingProviderUnknown indicates an unsupported logging provider name.
	ErrLoggingProviderUnknown = errors.New("corpus config: logging provider is invalid")
	// ErrLoggingLevelInvalid indicates an unsupported logging level.
	ErrLoggingLevelInvalid = errors.New("corpus config: logging level is invalid")
	// ErrLoggingFormatInvalid indicates an unsupported logging format.
	ErrLoggingFormatInvalid = errors.New("corpus config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the corpus module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Storage   StorageConfig
	Cache     CacheConfig
	Features  Features
	Commands  CommandsConfig
	Markdown  MarkdownConfig
	Audit     AuditConfig
	Generator GeneratorConfig
	Site      SiteConfig
	Logging   LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles module functionality.
type Features struct {
	Markdown      bool
	Shortcodes    bool
	Generator     bool
	Audit         bool
	Scheduling    bool
	AdvancedCache bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled          bool
	AutoRegisterCron bool
	SyncCron         string
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown ingestion.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	SkipDrafts bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// AuditConfig captures behaviour for corpus lint runs.
type AuditConfig struct {
	Enabled bool
	// Strict makes audit runs fail on warnings, not just errors.
	Strict bool
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	CleanBuild      bool
	Incremental     bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	Workers         int
	RecentLimit     int
}

// SiteConfig describes the published site used for links, feeds, and page chrome.
type SiteConfig struct {
	BaseURL     string
	Title       string
	Description string
}

// DefaultConfig returns opinionated defaults for a Markdown article corpus.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Markdown:   true,
			Shortcodes: true,
		},
		Commands: CommandsConfig{},
		Markdown: MarkdownConfig{
			ContentDir: "articles",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Audit: AuditConfig{},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			CleanBuild:      false,
			Incremental:     true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeeds:   true,
			Workers:         0,
			RecentLimit:     10,
		},
		Site: SiteConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		if cfg.Generator.Workers < 0 {
			return ErrGeneratorWorkersInvalid
		}
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Features.Scheduling {
		return ErrCommandsCronRequiresScheduling
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
