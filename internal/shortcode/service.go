package shortcode

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-corpus/internal/logging"
	parserpkg "github.com/goliatone/go-corpus/internal/shortcode/parser"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// placeholderFormat is the marker emitted by the parser when extracting shortcodes.
const placeholderFormat = "<!-- shortcode:%d -->"

// Service orchestrates shortcode parsing and rendering for article content.
type Service struct {
	registry         interfaces.ShortcodeRegistry
	renderer         interfaces.ShortcodeRenderer
	parser           interfaces.ShortcodeParser
	defaultSanitizer interfaces.ShortcodeSanitizer
	defaultCache     interfaces.CacheProvider
	logger           interfaces.Logger
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithDefaultSanitizer overrides the fallback sanitizer applied to rendered output.
func WithDefaultSanitizer(sanitizer interfaces.ShortcodeSanitizer) ServiceOption {
	return func(s *Service) {
		if sanitizer != nil {
			s.defaultSanitizer = sanitizer
		}
	}
}

// WithDefaultCache overrides the fallback cache provider used for definitions with a CacheTTL.
func WithDefaultCache(cache interfaces.CacheProvider) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.defaultCache = cache
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser overrides the tag parser used to extract shortcodes.
func WithParser(parser interfaces.ShortcodeParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// NewService constructs a shortcode service using the supplied registry and renderer.
func NewService(registry interfaces.ShortcodeRegistry, renderer interfaces.ShortcodeRenderer, opts ...ServiceOption) *Service {
	service := &Service{
		registry:         registry,
		renderer:         renderer,
		parser:           parserpkg.NewTagParser(),
		defaultSanitizer: NewSanitizer(),
		logger:           logging.NoOp(),
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

// NewDefaultService wires a registry preloaded with the built-in catalogue,
// a validator, and a renderer into a ready-to-use service.
func NewDefaultService(opts ...ServiceOption) (*Service, error) {
	validator := NewValidator()
	registry := NewRegistry(validator)
	if err := RegisterBuiltIns(registry, nil); err != nil {
		return nil, err
	}
	renderer := NewRenderer(registry, validator)
	return NewService(registry, renderer, opts...), nil
}

// Process renders every shortcode found within the content string, returning the resulting HTML.
func (s *Service) Process(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}
	if s.renderer == nil || s.parser == nil {
		return "", fmt.Errorf("shortcode: service not initialised")
	}

	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "shortcode.process",
	})

	transformed, parsed, err := s.parser.Extract(content)
	if err != nil {
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("shortcode.service.parse_failed")
		return "", err
	}
	if len(parsed) == 0 {
		return transformed, nil
	}

	shortcodeCtx := interfaces.ShortcodeContext{
		Context:   ctx,
		Cache:     s.defaultCache,
		Sanitizer: s.defaultSanitizer,
	}
	if shortcodeCtx.Context == nil {
		shortcodeCtx.Context = context.Background()
	}

	output := transformed
	for idx, sc := range parsed {
		rendered, err := s.renderer.Render(shortcodeCtx, sc.Name, sc.Params, sc.Inner)
		if err != nil {
			logging.WithFields(logger, map[string]any{
				"shortcode": sc.Name,
				"index":     idx,
				"error":     err,
			}).Error("shortcode.service.render_failed")
			return "", err
		}

		placeholder := fmt.Sprintf(placeholderFormat, idx)
		output = strings.ReplaceAll(output, placeholder, string(rendered))
	}

	logging.WithFields(logger, map[string]any{
		"shortcodes": len(parsed),
	}).Debug("shortcode.service.process_completed")
	return output, nil
}

// Registry exposes the underlying shortcode registry.
func (s *Service) Registry() interfaces.ShortcodeRegistry {
	return s.registry
}

var _ interfaces.ShortcodeService = (*Service)(nil)

type noOpService struct{}

// NewNoOpService returns a shortcode service that leaves content untouched.
func NewNoOpService() interfaces.ShortcodeService {
	return noOpService{}
}

func (noOpService) Process(_ context.Context, content string) (string, error) {
	return content, nil
}

func (noOpService) Registry() interfaces.ShortcodeRegistry {
	return nil
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
