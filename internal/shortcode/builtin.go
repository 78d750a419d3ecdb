package shortcode

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// BuiltInDefinitions returns the shortcode catalogue used by the article
// corpus. The image and github shortcodes cover the vast majority of
// invocations; the rest exist for the occasional embed.
func BuiltInDefinitions() []interfaces.ShortcodeDefinition {
	return []interfaces.ShortcodeDefinition{
		imageDefinition(),
		githubDefinition(),
		youTubeDefinition(),
		alertDefinition(),
		codeDefinition(),
	}
}

func imageDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "image",
		Version:     "1.0.0",
		Description: "Renders an article image as a figure with optional caption",
		Category:    "media",
		AllowInner:  false,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "src",
					Type:     interfaces.ShortcodeParamURL,
					Required: true,
				},
				{
					Name:    "alt",
					Type:    interfaces.ShortcodeParamString,
					Default: "",
				},
				{
					Name: "caption",
					Type: interfaces.ShortcodeParamString,
				},
				{
					Name: "class",
					Type: interfaces.ShortcodeParamString,
				},
			},
		},
		Template: `<figure class="post-image{{ if .class }} {{ .class }}{{ end }}">
  <img src="{{ .src }}" alt="{{ .alt }}" loading="lazy" />
  {{ if .caption }}<figcaption>{{ .caption }}</figcaption>{{ end }}
</figure>`,
	}
}

func githubDefinition() interfaces.ShortcodeDefinition {
	validateRepo := func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("github repo must be string")
		}
		parts := strings.Split(str, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("github repo %q must be owner/name", str)
		}
		return nil
	}

	return interfaces.ShortcodeDefinition{
		Name:        "github",
		Version:     "1.0.0",
		Description: "Links a GitHub repository as an inline card",
		Category:    "embed",
		AllowInner:  false,
		CacheTTL:    time.Hour,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "repo",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
					Validate: validateRepo,
				},
			},
		},
		Template: `<div class="github-card" data-repo="{{ .repo }}">
  <a href="https://github.com/{{ .repo }}" rel="noopener">{{ .repo }}</a>
</div>`,
	}
}

func youTubeDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "youtube",
		Version:     "1.0.0",
		Description: "Embeds a responsive YouTube iframe player",
		Category:    "media",
		AllowInner:  false,
		CacheTTL:    time.Hour,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "id",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
				},
				{
					Name:    "start",
					Type:    interfaces.ShortcodeParamInt,
					Default: 0,
				},
			},
		},
		Template: `<div class="video-embed video-embed--youtube">
  <iframe src="https://www.youtube.com/embed/{{ .id }}{{ if gt .start 0 }}?start={{ .start }}{{ end }}" title="YouTube video" loading="lazy" allowfullscreen></iframe>
</div>`,
	}
}

func alertDefinition() interfaces.ShortcodeDefinition {
	validateType := func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("alert type must be string")
		}
		switch str {
		case "info", "success", "warning", "danger":
			return nil
		default:
			return fmt.Errorf("alert type %q not supported", str)
		}
	}

	return interfaces.ShortcodeDefinition{
		Name:        "alert",
		Version:     "1.0.0",
		Description: "Displays contextual alert callouts",
		Category:    "content",
		AllowInner:  true,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "type",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
					Validate: validateType,
				},
				{
					Name: "title",
					Type: interfaces.ShortcodeParamString,
				},
			},
		},
		Template: `<div class="alert alert--{{ .type }}">
  {{ if .title }}<div class="alert__title">{{ .title }}</div>{{ end }}
  <div class="alert__body">{{ .Inner }}</div>
</div>`,
	}
}

func codeDefinition() interfaces.ShortcodeDefinition {
	return interfaces.ShortcodeDefinition{
		Name:        "code",
		Version:     "1.0.0",
		Description: "Fenced code block with a language class for client-side highlighting",
		Category:    "content",
		AllowInner:  true,
		Schema: interfaces.ShortcodeSchema{
			Params: []interfaces.ShortcodeParam{
				{
					Name:     "lang",
					Type:     interfaces.ShortcodeParamString,
					Required: true,
				},
				{
					Name: "title",
					Type: interfaces.ShortcodeParamString,
				},
			},
		},
		Template: `<div class="code-block">
  {{ if .title }}<div class="code-block__title">{{ .title }}</div>{{ end }}
  <pre class="language-{{ .lang }}"><code>{{ .Inner }}</code></pre>
</div>`,
	}
}

// RegisterBuiltIns registers the built-in shortcode definitions on the
// provided registry. When names is empty, every built-in is registered.
func RegisterBuiltIns(registry interfaces.ShortcodeRegistry, names []string) error {
	if registry == nil {
		return fmt.Errorf("shortcode: registry is required")
	}

	available := make(map[string]interfaces.ShortcodeDefinition)
	for _, def := range BuiltInDefinitions() {
		available[strings.ToLower(strings.TrimSpace(def.Name))] = def
	}

	if len(names) == 0 {
		for _, def := range available {
			if err := registry.Register(def); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		def, ok := available[key]
		if !ok {
			return fmt.Errorf("shortcode: built-in %q not found", name)
		}
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}
