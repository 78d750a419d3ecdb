package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the Markdown
// body without delimiters, and any error encountered. Malformed date values
// are tolerated: the parsed time stays zero and the original string is
// preserved in Raw so audits can report it.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	frontMatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  frontMatter,
		Body:         body,
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope mirrors the keys observed across the corpus. Dates are
// decoded as loose values because authors write them in several ISO-8601-like
// shapes; the singular author/category keys are accepted as fallbacks.
type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	URL         string         `yaml:"url"`
	Categories  []string       `yaml:"categories"`
	Category    string         `yaml:"category"`
	Authors     []string       `yaml:"authors"`
	Author      string         `yaml:"author"`
	Excerpt     string         `yaml:"excerpt"`
	Description string         `yaml:"description"`
	Image       string         `yaml:"image"`
	Date        any            `yaml:"date"`
	Modified    any            `yaml:"modified"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	categories := append([]string(nil), env.Categories...)
	if len(categories) == 0 && strings.TrimSpace(env.Category) != "" {
		categories = []string{env.Category}
	}
	authors := append([]string(nil), env.Authors...)
	if len(authors) == 0 && strings.TrimSpace(env.Author) != "" {
		authors = []string{env.Author}
	}

	date, dateRaw, _ := timeFromAny(env.Date)
	modified, modifiedRaw, _ := timeFromAny(env.Modified)

	raw := make(map[string]any, len(env.Custom)+10)
	for key, value := range env.Custom {
		raw[key] = value
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.URL != "" {
		raw["url"] = env.URL
	}
	if len(categories) > 0 {
		raw["categories"] = append([]string(nil), categories...)
	}
	if len(authors) > 0 {
		raw["authors"] = append([]string(nil), authors...)
	}
	if env.Excerpt != "" {
		raw["excerpt"] = env.Excerpt
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if env.Image != "" {
		raw["image"] = env.Image
	}
	if dateRaw != "" {
		raw["date"] = dateRaw
	}
	if modifiedRaw != "" {
		raw["modified"] = modifiedRaw
	}
	raw["draft"] = env.Draft

	return interfaces.FrontMatter{
		Title:       env.Title,
		Slug:        env.URL,
		Categories:  categories,
		Authors:     authors,
		Excerpt:     env.Excerpt,
		Description: env.Description,
		Image:       env.Image,
		Date:        date,
		Modified:    modified,
		Draft:       env.Draft,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
