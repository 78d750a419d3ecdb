// Package parser extracts Hugo-style shortcode tags from markdown content.
// Both delimiter styles are recognised: percent tags ({{% image src="x" %}})
// and angle tags ({{< youtube id="x" >}}).
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

type tagStyle struct {
	start *regexp.Regexp
	end   *regexp.Regexp
	// closer builds the end-tag pattern for a named shortcode so
	// self-closing tags can be detected.
	closer func(name string) *regexp.Regexp
}

var styles = []tagStyle{
	{
		start: regexp.MustCompile(`{{%\s*([^\s/%}]+)((?:[^%]|%[^}])*?)%}}`),
		end:   regexp.MustCompile(`{{%\s*/\s*([^\s%}]+)\s*%}}`),
		closer: func(name string) *regexp.Regexp {
			return regexp.MustCompile(fmt.Sprintf(`{{%%\s*/\s*%s\s*%%}}`, regexp.QuoteMeta(name)))
		},
	},
	{
		start: regexp.MustCompile(`{{<\s*([^\s/>}]+)([^>]*)>}}`),
		end:   regexp.MustCompile(`{{<\s*/\s*([^\s>}]+)\s*>}}`),
		closer: func(name string) *regexp.Regexp {
			return regexp.MustCompile(fmt.Sprintf(`{{<\s*/\s*%s\s*>}}`, regexp.QuoteMeta(name)))
		},
	},
}

// TagParser scans content for shortcode tags in either delimiter style.
type TagParser struct {
}

// NewTagParser creates a parser instance.
func NewTagParser() *TagParser {
	return &TagParser{}
}

// Parse returns the list of parsed shortcodes in the content.
func (p *TagParser) Parse(content string) ([]interfaces.ParsedShortcode, error) {
	_, shortcodes, err := p.Extract(content)
	return shortcodes, err
}

// Extract replaces shortcodes with placeholders and returns both the
// transformed content and the extracted invocations. Paired tags capture
// their inner content; tags without a matching closer are self-closing.
func (p *TagParser) Extract(content string) (string, []interfaces.ParsedShortcode, error) {
	type stackEntry struct {
		name       string
		startIndex int
		params     map[string]any
	}

	var (
		result     []rune
		shortcodes []interfaces.ParsedShortcode
		stack      []stackEntry
		position   int
	)

	appendString := func(s string) {
		result = append(result, []rune(s)...)
	}

	for position < len(content) {
		remaining := content[position:]

		startPos, startStyle := earliestMatch(remaining, func(s tagStyle) *regexp.Regexp { return s.start })
		endPos, endStyle := earliestMatch(remaining, func(s tagStyle) *regexp.Regexp { return s.end })

		if startPos < 0 && endPos < 0 {
			appendString(remaining)
			break
		}

		if startPos >= 0 && (endPos < 0 || startPos < endPos) {
			appendString(remaining[:startPos])

			matches := startStyle.start.FindStringSubmatch(remaining[startPos:])
			if len(matches) < 3 {
				return "", nil, fmt.Errorf("invalid shortcode start tag at position %d", position+startPos)
			}
			name := matches[1]
			params := parseParams(strings.TrimSpace(matches[2]))

			// Tags without a downstream closer are self-closing.
			afterTag := remaining[startPos+len(matches[0]):]
			if startStyle.closer(name).FindStringIndex(afterTag) == nil {
				placeholder := fmt.Sprintf("<!-- shortcode:%d -->", len(shortcodes))
				appendString(placeholder)
				shortcodes = append(shortcodes, interfaces.ParsedShortcode{
					Name:   name,
					Params: params,
				})
				position += startPos + len(matches[0])
				continue
			}

			stack = append(stack, stackEntry{
				name:       name,
				startIndex: len(result),
				params:     params,
			})
			position += startPos + len(matches[0])
			continue
		}

		appendString(remaining[:endPos])

		matches := endStyle.end.FindStringSubmatch(remaining[endPos:])
		if len(matches) < 2 {
			return "", nil, fmt.Errorf("invalid shortcode end tag at position %d", position+endPos)
		}
		name := matches[1]
		if len(stack) == 0 {
			return "", nil, fmt.Errorf("unexpected closing shortcode %s at position %d", name, position+endPos)
		}

		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if entry.name != name {
			return "", nil, fmt.Errorf("mismatched shortcode end tag %s, expected %s", name, entry.name)
		}

		inner := string(result[entry.startIndex:])
		result = result[:entry.startIndex]

		placeholder := fmt.Sprintf("<!-- shortcode:%d -->", len(shortcodes))
		appendString(placeholder)

		shortcodes = append(shortcodes, interfaces.ParsedShortcode{
			Name:   name,
			Params: entry.params,
			Inner:  inner,
		})

		position += endPos + len(matches[0])
	}

	if len(stack) > 0 {
		return "", nil, fmt.Errorf("unterminated shortcode %s", stack[len(stack)-1].name)
	}

	return string(result), shortcodes, nil
}

func earliestMatch(content string, selector func(tagStyle) *regexp.Regexp) (int, tagStyle) {
	best := -1
	var bestStyle tagStyle
	for _, style := range styles {
		loc := selector(style).FindStringIndex(content)
		if loc == nil {
			continue
		}
		if best < 0 || loc[0] < best {
			best = loc[0]
			bestStyle = style
		}
	}
	return best, bestStyle
}

// parseParams splits the raw attribute string into named values. Quoted
// values may contain spaces. Bare values become param1, param2, ... and are
// resolved positionally by the validator.
func parseParams(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}

	params := make(map[string]any)
	for _, part := range splitFields(raw) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			key := strings.TrimSpace(kv[0])
			params[key] = unquote(kv[1])
		} else {
			params[fmt.Sprintf("param%d", len(params)+1)] = unquote(part)
		}
	}
	return params
}

// splitFields behaves like strings.Fields but keeps double-quoted segments
// together so values such as title="hello world" survive intact.
func splitFields(raw string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	flush := func() {
		if current.Len() > 0 {
			fields = append(fields, current.String())
			current.Reset()
		}
	}

	for _, r := range raw {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return fields
}

func unquote(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"'`)
}
