// Package markdown implements filesystem-backed loading, parsing, and
// importing of Markdown articles with YAML front matter.
package markdown
