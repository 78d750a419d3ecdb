package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	manifestFileName    = ".site-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build so
// incremental runs can skip unchanged pages.
type buildManifest struct {
	Version     int                     `json:"version"`
	GeneratedAt time.Time               `json:"generated_at"`
	Pages       map[string]manifestPage `json:"pages"`
}

type manifestPage struct {
	Kind       string    `json:"kind"`
	Slug       string    `json:"slug,omitempty"`
	Route      string    `json:"route"`
	Output     string    `json:"output"`
	Hash       string    `json:"hash"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var manifest buildManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if manifest.Pages == nil {
		manifest.Pages = map[string]manifestPage{}
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	return &manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	// Stable ordering for deterministic output.
	type orderedManifest struct {
		Version     int            `json:"version"`
		GeneratedAt time.Time      `json:"generated_at"`
		Pages       []manifestPage `json:"pages"`
	}
	ordered := orderedManifest{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
	}
	if ordered.Version == 0 {
		ordered.Version = manifestFileVersion
	}
	if len(m.Pages) > 0 {
		ordered.Pages = make([]manifestPage, 0, len(m.Pages))
		for _, entry := range m.Pages {
			ordered.Pages = append(ordered.Pages, entry)
		}
		sort.Slice(ordered.Pages, func(i, j int) bool {
			return ordered.Pages[i].Route < ordered.Pages[j].Route
		})
	}
	return json.MarshalIndent(ordered, "", "  ")
}

// unmarshal restores the map form written by marshal.
func (m *buildManifest) UnmarshalJSON(data []byte) error {
	type wireManifest struct {
		Version     int             `json:"version"`
		GeneratedAt time.Time       `json:"generated_at"`
		Pages       json.RawMessage `json:"pages"`
	}
	var wire wireManifest
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.Version = wire.Version
	m.GeneratedAt = wire.GeneratedAt
	m.Pages = map[string]manifestPage{}
	if len(wire.Pages) == 0 {
		return nil
	}

	// Accept both the list form written by marshal and a keyed map.
	var list []manifestPage
	if err := json.Unmarshal(wire.Pages, &list); err == nil {
		for _, entry := range list {
			m.setPage(entry)
		}
		return nil
	}
	var keyed map[string]manifestPage
	if err := json.Unmarshal(wire.Pages, &keyed); err != nil {
		return err
	}
	m.Pages = keyed
	return nil
}

func (m *buildManifest) pageKey(route string) string {
	return strings.ToLower(strings.TrimSpace(route))
}

func (m *buildManifest) lookupPage(route string) (manifestPage, bool) {
	if m == nil || len(m.Pages) == 0 {
		return manifestPage{}, false
	}
	entry, ok := m.Pages[m.pageKey(route)]
	return entry, ok
}

func (m *buildManifest) setPage(entry manifestPage) {
	if m == nil {
		return
	}
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	m.Pages[m.pageKey(entry.Route)] = entry
}

func (m *buildManifest) shouldSkipPage(route, hash, output string) bool {
	entry, ok := m.lookupPage(route)
	if !ok {
		return false
	}
	if entry.Hash == "" || entry.Hash != hash {
		return false
	}
	return strings.TrimSpace(entry.Output) == strings.TrimSpace(output)
}

func (m *buildManifest) prunePages(keys map[string]struct{}) {
	if len(keys) == 0 || len(m.Pages) == 0 {
		return
	}
	for key := range m.Pages {
		if _, ok := keys[key]; !ok {
			delete(m.Pages, key)
		}
	}
}
