package generator

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryAsset    writeCategory = "asset"
	categoryFeed     writeCategory = "feed"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryManifest writeCategory = "manifest"
)

// writeFileRequest describes a file write operation routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// artifactWriter abstracts the output target so tests can capture artifacts
// in memory while production builds write to disk.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	RemoveAll(ctx context.Context, path string) error
}

// osWriter writes artifacts beneath a root directory on the local filesystem.
type osWriter struct {
	root string
}

func newOSWriter(root string) *osWriter {
	return &osWriter{root: strings.TrimSpace(root)}
}

func (w *osWriter) resolve(path string) (string, error) {
	clean := filepath.Clean(strings.TrimSpace(path))
	if clean == "" || clean == "." {
		return w.root, nil
	}
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", errors.New("generator: path escapes output directory")
	}
	return filepath.Join(w.root, clean), nil
}

func (w *osWriter) EnsureDir(_ context.Context, path string) error {
	target, err := w.resolve(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

func (w *osWriter) WriteFile(_ context.Context, req writeFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	target, err := w.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

func (w *osWriter) ReadFile(_ context.Context, path string) ([]byte, error) {
	target, err := w.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

func (w *osWriter) RemoveAll(_ context.Context, path string) error {
	target, err := w.resolve(path)
	if err != nil {
		return err
	}
	if target == w.root {
		entries, err := os.ReadDir(w.root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(w.root, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}
	return os.RemoveAll(target)
}
