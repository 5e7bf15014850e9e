// Package images provides the default disk-backed implementations of the
// image callbacks together with byte-level helpers: format recognition,
// SVG rasterization and optional normalization of loaded images.
package images

import (
	"fmt"
	"os"
	"path/filepath"

	"shiva/document"
)

// DiskLoader returns an ImageLoader resolving references relative to base.
func DiskLoader(base string) document.ImageLoader {
	return func(src string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(src)))
		if err != nil {
			return nil, fmt.Errorf("unable to read image %q: %w", src, err)
		}
		return data, nil
	}
}

// DiskSaver returns an ImageSaver persisting bytes under base, creating the
// directory when missing.
func DiskSaver(base string) document.ImageSaver {
	return func(data []byte, name string) error {
		if err := os.MkdirAll(base, 0755); err != nil {
			return fmt.Errorf("unable to create image directory %q: %w", base, err)
		}
		fname := filepath.Join(base, filepath.FromSlash(name))
		if err := os.WriteFile(fname, data, 0644); err != nil {
			return fmt.Errorf("unable to write image %q: %w", fname, err)
		}
		return nil
	}
}
