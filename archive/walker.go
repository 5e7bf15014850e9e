// Package archive builds a Walk abstraction on top of "archive/zip" for
// batch conversion of markdown files stored in zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"
)

// WalkFunc is called for each matching file in the archive. The archive
// argument is the path passed to Walk, file is the matching zip member.
// Returning an error stops the walk.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits every file in the archive whose name starts with prefix and
// has the given extension (case-insensitive, empty matches everything),
// calling walkFn for each. Members with absolute or traversal paths abort
// the walk to prevent Zip Slip.
func Walk(archive, prefix, ext string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("unable to open archive %q: %w", archive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if ext != "" && !strings.EqualFold(path.Ext(name), ext) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for member names that could escape an
// extraction directory.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
