package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeZip(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create member %s: %v", name, err)
		}
		if _, err := fw.Write([]byte("content of " + name)); err != nil {
			t.Fatalf("write member %s: %v", name, err)
		}
	}
	return path
}

func TestWalk_ExtensionFilter(t *testing.T) {
	path := makeZip(t, "a.md", "sub/b.MD", "c.txt", "d.markdown")

	var visited []string
	err := Walk(path, "", ".md", func(archive string, f *zip.File) error {
		if archive != path {
			t.Errorf("archive = %s, want %s", archive, path)
		}
		visited = append(visited, f.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	expected := map[string]bool{"a.md": true, "sub/b.MD": true}
	if len(visited) != len(expected) {
		t.Fatalf("visited %v, want %d files", visited, len(expected))
	}
	for _, name := range visited {
		if !expected[name] {
			t.Errorf("unexpected file visited: %s", name)
		}
	}
}

func TestWalk_PrefixFilter(t *testing.T) {
	path := makeZip(t, "docs/a.md", "docs/b.md", "src/c.md")

	var visited int
	err := Walk(path, "docs/", ".md", func(_ string, f *zip.File) error {
		visited++
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalk_EmptyExtensionMatchesEverything(t *testing.T) {
	path := makeZip(t, "a.md", "b.txt")

	var visited int
	err := Walk(path, "", "", func(_ string, f *zip.File) error {
		visited++
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalk_SkipsDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dirs.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	w := zip.NewWriter(f)
	hdr := &zip.FileHeader{Name: "mydir/"}
	hdr.SetMode(os.ModeDir | 0755)
	if _, err := w.CreateHeader(hdr); err != nil {
		t.Fatalf("create dir entry: %v", err)
	}
	fw, err := w.Create("mydir/file.md")
	if err != nil {
		t.Fatalf("create file entry: %v", err)
	}
	fw.Write([]byte("content"))
	w.Close()
	f.Close()

	var visited []string
	if err := Walk(path, "", "", func(_ string, f *zip.File) error {
		visited = append(visited, f.Name)
		return nil
	}); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(visited) != 1 || visited[0] != "mydir/file.md" {
		t.Errorf("visited %v, want only mydir/file.md", visited)
	}
}

func TestWalk_UnsafeMemberPath(t *testing.T) {
	path := makeZip(t, "../evil.md")
	err := Walk(path, "", ".md", func(_ string, f *zip.File) error {
		t.Error("walkFn called for unsafe member")
		return nil
	})
	if err == nil {
		t.Fatal("expected error for traversal path")
	}
}

func TestWalk_ErrorPropagation(t *testing.T) {
	path := makeZip(t, "a.md", "b.md")
	stop := errors.New("stop")
	var visited int
	err := Walk(path, "", ".md", func(_ string, f *zip.File) error {
		visited++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Walk() error = %v, want %v", err, stop)
	}
	if visited != 1 {
		t.Errorf("visited %d files after error, want 1", visited)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	if err := Walk("/nonexistent/file.zip", "", "", func(_ string, f *zip.File) error { return nil }); err == nil {
		t.Error("expected error for nonexistent archive")
	}

	bad := filepath.Join(t.TempDir(), "bad.zip")
	if err := os.WriteFile(bad, []byte("not a zip"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := Walk(bad, "", "", func(_ string, f *zip.File) error { return nil }); err == nil {
		t.Error("expected error for invalid archive")
	}
}
