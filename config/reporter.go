package config

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates an initialized empty reporter.
func (conf *ReporterConfig) Prepare(appName string) (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", appName+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	path  string
	stamp time.Time
	data  []byte
}

// Report accumulates conversion artifacts (configuration dump, job inputs,
// intermediate document dumps, outputs) and archives them on Close.
// NOTE: not to be used concurrently.
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Name returns the absolute name of the underlying archive file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store records a path to an existing file to be archived on Close. Nil
// receiver means no report was requested and the call is a no-op.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.path != path {
		// somewhere I do not know what I am doing
		panic(fmt.Sprintf("attempt to overwrite report entry [%s]: was %s, now %s", name, old.path, path))
	}
	e := entry{path: path}
	if p, err := filepath.Abs(path); err == nil {
		e.path = p
	}
	r.entries[name] = e
}

// StoreData records binary data to be archived on Close as a file under
// the requested name. Existing names are versioned with a timestamp so the
// same artifact can be stored repeatedly.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	e := entry{data: data, stamp: time.Now()}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
}

// Close finalizes the report archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

func (r *Report) finalize() error {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	w := zip.NewWriter(r.file)
	defer w.Close()

	for _, name := range names {
		e := r.entries[name]
		if e.data == nil && e.path == "" {
			continue
		}
		data := e.data
		if data == nil {
			var err error
			if data, err = os.ReadFile(e.path); err != nil {
				// report what we can, a missing artifact is not fatal
				continue
			}
		}
		f, err := w.Create(name)
		if err != nil {
			return fmt.Errorf("unable to create report entry %q: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("unable to write report entry %q: %w", name, err)
		}
	}
	return nil
}
