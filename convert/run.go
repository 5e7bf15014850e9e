// Package convert implements the CLI conversion driver: it locates
// markdown sources (single file, directory tree or zip archive), runs each
// through the markdown transformer round trip and writes the results under
// the destination directory.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"

	"shiva/archive"
	"shiva/config"
	"shiva/document"
	"shiva/images"
	"shiva/markdown"
	"shiva/state"
)

const sourceExt = ".md"

// job is a single markdown source to convert. Name is relative to the
// conversion root and determines the output location, dir is the directory
// image references resolve against.
type job struct {
	name string
	dir  string
	data []byte
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	if dir := cmd.String("images-from"); dir != "" {
		env.Cfg.Document.Images.SourceDir = dir
	}
	if dir := cmd.String("images-to"); dir != "" {
		env.Cfg.Document.Images.TargetDir = dir
	}

	// Old sources and archives do not always carry UTF-8, allow forcing a
	// specific character set for file contents and zip member names.
	if cp := cmd.String("force-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, env, log)
}

// process fans a source specification out into jobs. One bad file does not
// stop a batch run, errors accumulate and are reported together.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	jobs, err := collectJobs(src, env)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		log.Warn("Nothing to convert", zap.String("source", src))
		return nil
	}

	var errs error
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := convertOne(j, dst, env, log); err != nil {
			log.Error("Conversion failed", zap.String("source", j.name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", j.name, err))
		}
	}
	return errs
}

func collectJobs(src string, env *state.LocalEnv) ([]job, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, err
	}

	switch {
	case fi.IsDir():
		return collectDirJobs(src)
	case strings.EqualFold(filepath.Ext(src), ".zip"):
		return collectArchiveJobs(src, env)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, err
		}
		return []job{{name: filepath.Base(src), dir: filepath.Dir(src), data: data}}, nil
	}
}

// collectDirJobs picks up markdown files recursively without following
// symbolic links, in natural sort order so chapter10 follows chapter9.
func collectDirJobs(root string) ([]job, error) {
	var names []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), sourceExt) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })

	jobs := make([]job, 0, len(names))
	for _, rel := range names {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{name: rel, dir: filepath.Join(root, filepath.Dir(rel)), data: data})
	}
	return jobs, nil
}

func collectArchiveJobs(src string, env *state.LocalEnv) ([]job, error) {
	var jobs []job
	err := archive.Walk(src, "", sourceExt, func(_ string, f *zip.File) error {
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}

		name := f.FileHeader.Name
		if f.NonUTF8 && env.CodePage != nil {
			if decoded, err := env.CodePage.NewDecoder().String(name); err == nil {
				name = decoded
			}
		}
		// Images referenced by archived markdown live next to the archive.
		jobs = append(jobs, job{name: filepath.FromSlash(name), dir: filepath.Dir(src), data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(jobs, func(i, j int) bool { return natural.Less(jobs[i].name, jobs[j].name) })
	return jobs, nil
}

func convertOne(j job, dst string, env *state.LocalEnv, log *zap.Logger) error {
	id := uuid.NewString()
	env.Rpt.StoreData(fmt.Sprintf("jobs/%s/%s", id, filepath.Base(j.name)), j.data)

	data, err := decodeInput(j.data, env, log)
	if err != nil {
		return err
	}

	tr := markdown.New(log)
	doc, err := tr.ParseWithLoader(data, loader(j.dir, env, log))
	if err != nil {
		return err
	}
	applyPageGeometry(doc, &env.Cfg.Document.Page)

	outPath := buildOutputPath(doc, j.name, dst, env)
	if _, err := os.Stat(outPath); err == nil && !env.Overwrite {
		return fmt.Errorf("destination %q already exists, use overwrite to replace it", outPath)
	}

	imgDir := env.Cfg.Document.Images.TargetDir
	if imgDir == "" {
		imgDir = filepath.Dir(outPath)
	}
	out, err := tr.GenerateWithSaver(doc, images.DiskSaver(imgDir))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("unable to write %q: %w", outPath, err)
	}
	env.Rpt.StoreData(fmt.Sprintf("jobs/%s/%s", id, filepath.Base(outPath)), out)

	log.Info("Converted", zap.String("source", j.name), zap.String("destination", outPath))
	return nil
}

// loader resolves image references against the configured source directory
// (falling back to the markdown file's own directory) and normalizes
// loaded raster data when requested.
func loader(srcDir string, env *state.LocalEnv, log *zap.Logger) document.ImageLoader {
	base := env.Cfg.Document.Images.SourceDir
	if base == "" {
		base = srcDir
	}
	load := images.DiskLoader(base)
	imgCfg := &env.Cfg.Document.Images
	return func(src string) ([]byte, error) {
		data, err := load(src)
		if err != nil {
			return nil, err
		}
		return images.Normalize(data, imgCfg, log), nil
	}
}

// decodeInput transcodes non-UTF-8 sources to UTF-8 using either the
// forced code page or charset detection. Valid UTF-8 passes through
// untouched, undecodable input is left to the transformer to reject.
func decodeInput(data []byte, env *state.LocalEnv, log *zap.Logger) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	if env.CodePage != nil {
		decoded, err := env.CodePage.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("unable to decode input with forced code page: %w", err)
		}
		return decoded, nil
	}
	if enc, name, certain := charset.DetermineEncoding(data, "text/plain"); certain && enc != nil {
		log.Debug("Input is not UTF-8, transcoding", zap.String("charset", name))
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			return decoded, nil
		}
	}
	return data, nil
}

func applyPageGeometry(doc *document.Document, page *config.PageConfig) {
	doc.PageWidth = page.Width
	doc.PageHeight = page.Height
	doc.LeftPageIndent = page.LeftIndent
	doc.RightPageIndent = page.RightIndent
	doc.TopPageIndent = page.TopIndent
	doc.BottomPageIndent = page.BottomIndent
}
