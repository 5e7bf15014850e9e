package convert

import (
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"shiva/config"
	"shiva/document"
	"shiva/state"
)

// buildOutputPath constructs the output file path from the source name and
// destination directory, honoring the user-defined name template when one
// is configured and preserving source directory structure unless disabled.
func buildOutputPath(doc *document.Document, srcName, dst string, env *state.LocalEnv) string {
	outDir := dst
	if !env.NoDirs {
		outDir = filepath.Join(dst, filepath.Dir(srcName))
	}

	name := defaultFileName(srcName, env)
	if tmpl := env.Cfg.Document.OutputNameTemplate; tmpl != "" {
		if expanded := expandOutputNameTemplate(tmpl, doc, srcName, env); expanded != "" {
			name = config.CleanFileName(expanded) + sourceExt
		}
		// fall back to the default name if template expansion failed
	}
	return filepath.Join(outDir, name)
}

func defaultFileName(srcName string, env *state.LocalEnv) string {
	base := strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	if env.Cfg.Document.FileNameTransliterate {
		base = slug.Make(base)
	}
	return config.CleanFileName(base) + sourceExt
}

// expandOutputNameTemplate renders the configured template with sprig
// functions available. Template data: Title is the text of the first
// header in the document body, Source is the source base name without
// extension.
func expandOutputNameTemplate(tmpl string, doc *document.Document, srcName string, env *state.LocalEnv) string {
	data := struct {
		Title  string
		Source string
	}{
		Title:  firstHeaderText(doc),
		Source: strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName)),
	}

	t, err := template.New("output_name").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		env.Log.Warn("Unable to parse output name template", zap.String("template", tmpl), zap.Error(err))
		return ""
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		env.Log.Warn("Unable to expand output name template", zap.String("template", tmpl), zap.Error(err))
		return ""
	}

	name := strings.TrimSpace(sb.String())
	if env.Cfg.Document.FileNameTransliterate {
		name = slug.Make(name)
	}
	return name
}

func firstHeaderText(doc *document.Document) string {
	for _, el := range doc.Elements {
		if h, ok := el.(*document.Header); ok {
			return h.Text
		}
	}
	return ""
}
