package markdown

import (
	"go.uber.org/zap"

	"shiva/document"
	"shiva/images"
	"shiva/mdast"
)

// Transformer is the markdown conversion facade: Parse builds the
// canonical document tree from markdown bytes, Generate lowers a tree back
// to markdown bytes. The zero-argument variants resolve and persist images
// against the current directory; inject callbacks for anything else.
type Transformer struct {
	log *zap.Logger
}

// New creates a transformer. A nil logger is replaced with a nop one.
func New(log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transformer{log: log}
}

// Parse converts markdown bytes into a document, loading referenced images
// from the current directory.
func (t *Transformer) Parse(data []byte) (*document.Document, error) {
	return t.ParseWithLoader(data, images.DiskLoader("."))
}

// ParseWithLoader converts markdown bytes into a document resolving image
// references through the given loader.
func (t *Transformer) ParseWithLoader(data []byte, load document.ImageLoader) (*document.Document, error) {
	events, err := Tokenize(data)
	if err != nil {
		return nil, err
	}
	return Build(events, load, t.log)
}

// Generate converts a document back into markdown bytes, saving images
// into the current directory.
func (t *Transformer) Generate(doc *document.Document) ([]byte, error) {
	return t.GenerateWithSaver(doc, images.DiskSaver("."))
}

// GenerateWithSaver converts a document back into markdown bytes,
// persisting images through the given saver.
func (t *Transformer) GenerateWithSaver(doc *document.Document, save document.ImageSaver) ([]byte, error) {
	tree, err := Lower(doc, save)
	if err != nil {
		return nil, err
	}
	return mdast.Render(tree)
}
