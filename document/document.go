package document

// Default page geometry, A4 in millimeters with uniform indents. These are
// opaque pass-through values - nothing in the conversion core interprets
// them.
const (
	DefaultPageWidth  = 210.0
	DefaultPageHeight = 297.0
	DefaultPageIndent = 10.0
)

// Document is an ordered body of sealed elements plus independent page
// header and footer sequences and page geometry. Header, footer and body
// never cross-reference each other.
type Document struct {
	Elements         []Element
	PageWidth        float64
	PageHeight       float64
	LeftPageIndent   float64
	RightPageIndent  float64
	TopPageIndent    float64
	BottomPageIndent float64
	PageHeader       []Element
	PageFooter       []Element
}

// New creates a document around the given body elements with default page
// geometry.
func New(elements []Element) *Document {
	return &Document{
		Elements:         elements,
		PageWidth:        DefaultPageWidth,
		PageHeight:       DefaultPageHeight,
		LeftPageIndent:   DefaultPageIndent,
		RightPageIndent:  DefaultPageIndent,
		TopPageIndent:    DefaultPageIndent,
		BottomPageIndent: DefaultPageIndent,
	}
}

// ImageLoader resolves an image reference to its raw bytes. The default
// implementation reads from disk, but any collaborator (HTTP fetch, object
// store, in-memory map for tests) may be substituted.
type ImageLoader func(src string) ([]byte, error)

// ImageSaver persists image bytes under a generated file name.
type ImageSaver func(data []byte, name string) error
