package document

// ImageType identifies the encoded format of image bytes.
type ImageType int

const (
	ImageTypeUnknown ImageType = iota
	ImageTypePNG
	ImageTypeJPEG
	ImageTypeGIF
	ImageTypeBMP
	ImageTypeWEBP
	ImageTypeTIFF
	ImageTypeSVG
)

// Ext returns the canonical file extension for the type, without the dot.
// Unknown types fall back to png so generated file names stay usable.
func (t ImageType) Ext() string {
	switch t {
	case ImageTypeJPEG:
		return "jpg"
	case ImageTypeGIF:
		return "gif"
	case ImageTypeBMP:
		return "bmp"
	case ImageTypeWEBP:
		return "webp"
	case ImageTypeTIFF:
		return "tiff"
	case ImageTypeSVG:
		return "svg"
	default:
		return "png"
	}
}

func (t ImageType) String() string {
	switch t {
	case ImageTypePNG:
		return "png"
	case ImageTypeJPEG:
		return "jpeg"
	case ImageTypeGIF:
		return "gif"
	case ImageTypeBMP:
		return "bmp"
	case ImageTypeWEBP:
		return "webp"
	case ImageTypeTIFF:
		return "tiff"
	case ImageTypeSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// ImageDimension holds pixel dimensions of a decoded image. Zero values
// mean the dimensions could not be determined.
type ImageDimension struct {
	Width  int
	Height int
}

// Image is a leaf element owning raw resource bytes together with the
// metadata recognized from them.
type Image struct {
	Bytes     []byte
	Title     string
	Alt       string
	ImageType ImageType
	Dimension ImageDimension
}

// SetAlt replaces the alt text. The builder routes the caption text event
// here after the image scope opens.
func (im *Image) SetAlt(alt string) {
	im.Alt = alt
}
