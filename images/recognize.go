package images

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/h2non/filetype"
	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"shiva/document"
)

// Recognize sniffs the encoded format of image bytes and determines pixel
// dimensions where possible. Unrecognizable input yields the unknown type
// and zero dimensions - the caller decides whether that matters.
func Recognize(data []byte) (document.ImageType, document.ImageDimension) {
	t := sniffType(data)

	var dim document.ImageDimension
	switch t {
	case document.ImageTypeSVG:
		dim = svgDimension(data)
	case document.ImageTypeUnknown:
	default:
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			dim.Width = cfg.Width
			dim.Height = cfg.Height
		}
	}
	return t, dim
}

func sniffType(data []byte) document.ImageType {
	// SVG is text, content sniffing libraries will not match it.
	if looksLikeSVG(data) {
		return document.ImageTypeSVG
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return document.ImageTypeUnknown
	}
	switch kind.Extension {
	case "png":
		return document.ImageTypePNG
	case "jpg":
		return document.ImageTypeJPEG
	case "gif":
		return document.ImageTypeGIF
	case "bmp":
		return document.ImageTypeBMP
	case "webp":
		return document.ImageTypeWEBP
	case "tif":
		return document.ImageTypeTIFF
	}
	return document.ImageTypeUnknown
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.TrimLeft(head, " \t\r\n\xef\xbb\xbf")
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

func svgDimension(data []byte) document.ImageDimension {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return document.ImageDimension{}
	}
	return document.ImageDimension{
		Width:  int(math.Ceil(icon.ViewBox.W)),
		Height: int(math.Ceil(icon.ViewBox.H)),
	}
}
