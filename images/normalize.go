package images

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"shiva/config"
	"shiva/document"
)

// Normalize optionally converts loaded image bytes into a uniform raster
// form according to configuration. Vector images are rasterized to PNG at
// their intrinsic size first so they participate in the raster pipeline,
// then PNG/JPEG bytes are rescaled and re-encoded as requested. Bytes are
// returned unchanged when nothing is requested, when the format is not one
// we handle, or when decoding fails - a broken image is the builder's
// problem, not ours.
func Normalize(data []byte, cfg *config.ImagesConfig, log *zap.Logger) []byte {
	if cfg == nil || !cfg.Normalize {
		return data
	}

	t, _ := Recognize(data)
	if t == document.ImageTypeSVG {
		raster, err := Rasterize(data, 0, 0)
		if err != nil {
			log.Warn("Unable to rasterize vector image, keeping original", zap.Error(err))
			return data
		}
		data, t = raster, document.ImageTypePNG
	}

	scaling := cfg.ScaleFactor > 0 && cfg.ScaleFactor != 1.0
	if !scaling && cfg.JPEGQuality == 0 {
		return data
	}
	if t != document.ImageTypePNG && t != document.ImageTypeJPEG {
		return data
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Warn("Unable to decode image for normalization, keeping original", zap.Error(err))
		return data
	}

	if scaling {
		img = imaging.Resize(img, 0, int(float64(img.Bounds().Dy())*cfg.ScaleFactor), imaging.Linear)
	}

	var buf bytes.Buffer
	switch t {
	case document.ImageTypePNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case document.ImageTypeJPEG:
		quality := cfg.JPEGQuality
		if quality == 0 {
			quality = 75
		}
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	if err != nil {
		log.Warn("Unable to re-encode normalized image, keeping original", zap.Stringer("type", t), zap.Error(err))
		return data
	}
	return buf.Bytes()
}
