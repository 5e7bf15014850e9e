package images

import (
	"bytes"
	"image/png"
	"testing"

	"go.uber.org/zap/zaptest"

	"shiva/config"
)

func TestNormalize_Disabled(t *testing.T) {
	data := pngBytes(t, 10, 8)
	log := zaptest.NewLogger(t)

	if got := Normalize(data, nil, log); !bytes.Equal(got, data) {
		t.Error("nil config changed the data")
	}
	cfg := &config.ImagesConfig{Normalize: false, ScaleFactor: 0.5}
	if got := Normalize(data, cfg, log); !bytes.Equal(got, data) {
		t.Error("disabled normalization changed the data")
	}
}

func TestNormalize_Rescales(t *testing.T) {
	data := pngBytes(t, 10, 8)
	cfg := &config.ImagesConfig{Normalize: true, ScaleFactor: 0.5, JPEGQuality: 75}

	got := Normalize(data, cfg, zaptest.NewLogger(t))
	pcfg, err := png.DecodeConfig(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("normalized output is not png: %v", err)
	}
	if pcfg.Height != 4 {
		t.Errorf("height = %d, want 4", pcfg.Height)
	}
	if pcfg.Width != 5 {
		t.Errorf("width = %d, want 5", pcfg.Width)
	}
}

func TestNormalize_RasterizesSVG(t *testing.T) {
	data := []byte(testSVG)
	cfg := &config.ImagesConfig{Normalize: true, ScaleFactor: 1.0, JPEGQuality: 75}

	got := Normalize(data, cfg, zaptest.NewLogger(t))
	pcfg, err := png.DecodeConfig(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("normalized vector output is not png: %v", err)
	}
	if pcfg.Width != 24 || pcfg.Height != 16 {
		t.Errorf("raster = %dx%d, want intrinsic 24x16", pcfg.Width, pcfg.Height)
	}
}

func TestNormalize_RasterizesAndRescalesSVG(t *testing.T) {
	data := []byte(testSVG)
	cfg := &config.ImagesConfig{Normalize: true, ScaleFactor: 0.5, JPEGQuality: 75}

	got := Normalize(data, cfg, zaptest.NewLogger(t))
	pcfg, err := png.DecodeConfig(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("normalized vector output is not png: %v", err)
	}
	if pcfg.Width != 12 || pcfg.Height != 8 {
		t.Errorf("raster = %dx%d, want 12x8", pcfg.Width, pcfg.Height)
	}
}

func TestNormalize_SVGUntouchedWhenDisabled(t *testing.T) {
	data := []byte(testSVG)
	cfg := &config.ImagesConfig{Normalize: false}

	if got := Normalize(data, cfg, zaptest.NewLogger(t)); !bytes.Equal(got, data) {
		t.Error("vector data was modified with normalization disabled")
	}
}

func TestNormalize_GarbagePassthrough(t *testing.T) {
	data := []byte("not an image at all")
	cfg := &config.ImagesConfig{Normalize: true, ScaleFactor: 0.5}

	if got := Normalize(data, cfg, zaptest.NewLogger(t)); !bytes.Equal(got, data) {
		t.Error("unrecognized data was modified")
	}
}
