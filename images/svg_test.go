package images

import (
	"bytes"
	"image/png"
	"testing"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 16"><rect width="24" height="16" fill="black"/></svg>`

func rasterSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not png: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestRasterize_IntrinsicSize(t *testing.T) {
	out, err := Rasterize([]byte(testSVG), 0, 0)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if w, h := rasterSize(t, out); w != 24 || h != 16 {
		t.Errorf("raster = %dx%d, want 24x16", w, h)
	}
}

func TestRasterize_WidthKeepsAspect(t *testing.T) {
	out, err := Rasterize([]byte(testSVG), 48, 0)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if w, h := rasterSize(t, out); w != 48 || h != 32 {
		t.Errorf("raster = %dx%d, want 48x32", w, h)
	}
}

func TestRasterize_FitsBox(t *testing.T) {
	out, err := Rasterize([]byte(testSVG), 48, 16)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	// limited by height, aspect preserved
	if w, h := rasterSize(t, out); w != 24 || h != 16 {
		t.Errorf("raster = %dx%d, want 24x16", w, h)
	}
}

func TestRasterize_CapsHostileViewBox(t *testing.T) {
	huge := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100000 100000"></svg>`
	out, err := Rasterize([]byte(huge), 0, 0)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if w, h := rasterSize(t, out); w > maxRasterDim || h > maxRasterDim {
		t.Errorf("raster = %dx%d exceeds cap %d", w, h, maxRasterDim)
	}
}

func TestRasterize_InvalidInput(t *testing.T) {
	if _, err := Rasterize([]byte("<not really svg"), 0, 0); err == nil {
		t.Error("expected error for malformed input")
	}
}
