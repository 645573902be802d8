package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/render"
)

func testOptions(out string) options {
	return options{x: 100, z: 100, height: 50, width: 64, rows: 36, out: out}
}

// TestDumpWritesPNG verifies the frame is written and decodes at the requested size
func TestDumpWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "a.png")
	img, err := dump(config.Default(), testOptions(out))
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("Expected output file, got %v", err)
	}
	back, err := render.LoadImage(out)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if back.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), back.Bounds())
	}

	first := img.RGBAAt(0, 0)
	uniform := true
	for y := 0; y < 36 && uniform; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y) != first {
				uniform = false
				break
			}
		}
	}
	if uniform {
		t.Error("Expected a non-uniform frame")
	}
}

// TestDumpDeterministic verifies identical inputs give identical pixels
func TestDumpDeterministic(t *testing.T) {
	a, err := dump(config.Default(), testOptions(""))
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	b, err := dump(config.Default(), testOptions(""))
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected identical frames for identical inputs")
	}
}

// TestDumpConfigSize verifies zero size falls back to the render config
func TestDumpConfigSize(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width, cfg.Render.Height = 40, 20
	img, err := dump(cfg, options{x: 100, z: 100, height: 50})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("Expected 40x20, got %v", img.Bounds())
	}
}
