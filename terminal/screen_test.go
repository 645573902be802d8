package terminal

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := New(sim)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(s.Close)
	return s, sim
}

// TestScreenPixelSize verifies two pixel rows per cell with one status row reserved
func TestScreenPixelSize(t *testing.T) {
	s, _ := newSimScreen(t, 10, 6)
	w, h := s.PixelSize()
	if w != 10 || h != 10 {
		t.Errorf("Expected 10x10 pixels, got %dx%d", w, h)
	}
}

// TestScreenPresentHalfBlocks verifies upper pixel maps to foreground and lower to background
func TestScreenPresentHalfBlocks(t *testing.T) {
	s, sim := newSimScreen(t, 2, 2)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{200, 10, 20, 255})
	img.SetRGBA(0, 1, color.RGBA{5, 100, 50, 255})
	s.Present(img)

	r, _, st, _ := sim.GetContent(0, 0)
	if r != halfBlock {
		t.Fatalf("Expected half block rune, got %q", r)
	}
	fg, bg, _ := st.Decompose()
	if fr, fgG, fb := fg.RGB(); fr != 200 || fgG != 10 || fb != 20 {
		t.Errorf("Expected foreground (200,10,20), got (%d,%d,%d)", fr, fgG, fb)
	}
	if br, bgG, bb := bg.RGB(); br != 5 || bgG != 100 || bb != 50 {
		t.Errorf("Expected background (5,100,50), got (%d,%d,%d)", br, bgG, bb)
	}
}

// TestScreenStatusRow verifies status text is written to the bottom row and truncated
func TestScreenStatusRow(t *testing.T) {
	s, sim := newSimScreen(t, 4, 3)
	s.SetStatus("hello")
	s.Present(image.NewRGBA(image.Rect(0, 0, 4, 4)))

	want := "hell"
	for x, c := range want {
		r, _, _, _ := sim.GetContent(x, 2)
		if r != c {
			t.Errorf("Expected %q at column %d, got %q", c, x, r)
		}
	}
}

// TestScreenSmallFrame verifies pixels missing from a short frame render black
func TestScreenSmallFrame(t *testing.T) {
	s, sim := newSimScreen(t, 3, 2)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	s.Present(img)

	_, _, st, _ := sim.GetContent(2, 0)
	fg, _, _ := st.Decompose()
	if r, g, b := fg.RGB(); r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected black outside the frame, got (%d,%d,%d)", r, g, b)
	}
}
