package terminal

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// halfBlock paints the upper pixel as foreground and the lower as background
const halfBlock = '▀'

var statusStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(230, 220, 150)).
	Background(tcell.NewRGBColor(20, 18, 10))

// Screen presents RGBA frames on a terminal using two pixels per cell
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	status string

	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once
}

// Open initializes the controlling terminal
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(s)
}

// New wraps an uninitialized tcell screen, used with simulation screens in tests
func New(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	s.Clear()
	return &Screen{
		screen: s,
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
	}, nil
}

// Events starts the poll goroutine on first call and returns its channel
// The channel closes when the screen is finalized
func (s *Screen) Events() <-chan tcell.Event {
	s.once.Do(func() {
		go func() {
			defer close(s.events)
			for {
				ev := s.screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case s.events <- ev:
				case <-s.quit:
					return
				}
			}
		}()
	})
	return s.events
}

// PixelSize returns the frame size that fills the terminal above the status row
func (s *Screen) PixelSize() (int, int) {
	w, h := s.screen.Size()
	rows := max(0, h-1)
	return w, rows * 2
}

// SetStatus replaces the text shown on the bottom row
func (s *Screen) SetStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
}

// Present draws img with half-block cells and shows the result
// Pixels beyond the terminal are dropped, missing pixels stay black
func (s *Screen) Present(img *image.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	rows := max(0, h-1)
	b := img.Bounds()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < w; cx++ {
			top := pixel(img, b.Min.X+cx, b.Min.Y+cy*2)
			bot := pixel(img, b.Min.X+cx, b.Min.Y+cy*2+1)
			st := tcell.StyleDefault.Foreground(top).Background(bot)
			s.screen.SetContent(cx, cy, halfBlock, nil, st)
		}
	}
	if h > 0 {
		s.drawStatus(h-1, w)
	}
	s.screen.Show()
}

func (s *Screen) drawStatus(y, w int) {
	x := 0
	for _, r := range s.status {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > w {
			break
		}
		s.screen.SetContent(x, y, r, nil, statusStyle)
		x += rw
	}
	for ; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
}

func pixel(img *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return tcell.NewRGBColor(0, 0, 0)
	}
	c := img.RGBAAt(x, y)
	return rgbColor(c)
}

func rgbColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Sync forces a full redraw after resize
func (s *Screen) Sync() {
	s.screen.Sync()
}

// Close restores the terminal and stops the poll goroutine
func (s *Screen) Close() {
	select {
	case <-s.quit:
		return
	default:
		close(s.quit)
	}
	s.screen.Fini()
}
