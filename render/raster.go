package render

import (
	"image"
	"math"
	"slices"
)

// Point is a screen-space vertex in pixels
type Point struct {
	X, Y float64
}

// Framebuffer draws filled polygons, lines and discs into an RGBA image
// All primitives clip to the image bounds
type Framebuffer struct {
	img  *image.RGBA
	w, h int

	// xs is scanline crossing scratch reused across fills
	xs []float64
}

func NewFramebuffer(img *image.RGBA) *Framebuffer {
	fb := &Framebuffer{}
	fb.Reset(img)
	return fb
}

// Reset retargets the framebuffer at img
func (fb *Framebuffer) Reset(img *image.RGBA) {
	fb.img = img
	b := img.Bounds()
	fb.w, fb.h = b.Dx(), b.Dy()
}

func (fb *Framebuffer) Image() *image.RGBA { return fb.img }

func (fb *Framebuffer) Size() (int, int) { return fb.w, fb.h }

// Clear fills the whole image using exponential copy
func (fb *Framebuffer) Clear(c RGB) {
	if fb.img.Stride != fb.w*4 {
		for y := 0; y < fb.h; y++ {
			fb.hspan(y, 0, fb.w-1, c)
		}
		return
	}
	pix := fb.img.Pix[:fb.h*fb.img.Stride]
	if len(pix) < 4 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, 255
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// Set writes one pixel, out of bounds is ignored
func (fb *Framebuffer) Set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= fb.w || y >= fb.h {
		return
	}
	i := y*fb.img.Stride + x*4
	p := fb.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
}

// At reads one pixel, out of bounds returns black
func (fb *Framebuffer) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= fb.w || y >= fb.h {
		return RGBBlack
	}
	i := y*fb.img.Stride + x*4
	return RGB{fb.img.Pix[i], fb.img.Pix[i+1], fb.img.Pix[i+2]}
}

func (fb *Framebuffer) hspan(y, x0, x1 int, c RGB) {
	x0 = max(x0, 0)
	x1 = min(x1, fb.w-1)
	if y < 0 || y >= fb.h || x0 > x1 {
		return
	}
	row := fb.img.Pix[y*fb.img.Stride:]
	for x := x0; x <= x1; x++ {
		p := row[x*4 : x*4+4 : x*4+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
	}
}

// FillPolygon rasterizes a simple polygon with the even-odd rule, sampling pixel centers
func (fb *Framebuffer) FillPolygon(pts []Point, c RGB) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := max(0, int(math.Ceil(minY-0.5)))
	y1 := min(fb.h-1, int(math.Floor(maxY-0.5)))

	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		fb.xs = fb.xs[:0]
		prev := pts[len(pts)-1]
		for _, cur := range pts {
			// Half-open rule so shared vertices count once
			if (prev.Y <= sy) != (cur.Y <= sy) {
				t := (sy - prev.Y) / (cur.Y - prev.Y)
				fb.xs = append(fb.xs, prev.X+t*(cur.X-prev.X))
			}
			prev = cur
		}
		slices.Sort(fb.xs)
		for i := 0; i+1 < len(fb.xs); i += 2 {
			fb.hspan(y, int(math.Ceil(fb.xs[i]-0.5)), int(math.Floor(fb.xs[i+1]-0.5)), c)
		}
	}
}

// Line draws a Bresenham line of the given pixel width
func (fb *Framebuffer) Line(a, b Point, width int, c RGB) {
	// Widen the clip window so thick lines keep their edge pixels
	pad := float64(width)
	x0, y0, x1, y1, ok := clipLine(a.X, a.Y, b.X, b.Y, -pad, -pad, float64(fb.w)+pad, float64(fb.h)+pad)
	if !ok {
		return
	}
	ix0, iy0 := int(math.Floor(x0)), int(math.Floor(y0))
	ix1, iy1 := int(math.Floor(x1)), int(math.Floor(y1))

	dx := abs(ix1 - ix0)
	dy := -abs(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy
	for {
		fb.plot(ix0, iy0, width, c)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

// plot stamps a width x width square centered on (x, y)
func (fb *Framebuffer) plot(x, y, width int, c RGB) {
	if width <= 1 {
		fb.Set(x, y, c)
		return
	}
	lo := -(width - 1) / 2
	for dy := lo; dy < lo+width; dy++ {
		fb.hspan(y+dy, x+lo, x+lo+width-1, c)
	}
}

// Disc fills a circle of radius r around (cx, cy)
func (fb *Framebuffer) Disc(cx, cy, r int, c RGB) {
	if r <= 0 {
		fb.Set(cx, cy, c)
		return
	}
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(rr - dy*dy)))
		fb.hspan(cy+dy, cx-half, cx+half, c)
	}
}

// Circle draws a one pixel ring of radius r
func (fb *Framebuffer) Circle(cx, cy, r int, c RGB) {
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			fb.Set(cx+p[0], cy+p[1], c)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// clipLine is Liang-Barsky against [minX, maxX] x [minY, maxY]
func clipLine(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
