// Package render rasterizes the visible world into an RGBA framebuffer with painter's ordering
package render

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/backrooms/camera"
	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/logger"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
	"github.com/lixenwraith/backrooms/world"
)

type itemKind uint8

const (
	itemFloor itemKind = iota
	itemCeiling
	itemPillar
	itemWall
)

// item is one render queue entry, sorted far to near by dist
type item struct {
	dist   float64
	kind   itemKind
	x, z   int64   // tile corner
	y      float64 // ceiling tile height
	wall   world.WallKey
	pillar world.PillarKey
}

// FrameStats counts work done by the last Render call
type FrameStats struct {
	Queued   int
	Polygons int
	Sprites  int
	Width    int
	Height   int
}

// Renderer owns render scale and flicker state across frames
type Renderer struct {
	cfg      config.RenderConfig
	colors   config.Colors
	tex      *Textures
	sink     event.Sink
	rng      *vmath.FastRand
	overlay  Overlay
	fogColor RGB

	scale       float64
	targetScale float64
	low         *image.RGBA

	flickering   bool
	flickerTimer float64
	brightness   float64

	queue   []item
	sprites []sprite
	camPts  []mgl64.Vec3
	screen  []Point
	stats   FrameStats

	// Per-frame bindings, valid only inside Render
	fb    *Framebuffer
	cam   *camera.Camera
	scene Scene
	w, h  float64
}

// New resolves the palette and synthesizes textures from seed
// sink receives flicker events, nil discards
func New(cfg config.RenderConfig, seed int64, sink event.Sink) (*Renderer, error) {
	colors, err := cfg.Colors.Resolve()
	if err != nil {
		return nil, fmt.Errorf("render palette: %w", err)
	}
	if sink == nil {
		sink = event.Discard{}
	}
	scale := cfg.Scale
	if scale != parameter.RenderScaleLow {
		scale = parameter.RenderScaleHigh
	}

	r := &Renderer{
		cfg:         cfg,
		colors:      colors,
		tex:         GenerateTextures(colors, seed),
		sink:        sink,
		rng:         vmath.KeyStream(seed, "flicker"),
		fogColor:    FromColorful(colors.Background),
		scale:       scale,
		targetScale: scale,
		brightness:  1,
		fb:          &Framebuffer{},
	}
	logger.Log.WithFields(logrus.Fields{
		"carpet":  r.tex.Carpet.Average,
		"ceiling": r.tex.Ceiling.Average,
		"wall":    r.tex.Wall.Average,
		"pillar":  r.tex.Pillar.Average,
	}).Debug("Textures generated")
	return r, nil
}

func (r *Renderer) Textures() *Textures { return r.tex }

// SetOverlay installs the stroke source drawn over walls and pillars, nil disables
func (r *Renderer) SetOverlay(o Overlay) { r.overlay = o }

func (r *Renderer) Stats() FrameStats { return r.stats }

// SetOutlines toggles polygon edge strokes
func (r *Renderer) SetOutlines(on bool) { r.cfg.Outlines = on }

// --- Render Scale ---

// ToggleScale flips the target scale between full and half resolution
func (r *Renderer) ToggleScale() {
	if r.targetScale == parameter.RenderScaleHigh {
		r.targetScale = parameter.RenderScaleLow
	} else {
		r.targetScale = parameter.RenderScaleHigh
	}
	logger.Log.WithField("target", r.targetScale).Info("Render scale transition")
}

// Scale returns the current render scale
func (r *Renderer) Scale() float64 { return r.scale }

// updateScale moves linearly toward the target and snaps inside 0.01
func (r *Renderer) updateScale(dt float64) {
	if math.Abs(r.scale-r.targetScale) <= 0.01 {
		r.scale = r.targetScale
		return
	}
	step := parameter.RenderScaleSpeed * dt
	if r.scale < r.targetScale {
		r.scale = math.Min(r.targetScale, r.scale+step)
	} else {
		r.scale = math.Max(r.targetScale, r.scale-step)
	}
}

// --- Flicker ---

// Flicker dims the lights for one flicker duration
func (r *Renderer) Flicker() {
	r.flickering = true
	r.flickerTimer = 0
	r.brightness = 1 - parameter.FlickerBrightness
	r.sink.Emit(event.Event{
		Type:    event.EventFlicker,
		Payload: &event.FlickerPayload{Duration: parameter.FlickerDuration},
	})
}

// Flickering reports whether the lights are currently dimmed
func (r *Renderer) Flickering() bool { return r.flickering }

func (r *Renderer) updateFlicker(dt float64) {
	if r.flickering {
		r.flickerTimer += dt
		if r.flickerTimer >= parameter.FlickerDuration {
			r.flickering = false
			r.brightness = 1
		}
		return
	}
	if r.cfg.Flicker && r.rng.Float64() < parameter.FlickerChance {
		r.Flicker()
	}
}

// Update advances render scale and flicker by dt
func (r *Renderer) Update(dt float64) {
	if !(dt > 0) {
		return
	}
	r.updateScale(dt)
	r.updateFlicker(dt)
}

// --- Frame ---

// Render advances by dt and draws one frame of scene seen through cam into dst
// Below full scale the frame is rasterized small and upscaled bilinearly
func (r *Renderer) Render(dst *image.RGBA, cam *camera.Camera, scene Scene, dt float64) {
	r.Update(dt)

	b := dst.Bounds()
	target := dst
	if r.scale < parameter.RenderScaleHigh {
		target = r.lowBuffer(b.Dx(), b.Dy())
	}

	r.fb.Reset(target)
	r.cam, r.scene = cam, scene
	tw, th := r.fb.Size()
	r.w, r.h = float64(tw), float64(th)
	r.stats = FrameStats{Width: tw, Height: th}

	r.fb.Clear(r.fog(r.fogColor, 0))
	r.buildQueue()
	for i := range r.queue {
		r.drawItem(&r.queue[i])
	}
	r.drawDebris()

	if target != dst {
		draw.ApproxBiLinear.Scale(dst, b, target, target.Bounds(), draw.Src, nil)
		r.fb.Reset(dst)
	}
	cw, ch := r.fb.Size()
	r.fb.Circle(cw/2, ch/2, 3, RGBCrosshair)

	r.cam, r.scene = nil, nil
}

func (r *Renderer) lowBuffer(w, h int) *image.RGBA {
	lw := max(1, int(float64(w)*r.scale))
	lh := max(1, int(float64(h)*r.scale))
	if r.low == nil || r.low.Bounds().Dx() != lw || r.low.Bounds().Dy() != lh {
		r.low = image.NewRGBA(image.Rect(0, 0, lw, lh))
	}
	return r.low
}

// buildQueue enumerates floor and ceiling tiles, pillars and walls in range, then sorts far to near
func (r *Renderer) buildQueue() {
	r.queue = r.queue[:0]
	cx, cz := r.cam.Smoothed.X, r.cam.Smoothed.Z
	rng := r.cfg.RenderDistance
	zones := r.scene.Zones()

	const tile = parameter.FloorTileSize
	half := float64(tile) / 2
	x0, x1 := vmath.FloorDivF(cx-rng, tile)*tile, vmath.FloorDivF(cx+rng, tile)*tile
	z0, z1 := vmath.FloorDivF(cz-rng, tile)*tile, vmath.FloorDivF(cz+rng, tile)*tile
	for px := x0; px < x1; px += tile {
		for pz := z0; pz < z1; pz += tile {
			tx, tz := float64(px)+half, float64(pz)+half
			d := math.Hypot(tx-cx, tz-cz)
			if d > rng+tile {
				continue
			}
			r.queue = append(r.queue,
				item{dist: d, kind: itemFloor, x: px, z: pz},
				item{dist: d, kind: itemCeiling, x: px, z: pz, y: zones.CeilingHeightAt(tx, tz)},
			)
		}
	}

	for _, k := range r.scene.PillarsNear(cx, cz, rng) {
		if r.scene.IsPillarDestroyed(k) {
			continue
		}
		d := math.Hypot(float64(k.X)-cx, float64(k.Z)-cz)
		if d < rng {
			r.queue = append(r.queue, item{dist: d, kind: itemPillar, pillar: k})
		}
	}

	for _, k := range r.scene.WallsNear(cx, cz, rng) {
		if r.scene.IsWallDestroyed(k) {
			r.scene.SpawnRubblePile(k)
			continue
		}
		mx, mz := k.Mid()
		r.queue = append(r.queue, item{dist: math.Hypot(mx-cx, mz-cz), kind: itemWall, wall: k})
	}

	slices.SortStableFunc(r.queue, func(a, b item) int { return cmp.Compare(b.dist, a.dist) })
	r.stats.Queued = len(r.queue)
}

func (r *Renderer) drawItem(it *item) {
	switch it.kind {
	case itemFloor, itemCeiling:
		x0, z0 := float64(it.x), float64(it.z)
		x1, z1 := x0+parameter.FloorTileSize, z0+parameter.FloorTileSize
		y, base := parameter.FloorY, r.tex.Carpet.Average
		if it.kind == itemCeiling {
			y, base = it.y, r.tex.Ceiling.Average
		}
		r.drawPoly([]mgl64.Vec3{{x0, y, z0}, {x1, y, z0}, {x1, y, z1}, {x0, y, z1}}, polyStyle{base: base})
	case itemPillar:
		r.drawPillar(it.pillar)
	case itemWall:
		r.drawWall(it.wall)
	}
}

// polyStyle carries the unshaded colors of one polygon
type polyStyle struct {
	base    RGB
	edge    RGB
	outline bool
	wall    bool    // receives ambient occlusion
	top     float64 // upper seam height for occlusion
}

// drawPoly shades, clips, projects, culls and fills one world-space convex polygon
func (r *Renderer) drawPoly(pts []mgl64.Vec3, st polyStyle) {
	r.camPts = r.camPts[:0]
	behind := 0
	var distSum float64
	var center mgl64.Vec3
	for _, p := range pts {
		c := r.cam.WorldToCamera(p)
		if c[2] < parameter.NearPlane {
			behind++
		}
		distSum += c.Len()
		center = center.Add(p)
		r.camPts = append(r.camPts, c)
	}
	if behind == len(pts) {
		return
	}
	n := float64(len(pts))
	dist := distSum / n
	if dist > r.cfg.RenderDistance*1.5 {
		return
	}
	center = center.Mul(1 / n)
	fill := r.shade(st.base, center, dist, st.wall, st.top)

	clipped := camera.ClipPolyNear(r.camPts)
	if clipped == nil {
		return
	}
	r.screen = r.screen[:0]
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range clipped {
		sx, sy, ok := r.cam.Project(c, r.w, r.h)
		if !ok {
			return
		}
		r.screen = append(r.screen, Point{sx, sy})
		minX, maxX = math.Min(minX, sx), math.Max(maxX, sx)
		minY, maxY = math.Min(minY, sy), math.Max(maxY, sy)
	}

	const margin = parameter.CullMargin
	if maxX < -margin || minX > r.w+margin || maxY < -margin || minY > r.h+margin {
		return
	}
	if maxX-minX < parameter.MinPolygonExtent && maxY-minY < parameter.MinPolygonExtent {
		return
	}

	r.fb.FillPolygon(r.screen, fill)
	r.stats.Polygons++

	if st.outline && r.cfg.Outlines {
		edge := r.fog(r.surface(st.edge, center), dist)
		for i := range r.screen {
			r.fb.Line(r.screen[i], r.screen[(i+1)%len(r.screen)], 1, edge)
		}
	}
}

// project maps a world point to the current target, false when clipped
func (r *Renderer) project(p mgl64.Vec3) (Point, bool) {
	sx, sy, ok := r.cam.Project(r.cam.WorldToCamera(p), r.w, r.h)
	return Point{sx, sy}, ok
}
