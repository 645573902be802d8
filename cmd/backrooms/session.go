package main

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/backrooms/audio"
	"github.com/lixenwraith/backrooms/camera"
	"github.com/lixenwraith/backrooms/collision"
	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/graffiti"
	"github.com/lixenwraith/backrooms/input"
	"github.com/lixenwraith/backrooms/logger"
	"github.com/lixenwraith/backrooms/player"
	"github.com/lixenwraith/backrooms/render"
	"github.com/lixenwraith/backrooms/status"
	"github.com/lixenwraith/backrooms/world"
)

// Camera shake impulses per structural event
const (
	shakeWallDestroyed   = 1.0
	shakePillarDestroyed = 0.6
	shakeFractured       = 0.3
)

// saveFile is the on-disk session layout
type saveFile struct {
	World    world.Snapshot            `yaml:"world"`
	Player   player.State              `yaml:"player"`
	Graffiti []graffiti.SurfaceStrokes `yaml:"graffiti,omitempty"`
}

// session owns every simulation object for one run
// Single goroutine: the frame loop drives all calls
type session struct {
	cfg *config.Config

	bus      *event.Bus
	world    *world.World
	solver   *collision.Solver
	contact  *collision.Contact
	player   *player.Player
	camera   *camera.Camera
	renderer *render.Renderer
	strokes  *graffiti.Store
	cues     *audio.CuePlayer
	metrics  *status.Registry

	// Cached metric pointers
	frames   *atomic.Int64
	fps      *status.Gauge
	debris   *status.Gauge
	polygons *status.Gauge

	spraying bool
	frame    int64
	message  string
}

// newSession wires the simulation, cues may be nil
func newSession(cfg *config.Config, cues *audio.CuePlayer) (*session, error) {
	s := &session{
		cfg:     cfg,
		bus:     event.NewBus(event.Deferred),
		strokes: graffiti.NewStore(),
		cues:    cues,
		metrics: status.NewRegistry(),
	}
	s.frames = s.metrics.Counters.Get("frames")
	s.fps = s.metrics.Gauges.Get("fps")
	s.debris = s.metrics.Gauges.Get("debris")
	s.polygons = s.metrics.Gauges.Get("polygons")
	s.metrics.CountEvents(s.bus)

	s.world = world.New(cfg.World, s.bus)
	s.solver = collision.NewSolver(s.world)
	s.contact = collision.NewContact(s.bus)

	r, err := render.New(cfg.Render, cfg.World.Seed, s.bus)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	r.SetOverlay(s.strokes)
	s.renderer = r

	x, z := s.spawnPoint()
	s.player = player.New(cfg.Player, s.solver, s.contact, x, z)
	s.camera = camera.New(cfg.Camera, s.player.Pose())

	s.bus.Subscribe(event.EventWallDestroyed, s.onWallDestroyed)
	s.bus.Subscribe(event.EventPillarDestroyed, s.onPillarDestroyed)
	s.bus.Subscribe(event.EventWallFractured, func(event.Event) error {
		s.camera.Shake(shakeFractured)
		return nil
	})
	if cues != nil {
		cues.Attach(s.bus)
	}

	logger.Log.WithFields(logrus.Fields{
		"seed": cfg.World.Seed,
		"x":    x,
		"z":    z,
	}).Info("Session started")
	return s, nil
}

// spawnPoint walks outward from the origin room until the body fits
func (s *session) spawnPoint() (float64, float64) {
	step := float64(s.world.RoomSizeAt(0, 0)) / 4
	for ring := 1; ring < 64; ring++ {
		for _, d := range [][2]float64{{1, 1}, {3, 1}, {1, 3}, {3, 3}} {
			x, z := d[0]*step*float64(ring), d[1]*step*float64(ring)
			if !s.solver.Penetrating(x, z) && !s.world.CheckCollision(x, z) {
				return x, z
			}
		}
	}
	return step, step
}

func (s *session) onWallDestroyed(ev event.Event) error {
	p, ok := ev.Payload.(*event.WallPayload)
	if !ok {
		return fmt.Errorf("wall destroyed: unexpected payload %T", ev.Payload)
	}
	s.strokes.Clear(world.WallSurface(world.NewWallKey(p.X1, p.Z1, p.X2, p.Z2)))
	s.camera.Shake(shakeWallDestroyed)
	return nil
}

func (s *session) onPillarDestroyed(ev event.Event) error {
	p, ok := ev.Payload.(*event.PillarPayload)
	if !ok {
		return fmt.Errorf("pillar destroyed: unexpected payload %T", ev.Payload)
	}
	s.strokes.ClearPillar(world.PillarKey{X: p.X, Z: p.Z})
	s.camera.Shake(shakePillarDestroyed)
	return nil
}

// step advances one frame and draws it into dst, nil dst skips drawing
func (s *session) step(dt float64, in player.Input, dst *image.RGBA) {
	s.frame++
	s.bus.SetFrame(s.frame)

	s.player.Update(dt, in)
	pose := s.player.Pose()
	s.camera.Update(dt, pose, s.player.Moving(), s.player.Rotating())
	if s.spraying {
		s.spray()
	}
	s.world.Update(dt, pose.X, pose.Z)
	if s.cues != nil {
		s.cues.SetListener(pose.X, pose.Z)
	}
	if dst != nil {
		s.renderer.Render(dst, s.camera, s.world, dt)
	} else {
		s.renderer.Update(dt)
	}
	s.bus.Flush()

	s.frames.Add(1)
	if dt > 0 {
		s.fps.Smooth(1/dt, 0.1)
	}
	s.debris.Set(float64(s.world.DebrisCount()))
	s.polygons.Set(float64(s.renderer.Stats().Polygons))
}

// handle applies a one-shot intent, returning false to quit
func (s *session) handle(intent input.Intent, savePath string) bool {
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentHit:
		s.hit()
	case input.IntentSpray:
		s.spraying = !s.spraying
		if !s.spraying {
			s.strokes.End()
		}
	case input.IntentErase:
		if h, ok := s.target(); ok {
			if h.Kind == world.HitPillar {
				s.strokes.ClearPillar(h.Pillar)
			} else if k, ok := h.Surface(); ok {
				s.strokes.Clear(k)
			}
		}
	case input.IntentEraseAll:
		s.strokes.ClearAll()
	case input.IntentToggleScale:
		s.renderer.ToggleScale()
	case input.IntentToggleOutlines:
		s.cfg.Render.Outlines = !s.cfg.Render.Outlines
		s.renderer.SetOutlines(s.cfg.Render.Outlines)
	case input.IntentSave:
		s.report("saved", s.save(savePath))
	case input.IntentLoad:
		s.report("loaded", s.load(savePath))
	}
	s.bus.Flush()
	return true
}

func (s *session) report(what string, err error) {
	if err != nil {
		logger.Log.WithError(err).Warn("Session IO failed")
		s.message = err.Error()
		return
	}
	s.message = what
}

func (s *session) target() (world.Hit, bool) {
	origin, dir := s.camera.Ray()
	return s.world.Target(origin, dir)
}

// hit damages the targeted wall, pillars collapse in one blow
func (s *session) hit() {
	h, ok := s.target()
	if !ok {
		return
	}
	switch h.Kind {
	case world.HitWall:
		uv := h.UV
		s.world.HitWall(h.Wall, s.cfg.Player.HitDamage, &uv)
	case world.HitPillar:
		s.world.DestroyPillar(h.Pillar)
	}
}

// spray extends the current stroke at the crosshair
func (s *session) spray() {
	h, ok := s.target()
	if !ok {
		s.strokes.End()
		return
	}
	if !s.strokes.Active() {
		s.strokes.BeginAt(h)
		return
	}
	s.strokes.AddAt(h)
}

func (s *session) save(path string) error {
	sf := saveFile{
		World:    s.world.Snapshot(),
		Player:   s.player.State(),
		Graffiti: s.strokes.Snapshot(),
	}
	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write save %s: %w", path, err)
	}
	logger.Log.WithFields(logrus.Fields{
		"path":    path,
		"walls":   len(sf.World.DestroyedWalls),
		"pillars": len(sf.World.DestroyedPillars),
		"strokes": s.strokes.StrokeCount(),
	}).Info("Session saved")
	return nil
}

func (s *session) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read save %s: %w", path, err)
	}
	var sf saveFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("decode save %s: %w", path, err)
	}
	if err := s.world.Restore(sf.World); err != nil {
		return fmt.Errorf("restore world: %w", err)
	}
	s.strokes.Restore(sf.Graffiti)
	s.player.Load(sf.Player)
	s.camera.Snap(s.player.Pose())
	s.spraying = false
	logger.Log.WithField("path", path).Info("Session loaded")
	return nil
}

// status is the one-line HUD text
func (s *session) status() string {
	pose := s.player.Pose()
	zn := s.world.Zones().PropertiesAt(pose.X, pose.Z)
	line := fmt.Sprintf("seed %d  %s  %.0f,%.0f  heading %03.0f  destroyed %d/%d  debris %d  scale %.2f  %.0f fps",
		s.world.Seed(), zn.Name, pose.X, pose.Z, headingDegrees(pose.Yaw),
		s.world.DestroyedWallCount(), s.world.DestroyedPillarCount(),
		int(s.debris.Get()), s.renderer.Scale(), s.fps.Get())
	if s.spraying {
		line += "  [spray]"
	}
	if s.message != "" {
		line += "  " + s.message
	}
	return line
}

func headingDegrees(yaw float64) float64 {
	d := math.Mod(yaw*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func (s *session) close() {
	if s.cues != nil {
		s.cues.Detach(s.bus)
	}
	logger.Log.WithField("metrics", strings.Join(s.metrics.Lines(), " ")).Info("Session closed")
}
