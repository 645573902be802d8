// Package config loads runtime settings from YAML with environment overrides
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/backrooms/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// PillarMode selects pillar density
type PillarMode string

const (
	PillarNone   PillarMode = "none"
	PillarSparse PillarMode = "sparse"
	PillarNormal PillarMode = "normal"
	PillarDense  PillarMode = "dense"
	PillarAll    PillarMode = "all"
)

// Chance returns the per-grid-point pillar probability for the mode
func (m PillarMode) Chance() float64 {
	switch m {
	case PillarSparse:
		return parameter.PillarChanceSparse
	case PillarNormal:
		return parameter.PillarChanceNormal
	case PillarDense:
		return parameter.PillarChanceDense
	case PillarAll:
		return 1.0
	default:
		return 0
	}
}

type Config struct {
	World  WorldConfig  `yaml:"world" envPrefix:"WORLD_"`
	Render RenderConfig `yaml:"render" envPrefix:"RENDER_"`
	Camera CameraConfig `yaml:"camera" envPrefix:"CAMERA_"`
	Player PlayerConfig `yaml:"player" envPrefix:"PLAYER_"`
	Audio  AudioConfig  `yaml:"audio" envPrefix:"AUDIO_"`
	Log    LogConfig    `yaml:"log" envPrefix:"LOG_"`
}

type WorldConfig struct {
	Seed       int64      `yaml:"seed" env:"SEED"`
	PillarMode PillarMode `yaml:"pillar_mode" env:"PILLAR_MODE"`
	// GateWalls applies the zone wall probability to wall existence
	GateWalls bool `yaml:"gate_walls" env:"GATE_WALLS"`
}

type RenderConfig struct {
	Width          int     `yaml:"width" env:"WIDTH"`
	Height         int     `yaml:"height" env:"HEIGHT"`
	RenderDistance float64 `yaml:"render_distance" env:"DISTANCE"`
	Scale          float64 `yaml:"scale" env:"SCALE"`
	FogEnabled     bool    `yaml:"fog" env:"FOG"`
	FogStart       float64 `yaml:"fog_start" env:"FOG_START"`
	FogEnd         float64 `yaml:"fog_end" env:"FOG_END"`
	Flicker        bool    `yaml:"flicker" env:"FLICKER"`
	Outlines       bool    `yaml:"outlines" env:"OUTLINES"`
	Colors         Palette `yaml:"colors" envPrefix:"COLOR_"`
}

// Palette holds surface colors as hex strings
type Palette struct {
	Wall       string `yaml:"wall" env:"WALL"`
	WallEdge   string `yaml:"wall_edge" env:"WALL_EDGE"`
	Floor      string `yaml:"floor" env:"FLOOR"`
	Carpet     string `yaml:"carpet" env:"CARPET"`
	Ceiling    string `yaml:"ceiling" env:"CEILING"`
	Pillar     string `yaml:"pillar" env:"PILLAR"`
	PillarEdge string `yaml:"pillar_edge" env:"PILLAR_EDGE"`
	Background string `yaml:"background" env:"BACKGROUND"`
	Crack      string `yaml:"crack" env:"CRACK"`
	Stroke     string `yaml:"stroke" env:"STROKE"`
}

type CameraConfig struct {
	Smoothing         float64 `yaml:"smoothing" env:"SMOOTHING"`
	RotationSmoothing float64 `yaml:"rotation_smoothing" env:"ROTATION_SMOOTHING"`
	HeadBob           bool    `yaml:"head_bob" env:"HEAD_BOB"`
}

type PlayerConfig struct {
	WalkSpeed   float64 `yaml:"walk_speed" env:"WALK_SPEED"`
	RunSpeed    float64 `yaml:"run_speed" env:"RUN_SPEED"`
	CrouchSpeed float64 `yaml:"crouch_speed" env:"CROUCH_SPEED"`
	HitDamage   float64 `yaml:"hit_damage" env:"HIT_DAMAGE"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Volume  float64 `yaml:"volume" env:"VOLUME"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	// File is the log destination, empty disables logging
	File string `yaml:"file" env:"FILE"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:       12345,
			PillarMode: PillarNormal,
		},
		Render: RenderConfig{
			Width:          160,
			Height:         90,
			RenderDistance: parameter.RenderDistance,
			Scale:          parameter.RenderScaleHigh,
			FogEnabled:     true,
			FogStart:       parameter.FogStart,
			FogEnd:         parameter.FogEnd,
			Flicker:        true,
			Outlines:       true,
			Colors: Palette{
				Wall:       "#f0dc50",
				WallEdge:   "#dcbe32",
				Floor:      "#1e3c78",
				Carpet:     "#1e3c8c",
				Ceiling:    "#c8c8f0",
				Pillar:     "#fae65a",
				PillarEdge: "#dcc846",
				Background: "#142850",
				Crack:      "#3c321e",
				Stroke:     "#000000",
			},
		},
		Camera: CameraConfig{
			Smoothing:         parameter.CameraSmoothing,
			RotationSmoothing: parameter.RotationSmoothing,
			HeadBob:           true,
		},
		Player: PlayerConfig{
			WalkSpeed:   parameter.WalkSpeed,
			RunSpeed:    parameter.RunSpeed,
			CrouchSpeed: parameter.CrouchSpeed,
			HitDamage:   parameter.DefaultHitDamage,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load applies defaults, then the YAML file at path if non-empty, then BACKROOMS_* env vars
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "BACKROOMS_"}); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and color syntax
func (c *Config) Validate() error {
	switch c.World.PillarMode {
	case PillarNone, PillarSparse, PillarNormal, PillarDense, PillarAll:
	default:
		return fmt.Errorf("%w: pillar_mode %q", ErrInvalid, c.World.PillarMode)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if c.Render.RenderDistance <= 0 {
		return fmt.Errorf("%w: render_distance %.1f", ErrInvalid, c.Render.RenderDistance)
	}
	if c.Render.Scale < parameter.RenderScaleLow || c.Render.Scale > parameter.RenderScaleHigh {
		return fmt.Errorf("%w: scale %.2f outside [%.2f, %.2f]", ErrInvalid,
			c.Render.Scale, parameter.RenderScaleLow, parameter.RenderScaleHigh)
	}
	if c.Render.FogEnabled && c.Render.FogEnd <= c.Render.FogStart {
		return fmt.Errorf("%w: fog_end must exceed fog_start", ErrInvalid)
	}
	if c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1 ||
		c.Camera.RotationSmoothing <= 0 || c.Camera.RotationSmoothing > 1 {
		return fmt.Errorf("%w: smoothing factors must be in (0, 1]", ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %.2f", ErrInvalid, c.Audio.Volume)
	}
	if _, err := c.Render.Colors.Resolve(); err != nil {
		return err
	}
	return nil
}

// Colors is the parsed form of Palette
type Colors struct {
	Wall       colorful.Color
	WallEdge   colorful.Color
	Floor      colorful.Color
	Carpet     colorful.Color
	Ceiling    colorful.Color
	Pillar     colorful.Color
	PillarEdge colorful.Color
	Background colorful.Color
	Crack      colorful.Color
	Stroke     colorful.Color
}

// Resolve parses every hex entry
func (p Palette) Resolve() (Colors, error) {
	var out Colors
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"wall", p.Wall, &out.Wall},
		{"wall_edge", p.WallEdge, &out.WallEdge},
		{"floor", p.Floor, &out.Floor},
		{"carpet", p.Carpet, &out.Carpet},
		{"ceiling", p.Ceiling, &out.Ceiling},
		{"pillar", p.Pillar, &out.Pillar},
		{"pillar_edge", p.PillarEdge, &out.PillarEdge},
		{"background", p.Background, &out.Background},
		{"crack", p.Crack, &out.Crack},
		{"stroke", p.Stroke, &out.Stroke},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("%w: color %s %q: %v", ErrInvalid, f.name, f.hex, err)
		}
		*f.dst = c
	}
	return out, nil
}
