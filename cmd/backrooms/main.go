package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/backrooms/audio"
	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/input"
	"github.com/lixenwraith/backrooms/logger"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/render"
	"github.com/lixenwraith/backrooms/terminal"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	seedFlag   = flag.Int64("seed", 0, "World seed, 0 keeps the configured seed")
	saveFlag   = flag.String("save", filepath.Join("saves", "session.yaml"), "Session save file")
	keymapFlag = flag.String("keymap", "", "YAML keymap override file")
	shotFlag   = flag.String("shots", "screenshots", "Screenshot directory")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.World.Seed = *seedFlag
	}

	logClose, err := logger.Init(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging: %v\n", err)
		os.Exit(1)
	}
	defer logClose.Close()

	keys, err := input.LoadKeymap(*keymapFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Keymap: %v\n", err)
		os.Exit(1)
	}

	screen, err := terminal.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Close()
			fmt.Fprintf(os.Stderr, "\nBACKROOMS CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Close()

	// Audio is optional, the game runs silent without a device
	cues := audio.NewCuePlayer(cfg.Audio)
	if err := cues.Initialize(); err != nil {
		logger.Log.WithError(err).Warn("Audio initialization failed, continuing without audio")
	}
	defer cues.Close()

	s, err := newSession(cfg, cues)
	if err != nil {
		screen.Close()
		fmt.Fprintf(os.Stderr, "Session: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	run(s, screen, input.NewMachine(keys))
}

func run(s *session, screen *terminal.Screen, machine *input.Machine) {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	events := screen.Events()
	frame := newFrame(screen)
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			intent := machine.Process(ev)
			switch intent {
			case input.IntentQuit:
				return
			case input.IntentResize:
				screen.Sync()
				frame = newFrame(screen)
			case input.IntentScreenshot:
				path := filepath.Join(*shotFlag, fmt.Sprintf("frame-%06d.png", s.frame))
				s.report("screenshot "+path, render.SavePNG(path, frame))
			case input.IntentNone:
			default:
				if !s.handle(intent, *saveFlag) {
					return
				}
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), parameter.MaxFrameDelta)
			last = now
			s.step(dt, machine.Input(now), frame)
			screen.SetStatus(s.status())
			screen.Present(frame)
		}
	}
}

func newFrame(screen *terminal.Screen) *image.RGBA {
	w, h := screen.PixelSize()
	return image.NewRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
}
