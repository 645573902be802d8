package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/backrooms/logger"
)

// SnapshotVersion is the current snapshot layout
const SnapshotVersion = 1

// ErrSnapshotVersion rejects snapshots from an unknown layout
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot is the complete persistent world state
// Everything else regenerates from the seed
type Snapshot struct {
	Version          int         `json:"version" yaml:"version"`
	Seed             int64       `json:"seed" yaml:"seed"`
	DestroyedWalls   []WallKey   `json:"destroyed_walls" yaml:"destroyed_walls"`
	DestroyedPillars []PillarKey `json:"destroyed_pillars,omitempty" yaml:"destroyed_pillars,omitempty"`
}

// Snapshot captures seed and destruction sets in canonical order
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Version:          SnapshotVersion,
		Seed:             w.seed,
		DestroyedWalls:   make([]WallKey, 0, len(w.destroyedWalls)),
		DestroyedPillars: make([]PillarKey, 0, len(w.destroyedPillars)),
	}
	for k := range w.destroyedWalls {
		s.DestroyedWalls = append(s.DestroyedWalls, k)
	}
	for k := range w.destroyedPillars {
		s.DestroyedPillars = append(s.DestroyedPillars, k)
	}
	slices.SortFunc(s.DestroyedWalls, func(a, b WallKey) int {
		if c := comparePoints(a.A, b.A); c != 0 {
			return c
		}
		return comparePoints(a.B, b.B)
	})
	slices.SortFunc(s.DestroyedPillars, func(a, b PillarKey) int {
		return comparePoints(GridPoint(a), GridPoint(b))
	})
	return s
}

// Restore reseeds the world, drops every cache and debris, then reapplies destruction
// Keys are canonicalized so hand-edited snapshots with swapped endpoints still match
func (w *World) Restore(s Snapshot) error {
	if s.Version != 0 && s.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}

	w.reset(s.Seed)
	for _, k := range s.DestroyedWalls {
		k = NewWallKey(k.A.X, k.A.Z, k.B.X, k.B.Z)
		w.destroyedWalls[k] = struct{}{}
		w.damaged[k] = &damage{health: 0, state: Destroyed}
	}
	for _, k := range s.DestroyedPillars {
		w.destroyedPillars[k] = struct{}{}
	}

	logger.Log.WithFields(logrus.Fields{
		"seed":    s.Seed,
		"walls":   len(s.DestroyedWalls),
		"pillars": len(s.DestroyedPillars),
	}).Info("world restored")
	return nil
}
