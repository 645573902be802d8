// Package zone maps world positions to deterministic zone archetypes
package zone

import "slices"

// Tint is a per-channel color multiplier
type Tint [3]float64

// Archetype is an immutable bundle of generation parameters
type Archetype struct {
	Name            string
	PillarDensity   float64
	WallChance      float64
	CeilingVariance float64
	Tint            Tint
	ScaleMultiplier float64
	RoomSize        int64
	MinCeiling      float64
	MaxCeiling      float64
	DecayChance     float64
}

// IsMegaScale reports rooms larger than two human-scale rooms
func (a Archetype) IsMegaScale() bool {
	return a.RoomSize > 1000
}

// archetypes is indexed by the zone hash; order is part of the world format
var archetypes = [...]Archetype{
	// --- Human Scale ---
	{Name: "normal", PillarDensity: 0.35, WallChance: 0.25, CeilingVariance: 8, Tint: Tint{1.0, 1.0, 1.0}, ScaleMultiplier: 1.0, RoomSize: 400, MinCeiling: 100, MaxCeiling: 120, DecayChance: 0.20},
	{Name: "dense", PillarDensity: 0.55, WallChance: 0.4, CeilingVariance: 5, Tint: Tint{0.95, 0.95, 0.85}, ScaleMultiplier: 1.0, RoomSize: 400, MinCeiling: 95, MaxCeiling: 110, DecayChance: 0.20},
	{Name: "sparse", PillarDensity: 0.15, WallChance: 0.1, CeilingVariance: 18, Tint: Tint{1.05, 1.05, 1.15}, ScaleMultiplier: 1.0, RoomSize: 400, MinCeiling: 100, MaxCeiling: 140, DecayChance: 0.20},
	{Name: "maze", PillarDensity: 0.7, WallChance: 0.6, CeilingVariance: 3, Tint: Tint{0.9, 0.9, 0.8}, ScaleMultiplier: 1.0, RoomSize: 400, MinCeiling: 90, MaxCeiling: 100, DecayChance: 0.20},
	{Name: "open", PillarDensity: 0.08, WallChance: 0.05, CeilingVariance: 30, Tint: Tint{1.1, 1.1, 1.2}, ScaleMultiplier: 1.5, RoomSize: 600, MinCeiling: 100, MaxCeiling: 160, DecayChance: 0.15},

	// --- Mega Scale ---
	{Name: "atrium", PillarDensity: 0.05, WallChance: 0.02, CeilingVariance: 100, Tint: Tint{1.05, 1.05, 1.15}, ScaleMultiplier: 6.0, RoomSize: 2400, MinCeiling: 300, MaxCeiling: 500, DecayChance: 0.05},
	{Name: "coliseum", PillarDensity: 0.0, WallChance: 0.0, CeilingVariance: 200, Tint: Tint{1.1, 1.1, 1.25}, ScaleMultiplier: 10.0, RoomSize: 4000, MinCeiling: 400, MaxCeiling: 800, DecayChance: 0.02},
	{Name: "courtyard", PillarDensity: 0.03, WallChance: 0.05, CeilingVariance: 150, Tint: Tint{1.2, 1.2, 1.3}, ScaleMultiplier: 8.0, RoomSize: 3200, MinCeiling: 350, MaxCeiling: 600, DecayChance: 0.05},
	{Name: "skyscraper_base", PillarDensity: 0.25, WallChance: 0.15, CeilingVariance: 80, Tint: Tint{0.95, 0.95, 1.05}, ScaleMultiplier: 5.0, RoomSize: 2000, MinCeiling: 250, MaxCeiling: 400, DecayChance: 0.10},
	{Name: "grand_hall", PillarDensity: 0.10, WallChance: 0.08, CeilingVariance: 120, Tint: Tint{1.0, 1.0, 1.1}, ScaleMultiplier: 7.0, RoomSize: 2800, MinCeiling: 300, MaxCeiling: 500, DecayChance: 0.08},
	{Name: "cathedral", PillarDensity: 0.15, WallChance: 0.10, CeilingVariance: 180, Tint: Tint{1.05, 1.05, 1.15}, ScaleMultiplier: 9.0, RoomSize: 3600, MinCeiling: 450, MaxCeiling: 700, DecayChance: 0.05},
	{Name: "warehouse", PillarDensity: 0.20, WallChance: 0.05, CeilingVariance: 60, Tint: Tint{0.95, 0.95, 0.9}, ScaleMultiplier: 4.0, RoomSize: 1600, MinCeiling: 180, MaxCeiling: 280, DecayChance: 0.12},
}

// Count is the number of archetypes
const Count = len(archetypes)

// Archetypes returns a copy of the ordered table
func Archetypes() []Archetype {
	out := make([]Archetype, Count)
	copy(out, archetypes[:])
	return out
}

// RoomSizes returns every distinct room size in the table, ascending
func RoomSizes() []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, a := range archetypes {
		if !seen[a.RoomSize] {
			seen[a.RoomSize] = true
			out = append(out, a.RoomSize)
		}
	}
	slices.Sort(out)
	return out
}
