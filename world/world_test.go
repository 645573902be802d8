package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/zone"
)

func newTestWorld(seed int64, mode config.PillarMode) (*World, *event.Recorder) {
	rec := &event.Recorder{}
	w := New(config.WorldConfig{Seed: seed, PillarMode: mode}, rec)
	return w, rec
}

// humanZoneOrigin returns a grid-aligned point well inside a 400-unit zone
func humanZoneOrigin(t *testing.T, seed int64) (int64, int64) {
	t.Helper()
	for zx := int64(0); zx < 200; zx++ {
		if zone.TypeOf(zone.Coord{X: zx, Z: 0}, seed).RoomSize == parameter.BaseRoomSize {
			return zx*parameter.ZoneSize + 2000, 2000
		}
	}
	t.Fatal("No human-scale zone found")
	return 0, 0
}

// findWall scans horizontal walls near (x, z) for one matching pred
func findWall(t *testing.T, w *World, x, z int64, pred func(WallKey) bool) WallKey {
	t.Helper()
	const rs = parameter.BaseRoomSize
	for row := int64(0); row < 10; row++ {
		for col := int64(0); col < 10; col++ {
			gx, gz := x+col*rs, z+row*rs
			k := NewWallKey(gx, gz, gx+rs, gz)
			if w.HasWallBetween(gx, gz, gx+rs, gz) && pred(k) {
				return k
			}
		}
	}
	t.Fatal("No matching wall found")
	return WallKey{}
}

func freshWall(w *World) func(WallKey) bool {
	return func(k WallKey) bool {
		_, decayed := w.PreDamage(k)
		return !decayed && w.WallState(k) == Intact
	}
}

// TestScenarioRepeatQuery verifies seed 42 answers identically on repeat
func TestScenarioRepeatQuery(t *testing.T) {
	w, _ := newTestWorld(42, config.PillarNormal)
	first := w.HasWallBetween(0, 0, 400, 0)
	second := w.HasWallBetween(0, 0, 400, 0)
	if first != second {
		t.Fatalf("Repeat query differs: %v vs %v", first, second)
	}
	if first {
		d1 := w.DoorwayType(0, 0, 400, 0)
		d2 := w.DoorwayType(400, 0, 0, 0)
		if d1 != d2 {
			t.Errorf("Doorway type differs: %s vs %s", d1, d2)
		}
	}
}

// TestDeterminismAcrossInstances verifies generation is order independent and seed pure
func TestDeterminismAcrossInstances(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 7)
	a, _ := newTestWorld(7, config.PillarNormal)
	b, _ := newTestWorld(7, config.PillarNormal)

	type result struct {
		wall    bool
		door    Opening
		pillar  bool
		pre     float64
		decayed bool
	}
	const rs = parameter.BaseRoomSize
	const n = 12
	query := func(w *World, i, j int64) result {
		gx, gz := x0+i*rs, z0+j*rs
		r := result{
			wall:   w.HasWallBetween(gx, gz, gx+rs, gz),
			door:   w.DoorwayType(gx, gz, gx+rs, gz),
			pillar: w.HasPillarAt(gx+rs/2, gz+rs/2),
		}
		r.pre, r.decayed = w.PreDamage(NewWallKey(gx, gz, gx+rs, gz))
		return r
	}

	var forward [n][n]result
	for i := int64(0); i < n; i++ {
		for j := int64(0); j < n; j++ {
			forward[i][j] = query(a, i, j)
		}
	}
	pillars := 0
	for i := int64(n - 1); i >= 0; i-- {
		for j := int64(n - 1); j >= 0; j-- {
			got := query(b, i, j)
			if got != forward[i][j] {
				t.Fatalf("Cell (%d,%d) differs: %+v vs %+v", i, j, got, forward[i][j])
			}
			if got.pillar {
				pillars++
			}
		}
	}
	if pillars == 0 || pillars == n*n {
		t.Errorf("Expected mixed pillar placement in normal mode, got %d of %d", pillars, n*n)
	}
}

// TestWallValidation verifies misaligned and wrong-span keys are rejected
func TestWallValidation(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 11)
	w, _ := newTestWorld(11, config.PillarNone)
	const rs = parameter.BaseRoomSize

	tests := []struct {
		name           string
		x1, z1, x2, z2 int64
		want           bool
	}{
		{"aligned horizontal", x0, z0, x0 + rs, z0, true},
		{"aligned vertical", x0, z0, x0, z0 + rs, true},
		{"reversed endpoints", x0 + rs, z0, x0, z0, true},
		{"diagonal", x0, z0, x0 + rs, z0 + rs, false},
		{"double span", x0, z0, x0 + 2*rs, z0, false},
		{"off grid", x0 + 10, z0, x0 + rs + 10, z0, false},
		{"zero length", x0, z0, x0, z0, false},
	}
	for _, tt := range tests {
		if got := w.HasWallBetween(tt.x1, tt.z1, tt.x2, tt.z2); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestStateThresholds verifies inclusive boundaries of the damage ladder
func TestStateThresholds(t *testing.T) {
	tests := []struct {
		health float64
		want   WallState
	}{
		{1.0, Intact},
		{0.61, Intact},
		{0.6, Cracked},
		{0.26, Cracked},
		{0.25, Fractured},
		{0.01, Fractured},
		{0, Destroyed},
	}
	for _, tt := range tests {
		if got := stateForHealth(tt.health); got != tt.want {
			t.Errorf("stateForHealth(%v) = %s, want %s", tt.health, got, tt.want)
		}
	}
}

// TestScenarioFourHits verifies the quarter-damage ladder and its notifications
func TestScenarioFourHits(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 42)
	w, rec := newTestWorld(42, config.PillarNone)
	k := findWall(t, w, x0, z0, freshWall(w))

	wantHealth := []float64{0.75, 0.5, 0.25, 0}
	wantState := []WallState{Intact, Cracked, Fractured, Destroyed}
	wantEvent := []event.EventType{event.EventWallHit, event.EventWallCracked, event.EventWallFractured, event.EventWallDestroyed}

	if w.WallHealth(k) != 1 || w.WallState(k) != Intact {
		t.Fatalf("Fresh wall not intact: %v %s", w.WallHealth(k), w.WallState(k))
	}

	prev := 1.0
	for i := range wantHealth {
		rec.Reset()
		destroyed := w.HitWall(k, 0.25, nil)

		if destroyed != (i == 3) {
			t.Errorf("Hit %d: destroyed=%v", i+1, destroyed)
		}
		if h := w.WallHealth(k); h != wantHealth[i] {
			t.Errorf("Hit %d: health %v, want %v", i+1, h, wantHealth[i])
		}
		if h := w.WallHealth(k); h > prev {
			t.Errorf("Hit %d: health increased", i+1)
		}
		prev = w.WallHealth(k)
		if s := w.WallState(k); s != wantState[i] {
			t.Errorf("Hit %d: state %s, want %s", i+1, s, wantState[i])
		}
		if len(rec.Events) != 1 || rec.Events[0].Type != wantEvent[i] {
			t.Errorf("Hit %d: events %v, want single %s", i+1, rec.Events, wantEvent[i])
		}
	}

	rec.Reset()
	if w.HitWall(k, 0.25, nil) {
		t.Error("Hit on destroyed wall reported destruction")
	}
	if len(rec.Events) != 0 {
		t.Errorf("Hit on destroyed wall emitted %d events", len(rec.Events))
	}
	if !w.IsWallDestroyed(k) || w.IsSolidWall(k) {
		t.Error("Destroyed wall still solid")
	}
}

// TestWallEventPayload verifies notifications carry the wall center and health
func TestWallEventPayload(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 5)
	w, rec := newTestWorld(5, config.PillarNone)
	k := findWall(t, w, x0, z0, freshWall(w))

	w.HitWall(k, 0.5, &UV{U: 0.3, V: 0.4})

	if len(rec.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(rec.Events))
	}
	p, ok := rec.Events[0].Payload.(*event.WallPayload)
	if !ok {
		t.Fatalf("Unexpected payload %T", rec.Events[0].Payload)
	}
	cx, cy, cz := WallCenter(k)
	if p.Position != (mgl64.Vec3{cx, cy, cz}) {
		t.Errorf("Position %v, want (%v,%v,%v)", p.Position, cx, cy, cz)
	}
	if p.Health != 0.5 {
		t.Errorf("Health %v, want 0.5", p.Health)
	}
	cracks := w.Cracks(k)
	if len(cracks) != 1 || cracks[0].Origin != (UV{0.3, 0.4}) {
		t.Errorf("Expected one crack at hit UV, got %+v", cracks)
	}

	w.Update(10, cx, cz)
	if c := w.Cracks(k)[0]; c.Length != c.MaxLength {
		t.Errorf("Crack did not finish growing: %v of %v", c.Length, c.MaxLength)
	}
}

// TestDestroyWallIdempotent verifies the second destroy is a no-op
func TestDestroyWallIdempotent(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 9)
	w, rec := newTestWorld(9, config.PillarNone)
	k := findWall(t, w, x0, z0, freshWall(w))

	if !w.DestroyWall(k) {
		t.Fatal("First destroy failed")
	}
	count := w.DebrisCount()
	if count < parameter.BurstCollapseMin {
		t.Errorf("Expected collapse burst, got %d particles", count)
	}

	if w.DestroyWall(k) {
		t.Error("Second destroy reported success")
	}
	if w.DebrisCount() != count {
		t.Errorf("Second destroy spawned debris: %d -> %d", count, w.DebrisCount())
	}
	if n := rec.Count(event.EventWallDestroyed); n != 1 {
		t.Errorf("Expected 1 destroyed event, got %d", n)
	}
	if w.SpawnRubblePile(k) {
		t.Error("Player-destroyed wall should not receive a rubble pile")
	}
}

// TestDestroyPillarIdempotent verifies pillar destruction happens once
func TestDestroyPillarIdempotent(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 9)
	w, rec := newTestWorld(9, config.PillarAll)
	const half = parameter.BaseRoomSize / 2
	k := PillarKey{x0 + half, z0 + half}

	if !w.HasPillarAt(k.X, k.Z) {
		t.Fatal("Expected pillar in all mode")
	}
	if w.HasPillarAt(k.X+1, k.Z) {
		t.Error("Off-grid pillar reported")
	}

	if !w.DestroyPillar(k) {
		t.Fatal("First destroy failed")
	}
	count := w.DebrisCount()
	if w.DestroyPillar(k) {
		t.Error("Second destroy reported success")
	}
	if w.DebrisCount() != count {
		t.Error("Second destroy spawned debris")
	}
	if n := rec.Count(event.EventPillarDestroyed); n != 1 {
		t.Errorf("Expected 1 pillar event, got %d", n)
	}
	if w.IsSolidPillar(k) {
		t.Error("Destroyed pillar still solid")
	}
}

// TestDecayedWallsStartDamaged verifies generation-time decay feeds progressive damage
func TestDecayedWallsStartDamaged(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 3)
	w, rec := newTestWorld(3, config.PillarNone)
	k := findWall(t, w, x0, z0, func(k WallKey) bool {
		pre, ok := w.PreDamage(k)
		return ok && pre >= parameter.PreDamageDestroyed
	})

	pre, _ := w.PreDamage(k)
	if w.WallHealth(k) != pre {
		t.Errorf("Health %v, want pre-damage %v", w.WallHealth(k), pre)
	}
	if w.WallState(k) == Intact || len(w.Cracks(k)) == 0 {
		t.Errorf("Decayed wall should start damaged with cracks, state %s", w.WallState(k))
	}
	if len(rec.Events) != 0 {
		t.Error("Decay must not emit events")
	}

	destroyed := false
	for i := 0; i < 4 && !destroyed; i++ {
		destroyed = w.HitWall(k, 0.25, nil)
	}
	if !destroyed {
		t.Error("Decayed wall should fall within two hits")
	}
}

// TestDecayDestroyedWalls verifies heavy decay removes walls before any hit
func TestDecayDestroyedWalls(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 3)
	w, rec := newTestWorld(3, config.PillarNone)
	k := findWall(t, w, x0, z0, func(k WallKey) bool {
		pre, ok := w.PreDamage(k)
		return ok && pre < parameter.PreDamageDestroyed
	})

	if !w.IsWallDestroyed(k) || w.WallState(k) != Destroyed {
		t.Fatal("Heavily decayed wall should be destroyed")
	}
	if w.HitWall(k, 1, nil) || w.DestroyWall(k) {
		t.Error("Decay-destroyed wall accepted further destruction")
	}
	if len(rec.Events) != 0 {
		t.Error("Decay destruction must not emit events")
	}
	if !w.SpawnRubblePile(k) {
		t.Error("First rubble pile spawn should succeed")
	}
	if w.SpawnRubblePile(k) {
		t.Error("Rubble pile spawned twice")
	}
	for _, p := range w.Debris() {
		if !p.Settled {
			t.Fatal("Rubble pile particle not settled")
		}
	}
}

// TestCheckCollision verifies body-vs-wall tests and the non-finite fail-safe
func TestCheckCollision(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 21)
	w, _ := newTestWorld(21, config.PillarNone)
	k := findWall(t, w, x0, z0, func(k WallKey) bool {
		return w.IsSolidWall(k) && w.DoorwayType(k.A.X, k.A.Z, k.B.X, k.B.Z) == OpeningNone
	})

	mx, mz := k.Mid()
	if !w.CheckCollision(mx, mz) {
		t.Error("Expected collision on wall centerline")
	}
	if !w.CheckCollision(mx, mz-halfThick-parameter.PlayerRadius+1) {
		t.Error("Expected collision when body overlaps wall face")
	}
	if w.CheckCollision(mx, mz-halfThick-parameter.PlayerRadius-1) {
		t.Error("Unexpected collision with clearance")
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if !w.CheckCollision(v, 0) || !w.CheckCollision(0, v) {
			t.Errorf("Non-finite %v must collide", v)
		}
	}
}

// TestDoorwayGap verifies openings carve a centered gap with jamb segments
func TestDoorwayGap(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 21)
	w, _ := newTestWorld(21, config.PillarNone)
	k := findWall(t, w, x0, z0, func(k WallKey) bool {
		return w.IsSolidWall(k) && w.DoorwayType(k.A.X, k.A.Z, k.B.X, k.B.Z) == OpeningHallway
	})

	spans := w.SolidSpans(k)
	if len(spans) != 2 {
		t.Fatalf("Expected 2 solid spans, got %v", spans)
	}
	mx, mz := k.Mid()
	if gap := spans[1].Lo - spans[0].Hi; gap != parameter.HallwayWidth {
		t.Errorf("Gap width %v, want %v", gap, parameter.HallwayWidth)
	}
	if c := (spans[0].Hi + spans[1].Lo) / 2; c != mx {
		t.Errorf("Gap centered at %v, want %v", c, mx)
	}
	if segs := w.appendWallSegments(nil, k); len(segs) != 6 {
		t.Errorf("Expected 6 segments for a wall with an opening, got %d", len(segs))
	}
	if w.CheckCollision(mx, mz) {
		t.Error("Body in hallway center should pass")
	}
}

// TestSnapshotRestore verifies destruction survives a round trip and caches reset
func TestSnapshotRestore(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 77)
	w, _ := newTestWorld(77, config.PillarAll)
	k := findWall(t, w, x0, z0, freshWall(w))
	w.DestroyWall(k)
	pk := PillarKey{x0 + 200, z0 + 200}
	w.DestroyPillar(pk)

	snap := w.Snapshot()
	if snap.Seed != 77 || snap.Version != SnapshotVersion {
		t.Fatalf("Bad snapshot header: %+v", snap)
	}

	other, _ := newTestWorld(1, config.PillarAll)
	other.HasWallBetween(0, 0, 400, 0)
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if other.Seed() != 77 {
		t.Errorf("Seed %d, want 77", other.Seed())
	}
	if !other.IsWallDestroyed(k) || !other.IsPillarDestroyed(pk) {
		t.Error("Destruction lost in restore")
	}
	if other.DebrisCount() != 0 {
		t.Error("Restore should drop debris")
	}
	if other.DestroyWall(k) {
		t.Error("Restored wall destroyed twice")
	}

	fresh, _ := newTestWorld(77, config.PillarAll)
	if fresh.HasWallBetween(0, 0, 400, 0) != other.HasWallBetween(0, 0, 400, 0) {
		t.Error("Restored world disagrees with a fresh world of the same seed")
	}

	if err := other.Restore(Snapshot{Version: 99}); err == nil {
		t.Error("Expected version error")
	}
}

// TestRaycast verifies wall and floor hits along axis-aligned rays
func TestRaycast(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 21)
	w, _ := newTestWorld(21, config.PillarNone)
	k := findWall(t, w, x0, z0, func(k WallKey) bool {
		return w.IsSolidWall(k) && w.DoorwayType(k.A.X, k.A.Z, k.B.X, k.B.Z) == OpeningNone
	})
	mx, mz := k.Mid()
	origin := mgl64.Vec3{mx + 50, 50, mz - 80}

	hit, ok := w.Raycast(origin, mgl64.Vec3{0, 0, 1}, origin[0], origin[2], 200)
	if !ok || hit.Kind != HitWall || hit.Wall != k {
		t.Fatalf("Expected wall hit on %s, got %+v ok=%v", k, hit, ok)
	}
	if math.Abs(hit.Distance-(80-halfThick)) > 1e-6 {
		t.Errorf("Distance %v, want %v", hit.Distance, 80-halfThick)
	}
	wantU := (mx + 50 - float64(k.A.X)) / parameter.BaseRoomSize
	if math.Abs(hit.UV.U-wantU) > 1e-9 {
		t.Errorf("U %v, want %v", hit.UV.U, wantU)
	}

	target, ok := w.Target(origin, mgl64.Vec3{0, 0, 1})
	if !ok || target.Wall != k {
		t.Error("Target should find the wall within reach")
	}

	down, ok := w.Raycast(origin, mgl64.Vec3{0, -1, 0}, origin[0], origin[2], 200)
	if !ok || down.Kind != HitFloor || math.Abs(down.Distance-(50-parameter.FloorY)) > 1e-9 {
		t.Errorf("Expected floor hit at %v, got %+v", 50-parameter.FloorY, down)
	}
	if _, ok := w.Target(origin, mgl64.Vec3{0, -1, 0}); ok {
		t.Error("Floor must not be targetable")
	}
}

// TestUVRoundTrip verifies surface mappings invert
func TestUVRoundTrip(t *testing.T) {
	k := NewWallKey(0, 400, 0, 0)
	uv := UV{0.25, 0.75}
	if got := WallUV(k, WallPoint(k, uv)); math.Abs(got.U-uv.U) > 1e-9 || math.Abs(got.V-uv.V) > 1e-9 {
		t.Errorf("Wall UV round trip %v -> %v", uv, got)
	}
	pk := PillarKey{200, 200}
	for f := FaceFront; f <= FaceRight; f++ {
		if got := PillarUV(pk, f, PillarPoint(pk, f, uv)); math.Abs(got.U-uv.U) > 1e-9 || math.Abs(got.V-uv.V) > 1e-9 {
			t.Errorf("Face %d round trip %v -> %v", f, uv, got)
		}
	}
}

// TestDebrisUpdateCap verifies world-owned debris obeys culling
func TestDebrisUpdateCap(t *testing.T) {
	x0, z0 := humanZoneOrigin(t, 9)
	w, _ := newTestWorld(9, config.PillarNone)
	k := findWall(t, w, x0, z0, freshWall(w))
	w.DestroyWall(k)

	mx, mz := k.Mid()
	w.UpdateDebris(0.016, mx, mz)
	if w.DebrisCount() == 0 {
		t.Fatal("Debris near player culled")
	}
	w.UpdateDebris(0.016, mx+5000, mz)
	if w.DebrisCount() != 0 {
		t.Errorf("Expected distant debris culled, %d remain", w.DebrisCount())
	}
}
