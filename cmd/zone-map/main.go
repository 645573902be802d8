package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/world"
	"github.com/lixenwraith/backrooms/zone"
)

// view is one map request
type view struct {
	cx, cz     float64
	cols, rows int
	// cell is the world size of one character
	cell float64
}

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== BACKROOMS ZONE MAP ===")

		seed := getInt64(reader, "Seed (default 12345): ", 12345)
		mode := getString(reader, "Pillars [none/sparse/normal/dense/all] (default normal): ", string(config.PillarNormal))
		v := view{
			cx:   getFloat(reader, "Center X (default 0): ", 0),
			cz:   getFloat(reader, "Center Z (default 0): ", 0),
			cols: getInt(reader, "Columns (default 100): ", 100),
			rows: getInt(reader, "Rows (default 40): ", 40),
			cell: getFloat(reader, "Cell size (default 40): ", 40),
		}

		cfg := config.Default().World
		cfg.Seed = seed
		cfg.PillarMode = config.PillarMode(mode)
		switch cfg.PillarMode {
		case config.PillarNone, config.PillarSparse, config.PillarNormal, config.PillarDense, config.PillarAll:
		default:
			fmt.Println("Unknown pillar mode, using normal")
			cfg.PillarMode = config.PillarNormal
		}

		fmt.Println("\nGenerating...")
		startT := time.Now()
		w := world.New(cfg, nil)
		lines := renderMap(w, v)
		dur := time.Since(startT)

		fmt.Printf("Done in %v\n", dur)
		for _, l := range lines {
			fmt.Println(l)
		}
		for _, l := range legend(w, v) {
			fmt.Println(l)
		}

		fmt.Print("\nMap another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// renderMap draws walls as blocks, pillars as O and the center as @
// Rows run toward -Z so north is up
func renderMap(w *world.World, v view) []string {
	if v.cols <= 0 || v.rows <= 0 || !(v.cell > 0) {
		return nil
	}
	pillars := w.PillarsNear(v.cx, v.cz, float64(max(v.cols, v.rows))*v.cell)

	lines := make([]string, 0, v.rows)
	var sb strings.Builder
	for row := 0; row < v.rows; row++ {
		sb.Reset()
		z := v.cz + (float64(v.rows/2-row))*v.cell
		for col := 0; col < v.cols; col++ {
			x := v.cx + (float64(col-v.cols/2))*v.cell
			switch {
			case col == v.cols/2 && row == v.rows/2:
				sb.WriteRune('@')
			case inPillar(w, pillars, x, z):
				sb.WriteRune('O')
			case w.CheckCollision(x, z):
				sb.WriteRune('█')
			default:
				sb.WriteRune(' ')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func inPillar(w *world.World, keys []world.PillarKey, x, z float64) bool {
	for _, k := range keys {
		if w.IsPillarDestroyed(k) {
			continue
		}
		minX, minZ, maxX, maxZ := world.PillarRect(k)
		if x >= minX && x <= maxX && z >= minZ && z <= maxZ {
			return true
		}
	}
	return false
}

// legend lists every zone the view overlaps
func legend(w *world.World, v view) []string {
	halfW := float64(v.cols) / 2 * v.cell
	halfH := float64(v.rows) / 2 * v.cell
	lo := zone.At(v.cx-halfW, v.cz-halfH)
	hi := zone.At(v.cx+halfW, v.cz+halfH)

	var out []string
	for zx := lo.X; zx <= hi.X; zx++ {
		for zz := lo.Z; zz <= hi.Z; zz++ {
			a := w.Zones().Properties(zone.Coord{X: zx, Z: zz})
			out = append(out, fmt.Sprintf("zone %d,%d  %-16s room %d  ceiling %.0f-%.0f",
				zx, zz, a.Name, a.RoomSize, a.MinCeiling, a.MaxCeiling))
		}
	}
	return out
}

// --- Input Helpers ---

func getString(r *bufio.Reader, prompt, def string) string {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return strings.ToLower(s)
}

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getInt64(r *bufio.Reader, prompt string, def int64) int64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
