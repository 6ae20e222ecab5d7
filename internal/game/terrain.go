package game

import (
	"math"
	"math/rand"
)

// Terrain is a 1-D heightfield across the playfield width. heights[x] is the
// amount of ground in column x, measured up from the bottom edge, so the
// surface sits at screen y = screenH - heights[x].
type Terrain struct {
	width   int
	screenH int
	heights []float64
}

// TerrainParams controls heightfield generation.
type TerrainParams struct {
	Roughness     float64 // midpoint displacement falloff, (0,1)
	MinHeightFrac float64 // lowest allowed column, fraction of screen height
	MaxHeightFrac float64 // highest allowed column, fraction of screen height
	Seed          int64   // 0 = unseeded (caller supplies entropy)
}

// DefaultTerrainParams returns the tuning used for normal rounds.
func DefaultTerrainParams() TerrainParams {
	return TerrainParams{
		Roughness:     terrainRoughness,
		MinHeightFrac: terrainMinHeightFrac,
		MaxHeightFrac: terrainMaxHeightFrac,
	}
}

// NewTerrain generates a terrain of the given size by recursive midpoint
// displacement. The same seed always yields the same profile.
func NewTerrain(width, screenH int, p TerrainParams, rng *rand.Rand) *Terrain {
	t := &Terrain{
		width:   width,
		screenH: screenH,
		heights: make([]float64, width),
	}
	minH := p.MinHeightFrac * float64(screenH)
	maxH := p.MaxHeightFrac * float64(screenH)

	t.heights[0] = minH + rng.Float64()*(maxH-minH)
	t.heights[width-1] = minH + rng.Float64()*(maxH-minH)
	t.displace(0, width-1, (maxH-minH)*0.5, p.Roughness, minH, maxH, rng)

	// Fill any column the recursion never touched (width not a power of two).
	for x := 1; x < width-1; x++ {
		if t.heights[x] == 0 {
			t.heights[x] = (t.heights[x-1] + t.heights[x+1]) / 2
		}
	}
	return t
}

// NewFlatTerrain builds a uniform heightfield, used by tests and scenarios.
func NewFlatTerrain(width, screenH int, height float64) *Terrain {
	t := &Terrain{
		width:   width,
		screenH: screenH,
		heights: make([]float64, width),
	}
	for x := range t.heights {
		t.heights[x] = clampF(height, 0, float64(screenH))
	}
	return t
}

// displace perturbs the midpoint of [lo,hi] and recurses on both halves.
func (t *Terrain) displace(lo, hi int, amp, roughness, minH, maxH float64, rng *rand.Rand) {
	if hi-lo < 2 {
		return
	}
	mid := (lo + hi) / 2
	avg := (t.heights[lo] + t.heights[hi]) / 2
	t.heights[mid] = clampF(avg+(rng.Float64()*2-1)*amp, minH, maxH)
	t.displace(lo, mid, amp*roughness, roughness, minH, maxH, rng)
	t.displace(mid, hi, amp*roughness, roughness, minH, maxH, rng)
}

// Width returns the playfield width in columns.
func (t *Terrain) Width() int { return t.width }

// ScreenHeight returns the screen height the field was built for.
func (t *Terrain) ScreenHeight() int { return t.screenH }

// Height returns the ground height of column x. Out-of-range x is clamped,
// never an error.
func (t *Terrain) Height(x int) int {
	return int(math.Round(t.heightAt(x)))
}

func (t *Terrain) heightAt(x int) float64 {
	x = clampI(x, 0, t.width-1)
	return t.heights[x]
}

// SurfaceY returns the screen y of the terrain surface at column x.
func (t *Terrain) SurfaceY(x int) float64 {
	return float64(t.screenH) - t.heightAt(x)
}

// CollisionAt reports whether the point (x, y) is at or below the terrain
// surface, together with the point itself for impact handling.
func (t *Terrain) CollisionAt(x, y float64) (bool, float64, float64) {
	if y >= t.SurfaceY(int(math.Floor(x))) {
		return true, x, y
	}
	return false, x, y
}

// Carve removes a circular crater centred at (cx, cy) with radius r.
// Every column whose surface point lies inside the circle loses the full
// vertical chord of the circle at that column; columns never drop below 0.
// Returns true when at least one column changed.
func (t *Terrain) Carve(cx, cy, r float64) bool {
	if r <= 0 {
		return false
	}
	modified := false
	lo := clampI(int(math.Floor(cx-r)), 0, t.width-1)
	hi := clampI(int(math.Ceil(cx+r)), 0, t.width-1)
	for x := lo; x <= hi; x++ {
		dx := float64(x) - cx
		if math.Abs(dx) > r {
			continue
		}
		surfY := t.SurfaceY(x)
		dy := surfY - cy
		if dx*dx+dy*dy > r*r {
			continue
		}
		chord := 2 * math.Sqrt(r*r-dx*dx)
		if chord <= 0 {
			continue
		}
		next := t.heights[x] - chord
		if next < 0 {
			next = 0
		}
		if next != t.heights[x] {
			t.heights[x] = next
			modified = true
		}
	}
	return modified
}

// Settle lowers unsupported columns around a disturbance at column cx with
// radius r until the local profile is stable or the pass limit is reached.
// Columns only ever move down, so repeated calls are safe.
// Returns true when any column moved.
func (t *Terrain) Settle(cx, r float64) bool {
	lo := clampI(int(cx-r)-settleMargin, 0, t.width-1)
	hi := clampI(int(cx+r)+settleMargin, 0, t.width-1)
	modified := false
	for pass := 0; pass < settleMaxPasses; pass++ {
		moved := false
		for x := lo; x <= hi; x++ {
			support := t.neighbourSupport(x)
			if t.heights[x] > support+settleSlope {
				t.heights[x]--
				if t.heights[x] < 0 {
					t.heights[x] = 0
				}
				moved = true
			}
		}
		if !moved {
			break
		}
		modified = true
	}
	return modified
}

// neighbourSupport is the taller of the two adjacent columns; edge columns
// are supported by the playfield wall and never settle below their single
// neighbour.
func (t *Terrain) neighbourSupport(x int) float64 {
	left := math.Inf(-1)
	right := math.Inf(-1)
	if x > 0 {
		left = t.heights[x-1]
	}
	if x < t.width-1 {
		right = t.heights[x+1]
	}
	s := math.Max(left, right)
	if math.IsInf(s, -1) {
		return t.heights[x]
	}
	return s
}

// LowerColumn removes up to amount of ground from column x, used by digger
// corridor carving. No-op on empty columns or out-of-range x.
func (t *Terrain) LowerColumn(x int, amount float64) {
	if x < 0 || x >= t.width || amount <= 0 {
		return
	}
	t.heights[x] = math.Max(0, t.heights[x]-amount)
}

// CarveCorridor removes ground in a small radius around (cx, cy), but only
// where the corridor actually intersects the ground column. Used by the
// digger so its tunnel does not touch terrain above the bore line.
func (t *Terrain) CarveCorridor(cx, cy, r float64) {
	lo := clampI(int(cx-r), 0, t.width-1)
	hi := clampI(int(cx+r), 0, t.width-1)
	for x := lo; x <= hi; x++ {
		dx := float64(x) - cx
		if math.Abs(dx) > r {
			continue
		}
		half := math.Sqrt(r*r - dx*dx)
		top := cy - half
		bottom := cy + half
		surfY := t.SurfaceY(x)
		// Only ground between the surface and the bottom of the screen can
		// be removed; the removable band is [max(top, surfY), bottom].
		from := math.Max(top, surfY)
		if from >= bottom {
			continue
		}
		t.LowerColumn(x, bottom-from)
	}
}
