package game

import (
	"math"
	"math/rand"
	"testing"
)

func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- test determinism
}

func TestNewTerrain_HeightsWithinBounds(t *testing.T) {
	p := DefaultTerrainParams()
	tr := NewTerrain(1200, 800, p, testRNG(7))
	minH := p.MinHeightFrac * 800
	maxH := p.MaxHeightFrac * 800
	for x := 0; x < tr.Width(); x++ {
		h := tr.heightAt(x)
		if h < minH-1 || h > maxH+1 {
			t.Fatalf("column %d height %.1f outside [%.1f, %.1f]", x, h, minH, maxH)
		}
	}
}

func TestNewTerrain_SeedReproducible(t *testing.T) {
	a := NewTerrain(600, 400, DefaultTerrainParams(), testRNG(99))
	b := NewTerrain(600, 400, DefaultTerrainParams(), testRNG(99))
	for x := 0; x < 600; x++ {
		if a.Height(x) != b.Height(x) {
			t.Fatalf("column %d differs between identical seeds: %d vs %d", x, a.Height(x), b.Height(x))
		}
	}
}

func TestHeight_ClampsOutOfRange(t *testing.T) {
	tr := NewFlatTerrain(100, 400, 150)
	if tr.Height(-10) != 150 {
		t.Fatalf("negative x should clamp to column 0, got %d", tr.Height(-10))
	}
	if tr.Height(5000) != 150 {
		t.Fatalf("overlarge x should clamp to last column, got %d", tr.Height(5000))
	}
}

func TestCollisionAt(t *testing.T) {
	tr := NewFlatTerrain(100, 400, 150) // surface at y=250
	if hit, _, _ := tr.CollisionAt(50, 100); hit {
		t.Fatal("point above surface should not collide")
	}
	if hit, _, _ := tr.CollisionAt(50, 250); !hit {
		t.Fatal("point on surface should collide")
	}
	if hit, _, _ := tr.CollisionAt(50, 300); !hit {
		t.Fatal("point below surface should collide")
	}
}

// Crater scenario: flat terrain of height 400, crater at the surface with
// radius 30. Columns inside the circle lose the full vertical chord.
func TestCarve_CraterChord(t *testing.T) {
	tr := NewFlatTerrain(1000, 800, 400) // surface at y=400
	if !tr.Carve(500, 400, 30) {
		t.Fatal("carve should modify terrain")
	}
	for x := 460; x <= 540; x++ {
		dx := float64(x - 500)
		want := 400.0
		if math.Abs(dx) <= 30 {
			want = 400 - 2*math.Sqrt(30*30-dx*dx)
		}
		got := tr.heightAt(x)
		if math.Abs(got-want) > 0.5 {
			t.Fatalf("column %d: height %.2f, want %.2f", x, got, want)
		}
	}
}

func TestCarve_ZeroRadiusIsNoop(t *testing.T) {
	tr := NewFlatTerrain(100, 400, 200)
	if tr.Carve(50, 200, 0) {
		t.Fatal("zero-radius carve must be a no-op")
	}
}

func TestCarve_NeverBelowZero(t *testing.T) {
	tr := NewFlatTerrain(100, 400, 10)
	tr.Carve(50, 390, 60)
	for x := 0; x < 100; x++ {
		if tr.heightAt(x) < 0 {
			t.Fatalf("column %d went negative: %.2f", x, tr.heightAt(x))
		}
	}
}

func TestSettle_LowersSpike(t *testing.T) {
	tr := NewFlatTerrain(100, 400, 100)
	tr.heights[50] = 300 // unsupported pillar
	if !tr.Settle(50, 5) {
		t.Fatal("settle should lower the spike")
	}
	if tr.heightAt(50) > 100+settleSlope {
		t.Fatalf("spike should settle to within the slope threshold, got %.1f", tr.heightAt(50))
	}
}

func TestSettle_SecondCallIsNoop(t *testing.T) {
	tr := NewFlatTerrain(100, 400, 100)
	tr.heights[50] = 300
	tr.Settle(50, 5)
	if tr.Settle(50, 5) {
		t.Fatal("second settle with no intervening destruction must report no change")
	}
}

// Terrain never rises: after arbitrary carve/settle sequences every column
// is at or below its previous height.
func TestTerrain_NeverRises(t *testing.T) {
	tr := NewTerrain(800, 600, DefaultTerrainParams(), testRNG(3))
	rng := testRNG(4)
	prev := make([]float64, tr.Width())
	for i := 0; i < 40; i++ {
		copy(prev, tr.heights)
		cx := rng.Float64() * 800
		cy := rng.Float64() * 600
		r := 10 + rng.Float64()*50
		tr.Carve(cx, cy, r)
		tr.Settle(cx, r)
		for x := 0; x < tr.Width(); x++ {
			if tr.heights[x] > prev[x]+1e-9 {
				t.Fatalf("iteration %d: column %d rose from %.2f to %.2f", i, x, prev[x], tr.heights[x])
			}
		}
	}
}

func TestCarveCorridor_OnlyRemovesGround(t *testing.T) {
	tr := NewFlatTerrain(200, 400, 100) // surface at y=300
	tr.CarveCorridor(100, 200, 5)       // entirely above ground
	if tr.Height(100) != 100 {
		t.Fatalf("corridor above the surface should not remove ground, height now %d", tr.Height(100))
	}
	tr.CarveCorridor(100, 350, 5) // below the surface
	if tr.Height(100) >= 100 {
		t.Fatal("corridor through ground should lower the column")
	}
}
