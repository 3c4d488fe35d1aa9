package lander

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
)

// kernelTruncate is the Gaussian kernel half-width in multiples of sigma.
const kernelTruncate = 4.0

// Terrain is the periodic height field of the moon surface.
// Column i covers x in [i, i+1); indices wrap modulo Width.
type Terrain struct {
	heights []float64
	ceiling float64
	version uint64
}

// NewTerrain generates rolling terrain: random impulses on a flat profile,
// smoothed with a periodic Gaussian low-pass and clamped to [0, Height].
func NewTerrain(cfg config.WorldConfig, rng *rand.Rand) *Terrain {
	profile := make([]float64, cfg.Width)
	for i := 0; i < cfg.TerrainSeeds; i++ {
		x := rng.Intn(cfg.Width)
		profile[x] = cfg.TerrainAmplitude * rng.Float64()
	}

	heights := gaussianWrap(profile, cfg.TerrainSigma)
	for i, h := range heights {
		heights[i] = core.ClampF(h, 0, cfg.Height)
	}
	return &Terrain{heights: heights, ceiling: cfg.Height}
}

// NewFlatTerrain creates terrain with every column at level.
func NewFlatTerrain(width int, height, level float64) *Terrain {
	heights := make([]float64, max(width, 1))
	level = core.ClampF(level, 0, height)
	for i := range heights {
		heights[i] = level
	}
	return &Terrain{heights: heights, ceiling: height}
}

// NewTerrainFromHeights wraps an explicit profile, clamped to [0, height].
func NewTerrainFromHeights(heights []float64, height float64) *Terrain {
	t := &Terrain{heights: make([]float64, len(heights)), ceiling: height}
	for i, h := range heights {
		t.heights[i] = core.ClampF(h, 0, height)
	}
	return t
}

// gaussianWrap convolves profile with a normalized Gaussian, treating the
// profile as periodic.
func gaussianWrap(profile []float64, sigma float64) []float64 {
	n := len(profile)
	out := make([]float64, n)
	if sigma <= 0 || n == 0 {
		copy(out, profile)
		return out
	}

	radius := int(kernelTruncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for k := -radius; k <= radius; k++ {
		w := math.Exp(-0.5 * float64(k*k) / (sigma * sigma))
		kernel[k+radius] = w
		sum += w
	}
	for k := range kernel {
		kernel[k] /= sum
	}

	// Scatter each non-zero sample; seeded profiles are sparse.
	for i, v := range profile {
		if v == 0 {
			continue
		}
		for k := -radius; k <= radius; k++ {
			out[core.WrapIndex(i+k, n)] += v * kernel[k+radius]
		}
	}
	return out
}

// Width returns the number of columns.
func (t *Terrain) Width() int {
	return len(t.heights)
}

// Ceiling returns the top of the play area.
func (t *Terrain) Ceiling() float64 {
	return t.ceiling
}

// At returns the height of column i, wrapped.
func (t *Terrain) At(i int) float64 {
	return t.heights[core.WrapIndex(i, len(t.heights))]
}

// HeightAt returns the height under world coordinate x.
func (t *Terrain) HeightAt(x float64) float64 {
	return t.At(int(math.Floor(x)))
}

// Version increases by one on every crater.
func (t *Terrain) Version() uint64 {
	return t.version
}

// Heights returns a copy of the height profile.
func (t *Terrain) Heights() []float64 {
	out := make([]float64, len(t.heights))
	copy(out, t.heights)
	return out
}

// CarveCrater flattens the columns in [x-radius, x+radius] to the lowest
// height found in that window. The window may straddle the seam.
func (t *Terrain) CarveCrater(x, radius float64) {
	lo := int(math.Round(x - radius))
	hi := int(math.Round(x + radius))
	spans := wrapSpans(lo, hi-lo+1, len(t.heights))

	floor := math.Inf(1)
	for _, s := range spans {
		for i := s.from; i < s.to; i++ {
			floor = math.Min(floor, t.heights[i])
		}
	}
	for _, s := range spans {
		for i := s.from; i < s.to; i++ {
			t.heights[i] = floor
		}
	}
	t.version++
}

// span is a half-open column range [from, to) inside the terrain.
type span struct {
	from, to int
}

// wrapSpans splits count columns starting at lo into at most two in-range
// spans. Counts at or above n cover the whole profile once.
func wrapSpans(lo, count, n int) []span {
	if count <= 0 || n <= 0 {
		return nil
	}
	if count >= n {
		return []span{{0, n}}
	}
	start := core.WrapIndex(lo, n)
	end := start + count
	if end <= n {
		return []span{{start, end}}
	}
	return []span{{start, n}, {0, end - n}}
}

// View returns an immutable copy of the current terrain.
func (t *Terrain) View() TerrainView {
	return TerrainView{heights: t.Heights(), version: t.version}
}

// TerrainView is a read-only terrain copy handed to bots and renderers.
type TerrainView struct {
	heights []float64
	version uint64
}

// Width returns the number of columns.
func (v TerrainView) Width() int {
	return len(v.heights)
}

// At returns the height of column i, wrapped.
func (v TerrainView) At(i int) float64 {
	if len(v.heights) == 0 {
		return 0
	}
	return v.heights[core.WrapIndex(i, len(v.heights))]
}

// HeightAt returns the height under world coordinate x.
func (v TerrainView) HeightAt(x float64) float64 {
	return v.At(int(math.Floor(x)))
}

// Version reports the terrain version the view was taken at.
func (v TerrainView) Version() uint64 {
	return v.version
}

// Heights returns a copy of the profile.
func (v TerrainView) Heights() []float64 {
	out := make([]float64, len(v.heights))
	copy(out, v.heights)
	return out
}
