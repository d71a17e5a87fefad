package smudge

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return NewSource(&seed)
}

// gradient returns a 256x1 image whose red and green channels count up from
// 0 to 255 and whose blue and alpha channels are fixed.
func gradient() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: uint8(x), G: uint8(255 - x), B: 42, A: 200})
	}
	return img
}

func TestApplyDirectionFollowsShade(t *testing.T) {
	for _, weight := range []uint8{1, 2, 7, 16, 100, 255} {
		for _, shade := range []bool{false, true} {
			src := gradient()
			img := gradient()
			NewSmudger(seeded(uint64(weight))).Apply(img, Params{Weight: weight, Shade: shade})

			for x := 0; x < 256; x++ {
				before, after := src.NRGBAAt(x, 0), img.NRGBAAt(x, 0)
				if shade {
					assert.LessOrEqual(t, after.R, before.R, "weight %d x %d", weight, x)
					assert.LessOrEqual(t, after.G, before.G, "weight %d x %d", weight, x)
				} else {
					assert.GreaterOrEqual(t, after.R, before.R, "weight %d x %d", weight, x)
					assert.GreaterOrEqual(t, after.G, before.G, "weight %d x %d", weight, x)
				}
			}
		}
	}
}

func TestApplyDeltaBoundedByWeightSquared(t *testing.T) {
	const weight = 12
	src := gradient()
	img := gradient()
	NewSmudger(seeded(3)).Apply(img, Params{Weight: weight})

	maxDelta := weight * (weight - 1)
	for x := 0; x < 256; x++ {
		before, after := src.NRGBAAt(x, 0), img.NRGBAAt(x, 0)
		dr, dg := int(after.R)-int(before.R), int(after.G)-int(before.G)
		assert.LessOrEqual(t, dr, maxDelta)
		assert.LessOrEqual(t, dg, maxDelta)
		if after.R != 255 {
			assert.Zero(t, dr%weight, "unclamped delta is a multiple of the weight")
		}
	}
}

func TestApplyWeightOneIsIdentity(t *testing.T) {
	img := gradient()
	NewSmudger(seeded(9)).Apply(img, Params{Weight: 1, Shade: true})
	assert.Equal(t, gradient().Pix, img.Pix)
}

func TestApplyZeroWeightIsNoop(t *testing.T) {
	img := gradient()
	require.NotPanics(t, func() {
		NewSmudger(seeded(1)).Apply(img, Params{Weight: 0, Range: NewChannelRange(0x101010, 0x202020)})
	})
	assert.Equal(t, gradient().Pix, img.Pix)
}

func TestApplyLeavesBlueAndAlpha(t *testing.T) {
	img := gradient()
	NewSmudger(seeded(5)).Apply(img, Params{Weight: 50, Shade: true})
	for x := 0; x < 256; x++ {
		c := img.NRGBAAt(x, 0)
		assert.Equal(t, uint8(42), c.B)
		assert.Equal(t, uint8(200), c.A)
	}
}

func TestApplyWhitePixelDarkened(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

		NewSmudger(seeded(seed)).Apply(img, Params{Weight: 10, Shade: true})

		c := img.NRGBAAt(0, 0)
		assert.GreaterOrEqual(t, c.R, uint8(155))
		assert.GreaterOrEqual(t, c.G, uint8(155))
		assert.Equal(t, uint8(255), c.B)
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestApplySeedIsDeterministic(t *testing.T) {
	a, b := gradient(), gradient()
	p := Params{Weight: 30}
	NewSmudger(seeded(77)).Apply(a, p)
	NewSmudger(seeded(77)).Apply(b, p)
	assert.Equal(t, a.Pix, b.Pix)

	c := gradient()
	NewSmudger(seeded(78)).Apply(c, p)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestApplyRangeClamp(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 255, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 100, G: 100, B: 255, A: 255})

	// Weight 1 draws only zeros, isolating the clamp.
	NewSmudger(seeded(1)).Apply(img, Params{Weight: 1, Range: NewChannelRange(0x405000, 0x80A0FF)})

	assert.Equal(t, color.NRGBA{R: 0x40, G: 0xA0, B: 0, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 100, G: 100, B: 255, A: 255}, img.NRGBAAt(1, 0))
}

func TestApplyRangeHoldsUnderNoise(t *testing.T) {
	rng := NewChannelRange(0x303030, 0xC0C0C0)
	for _, shade := range []bool{false, true} {
		img := gradient()
		NewSmudger(seeded(11)).Apply(img, Params{Weight: 40, Shade: shade, Range: rng})
		for x := 0; x < 256; x++ {
			c := img.NRGBAAt(x, 0)
			assert.True(t, c.R >= 0x30 && c.R <= 0xC0, "R=%d", c.R)
			assert.True(t, c.G >= 0x30 && c.G <= 0xC0, "G=%d", c.G)
		}
	}
}

func TestApplySubImage(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range base.Pix {
		base.Pix[i] = 128
	}
	sub := base.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)

	NewSmudger(seeded(2)).Apply(sub, Params{Weight: 1, Range: NewChannelRange(0x000000, 0x101010)})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := base.NRGBAAt(x, y)
			inside := image.Pt(x, y).In(sub.Bounds())
			if inside {
				assert.Equal(t, uint8(0x10), c.R, "(%d,%d)", x, y)
			} else {
				assert.Equal(t, uint8(128), c.R, "(%d,%d)", x, y)
			}
		}
	}
}

func TestApplyObserver(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 5, 3, 9))
	var rows []int
	NewSmudger(seeded(1)).
		Observe(func(row, total int) {
			assert.Equal(t, 4, total)
			rows = append(rows, row)
		}).
		Apply(img, Params{Weight: 3})
	assert.Equal(t, []int{1, 2, 3, 4}, rows)
}

func TestNewSmudgerNilSource(t *testing.T) {
	s := NewSmudger(nil)
	require.NotNil(t, s.rng)
	img := gradient()
	require.NotPanics(t, func() { s.Apply(img, Params{Weight: 8}) })
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-90, 0, 255))
	assert.Equal(t, 255, clampInt(300, 0, 255))
	assert.Equal(t, 17, clampInt(17, 0, 255))
	assert.Equal(t, 0x40, clampInt(3, 0x40, 0x80))
}
