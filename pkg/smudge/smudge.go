// Package smudge resolves camoufler parameters and applies the randomized
// per-pixel smudge to an NRGBA buffer.
package smudge

import (
	"image"
	"math/rand/v2"
)

// smudgedChannels is the number of leading channels touched per pixel (R, G).
// Blue and alpha are left as they are.
const smudgedChannels = 2

// Observer is notified after each row is smudged.
type Observer func(row, rows int)

// Smudger applies the random-walk smudge. It is not safe for concurrent use.
type Smudger struct {
	rng      *rand.Rand
	observer Observer
}

// NewSmudger returns a Smudger drawing from rng. A nil rng is replaced by an
// unseeded source.
func NewSmudger(rng *rand.Rand) *Smudger {
	if rng == nil {
		rng = NewSource(nil)
	}
	return &Smudger{rng: rng}
}

// NewSource returns a PCG generator seeded with seed, or with fresh runtime
// randomness when seed is nil.
func NewSource(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

// Observe registers fn to be called after every row.
func (s *Smudger) Observe(fn Observer) *Smudger {
	s.observer = fn
	return s
}

// Apply mutates img in place. For every pixel the red and green channels are
// shifted by magnitude*r, where magnitude is ±Weight (negative when Shade)
// and r is drawn uniformly from [0, Weight). Results are clamped to [0,255]
// and then into p.Range when set. A zero weight leaves img untouched.
func (s *Smudger) Apply(img *image.NRGBA, p Params) {
	if p.Weight == 0 {
		return
	}

	direction := 1
	if p.Shade {
		direction = -1
	}
	magnitude := direction * int(p.Weight)
	weight := int(p.Weight)

	b := img.Bounds()
	rows := b.Dy()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			for c := 0; c < smudgedChannels; c++ {
				v := int(img.Pix[i+c]) + magnitude*s.rng.IntN(weight)
				v = clampInt(v, 0, 255)
				if p.Range != nil {
					lo, hi := p.Range.bounds(c)
					v = clampInt(v, lo, hi)
				}
				img.Pix[i+c] = uint8(v)
			}
			i += 4
		}
		if s.observer != nil {
			s.observer(y-b.Min.Y+1, rows)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
