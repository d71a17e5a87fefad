package smudge

import (
	"fmt"
	"image/color"
)

// DefaultWeight is used when no weight is configured or the flag value is
// malformed.
const DefaultWeight uint8 = 5

// MaxPacked is the largest packed 0xRRGGBB bound.
const MaxPacked uint32 = 0xFFFFFF

// Params controls a single smudge pass.
type Params struct {
	// Weight bounds the per-channel perturbation. Zero disables smudging.
	Weight uint8
	// Shade biases toward darker values when true, lighter when false.
	Shade bool
	// Range clamps smudged channels into inclusive bounds. Nil means [0,255].
	Range *ChannelRange
	// Seed makes the run reproducible. Nil draws a fresh seed.
	Seed *uint64
}

// DefaultParams returns the built-in parameter set.
func DefaultParams() Params {
	return Params{Weight: DefaultWeight}
}

// ChannelRange holds inclusive per-channel bounds. Alpha is ignored.
type ChannelRange struct {
	Min color.NRGBA
	Max color.NRGBA
}

// UnpackColor splits a packed 0xRRGGBB value into channels.
func UnpackColor(packed uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(packed >> 16 & 0xFF),
		G: uint8(packed >> 8 & 0xFF),
		B: uint8(packed & 0xFF),
		A: 0xFF,
	}
}

// PackColor is the inverse of UnpackColor; alpha is dropped.
func PackColor(c color.NRGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// NewChannelRange builds a range from packed lower and upper bounds.
func NewChannelRange(minPacked, maxPacked uint32) *ChannelRange {
	return &ChannelRange{
		Min: UnpackColor(minPacked),
		Max: UnpackColor(maxPacked),
	}
}

// Normalize orders every channel so Min <= Max and reports whether any
// channel had to be swapped.
func (r *ChannelRange) Normalize() bool {
	swapped := false
	order := func(lo, hi *uint8) {
		if *lo > *hi {
			*lo, *hi = *hi, *lo
			swapped = true
		}
	}
	order(&r.Min.R, &r.Max.R)
	order(&r.Min.G, &r.Max.G)
	order(&r.Min.B, &r.Max.B)
	return swapped
}

// bounds returns the inclusive bounds for channel i (0=R, 1=G, 2=B).
func (r *ChannelRange) bounds(i int) (lo, hi int) {
	switch i {
	case 0:
		return int(r.Min.R), int(r.Max.R)
	case 1:
		return int(r.Min.G), int(r.Max.G)
	default:
		return int(r.Min.B), int(r.Max.B)
	}
}

func (r *ChannelRange) String() string {
	return fmt.Sprintf("0x%06X-0x%06X", PackColor(r.Min), PackColor(r.Max))
}
