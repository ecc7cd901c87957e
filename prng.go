// ◄◄◄ prng.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

import (
	"time"

	"github.com/valyala/fastrand"
)

// prngState wraps fastrand.RNG with the seeding contract
// imagew-util.c's carry-multiply generator establishes: reseed once per
// Process call (or once per dithered channel group, for the "same
// pattern" random-dither subtype), and advance exactly once per sample
// even when the quantizer's two candidate codes were equal (spec §4.7
// step 5, open question #3 in SPEC_FULL.md §C.2).
type prngState struct {
	rng fastrand.RNG
}

// seed reseeds the generator. seedVal is either the context's fixed seed
// (SetRandomSeed) or an unpredictable value derived once at the start of
// Process.
func (p *prngState) seed(seedVal uint32) {
	p.rng.Seed(seedVal)
}

// next draws the next uniform sample in [0,1), always advancing the
// underlying generator by exactly one step.
func (p *prngState) next() float64 {
	return float64(p.rng.Uint32()) / 4294967296.0
}

// deriveProcessSeed produces an unpredictable per-Process seed when the
// caller did not fix one, folding in a few distinguishing values so
// repeated Process calls on distinct contexts don't collide in the
// common case of a program resizing many images in a tight loop. Without
// a fixed seed, the base is taken from the clock on the first call of a
// Process and reused by its later calls, so equal salts give equal seeds
// within one Process.
func deriveProcessSeed(ctx *Context, salt int) uint32 {
	if ctx.randomSeedMode == 0 && ctx.fixedSeed == 0 {
		ctx.fixedSeed = uint32(time.Now().UnixNano()) | 1
	}
	return ctx.fixedSeed + uint32(salt)*0x9e3779b9
}
