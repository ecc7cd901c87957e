// ◄◄◄ quantize.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

import "math"

// quantizer converts linear-light samples back to an output colorspace
// and quantizes them to an output channel's depth / color count,
// applying the configured dither family (spec §4.7).
type quantizer struct {
	cs         ColorspaceDescriptor
	maxCode    float64 // overall_maxcolorcode
	colorCount int     // 0 = full depth
	dither     DitherSettings
	ncTable    *nearestColorTable // optional fast path, undithered only

	errBuf *ditherErrorBuffers // only when dither.Family == DitherErrorDiffusion
	rng    *prngState          // only when dither.Family == DitherRandom
}

// quantizeSample is the float-output escape hatch: convert out of
// linear, skipping quantization entirely (spec §4.7 step 1 parenthetical).
func (q *quantizer) quantizeFloat(sampLin float64) float32 {
	return float32(q.cs.fromLinear(sampLin))
}

// quantize implements spec §4.7 in full for one UINT output sample at
// output pixel (x,y). width is the output row length used to bound
// error-diffusion spreading; fwd is +1 normally, -1 on serpentine
// reverse rows.
func (q *quantizer) quantize(sampLin float64, x, y, width, fwd int) int {
	if sampLin < 0 {
		sampLin = 0
	} else if sampLin > 1 {
		sampLin = 1
	}

	if q.ncTable != nil && q.dither.Family == DitherNone {
		return q.ncTable.lookup(sampLin)
	}

	if q.dither.Family == DitherErrorDiffusion && q.errBuf != nil {
		sampLin += q.errBuf.rows[0][x]
		if sampLin > 1 {
			sampLin = 1
		} else if sampLin < 0 {
			sampLin = 0
		}
	}

	floorFull, ceilFull, linFloor, linCeil, exact := q.nearestValidCodes(sampLin)

	if exact {
		if q.dither.Family == DitherRandom && q.rng != nil {
			q.rng.next() // keep the PRNG in sync (spec open question #3)
		}
		return int(floorFull)
	}

	dFloor := sampLin - linFloor
	dCeil := linCeil - sampLin

	switch q.dither.Family {
	case DitherNone:
		if dCeil <= dFloor {
			return int(ceilFull)
		}
		return int(floorFull)

	case DitherErrorDiffusion:
		if dCeil <= dFloor {
			q.errBuf.distribute(q.dither.Subtype, -dCeil, x, width, fwd)
			return int(ceilFull)
		}
		q.errBuf.distribute(q.dither.Subtype, dFloor, x, width, fwd)
		return int(floorFull)

	case DitherOrdered:
		frac := dFloor / (dFloor + dCeil)
		if orderedDitherDecision(q.dither.Subtype, frac, x, y) {
			return int(ceilFull)
		}
		return int(floorFull)

	case DitherRandom:
		frac := dFloor / (dFloor + dCeil)
		threshold := q.rng.next()
		if frac >= threshold {
			return int(ceilFull)
		}
		return int(floorFull)
	}

	if dCeil <= dFloor {
		return int(ceilFull)
	}
	return int(floorFull)
}

// nearestValidCodes implements get_nearest_valid_colors: find the two
// candidate output codes bracketing sampLin (converted into the output
// colorspace, optionally posterized), plus their linear-light values.
// exact is true when both candidates coincide.
func (q *quantizer) nearestValidCodes(sampLin float64) (floorFull, ceilFull, linFloor, linCeil float64, exact bool) {
	sampCvt := q.cs.fromLinear(sampLin)

	if q.colorCount == 0 {
		expanded := sampCvt * q.maxCode
		expanded = clampFloat(expanded, 0, q.maxCode)
		floorFull = math.Floor(expanded)
		ceilFull = math.Ceil(expanded)
	} else {
		posterizedMax := float64(q.colorCount - 1)
		expanded := sampCvt * posterizedMax
		expanded = clampFloat(expanded, 0, posterizedMax)
		ratio := q.maxCode / posterizedMax
		// The 0.5000000001 fudge factor keeps tied rounding stable, e.g.
		// a 3-shade 8-bit posterization gives exactly 0, 128, 255.
		floorFull = math.Floor(0.5000000001 + math.Floor(expanded)*ratio)
		ceilFull = math.Floor(0.5000000001 + math.Ceil(expanded)*ratio)
	}

	if int64(floorFull) == int64(ceilFull) {
		return floorFull, ceilFull, 0, 0, true
	}

	linFloor = q.cs.toLinear(floorFull / q.maxCode)
	linCeil = q.cs.toLinear(ceilFull / q.maxCode)
	return floorFull, ceilFull, linFloor, linCeil, false
}
