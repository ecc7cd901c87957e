// ◄◄◄ dither_tables.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

// orderedDitherTables holds the two 8x8 constant threshold patterns used
// by ordered dithering, carried over verbatim from the original's
// iw_ordered_dither. Indexed [subtype][x%8 + 8*(y%8)].
var orderedDitherTables = [2][64]float64{
	{ // Dispersed ordered dither
		0.5 / 64, 48.5 / 64, 12.5 / 64, 60.5 / 64, 3.5 / 64, 51.5 / 64, 15.5 / 64, 63.5 / 64,
		32.5 / 64, 16.5 / 64, 44.5 / 64, 28.5 / 64, 35.5 / 64, 19.5 / 64, 47.5 / 64, 31.5 / 64,
		8.5 / 64, 56.5 / 64, 4.5 / 64, 52.5 / 64, 11.5 / 64, 59.5 / 64, 7.5 / 64, 55.5 / 64,
		40.5 / 64, 24.5 / 64, 36.5 / 64, 20.5 / 64, 43.5 / 64, 27.5 / 64, 39.5 / 64, 23.5 / 64,
		2.5 / 64, 50.5 / 64, 14.5 / 64, 62.5 / 64, 1.5 / 64, 49.5 / 64, 13.5 / 64, 61.5 / 64,
		34.5 / 64, 18.5 / 64, 46.5 / 64, 30.5 / 64, 33.5 / 64, 17.5 / 64, 45.5 / 64, 29.5 / 64,
		10.5 / 64, 58.5 / 64, 6.5 / 64, 54.5 / 64, 9.5 / 64, 57.5 / 64, 5.5 / 64, 53.5 / 64,
		42.5 / 64, 26.5 / 64, 38.5 / 64, 22.5 / 64, 41.5 / 64, 25.5 / 64, 37.5 / 64, 21.5 / 64,
	},
	{ // Halftone ordered dither
		3.5 / 64, 9.5 / 64, 17.5 / 64, 27.5 / 64, 25.5 / 64, 15.5 / 64, 7.5 / 64, 1.5 / 64,
		11.5 / 64, 29.5 / 64, 37.5 / 64, 45.5 / 64, 43.5 / 64, 35.5 / 64, 23.5 / 64, 5.5 / 64,
		19.5 / 64, 39.5 / 64, 51.5 / 64, 57.5 / 64, 55.5 / 64, 49.5 / 64, 33.5 / 64, 13.5 / 64,
		31.5 / 64, 47.5 / 64, 59.5 / 64, 63.5 / 64, 61.5 / 64, 53.5 / 64, 41.5 / 64, 21.5 / 64,
		30.5 / 64, 46.5 / 64, 58.5 / 64, 62.5 / 64, 60.5 / 64, 52.5 / 64, 40.5 / 64, 20.5 / 64,
		18.5 / 64, 38.5 / 64, 50.5 / 64, 56.5 / 64, 54.5 / 64, 48.5 / 64, 32.5 / 64, 12.5 / 64,
		10.5 / 64, 28.5 / 64, 36.5 / 64, 44.5 / 64, 42.5 / 64, 34.5 / 64, 22.5 / 64, 4.5 / 64,
		2.5 / 64, 8.5 / 64, 16.5 / 64, 26.5 / 64, 24.5 / 64, 14.5 / 64, 6.5 / 64, 0.5 / 64,
	},
}

// orderedDitherDecision returns true (round up / use ceil) if fraction
// exceeds the tabulated threshold at (x,y).
func orderedDitherDecision(subtype DitherSubtype, fraction float64, x, y int) bool {
	idx := 0
	if subtype == OrderedHalftone {
		idx = 1
	}
	threshold := orderedDitherTables[idx][(x%8)+8*(y%8)]
	return fraction >= threshold
}

// errDiffMatrix is one 12-entry error-diffusion kernel, laid out as in
// the original:
//
//	        x  0  1
//	  2  3  4  5  6
//	  7  8  9 10 11
type errDiffMatrix [12]float64

// errDiffMatrices holds the eight named kernels, in the original's fixed
// order. Built explicitly by index in init() rather than as a composite
// literal, to avoid a transcription error in the sparse corners of the
// (0,1; 2,3,4,5,6; 7,8,9,10,11) layout.
var errDiffMatrices [8]errDiffMatrix

func init() {
	set := func(i int, m0, m1, m2, m3, m4, m5, m6, m7, m8, m9, m10, m11 float64) {
		errDiffMatrices[i] = errDiffMatrix{m0, m1, m2, m3, m4, m5, m6, m7, m8, m9, m10, m11}
	}
	set(0, 7.0/16, 0.0, 0.0, 3.0/16, 5.0/16, 1.0/16, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0)          // Floyd-Steinberg
	set(1, 7.0/48, 5.0/48, 3.0/48, 5.0/48, 7.0/48, 5.0/48, 3.0/48, 1.0/48, 3.0/48, 5.0/48, 3.0/48, 1.0/48) // JJN
	set(2, 8.0/42, 4.0/42, 2.0/42, 4.0/42, 8.0/42, 4.0/42, 2.0/42, 1.0/42, 2.0/42, 4.0/42, 2.0/42, 1.0/42) // Stucki
	set(3, 8.0/32, 4.0/32, 2.0/32, 4.0/32, 8.0/32, 4.0/32, 2.0/32, 0.0, 0.0, 0.0, 0.0, 0.0)                // Burkes
	set(4, 5.0/32, 3.0/32, 2.0/32, 4.0/32, 5.0/32, 4.0/32, 2.0/32, 0.0, 2.0/32, 3.0/32, 2.0/32, 0.0)       // Sierra3
	set(5, 4.0/16, 3.0/16, 1.0/16, 2.0/16, 3.0/16, 2.0/16, 1.0/16, 0.0, 0.0, 0.0, 0.0, 0.0)                // Sierra2
	set(6, 2.0/4, 0.0, 0.0, 1.0/4, 1.0/4, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0)                                // Sierra-Lite (Sierra42a)
	set(7, 1.0/8, 1.0/8, 0.0, 1.0/8, 1.0/8, 1.0/8, 0.0, 0.0, 0.0, 1.0/8, 0.0, 0.0)                          // Atkinson
}

func errDiffMatrixFor(subtype DitherSubtype) errDiffMatrix {
	idx := int(subtype - ErrDiffFloydSteinberg)
	if idx < 0 || idx > 7 {
		idx = 0
	}
	return errDiffMatrices[idx]
}

// ditherErrorBuffers is the three-row error buffer distributing
// error-diffusion output (spec §5 "three rows of Wo doubles").
type ditherErrorBuffers struct {
	rows [3][]float64
}

func newDitherErrorBuffers(width int) *ditherErrorBuffers {
	b := &ditherErrorBuffers{}
	for i := range b.rows {
		b.rows[i] = make([]float64, width)
	}
	return b
}

func (b *ditherErrorBuffers) shiftRows() {
	b.rows[0], b.rows[1], b.rows[2] = b.rows[1], b.rows[2], b.rows[0]
	for i := range b.rows[2] {
		b.rows[2][i] = 0
	}
}

// distribute applies one error-diffusion kernel for a sample at column x
// of a row traversed forward (fwd=1) or in reverse (fwd=-1) for
// serpentine traversal, matching iw_errdiff_dither.
func (b *ditherErrorBuffers) distribute(subtype DitherSubtype, err float64, x, width, fwd int) {
	m := errDiffMatrixFor(subtype)

	if x-fwd >= 0 && x-fwd < width {
		if x-2*fwd >= 0 && x-2*fwd < width {
			b.rows[1][x-2*fwd] += err * m[2]
			b.rows[2][x-2*fwd] += err * m[7]
		}
		b.rows[1][x-fwd] += err * m[3]
		b.rows[2][x-fwd] += err * m[8]
	}

	b.rows[1][x] += err * m[4]
	b.rows[2][x] += err * m[9]

	if x+fwd >= 0 && x+fwd < width {
		b.rows[0][x+fwd] += err * m[0]
		b.rows[1][x+fwd] += err * m[5]
		b.rows[2][x+fwd] += err * m[10]
		if x+2*fwd >= 0 && x+2*fwd < width {
			b.rows[0][x+2*fwd] += err * m[1]
			b.rows[1][x+2*fwd] += err * m[6]
			b.rows[2][x+2*fwd] += err * m[11]
		}
	}
}
