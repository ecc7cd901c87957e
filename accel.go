// ◄◄◄ accel.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

// accelTableMinPixels is the image-area threshold below which a
// correction table isn't worth building: the table-build cost isn't
// amortized on small images (spec §9, imagew-main.c's
// iw_make_x_to_linear_table / iw_make_nearest_color_table).
const accelTableMinPixels = 512

// inputLinearTable is a lookup table mapping an integer input code,
// normalized to [0,1], directly to its linear-light value. Built only
// for non-linear colorspaces at bit depth <= 8 on images large enough to
// amortize the build cost.
type inputLinearTable struct {
	values []float64 // len == 1<<bitDepth
}

// buildInputLinearTable returns the table when the fast path applies;
// otherwise nil, signaling the caller to fall back to the slow
// per-sample conversion.
func buildInputLinearTable(cs ColorspaceDescriptor, bitDepth, width, height int) *inputLinearTable {
	if cs.Tag == CSLinear {
		return nil
	}
	if bitDepth > 8 {
		return nil
	}
	if width*height <= accelTableMinPixels {
		return nil
	}
	n := 1 << uint(bitDepth)
	tbl := make([]float64, n)
	for i := 0; i < n; i++ {
		tbl[i] = cs.toLinear(float64(i) / float64(n-1))
	}
	return &inputLinearTable{values: tbl}
}

func (t *inputLinearTable) lookup(code int) float64 {
	return t.values[code]
}

// nearestColorTable accelerates the "none"/undithered output quantizer
// path: it stores, for codes 0..ncolors-2, the midpoint between that
// code's linear-light value and the next code's, so a
// binary search over samp_lin finds the nearest output code directly.
type nearestColorTable struct {
	boundaries []float64 // len == ncolors-1, strictly increasing
}

// buildNearestColorTable mirrors iw_make_nearest_color_table's
// applicability conditions: disabled by SetDisableGamma, linear
// colorspaces (nothing to accelerate), FLOAT32 images, input/output bit
// depth mismatches, depths above 8, and images too small to amortize.
func buildNearestColorTable(ctx *Context, cs ColorspaceDescriptor, bitDepth, outBitDepth, width, height int, sampleType SampleType) *nearestColorTable {
	if ctx.disableGamma {
		return nil
	}
	if cs.Tag == CSLinear {
		return nil
	}
	if sampleType == SampleFloat32 {
		return nil
	}
	if bitDepth != outBitDepth {
		return nil
	}
	if bitDepth > 8 {
		return nil
	}
	if width*height <= accelTableMinPixels {
		return nil
	}

	ncolors := 1 << uint(bitDepth)
	nentries := ncolors - 1
	tbl := make([]float64, nentries)
	prev := 0.0
	for i := 0; i < nentries; i++ {
		curr := cs.toLinear(float64(i+1) / float64(ncolors-1))
		tbl[i] = (prev + curr) / 2.0
		prev = curr
	}
	return &nearestColorTable{boundaries: tbl}
}

// lookup performs the binary search of get_final_sample_using_nc_tbl:
// find the smallest code x in [0,ncolors-2] whose boundary value exceeds
// sampLin; codes above the table's range map to the final code.
func (t *nearestColorTable) lookup(sampLin float64) int {
	n := len(t.boundaries)
	lo, hi := 0, n // hi == n means "final code" (ncolors-1)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.boundaries[mid] > sampLin {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
