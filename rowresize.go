// ◄◄◄ rowresize.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

// resizeRowStd runs the standard weight-list resizer over one row/column
// vector: out[d] = Σ w_i · in[s_i], per spec §4.4.
func resizeRowStd(wl *weightList, in []float64, out []float64) {
	for d, entries := range wl.perDest {
		var acc float64
		for _, e := range entries {
			acc += e.weight * in[e.srcIndex]
		}
		out[d] = acc
	}
}

// resizeRowNearest copies the nearest source sample for each destination,
// with no weight list involved.
func resizeRowNearest(srcLen, dstLen int, in []float64, out []float64) {
	for d := 0; d < dstLen; d++ {
		p := ((float64(d)+0.5)/float64(dstLen))*float64(srcLen) - 0.5 - 1e-11
		s := int(p + 0.5)
		if s < 0 {
			s = 0
		} else if s >= srcLen {
			s = srcLen - 1
		}
		out[d] = in[s]
	}
}

// resizeRowNull copies pixel-aligned source samples directly, zero-filling
// any destination position beyond the input's extent. Used when the
// filter family is "null" (source and destination lengths equal, no
// translation active).
func resizeRowNull(srcLen, dstLen int, in []float64, out []float64) {
	for d := 0; d < dstLen; d++ {
		if d < srcLen {
			out[d] = in[d]
		} else {
			out[d] = 0
		}
	}
}
