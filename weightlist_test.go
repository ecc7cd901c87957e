// ◄◄◄ weightlist_test.go ►►►

package imageworsener

import "testing"

func TestWeightsSumToOneOrZero(t *testing.T) {
	families := []FilterFamily{FilterBox, FilterTriangle, FilterQuadratic, FilterHermite,
		FilterGaussian, FilterCubic, FilterLanczos, FilterMix}

	for _, fam := range families {
		rs := ResizeSettings{Family: fam, Blur: 1.0, Param1: 2, Param2: 0.5}
		for _, dims := range [][2]int{{10, 4}, {4, 10}, {7, 7}, {1, 5}, {5, 1}} {
			srcLen, dstLen := dims[0], dims[1]
			f := resolvedFilter(rs, srcLen, dstLen, false)
			if f.isPoint {
				continue
			}
			wl := buildWeightList(f, srcLen, dstLen, rs.Blur, 0, EdgeStandard)
			for d, entries := range wl.perDest {
				sum := 0.0
				for _, e := range entries {
					sum += e.weight
				}
				if len(entries) == 0 {
					continue
				}
				if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("family %v src=%d dst=%d dest=%d: weights sum to %v, want 1.0 (within 1e-9)", fam, srcLen, dstLen, d, sum)
				}
			}
		}
	}
}

func TestNullResizeIsIdentity(t *testing.T) {
	in := []float64{0.1, 0.4, 0.9, 0.25}
	out := make([]float64, len(in))
	resizeRowNull(len(in), len(out), in, out)
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("null resize: out[%d]=%v, want %v", i, out[i], in[i])
		}
	}
}

func TestNearestResizeOnlyProducesSourceValues(t *testing.T) {
	in := []float64{10, 200}
	out := make([]float64, 4)
	resizeRowNearest(len(in), len(out), in, out)
	want := []float64{10, 10, 200, 200}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("nearest upsample 2->4: out[%d]=%v, want %v", i, out[i], want[i])
		}
	}
}

func TestBoxDownsampleIsBlockMean(t *testing.T) {
	rs := ResizeSettings{Family: FilterBox, Blur: 1.0}
	k := 3
	srcLen := 12
	dstLen := srcLen / k
	f := resolvedFilter(rs, srcLen, dstLen, false)
	wl := buildWeightList(f, srcLen, dstLen, 1.0, 0, EdgeStandard)

	in := make([]float64, srcLen)
	for i := range in {
		in[i] = float64(i)
	}
	out := make([]float64, dstLen)
	resizeRowStd(wl, in, out)

	for d := 0; d < dstLen; d++ {
		var want float64
		for i := 0; i < k; i++ {
			want += in[d*k+i]
		}
		want /= float64(k)
		if diff := out[d] - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("box downsample block %d: got %v, want %v", d, out[d], want)
		}
	}
}
