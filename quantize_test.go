// ◄◄◄ quantize_test.go ►►►

package imageworsener

import "testing"

func TestPosterizeThreeShadesEightBit(t *testing.T) {
	q := &quantizer{cs: CSDescrLinear(), maxCode: 255, colorCount: 3}

	cases := []struct {
		sampLin float64
		want    int
	}{
		{0.0, 0},
		{1.0, 255},
		{0.5, 128},
	}
	for _, c := range cases {
		got := q.quantize(c.sampLin, 0, 0, 10, 1)
		if got != c.want {
			t.Errorf("posterize(%v) = %d, want %d", c.sampLin, got, c.want)
		}
	}
}

func TestQuantizeClampsOutOfRange(t *testing.T) {
	q := &quantizer{cs: CSDescrLinear(), maxCode: 255}
	if got := q.quantize(-1.0, 0, 0, 10, 1); got != 0 {
		t.Errorf("quantize(-1.0) = %d, want 0", got)
	}
	if got := q.quantize(2.0, 0, 0, 10, 1); got != 255 {
		t.Errorf("quantize(2.0) = %d, want 255", got)
	}
}

func TestErrorDiffusionFloydSteinbergMonotonic(t *testing.T) {
	width := 256
	q := &quantizer{cs: CSDescrLinear(), maxCode: 1, dither: DitherSettings{Family: DitherErrorDiffusion, Subtype: ErrDiffFloydSteinberg}}
	q.errBuf = newDitherErrorBuffers(width)

	seenZero, seenMax := false, false
	const buckets = 8
	bucketWidth := width / buckets
	onCount := make([]int, buckets)
	rows := 16
	for row := 0; row < rows; row++ {
		for x := 0; x < width; x++ {
			mean := float64(x) / float64(width-1)
			code := q.quantize(mean, x, row, width, 1)
			if code == 0 {
				seenZero = true
			}
			if code == 1 {
				seenMax = true
				onCount[x/bucketWidth]++
			}
		}
		q.errBuf.shiftRows()
	}

	if !seenZero || !seenMax {
		t.Fatalf("expected both 0 and 1(=255-equivalent) codes to appear; seenZero=%v seenMax=%v", seenZero, seenMax)
	}

	// The source gradient increases monotonically left to right. Error
	// diffusion can wobble locally, so only the overall trend is checked:
	// split the buckets into two halves and require the second half's
	// on-pixel count to exceed the first's.
	firstHalf, secondHalf := 0, 0
	for i, c := range onCount {
		if i < buckets/2 {
			firstHalf += c
		} else {
			secondHalf += c
		}
	}
	if secondHalf <= firstHalf {
		t.Errorf("second half on-pixel count (%d) should exceed first half (%d) for an increasing gradient", secondHalf, firstHalf)
	}
}

func TestOrderedDitherTableShape(t *testing.T) {
	for subtype := 0; subtype < 2; subtype++ {
		var sum float64
		for _, v := range orderedDitherTables[subtype] {
			if v < 0 || v > 1 {
				t.Errorf("ordered dither table %d has out-of-range entry %v", subtype, v)
			}
			sum += v
		}
		// 64 entries of (k+0.5)/64 for k=0..63 sum to 32.0 exactly.
		if diff := sum - 32.0; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("ordered dither table %d sums to %v, want 32.0", subtype, sum)
		}
	}
}

func TestErrDiffMatricesRowSumsAreOne(t *testing.T) {
	for i, m := range errDiffMatrices {
		var sum float64
		for _, v := range m {
			sum += v
		}
		if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("error-diffusion matrix %d sums to %v, want 1.0", i, sum)
		}
	}
}
