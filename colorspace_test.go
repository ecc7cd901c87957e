// ◄◄◄ colorspace_test.go ►►►

package imageworsener

import "testing"

func TestRoundTripIdentity(t *testing.T) {
	spaces := []ColorspaceDescriptor{
		CSDescrLinear(),
		CSDescrSRGB(),
		CSDescrRec709(),
		CSDescrGamma(2.2),
	}
	for _, cs := range spaces {
		for i := 0; i <= 255; i++ {
			s := float64(i) / 255.0
			got := cs.fromLinear(cs.toLinear(s))
			if diff := got - s; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("colorspace %+v: from_linear(to_linear(%v)) = %v, want %v (within 1e-9)", cs, s, got, s)
			}
		}
	}
}

func TestGammaNearOneCollapsesToLinear(t *testing.T) {
	cs := CSDescrGamma(1.000001)
	if cs.Tag != CSLinear {
		t.Fatalf("gamma 1.000001 should collapse to linear, got tag %v", cs.Tag)
	}
}

func TestRec709BreakpointIsPointZeroTwo(t *testing.T) {
	cs := CSDescrRec709()

	// The breakpoint lives in the linear domain at 0.020; toLinear's
	// encoded-domain check is scaled by the linear segment's slope, 4.5.
	below := cs.toLinear(4.5*0.020 - 0.001)
	above := cs.toLinear(4.5*0.020 + 0.001)
	if below != (4.5*0.020-0.001)/4.5 {
		t.Errorf("below breakpoint should use linear segment: got %v", below)
	}
	if above == (4.5*0.020+0.001)/4.5 {
		t.Errorf("above breakpoint should use the power segment, not the linear one")
	}

	// A variable rather than a constant, so that the expected product is
	// rounded in float64 the same way the code's multiplication is.
	belowIn := 0.019
	belowLin := cs.fromLinear(belowIn)
	aboveLin := cs.fromLinear(0.021)
	if belowLin != belowIn*4.5 {
		t.Errorf("fromLinear below breakpoint should use linear segment: got %v", belowLin)
	}
	if aboveLin == 0.021*4.5 {
		t.Errorf("fromLinear above breakpoint should use the power segment, not the linear one")
	}

	// No discontinuity right at the breakpoint.
	eps := 1e-6
	atMinus := cs.toLinear(4.5*0.020 - eps)
	atPlus := cs.toLinear(4.5*0.020 + eps)
	if diff := atPlus - atMinus; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("toLinear should be continuous across the breakpoint: %v vs %v", atMinus, atPlus)
	}
}

func TestFromLinearShortCircuitsAtOne(t *testing.T) {
	cs := CSDescrSRGB()
	if cs.fromLinear(1.0) != 1.0 {
		t.Errorf("from_linear(1.0) must be exactly 1.0")
	}
	if cs.fromLinear(1.5) != 1.0 {
		t.Errorf("from_linear(s>=1) must short-circuit to 1.0")
	}
}
